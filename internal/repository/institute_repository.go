package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// InstituteFilters are the list parameters for institutes.
var InstituteFilters = filter.Set{
	{Name: "search", Field: filter.Search("i.name")},
}

const instituteColumns = `i.id, i.name, i.description, i.created_at, i.updated_at`

// InstituteRepository handles institute data access.
type InstituteRepository struct {
	db DBTX
}

// NewInstituteRepository creates a new InstituteRepository.
func NewInstituteRepository(db DBTX) *InstituteRepository {
	return &InstituteRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *InstituteRepository) WithTx(tx pgx.Tx) *InstituteRepository {
	return &InstituteRepository{db: tx}
}

func scanInstitute(row pgx.Row) (model.Institute, error) {
	var i model.Institute
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// List returns institutes matching w ordered by name.
func (r *InstituteRepository) List(ctx context.Context, w *filter.Where) ([]model.Institute, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+instituteColumns+` FROM institutes i`+w.SQL()+` ORDER BY i.name, i.id`,
		w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	institutes := []model.Institute{}
	for rows.Next() {
		i, err := scanInstitute(rows)
		if err != nil {
			return nil, err
		}
		institutes = append(institutes, i)
	}
	return institutes, rows.Err()
}

// GetByID retrieves an institute by ID.
func (r *InstituteRepository) GetByID(ctx context.Context, id int64) (*model.Institute, error) {
	i, err := scanInstitute(r.db.QueryRow(ctx, `SELECT `+instituteColumns+` FROM institutes i WHERE i.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &i, nil
}

// GetByName retrieves an institute by its unique name.
func (r *InstituteRepository) GetByName(ctx context.Context, name string) (*model.Institute, error) {
	i, err := scanInstitute(r.db.QueryRow(ctx, `SELECT `+instituteColumns+` FROM institutes i WHERE i.name = $1`, name))
	if err != nil {
		return nil, mapError(err)
	}
	return &i, nil
}

// Create inserts a new institute and returns its id.
func (r *InstituteRepository) Create(ctx context.Context, in *model.InstituteInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO institutes (name, description) VALUES ($1, $2) RETURNING id`,
		in.Name, in.Description,
	).Scan(&id)
	return id, mapError(err)
}

// Update overwrites an institute.
func (r *InstituteRepository) Update(ctx context.Context, id int64, in *model.InstituteInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE institutes SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		in.Name, in.Description, id))
}

// Delete removes an institute. Departments and everything below cascade.
func (r *InstituteRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM institutes WHERE id = $1`, id))
}

// DeleteAll removes every institute and returns the number removed.
func (r *InstituteRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM institutes`)
	return tag.RowsAffected(), err
}
