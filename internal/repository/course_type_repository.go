package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// CourseTypeFilters are the list parameters for course types.
var CourseTypeFilters = filter.Set{
	{Name: "search", Field: filter.Search("ct.name")},
}

const courseTypeColumns = `ct.id, ct.name, ct.description, ct.created_at, ct.updated_at`

// CourseTypeRepository handles course type data access.
type CourseTypeRepository struct {
	db DBTX
}

func NewCourseTypeRepository(db DBTX) *CourseTypeRepository {
	return &CourseTypeRepository{db: db}
}

func (r *CourseTypeRepository) WithTx(tx pgx.Tx) *CourseTypeRepository {
	return &CourseTypeRepository{db: tx}
}

func scanCourseType(row pgx.Row) (model.CourseType, error) {
	var t model.CourseType
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *CourseTypeRepository) List(ctx context.Context, w *filter.Where) ([]model.CourseType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseTypeColumns+` FROM course_types ct`+w.SQL()+` ORDER BY ct.name, ct.id`,
		w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []model.CourseType{}
	for rows.Next() {
		t, err := scanCourseType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *CourseTypeRepository) GetByID(ctx context.Context, id int64) (*model.CourseType, error) {
	t, err := scanCourseType(r.db.QueryRow(ctx, `SELECT `+courseTypeColumns+` FROM course_types ct WHERE ct.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *CourseTypeRepository) GetByName(ctx context.Context, name string) (*model.CourseType, error) {
	t, err := scanCourseType(r.db.QueryRow(ctx, `SELECT `+courseTypeColumns+` FROM course_types ct WHERE ct.name = $1`, name))
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *CourseTypeRepository) Create(ctx context.Context, in *model.CourseTypeInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO course_types (name, description) VALUES ($1, $2) RETURNING id`,
		in.Name, in.Description,
	).Scan(&id)
	return id, mapError(err)
}

func (r *CourseTypeRepository) Update(ctx context.Context, id int64, in *model.CourseTypeInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE course_types SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		in.Name, in.Description, id))
}

func (r *CourseTypeRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM course_types WHERE id = $1`, id))
}
