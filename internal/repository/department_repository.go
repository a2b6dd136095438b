package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// DepartmentFilters are the list parameters for departments.
var DepartmentFilters = filter.Set{
	{Name: "institute", Field: filter.IDs("d.institute_id")},
	{Name: "search", Field: filter.Search("d.name")},
}

const departmentSelect = `
	SELECT d.id, d.name, d.institute_id, d.created_at, d.updated_at, to_jsonb(i)
	FROM departments d
	LEFT JOIN institutes i ON i.id = d.institute_id`

// DepartmentRepository handles department data access.
type DepartmentRepository struct {
	db DBTX
}

func NewDepartmentRepository(db DBTX) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) WithTx(tx pgx.Tx) *DepartmentRepository {
	return &DepartmentRepository{db: tx}
}

func scanDepartment(row pgx.Row) (model.Department, error) {
	var d model.Department
	err := row.Scan(&d.ID, &d.Name, &d.InstituteID, &d.CreatedAt, &d.UpdatedAt, &d.Institute)
	return d, err
}

func (r *DepartmentRepository) List(ctx context.Context, w *filter.Where) ([]model.Department, error) {
	rows, err := r.db.Query(ctx, departmentSelect+w.SQL()+` ORDER BY d.name, d.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []model.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	d, err := scanDepartment(r.db.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (*model.Department, error) {
	d, err := scanDepartment(r.db.QueryRow(ctx, departmentSelect+` WHERE d.name = $1`, name))
	if err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, in *model.DepartmentInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (name, institute_id) VALUES ($1, $2) RETURNING id`,
		in.Name, in.InstituteID,
	).Scan(&id)
	return id, mapError(err)
}

func (r *DepartmentRepository) Update(ctx context.Context, id int64, in *model.DepartmentInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE departments SET name = $1, institute_id = $2, updated_at = NOW() WHERE id = $3`,
		in.Name, in.InstituteID, id))
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id))
}

func (r *DepartmentRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments`)
	return tag.RowsAffected(), err
}
