package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// StudyProgramFilters are the list parameters for study programs.
var StudyProgramFilters = filter.Set{
	{Name: "department", Field: filter.IDs("sp.department_id")},
	{Name: "year", Field: filter.Int("sp.year")},
	{Name: "search", Field: filter.Search("sp.name")},
}

const studyProgramSelect = `
	SELECT sp.id, sp.name, sp.description, sp.department_id, sp.year, sp.created_at, sp.updated_at, to_jsonb(d)
	FROM study_programs sp
	LEFT JOIN departments d ON d.id = sp.department_id`

// StudyProgramRepository handles study program data access.
type StudyProgramRepository struct {
	db DBTX
}

func NewStudyProgramRepository(db DBTX) *StudyProgramRepository {
	return &StudyProgramRepository{db: db}
}

func (r *StudyProgramRepository) WithTx(tx pgx.Tx) *StudyProgramRepository {
	return &StudyProgramRepository{db: tx}
}

func scanStudyProgram(row pgx.Row) (model.StudyProgram, error) {
	var p model.StudyProgram
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.DepartmentID, &p.Year, &p.CreatedAt, &p.UpdatedAt, &p.Department)
	return p, err
}

// List returns study programs, newest year first.
func (r *StudyProgramRepository) List(ctx context.Context, w *filter.Where) ([]model.StudyProgram, error) {
	rows, err := r.db.Query(ctx, studyProgramSelect+w.SQL()+` ORDER BY sp.year DESC, sp.name, sp.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := []model.StudyProgram{}
	for rows.Next() {
		p, err := scanStudyProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *StudyProgramRepository) GetByID(ctx context.Context, id int64) (*model.StudyProgram, error) {
	p, err := scanStudyProgram(r.db.QueryRow(ctx, studyProgramSelect+` WHERE sp.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// GetByNameAndYear looks up a program by its seeding key.
func (r *StudyProgramRepository) GetByNameAndYear(ctx context.Context, name string, year int32) (*model.StudyProgram, error) {
	p, err := scanStudyProgram(r.db.QueryRow(ctx,
		studyProgramSelect+` WHERE sp.name = $1 AND sp.year = $2 ORDER BY sp.id LIMIT 1`, name, year))
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *StudyProgramRepository) Create(ctx context.Context, in *model.StudyProgramInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO study_programs (name, description, department_id, year) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Name, in.Description, in.DepartmentID, in.Year,
	).Scan(&id)
	return id, mapError(err)
}

func (r *StudyProgramRepository) Update(ctx context.Context, id int64, in *model.StudyProgramInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE study_programs SET name = $1, description = $2, department_id = $3, year = $4, updated_at = NOW()
		 WHERE id = $5`,
		in.Name, in.Description, in.DepartmentID, in.Year, id))
}

func (r *StudyProgramRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM study_programs WHERE id = $1`, id))
}
