package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// CurriculumFilters are the list parameters for curricula.
var CurriculumFilters = filter.Set{
	{Name: "department", Field: filter.IDs("cu.department_id")},
	{Name: "year", Field: filter.Int("cu.year")},
	{Name: "course", Field: filter.RelatedIDs(`EXISTS (
		SELECT 1 FROM curriculum_courses lk WHERE lk.curriculum_id = cu.id AND lk.course_id = ANY(%s))`)},
	{Name: "search", Field: filter.Search("cu.name")},
}

const curriculumSelect = `
	SELECT cu.id, cu.name, cu.description, cu.year, cu.department_id, cu.created_at, cu.updated_at,
	       COALESCE((SELECT array_agg(lk.course_id ORDER BY lk.course_id)
	                 FROM curriculum_courses lk WHERE lk.curriculum_id = cu.id), '{}') AS course_ids,
	       to_jsonb(d),
	       COALESCE((SELECT jsonb_agg(to_jsonb(co) ORDER BY co.course_code, co.id)
	                 FROM curriculum_courses lk JOIN courses co ON co.id = lk.course_id
	                 WHERE lk.curriculum_id = cu.id), '[]'::jsonb) AS courses
	FROM curricula cu
	LEFT JOIN departments d ON d.id = cu.department_id`

// CurriculumRepository handles curriculum data access.
type CurriculumRepository struct {
	db DBTX
}

func NewCurriculumRepository(db DBTX) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

func (r *CurriculumRepository) WithTx(tx pgx.Tx) *CurriculumRepository {
	return &CurriculumRepository{db: tx}
}

func scanCurriculum(row pgx.Row) (model.Curriculum, error) {
	var c model.Curriculum
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Year, &c.DepartmentID, &c.CreatedAt, &c.UpdatedAt,
		&c.CourseIDs, &c.Department, &c.Courses)
	return c, err
}

// List returns curricula, newest year first.
func (r *CurriculumRepository) List(ctx context.Context, w *filter.Where) ([]model.Curriculum, error) {
	rows, err := r.db.Query(ctx, curriculumSelect+w.SQL()+` ORDER BY cu.year DESC, cu.name, cu.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	curricula := []model.Curriculum{}
	for rows.Next() {
		c, err := scanCurriculum(rows)
		if err != nil {
			return nil, err
		}
		curricula = append(curricula, c)
	}
	return curricula, rows.Err()
}

func (r *CurriculumRepository) GetByID(ctx context.Context, id int64) (*model.Curriculum, error) {
	c, err := scanCurriculum(r.db.QueryRow(ctx, curriculumSelect+` WHERE cu.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *CurriculumRepository) Create(ctx context.Context, in *model.CurriculumInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO curricula (name, description, year, department_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Name, in.Description, in.Year, in.DepartmentID,
	).Scan(&id)
	return id, mapError(err)
}

func (r *CurriculumRepository) Update(ctx context.Context, id int64, in *model.CurriculumInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE curricula SET name = $1, description = $2, year = $3, department_id = $4, updated_at = NOW()
		 WHERE id = $5`,
		in.Name, in.Description, in.Year, in.DepartmentID, id))
}

// SetCourses replaces the curriculum's course links.
func (r *CurriculumRepository) SetCourses(ctx context.Context, curriculumID int64, courseIDs []int64) error {
	return replaceLinks(ctx, r.db, "curriculum_courses", "curriculum_id", "course_id", curriculumID, courseIDs)
}

func (r *CurriculumRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM curricula WHERE id = $1`, id))
}
