package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// CourseFilters are the list parameters for courses. Semester membership
// goes through EXISTS so a course linked to several matching semesters is
// returned once.
var CourseFilters = filter.Set{
	{Name: "gender_diversity", Field: filter.Bool("c.gender_diversity")},
	{Name: "semester_format", Field: filter.Related(`EXISTS (
		SELECT 1 FROM course_semesters lk JOIN semesters s ON s.id = lk.semester_id
		WHERE lk.course_id = c.id AND (s.name = %[1]s OR s.year::text || s.season = %[1]s))`)},
	{Name: "teacher", Field: filter.IDs("c.teacher_id")},
	{Name: "type", Field: filter.IDs("c.type_id")},
	{Name: "institute", Field: filter.IDs("c.institute_id")},
	{Name: "department", Field: filter.IDs("c.department_id")},
	{Name: "study_program", Field: filter.IDs("c.study_program_id")},
	{Name: "semester", Field: filter.RelatedIDs(`EXISTS (
		SELECT 1 FROM course_semesters lk WHERE lk.course_id = c.id AND lk.semester_id = ANY(%s))`)},
	{Name: "year", Field: filter.Int("c.year")},
	{Name: "search", Field: filter.Search("c.title")},
}

const courseSelect = `
	SELECT c.id, c.title, c.course_code, c.description, c.type_id, c.year, c.start_date, c.end_date,
	       c.teacher_id, c.credits, c.gender_diversity, c.institute_id, c.department_id,
	       c.study_program_id, c.curriculum_subject_id, c.study_subject_id, c.created_at, c.updated_at,
	       COALESCE((SELECT array_agg(lk.semester_id ORDER BY lk.semester_id)
	                 FROM course_semesters lk WHERE lk.course_id = c.id), '{}') AS semester_ids,
	       to_jsonb(ct), to_jsonb(t), to_jsonb(i), to_jsonb(d), to_jsonb(sp), to_jsonb(cs), to_jsonb(ss),
	       COALESCE((SELECT jsonb_agg(to_jsonb(s) ORDER BY s.year DESC, s.season DESC)
	                 FROM course_semesters lk JOIN semesters s ON s.id = lk.semester_id
	                 WHERE lk.course_id = c.id), '[]'::jsonb) AS semesters
	FROM courses c
	LEFT JOIN course_types ct ON ct.id = c.type_id
	LEFT JOIN teachers t ON t.id = c.teacher_id
	LEFT JOIN institutes i ON i.id = c.institute_id
	LEFT JOIN departments d ON d.id = c.department_id
	LEFT JOIN study_programs sp ON sp.id = c.study_program_id
	LEFT JOIN curriculum_subjects cs ON cs.id = c.curriculum_subject_id
	LEFT JOIN study_subjects ss ON ss.id = c.study_subject_id`

// CourseRepository handles course data access.
type CourseRepository struct {
	db DBTX
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *CourseRepository) WithTx(tx pgx.Tx) *CourseRepository {
	return &CourseRepository{db: tx}
}

func scanCourse(row pgx.Row) (model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID, &c.Title, &c.CourseCode, &c.Description, &c.TypeID, &c.Year, &c.StartDate, &c.EndDate,
		&c.TeacherID, &c.Credits, &c.GenderDiversity, &c.InstituteID, &c.DepartmentID,
		&c.StudyProgramID, &c.CurriculumSubjectID, &c.StudySubjectID, &c.CreatedAt, &c.UpdatedAt,
		&c.SemesterIDs,
		&c.Type, &c.Teacher, &c.Institute, &c.Department, &c.StudyProgram, &c.CurriculumSubject, &c.StudySubject,
		&c.Semesters,
	)
	return c, err
}

// List returns courses matching w ordered by course code, then title.
func (r *CourseRepository) List(ctx context.Context, w *filter.Where) ([]model.Course, error) {
	rows, err := r.db.Query(ctx, courseSelect+w.SQL()+` ORDER BY c.course_code, c.title, c.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course with its relations expanded.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, courseSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// GetByCode retrieves a course by its unique course code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, courseSelect+` WHERE c.course_code = $1`, code))
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// Create inserts the course row. Semester links are written separately.
func (r *CourseRepository) Create(ctx context.Context, in *model.CourseInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO courses (title, course_code, description, type_id, year, start_date, end_date,
		                      teacher_id, credits, gender_diversity, institute_id, department_id,
		                      study_program_id, curriculum_subject_id, study_subject_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		in.Title, in.CourseCode, in.Description, in.TypeID, in.Year, in.StartDate, in.EndDate,
		in.TeacherID, in.Credits, in.GenderDiversity, in.InstituteID, in.DepartmentID,
		in.StudyProgramID, in.CurriculumSubjectID, in.StudySubjectID,
	).Scan(&id)
	return id, mapError(err)
}

// Update overwrites the course row.
func (r *CourseRepository) Update(ctx context.Context, id int64, in *model.CourseInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE courses
		 SET title = $1, course_code = $2, description = $3, type_id = $4, year = $5, start_date = $6,
		     end_date = $7, teacher_id = $8, credits = $9, gender_diversity = $10, institute_id = $11,
		     department_id = $12, study_program_id = $13, curriculum_subject_id = $14,
		     study_subject_id = $15, updated_at = NOW()
		 WHERE id = $16`,
		in.Title, in.CourseCode, in.Description, in.TypeID, in.Year, in.StartDate, in.EndDate,
		in.TeacherID, in.Credits, in.GenderDiversity, in.InstituteID, in.DepartmentID,
		in.StudyProgramID, in.CurriculumSubjectID, in.StudySubjectID, id))
}

// SetSemesters replaces the course's semester links.
func (r *CourseRepository) SetSemesters(ctx context.Context, courseID int64, semesterIDs []int64) error {
	return replaceLinks(ctx, r.db, "course_semesters", "course_id", "semester_id", courseID, semesterIDs)
}

// AddSemester links a semester to a course if not already linked.
func (r *CourseRepository) AddSemester(ctx context.Context, courseID, semesterID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO course_semesters (course_id, semester_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		courseID, semesterID)
	return mapError(err)
}

// Delete removes a course and its links.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id))
}

// DeleteAll removes every course and returns the number removed.
func (r *CourseRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses`)
	return tag.RowsAffected(), err
}
