package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// CurriculumSubjectFilters are the list parameters for curriculum subjects.
var CurriculumSubjectFilters = filter.Set{
	{Name: "study_program", Field: filter.IDs("cs.study_program_id")},
	{Name: "semester_number", Field: filter.Int("cs.semester_number")},
	{Name: "is_mandatory", Field: filter.Bool("cs.is_mandatory")},
}

const curriculumSubjectSelect = `
	SELECT cs.id, cs.name, cs.description, cs.study_program_id, cs.credits, cs.semester_number,
	       cs.is_mandatory, cs.created_at, cs.updated_at, to_jsonb(sp)
	FROM curriculum_subjects cs
	LEFT JOIN study_programs sp ON sp.id = cs.study_program_id`

// CurriculumSubjectRepository handles curriculum subject data access.
type CurriculumSubjectRepository struct {
	db DBTX
}

func NewCurriculumSubjectRepository(db DBTX) *CurriculumSubjectRepository {
	return &CurriculumSubjectRepository{db: db}
}

func (r *CurriculumSubjectRepository) WithTx(tx pgx.Tx) *CurriculumSubjectRepository {
	return &CurriculumSubjectRepository{db: tx}
}

func scanCurriculumSubject(row pgx.Row) (model.CurriculumSubject, error) {
	var s model.CurriculumSubject
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.StudyProgramID, &s.Credits, &s.SemesterNumber,
		&s.IsMandatory, &s.CreatedAt, &s.UpdatedAt, &s.StudyProgram)
	return s, err
}

func (r *CurriculumSubjectRepository) List(ctx context.Context, w *filter.Where) ([]model.CurriculumSubject, error) {
	rows, err := r.db.Query(ctx, curriculumSubjectSelect+w.SQL()+` ORDER BY cs.name, cs.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.CurriculumSubject{}
	for rows.Next() {
		s, err := scanCurriculumSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *CurriculumSubjectRepository) GetByID(ctx context.Context, id int64) (*model.CurriculumSubject, error) {
	s, err := scanCurriculumSubject(r.db.QueryRow(ctx, curriculumSubjectSelect+` WHERE cs.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// Create inserts a curriculum subject. in.IsMandatory must be set.
func (r *CurriculumSubjectRepository) Create(ctx context.Context, in *model.CurriculumSubjectInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO curriculum_subjects (name, description, study_program_id, credits, semester_number, is_mandatory)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.Name, in.Description, in.StudyProgramID, in.Credits, in.SemesterNumber, *in.IsMandatory,
	).Scan(&id)
	return id, mapError(err)
}

func (r *CurriculumSubjectRepository) Update(ctx context.Context, id int64, in *model.CurriculumSubjectInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE curriculum_subjects
		 SET name = $1, description = $2, study_program_id = $3, credits = $4, semester_number = $5,
		     is_mandatory = $6, updated_at = NOW()
		 WHERE id = $7`,
		in.Name, in.Description, in.StudyProgramID, in.Credits, in.SemesterNumber, *in.IsMandatory, id))
}

func (r *CurriculumSubjectRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM curriculum_subjects WHERE id = $1`, id))
}
