package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// StudySubjectFilters are the list parameters for study subjects.
var StudySubjectFilters = filter.Set{
	{Name: "curriculum_subject", Field: filter.IDs("ss.curriculum_subject_id")},
	{Name: "subject_type", Field: filter.Choice("ss.subject_type",
		string(model.SubjectTypeLecture),
		string(model.SubjectTypeSeminar),
		string(model.SubjectTypeWorkshop),
		string(model.SubjectTypePractical),
		string(model.SubjectTypeProject),
		string(model.SubjectTypeThesis),
	)},
}

const studySubjectSelect = `
	SELECT ss.id, ss.name, ss.description, ss.curriculum_subject_id, ss.credits, ss.hours_per_week,
	       ss.subject_type, ss.created_at, ss.updated_at, to_jsonb(cs)
	FROM study_subjects ss
	LEFT JOIN curriculum_subjects cs ON cs.id = ss.curriculum_subject_id`

// StudySubjectRepository handles study subject data access.
type StudySubjectRepository struct {
	db DBTX
}

func NewStudySubjectRepository(db DBTX) *StudySubjectRepository {
	return &StudySubjectRepository{db: db}
}

func (r *StudySubjectRepository) WithTx(tx pgx.Tx) *StudySubjectRepository {
	return &StudySubjectRepository{db: tx}
}

func scanStudySubject(row pgx.Row) (model.StudySubject, error) {
	var s model.StudySubject
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CurriculumSubjectID, &s.Credits, &s.HoursPerWeek,
		&s.SubjectType, &s.CreatedAt, &s.UpdatedAt, &s.CurriculumSubject)
	return s, err
}

func (r *StudySubjectRepository) List(ctx context.Context, w *filter.Where) ([]model.StudySubject, error) {
	rows, err := r.db.Query(ctx, studySubjectSelect+w.SQL()+` ORDER BY ss.name, ss.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.StudySubject{}
	for rows.Next() {
		s, err := scanStudySubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *StudySubjectRepository) GetByID(ctx context.Context, id int64) (*model.StudySubject, error) {
	s, err := scanStudySubject(r.db.QueryRow(ctx, studySubjectSelect+` WHERE ss.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *StudySubjectRepository) Create(ctx context.Context, in *model.StudySubjectInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO study_subjects (name, description, curriculum_subject_id, credits, hours_per_week, subject_type)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.Name, in.Description, in.CurriculumSubjectID, in.Credits, in.HoursPerWeek, in.SubjectType,
	).Scan(&id)
	return id, mapError(err)
}

func (r *StudySubjectRepository) Update(ctx context.Context, id int64, in *model.StudySubjectInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE study_subjects
		 SET name = $1, description = $2, curriculum_subject_id = $3, credits = $4, hours_per_week = $5,
		     subject_type = $6, updated_at = NOW()
		 WHERE id = $7`,
		in.Name, in.Description, in.CurriculumSubjectID, in.Credits, in.HoursPerWeek, in.SubjectType, id))
}

func (r *StudySubjectRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM study_subjects WHERE id = $1`, id))
}
