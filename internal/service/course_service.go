package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

// CourseService manages courses and their semester links.
type CourseService struct {
	db   Store
	repo *repository.CourseRepository
	log  zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(db Store, repo *repository.CourseRepository, log zerolog.Logger) *CourseService {
	return &CourseService{
		db:   db,
		repo: repo,
		log:  log.With().Str("component", "course_service").Logger(),
	}
}

// List returns courses matching the recognized query parameters.
func (s *CourseService) List(ctx context.Context, q url.Values) ([]model.Course, error) {
	return s.repo.List(ctx, repository.CourseFilters.Build(q))
}

// Get returns one course with its relations expanded.
func (s *CourseService) Get(ctx context.Context, id int64) (*model.Course, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a course and its semester links in one
// transaction.
func (s *CourseService) Create(ctx context.Context, in *model.CourseInput) (*model.Course, error) {
	if err := validateCourse(in); err != nil {
		return nil, err
	}

	var id int64
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkCourseRefs(ctx, tx, in); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		var err error
		if id, err = repo.Create(ctx, in); err != nil {
			return err
		}
		return repo.SetSemesters(ctx, id, in.SemesterIDs)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("course_id", id).Str("course_code", in.CourseCode).Msg("Course created")
	return s.repo.GetByID(ctx, id)
}

// Update overwrites a course and replaces its semester links.
func (s *CourseService) Update(ctx context.Context, id int64, in *model.CourseInput) (*model.Course, error) {
	if err := validateCourse(in); err != nil {
		return nil, err
	}

	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkCourseRefs(ctx, tx, in); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, id, in); err != nil {
			return err
		}
		return repo.SetSemesters(ctx, id, in.SemesterIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}

// validateCourse runs the checks that need no database access.
func validateCourse(in *model.CourseInput) error {
	fields := map[string]string{}
	if err := model.ValidateCourseCode(in.CourseCode); err != nil {
		fields["course_code"] = err.Error()
	}
	if in.Credits != nil && *in.Credits < 0 {
		fields["credits"] = "Ensure this value is greater than or equal to 0."
	}
	if in.StartDate.Valid && in.EndDate.Valid && in.EndDate.Time.Before(in.StartDate.Time) {
		fields["end_date"] = "End date must not be before start date."
	}
	for _, id := range in.SemesterIDs {
		if id <= 0 {
			fields["semester_ids"] = fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(id))
			break
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	in.SemesterIDs = dedupe(in.SemesterIDs)
	return nil
}

func checkCourseRefs(ctx context.Context, db repository.DBTX, in *model.CourseInput) error {
	err := checkRefs(ctx, db,
		ref{"type_id", "course_types", in.TypeID},
		ref{"teacher_id", "teachers", in.TeacherID},
		ref{"institute_id", "institutes", in.InstituteID},
		ref{"department_id", "departments", in.DepartmentID},
		ref{"study_program_id", "study_programs", in.StudyProgramID},
		ref{"curriculum_subject_id", "curriculum_subjects", in.CurriculumSubjectID},
		ref{"study_subject_id", "study_subjects", in.StudySubjectID},
	)
	if err != nil {
		return err
	}
	return checkLinks(ctx, db, "semester_ids", "semesters", in.SemesterIDs)
}
