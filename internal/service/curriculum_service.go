package service

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

// CurriculumService manages curricula and their course links.
type CurriculumService struct {
	db   Store
	repo *repository.CurriculumRepository
	log  zerolog.Logger
}

func NewCurriculumService(db Store, repo *repository.CurriculumRepository, log zerolog.Logger) *CurriculumService {
	return &CurriculumService{
		db:   db,
		repo: repo,
		log:  log.With().Str("component", "curriculum_service").Logger(),
	}
}

func (s *CurriculumService) List(ctx context.Context, q url.Values) ([]model.Curriculum, error) {
	return s.repo.List(ctx, repository.CurriculumFilters.Build(q))
}

func (s *CurriculumService) Get(ctx context.Context, id int64) (*model.Curriculum, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CurriculumService) Create(ctx context.Context, in *model.CurriculumInput) (*model.Curriculum, error) {
	in.CourseIDs = dedupe(in.CourseIDs)
	var id int64
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.checkRefs(ctx, tx, in); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		var err error
		if id, err = repo.Create(ctx, in); err != nil {
			return err
		}
		return repo.SetCourses(ctx, id, in.CourseIDs)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("curriculum_id", id).Int("courses", len(in.CourseIDs)).Msg("Curriculum created")
	return s.repo.GetByID(ctx, id)
}

func (s *CurriculumService) Update(ctx context.Context, id int64, in *model.CurriculumInput) (*model.Curriculum, error) {
	in.CourseIDs = dedupe(in.CourseIDs)
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.checkRefs(ctx, tx, in); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, id, in); err != nil {
			return err
		}
		return repo.SetCourses(ctx, id, in.CourseIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CurriculumService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CurriculumService) checkRefs(ctx context.Context, db repository.DBTX, in *model.CurriculumInput) error {
	if err := checkRefs(ctx, db, requiredRef("department_id", "departments", in.DepartmentID)); err != nil {
		return err
	}
	return checkLinks(ctx, db, "course_ids", "courses", in.CourseIDs)
}
