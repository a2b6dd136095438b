package service

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type StudyProgramService struct {
	db   Store
	repo *repository.StudyProgramRepository
	log  zerolog.Logger
}

func NewStudyProgramService(db Store, repo *repository.StudyProgramRepository, log zerolog.Logger) *StudyProgramService {
	return &StudyProgramService{
		db:   db,
		repo: repo,
		log:  log.With().Str("component", "study_program_service").Logger(),
	}
}

func (s *StudyProgramService) List(ctx context.Context, q url.Values) ([]model.StudyProgram, error) {
	return s.repo.List(ctx, repository.StudyProgramFilters.Build(q))
}

func (s *StudyProgramService) Get(ctx context.Context, id int64) (*model.StudyProgram, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StudyProgramService) Create(ctx context.Context, in *model.StudyProgramInput) (*model.StudyProgram, error) {
	var id int64
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("department_id", "departments", in.DepartmentID)); err != nil {
			return err
		}
		var err error
		id, err = s.repo.WithTx(tx).Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("study_program_id", id).Str("name", in.Name).Msg("Study program created")
	return s.repo.GetByID(ctx, id)
}

func (s *StudyProgramService) Update(ctx context.Context, id int64, in *model.StudyProgramInput) (*model.StudyProgram, error) {
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("department_id", "departments", in.DepartmentID)); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Update(ctx, id, in)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *StudyProgramService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
