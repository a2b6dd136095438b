package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type SemesterService struct {
	repo *repository.SemesterRepository
	log  zerolog.Logger
}

func NewSemesterService(repo *repository.SemesterRepository, log zerolog.Logger) *SemesterService {
	return &SemesterService{
		repo: repo,
		log:  log.With().Str("component", "semester_service").Logger(),
	}
}

func (s *SemesterService) List(ctx context.Context, q url.Values) ([]model.Semester, error) {
	return s.repo.List(ctx, repository.SemesterFilters.Build(q))
}

func (s *SemesterService) Get(ctx context.Context, id int64) (*model.Semester, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SemesterService) Create(ctx context.Context, in *model.SemesterInput) (*model.Semester, error) {
	if err := prepareSemester(in); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("semester_id", id).Str("semester", model.FormatSemester(in.Year, in.Season)).Msg("Semester created")
	return s.repo.GetByID(ctx, id)
}

func (s *SemesterService) Update(ctx context.Context, id int64, in *model.SemesterInput) (*model.Semester, error) {
	if err := prepareSemester(in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *SemesterService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// prepareSemester applies defaults and checks the date range.
func prepareSemester(in *model.SemesterInput) error {
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	if in.StartDate.Valid && in.EndDate.Valid && in.EndDate.Time.Before(in.StartDate.Time) {
		return invalid("end_date", "End date must not be before start date.")
	}
	return nil
}
