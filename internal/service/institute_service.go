package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

// InstituteService manages institutes.
type InstituteService struct {
	repo *repository.InstituteRepository
	log  zerolog.Logger
}

func NewInstituteService(repo *repository.InstituteRepository, log zerolog.Logger) *InstituteService {
	return &InstituteService{
		repo: repo,
		log:  log.With().Str("component", "institute_service").Logger(),
	}
}

func (s *InstituteService) List(ctx context.Context, q url.Values) ([]model.Institute, error) {
	return s.repo.List(ctx, repository.InstituteFilters.Build(q))
}

func (s *InstituteService) Get(ctx context.Context, id int64) (*model.Institute, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InstituteService) Create(ctx context.Context, in *model.InstituteInput) (*model.Institute, error) {
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("institute_id", id).Str("name", in.Name).Msg("Institute created")
	return s.repo.GetByID(ctx, id)
}

func (s *InstituteService) Update(ctx context.Context, id int64, in *model.InstituteInput) (*model.Institute, error) {
	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the institute together with its departments and
// everything that hangs off them.
func (s *InstituteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("institute_id", id).Msg("Institute deleted")
	return nil
}
