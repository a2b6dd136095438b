package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type CourseTypeService struct {
	repo *repository.CourseTypeRepository
	log  zerolog.Logger
}

func NewCourseTypeService(repo *repository.CourseTypeRepository, log zerolog.Logger) *CourseTypeService {
	return &CourseTypeService{
		repo: repo,
		log:  log.With().Str("component", "course_type_service").Logger(),
	}
}

func (s *CourseTypeService) List(ctx context.Context, q url.Values) ([]model.CourseType, error) {
	return s.repo.List(ctx, repository.CourseTypeFilters.Build(q))
}

func (s *CourseTypeService) Get(ctx context.Context, id int64) (*model.CourseType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CourseTypeService) Create(ctx context.Context, in *model.CourseTypeInput) (*model.CourseType, error) {
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("course_type_id", id).Str("name", in.Name).Msg("Course type created")
	return s.repo.GetByID(ctx, id)
}

func (s *CourseTypeService) Update(ctx context.Context, id int64, in *model.CourseTypeInput) (*model.CourseType, error) {
	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CourseTypeService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
