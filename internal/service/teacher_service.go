package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type TeacherService struct {
	repo *repository.TeacherRepository
	log  zerolog.Logger
}

func NewTeacherService(repo *repository.TeacherRepository, log zerolog.Logger) *TeacherService {
	return &TeacherService{
		repo: repo,
		log:  log.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *TeacherService) List(ctx context.Context, q url.Values) ([]model.Teacher, error) {
	return s.repo.List(ctx, repository.TeacherFilters.Build(q))
}

func (s *TeacherService) Get(ctx context.Context, id int64) (*model.Teacher, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TeacherService) Create(ctx context.Context, in *model.TeacherInput) (*model.Teacher, error) {
	in.Email = strings.TrimSpace(in.Email)
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("teacher_id", id).Str("email", in.Email).Msg("Teacher created")
	return s.repo.GetByID(ctx, id)
}

func (s *TeacherService) Update(ctx context.Context, id int64, in *model.TeacherInput) (*model.Teacher, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the teacher and, through the cascade, their courses.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
