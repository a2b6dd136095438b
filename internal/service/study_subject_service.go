package service

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type StudySubjectService struct {
	db   Store
	repo *repository.StudySubjectRepository
	log  zerolog.Logger
}

func NewStudySubjectService(db Store, repo *repository.StudySubjectRepository, log zerolog.Logger) *StudySubjectService {
	return &StudySubjectService{
		db:   db,
		repo: repo,
		log:  log.With().Str("component", "study_subject_service").Logger(),
	}
}

func (s *StudySubjectService) List(ctx context.Context, q url.Values) ([]model.StudySubject, error) {
	return s.repo.List(ctx, repository.StudySubjectFilters.Build(q))
}

func (s *StudySubjectService) Get(ctx context.Context, id int64) (*model.StudySubject, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StudySubjectService) Create(ctx context.Context, in *model.StudySubjectInput) (*model.StudySubject, error) {
	if in.SubjectType == "" {
		in.SubjectType = model.SubjectTypeLecture
	}
	var id int64
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("curriculum_subject_id", "curriculum_subjects", in.CurriculumSubjectID)); err != nil {
			return err
		}
		var err error
		id, err = s.repo.WithTx(tx).Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("study_subject_id", id).Str("name", in.Name).Msg("Study subject created")
	return s.repo.GetByID(ctx, id)
}

func (s *StudySubjectService) Update(ctx context.Context, id int64, in *model.StudySubjectInput) (*model.StudySubject, error) {
	if in.SubjectType == "" {
		in.SubjectType = model.SubjectTypeLecture
	}
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("curriculum_subject_id", "curriculum_subjects", in.CurriculumSubjectID)); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Update(ctx, id, in)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *StudySubjectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
