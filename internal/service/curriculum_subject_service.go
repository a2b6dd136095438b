package service

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type CurriculumSubjectService struct {
	db   Store
	repo *repository.CurriculumSubjectRepository
	log  zerolog.Logger
}

func NewCurriculumSubjectService(db Store, repo *repository.CurriculumSubjectRepository, log zerolog.Logger) *CurriculumSubjectService {
	return &CurriculumSubjectService{
		db:   db,
		repo: repo,
		log:  log.With().Str("component", "curriculum_subject_service").Logger(),
	}
}

func (s *CurriculumSubjectService) List(ctx context.Context, q url.Values) ([]model.CurriculumSubject, error) {
	return s.repo.List(ctx, repository.CurriculumSubjectFilters.Build(q))
}

func (s *CurriculumSubjectService) Get(ctx context.Context, id int64) (*model.CurriculumSubject, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CurriculumSubjectService) Create(ctx context.Context, in *model.CurriculumSubjectInput) (*model.CurriculumSubject, error) {
	defaultMandatory(in)
	var id int64
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("study_program_id", "study_programs", in.StudyProgramID)); err != nil {
			return err
		}
		var err error
		id, err = s.repo.WithTx(tx).Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("curriculum_subject_id", id).Str("name", in.Name).Msg("Curriculum subject created")
	return s.repo.GetByID(ctx, id)
}

func (s *CurriculumSubjectService) Update(ctx context.Context, id int64, in *model.CurriculumSubjectInput) (*model.CurriculumSubject, error) {
	defaultMandatory(in)
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("study_program_id", "study_programs", in.StudyProgramID)); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Update(ctx, id, in)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CurriculumSubjectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func defaultMandatory(in *model.CurriculumSubjectInput) {
	if in.IsMandatory == nil {
		mandatory := true
		in.IsMandatory = &mandatory
	}
}
