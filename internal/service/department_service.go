package service

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type DepartmentService struct {
	db   Store
	repo *repository.DepartmentRepository
	log  zerolog.Logger
}

func NewDepartmentService(db Store, repo *repository.DepartmentRepository, log zerolog.Logger) *DepartmentService {
	return &DepartmentService{
		db:   db,
		repo: repo,
		log:  log.With().Str("component", "department_service").Logger(),
	}
}

func (s *DepartmentService) List(ctx context.Context, q url.Values) ([]model.Department, error) {
	return s.repo.List(ctx, repository.DepartmentFilters.Build(q))
}

func (s *DepartmentService) Get(ctx context.Context, id int64) (*model.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, in *model.DepartmentInput) (*model.Department, error) {
	var id int64
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("institute_id", "institutes", in.InstituteID)); err != nil {
			return err
		}
		var err error
		id, err = s.repo.WithTx(tx).Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("department_id", id).Str("name", in.Name).Msg("Department created")
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Update(ctx context.Context, id int64, in *model.DepartmentInput) (*model.Department, error) {
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := checkRefs(ctx, tx, requiredRef("institute_id", "institutes", in.InstituteID)); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Update(ctx, id, in)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes the department. Study programs, curricula and courses
// referencing it cascade.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
