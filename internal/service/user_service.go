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

// PasswordHasher hashes plaintext passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// UserService backs the admin user management endpoints.
type UserService struct {
	db     Store
	repo   *repository.UserRepository
	hasher PasswordHasher
	log    zerolog.Logger
}

func NewUserService(db Store, repo *repository.UserRepository, hasher PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		repo:   repo,
		hasher: hasher,
		log:    log.With().Str("component", "user_service").Logger(),
	}
}

func (s *UserService) List(ctx context.Context, q url.Values) ([]model.User, error) {
	return s.repo.List(ctx, repository.UserFilters.Build(q))
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a user. A password is required.
func (s *UserService) Create(ctx context.Context, in *model.UserInput) (*model.User, error) {
	if in.Password == "" {
		return nil, invalid("password", "This field is required.")
	}
	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsStaff:      in.IsStaff,
		IsSuperuser:  in.IsSuperuser,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", u.ID).Str("username", u.Username).Bool("is_staff", u.IsStaff).Msg("User created")
	return u, nil
}

// Update changes a user's profile and flags; a non-empty password is
// re-hashed in the same transaction.
func (s *UserService) Update(ctx context.Context, id int64, in *model.UserInput) (*model.User, error) {
	var hash string
	if in.Password != "" {
		var err error
		if hash, err = s.hasher.HashPassword(in.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	u := &model.User{
		ID:          id,
		Username:    in.Username,
		Email:       in.Email,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.IsSuperuser,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, u); err != nil {
			return err
		}
		if hash != "" {
			return repo.UpdatePassword(ctx, id, hash)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("User deleted")
	return nil
}
