package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// UserFilters are the list parameters for the admin user listing.
var UserFilters = filter.Set{
	{Name: "is_staff", Field: filter.Bool("u.is_staff")},
	{Name: "is_active", Field: filter.Bool("u.is_active")},
	{Name: "search", Field: filter.Search("u.username", "u.email")},
}

const userColumns = `u.id, u.username, u.email, u.password_hash, u.is_staff, u.is_superuser, u.is_active,
	u.date_joined, u.updated_at`

// UserRepository handles user data access.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff, &u.IsSuperuser, &u.IsActive,
		&u.DateJoined, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) List(ctx context.Context, w *filter.Where) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users u`+w.SQL()+` ORDER BY u.username, u.id`, w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.username = $1`, username))
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// Create inserts a user whose password is already hashed.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, is_staff, is_superuser, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, date_joined, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.IsStaff, u.IsSuperuser, u.IsActive,
	).Scan(&u.ID, &u.DateJoined, &u.UpdatedAt)
	return mapError(err)
}

// Update modifies a user's profile and flags, excluding the password.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	return affected(r.db.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, is_staff = $3, is_superuser = $4, is_active = $5,
		 updated_at = NOW()
		 WHERE id = $6`,
		u.Username, u.Email, u.IsStaff, u.IsSuperuser, u.IsActive, u.ID))
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return affected(r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id))
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}
