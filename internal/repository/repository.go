package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx, so every repository can run
// inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner starts transactions. *pgxpool.Pool and pgx.Tx (savepoints) both
// implement it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ErrNotFound is returned when a row addressed by id or natural key does not
// exist. It wraps pgx.ErrNoRows.
var ErrNotFound = fmt.Errorf("record not found: %w", pgx.ErrNoRows)

// DuplicateError reports a unique constraint violation.
type DuplicateError struct {
	Field      string
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s (%s)", e.Field, e.Constraint)
}

// InvalidError reports a foreign key or check constraint violation.
type InvalidError struct {
	Field      string
	Constraint string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid value for %s (%s)", e.Field, e.Constraint)
}

// uniqueFields names the API field behind each unique constraint.
var uniqueFields = map[string]string{
	"courses_course_code_key":   "course_code",
	"teachers_email_key":        "email",
	"semesters_year_season_key": "season",
	"users_username_key":        "username",
	"institutes_name_key":       "name",
	"departments_name_key":      "name",
	"course_types_name_key":     "name",
}

var checkFields = map[string]string{
	"courses_course_code_format":        "course_code",
	"semesters_season_check":            "season",
	"study_subjects_subject_type_check": "subject_type",
}

// mapError translates driver errors into the package's error types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		field, ok := uniqueFields[pgErr.ConstraintName]
		if !ok {
			field = strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, pgErr.TableName+"_"), "_key")
		}
		return &DuplicateError{Field: field, Constraint: pgErr.ConstraintName}
	case "23503":
		field := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, pgErr.TableName+"_"), "_fkey")
		return &InvalidError{Field: field, Constraint: pgErr.ConstraintName}
	case "23514":
		field, ok := checkFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ColumnName
		}
		return &InvalidError{Field: field, Constraint: pgErr.ConstraintName}
	}
	return err
}

// affected turns a zero-row write into ErrNotFound.
func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether table has a row with the given id. table must be a
// trusted identifier.
func Exists(ctx context.Context, db DBTX, table string, id int64) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

// MissingIDs returns the ids that have no row in table, in input order.
func MissingIDs(ctx context.Context, db DBTX, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := db.Query(ctx, `SELECT id FROM `+table+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// replaceLinks rewrites the rows of a link table owned by ownerID.
func replaceLinks(ctx context.Context, db DBTX, table, ownerCol, memberCol string, ownerID int64, memberIDs []int64) error {
	if _, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE `+ownerCol+` = $1`, ownerID); err != nil {
		return mapError(err)
	}
	if len(memberIDs) == 0 {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO `+table+` (`+ownerCol+`, `+memberCol+`)
		 SELECT $1, m FROM unnest($2::bigint[]) AS m
		 ON CONFLICT DO NOTHING`,
		ownerID, memberIDs)
	return mapError(err)
}

// Count returns the number of rows in table. table must be a trusted
// identifier.
func Count(ctx context.Context, db DBTX, table string) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}
