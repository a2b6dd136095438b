package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// SemesterFilters are the list parameters for semesters.
var SemesterFilters = filter.Set{
	{Name: "year", Field: filter.Int("s.year")},
	{Name: "season", Field: filter.Choice("s.season", string(model.SeasonWinter), string(model.SeasonSummer))},
	{Name: "is_active", Field: filter.Bool("s.is_active")},
}

const semesterColumns = `s.id, s.name, s.year, s.season, s.start_date, s.end_date, s.is_active, s.created_at, s.updated_at`

// SemesterRepository handles semester data access.
type SemesterRepository struct {
	db DBTX
}

func NewSemesterRepository(db DBTX) *SemesterRepository {
	return &SemesterRepository{db: db}
}

func (r *SemesterRepository) WithTx(tx pgx.Tx) *SemesterRepository {
	return &SemesterRepository{db: tx}
}

func scanSemester(row pgx.Row) (model.Semester, error) {
	var s model.Semester
	err := row.Scan(&s.ID, &s.Name, &s.Year, &s.Season, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List returns semesters, most recent first.
func (r *SemesterRepository) List(ctx context.Context, w *filter.Where) ([]model.Semester, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+semesterColumns+` FROM semesters s`+w.SQL()+` ORDER BY s.year DESC, s.season DESC, s.id`,
		w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	semesters := []model.Semester{}
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}

func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*model.Semester, error) {
	s, err := scanSemester(r.db.QueryRow(ctx, `SELECT `+semesterColumns+` FROM semesters s WHERE s.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// GetByYearSeason looks up a semester by its natural key.
func (r *SemesterRepository) GetByYearSeason(ctx context.Context, year int32, season model.Season) (*model.Semester, error) {
	s, err := scanSemester(r.db.QueryRow(ctx,
		`SELECT `+semesterColumns+` FROM semesters s WHERE s.year = $1 AND s.season = $2`, year, season))
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

// Create inserts a semester. in.IsActive must be set.
func (r *SemesterRepository) Create(ctx context.Context, in *model.SemesterInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO semesters (name, year, season, start_date, end_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.Name, in.Year, in.Season, in.StartDate, in.EndDate, *in.IsActive,
	).Scan(&id)
	return id, mapError(err)
}

func (r *SemesterRepository) Update(ctx context.Context, id int64, in *model.SemesterInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE semesters
		 SET name = $1, year = $2, season = $3, start_date = $4, end_date = $5, is_active = $6, updated_at = NOW()
		 WHERE id = $7`,
		in.Name, in.Year, in.Season, in.StartDate, in.EndDate, *in.IsActive, id))
}

func (r *SemesterRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id))
}
