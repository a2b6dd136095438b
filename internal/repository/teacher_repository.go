package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/filter"
	"github.com/uniak/teaching-backend/internal/model"
)

// TeacherFilters are the list parameters for teachers.
var TeacherFilters = filter.Set{
	{Name: "subject", Field: filter.Search("t.subject")},
	{Name: "search", Field: filter.Search("t.name")},
}

const teacherColumns = `t.id, t.name, t.email, t.subject, t.created_at, t.updated_at`

// TeacherRepository handles teacher data access.
type TeacherRepository struct {
	db DBTX
}

func NewTeacherRepository(db DBTX) *TeacherRepository {
	return &TeacherRepository{db: db}
}

func (r *TeacherRepository) WithTx(tx pgx.Tx) *TeacherRepository {
	return &TeacherRepository{db: tx}
}

func scanTeacher(row pgx.Row) (model.Teacher, error) {
	var t model.Teacher
	err := row.Scan(&t.ID, &t.Name, &t.Email, &t.Subject, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *TeacherRepository) List(ctx context.Context, w *filter.Where) ([]model.Teacher, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+teacherColumns+` FROM teachers t`+w.SQL()+` ORDER BY t.name, t.id`,
		w.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	t, err := scanTeacher(r.db.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers t WHERE t.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

// GetByName returns the oldest teacher with the given name. Names are not
// unique; the bulk loader keys on them anyway.
func (r *TeacherRepository) GetByName(ctx context.Context, name string) (*model.Teacher, error) {
	t, err := scanTeacher(r.db.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers t WHERE t.name = $1 ORDER BY t.id LIMIT 1`, name))
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	t, err := scanTeacher(r.db.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers t WHERE t.email = $1`, email))
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *TeacherRepository) Create(ctx context.Context, in *model.TeacherInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO teachers (name, email, subject) VALUES ($1, $2, $3) RETURNING id`,
		in.Name, in.Email, in.Subject,
	).Scan(&id)
	return id, mapError(err)
}

func (r *TeacherRepository) Update(ctx context.Context, id int64, in *model.TeacherInput) error {
	return affected(r.db.Exec(ctx,
		`UPDATE teachers SET name = $1, email = $2, subject = $3, updated_at = NOW() WHERE id = $4`,
		in.Name, in.Email, in.Subject, id))
}

func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id))
}

func (r *TeacherRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM teachers`)
	return tag.RowsAffected(), err
}
