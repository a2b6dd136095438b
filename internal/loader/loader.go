package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/logger"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

// Store is the connection the loader opens its transactions on.
type Store interface {
	repository.DBTX
	repository.Beginner
}

// Summary reports what a load changed and the resulting table sizes.
type Summary struct {
	DepartmentsCreated int
	InstitutesCreated  int
	TeachersCreated    int
	CoursesCreated     int
	Failed             int

	Departments int64
	Institutes  int64
	Teachers    int64
	Courses     int64
}

// Loader imports a Document. Each record commits in its own transaction;
// a failing record is logged and skipped.
type Loader struct {
	db  Store
	log zerolog.Logger
}

func New(db Store, log zerolog.Logger) *Loader {
	return &Loader{db: db, log: logger.Component(log, "loader")}
}

// Clear deletes all courses, teachers, departments and institutes.
func (l *Loader) Clear(ctx context.Context) error {
	return pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		steps := []struct {
			table string
			del   func(context.Context) (int64, error)
		}{
			{"courses", repository.NewCourseRepository(tx).DeleteAll},
			{"teachers", repository.NewTeacherRepository(tx).DeleteAll},
			{"departments", repository.NewDepartmentRepository(tx).DeleteAll},
			{"institutes", repository.NewInstituteRepository(tx).DeleteAll},
		}
		for _, s := range steps {
			n, err := s.del(ctx)
			if err != nil {
				return fmt.Errorf("clear %s: %w", s.table, err)
			}
			l.log.Info().Str("table", s.table).Int64("deleted", n).Msg("Cleared")
		}
		return nil
	})
}

// Load imports doc in the order departments, institutes, teachers, courses.
func (l *Loader) Load(ctx context.Context, doc *Document) (*Summary, error) {
	sum := &Summary{}

	for _, name := range doc.Departments {
		created, err := l.record(ctx, func(s *session) (bool, error) {
			inst, _, err := s.institute(DefaultInstitute)
			if err != nil {
				return false, err
			}
			_, created, err := s.department(name, inst)
			return created, err
		})
		l.tally(sum, &sum.DepartmentsCreated, created, err, "department", name)
	}

	for _, name := range doc.Institutes {
		created, err := l.record(ctx, func(s *session) (bool, error) {
			_, created, err := s.institute(name)
			return created, err
		})
		l.tally(sum, &sum.InstitutesCreated, created, err, "institute", name)
	}

	for _, t := range doc.Teachers {
		created, err := l.record(ctx, func(s *session) (bool, error) {
			inst, _, err := s.institute(DefaultInstitute)
			if err != nil {
				return false, err
			}
			dept := orDefault(t.Department, DefaultDepartment)
			if _, _, err := s.department(dept, inst); err != nil {
				return false, err
			}
			_, created, err := s.teacher(t.Name, t.Email, dept)
			return created, err
		})
		l.tally(sum, &sum.TeachersCreated, created, err, "teacher", t.Name)
	}

	for _, rec := range doc.Courses {
		c, err := rec.normalize()
		if err != nil {
			l.tally(sum, nil, false, err, "course", rec.CourseCode)
			continue
		}
		created, err := l.record(ctx, func(s *session) (bool, error) {
			return s.course(c)
		})
		l.tally(sum, &sum.CoursesCreated, created, err, "course", c.code)
		if created && sum.CoursesCreated%10 == 0 {
			l.log.Info().Int("courses_created", sum.CoursesCreated).Msg("Loading courses")
		}
	}

	for _, c := range []struct {
		table string
		dst   *int64
	}{
		{"departments", &sum.Departments},
		{"institutes", &sum.Institutes},
		{"teachers", &sum.Teachers},
		{"courses", &sum.Courses},
	} {
		n, err := repository.Count(ctx, l.db, c.table)
		if err != nil {
			return sum, fmt.Errorf("count %s: %w", c.table, err)
		}
		*c.dst = n
	}
	return sum, nil
}

// record runs fn in its own transaction.
func (l *Loader) record(ctx context.Context, fn func(s *session) (bool, error)) (bool, error) {
	var created bool
	err := pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		var err error
		created, err = fn(&session{ctx: ctx, tx: tx})
		return err
	})
	return created, err
}

func (l *Loader) tally(sum *Summary, counter *int, created bool, err error, kind, key string) {
	switch {
	case err != nil:
		sum.Failed++
		l.log.Warn().Err(err).Str("kind", kind).Str("key", key).Msg("Skipping record")
	case created:
		if counter != nil {
			*counter++
		}
		l.log.Debug().Str("kind", kind).Str("key", key).Msg("Created")
	}
}

// session performs the get-or-create steps of one record inside tx.
type session struct {
	ctx context.Context
	tx  pgx.Tx
}

// getOrCreate reads a row by natural key and inserts it when absent. The
// insert runs in a savepoint; if a concurrent writer inserted the same key
// first, the savepoint is rolled back and that row is read instead.
func (s *session) getOrCreate(lookup, insert func(db repository.DBTX) (int64, error)) (int64, bool, error) {
	id, err := lookup(s.tx)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, false, err
	}

	err = pgx.BeginFunc(s.ctx, s.tx, func(sp pgx.Tx) error {
		var insertErr error
		id, insertErr = insert(sp)
		return insertErr
	})
	if err == nil {
		return id, true, nil
	}

	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return 0, false, err
	}
	id, err = lookup(s.tx)
	return id, false, err
}

func (s *session) institute(name string) (int64, bool, error) {
	return s.getOrCreate(
		func(db repository.DBTX) (int64, error) {
			i, err := repository.NewInstituteRepository(db).GetByName(s.ctx, name)
			if err != nil {
				return 0, err
			}
			return i.ID, nil
		},
		func(db repository.DBTX) (int64, error) {
			return repository.NewInstituteRepository(db).Create(s.ctx, &model.InstituteInput{
				Name:        name,
				Description: "Institute for " + name,
			})
		},
	)
}

// department creates missing departments under instituteID.
func (s *session) department(name string, instituteID int64) (int64, bool, error) {
	return s.getOrCreate(
		func(db repository.DBTX) (int64, error) {
			d, err := repository.NewDepartmentRepository(db).GetByName(s.ctx, name)
			if err != nil {
				return 0, err
			}
			return d.ID, nil
		},
		func(db repository.DBTX) (int64, error) {
			return repository.NewDepartmentRepository(db).Create(s.ctx, &model.DepartmentInput{
				Name:        name,
				InstituteID: instituteID,
			})
		},
	)
}

// teacher is keyed by name. A missing email gets a placeholder address.
func (s *session) teacher(name, email, subject string) (int64, bool, error) {
	if email == "" {
		email = PlaceholderEmail(name)
	}
	return s.getOrCreate(
		func(db repository.DBTX) (int64, error) {
			t, err := repository.NewTeacherRepository(db).GetByName(s.ctx, name)
			if err != nil {
				return 0, err
			}
			return t.ID, nil
		},
		func(db repository.DBTX) (int64, error) {
			return repository.NewTeacherRepository(db).Create(s.ctx, &model.TeacherInput{
				Name:    name,
				Email:   email,
				Subject: subject,
			})
		},
	)
}

func (s *session) courseType(name string) (int64, bool, error) {
	return s.getOrCreate(
		func(db repository.DBTX) (int64, error) {
			t, err := repository.NewCourseTypeRepository(db).GetByName(s.ctx, name)
			if err != nil {
				return 0, err
			}
			return t.ID, nil
		},
		func(db repository.DBTX) (int64, error) {
			return repository.NewCourseTypeRepository(db).Create(s.ctx, &model.CourseTypeInput{
				Name:        name,
				Description: name + " course",
			})
		},
	)
}

func (s *session) semester(year int32, season model.Season) (int64, bool, error) {
	return s.getOrCreate(
		func(db repository.DBTX) (int64, error) {
			sem, err := repository.NewSemesterRepository(db).GetByYearSeason(s.ctx, year, season)
			if err != nil {
				return 0, err
			}
			return sem.ID, nil
		},
		func(db repository.DBTX) (int64, error) {
			active := true
			return repository.NewSemesterRepository(db).Create(s.ctx, &model.SemesterInput{
				Name:     model.FormatSemester(year, season),
				Year:     year,
				Season:   season,
				IsActive: &active,
			})
		},
	)
}

// course resolves the record's references and then gets or creates the
// course by code. An existing course is left unchanged.
func (s *session) course(c course) (bool, error) {
	instID, _, err := s.institute(c.institute)
	if err != nil {
		return false, fmt.Errorf("institute: %w", err)
	}
	deptID, _, err := s.department(c.department, instID)
	if err != nil {
		return false, fmt.Errorf("department: %w", err)
	}
	teacherID, _, err := s.teacher(c.teacher, "", c.department)
	if err != nil {
		return false, fmt.Errorf("teacher: %w", err)
	}

	in := &model.CourseInput{
		Title:        c.title,
		CourseCode:   c.code,
		Description:  c.description,
		Year:         &c.year,
		Credits:      &c.credits,
		TeacherID:    &teacherID,
		InstituteID:  &instID,
		DepartmentID: &deptID,
	}
	if c.courseType != "" {
		typeID, _, err := s.courseType(c.courseType)
		if err != nil {
			return false, fmt.Errorf("course type: %w", err)
		}
		in.TypeID = &typeID
	}

	courseID, created, err := s.getOrCreate(
		func(db repository.DBTX) (int64, error) {
			existing, err := repository.NewCourseRepository(db).GetByCode(s.ctx, c.code)
			if err != nil {
				return 0, err
			}
			return existing.ID, nil
		},
		func(db repository.DBTX) (int64, error) {
			return repository.NewCourseRepository(db).Create(s.ctx, in)
		},
	)
	if err != nil || !created || c.semesterYear == 0 {
		return created, err
	}

	semID, _, err := s.semester(c.semesterYear, c.semesterSeason)
	if err != nil {
		return false, fmt.Errorf("semester: %w", err)
	}
	return true, repository.NewCourseRepository(s.tx).AddSemester(s.ctx, courseID, semID)
}
