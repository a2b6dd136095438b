package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
)

type seedDepartment struct{ name, institute string }

type seedProgram struct {
	name, description, department string
	year                          int32
}

// Reference data for the list filters.
var (
	seedCourseTypes = []model.CourseTypeInput{
		{Name: "Seminar", Description: "Interactive seminar course"},
		{Name: "Vorlesung", Description: "Traditional lecture course"},
		{Name: "Workshop", Description: "Hands-on workshop course"},
		{Name: "Studio", Description: "Creative studio course"},
		{Name: "Praktikum", Description: "Practical internship course"},
		{Name: "Übung", Description: "Exercise course"},
	}

	seedInstitutes = []model.InstituteInput{
		{Name: "Institute of Fine Arts", Description: "Fine arts and visual arts institute"},
		{Name: "Institute of Design", Description: "Design and applied arts institute"},
		{Name: "Institute of Media Arts", Description: "Digital and new media arts institute"},
		{Name: "Institute of Applied Arts", Description: "Applied arts and crafts institute"},
		{Name: "Institute of Art Sciences", Description: "Art theory and history institute"},
	}

	seedDepartments = []seedDepartment{
		{"Painting", "Institute of Fine Arts"},
		{"Sculpture", "Institute of Fine Arts"},
		{"Graphics", "Institute of Design"},
		{"Industrial Design", "Institute of Design"},
		{"Digital Art", "Institute of Media Arts"},
		{"Photography", "Institute of Media Arts"},
		{"Textile Design", "Institute of Applied Arts"},
		{"Ceramics", "Institute of Applied Arts"},
		{"Art History", "Institute of Art Sciences"},
		{"Art Theory", "Institute of Art Sciences"},
	}

	seedPrograms = []seedProgram{
		{"Bachelor Fine Arts", "Bachelor degree in fine arts", "Painting", 2024},
		{"Master Fine Arts", "Master degree in fine arts", "Painting", 2024},
		{"Bachelor Design", "Bachelor degree in design", "Graphics", 2024},
		{"Master Design", "Master degree in design", "Graphics", 2024},
		{"Digital Arts Program", "Specialized program in digital arts", "Digital Art", 2024},
		{"Photography Studies", "Comprehensive photography program", "Photography", 2024},
		{"Applied Arts Program", "Applied arts and crafts program", "Textile Design", 2024},
		{"Art History Program", "Art history and theory program", "Art History", 2024},
	}
)

// Seed creates the sample course types, institutes, departments and study
// programs in one transaction. Rows that already exist are kept. It returns
// the number of rows created.
func (l *Loader) Seed(ctx context.Context) (int, error) {
	created := 0
	err := pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		s := &session{ctx: ctx, tx: tx}
		count := func(kind, name string, isNew bool) {
			if isNew {
				created++
				l.log.Info().Str("kind", kind).Str("name", name).Msg("Created")
			}
		}

		for _, ct := range seedCourseTypes {
			_, isNew, err := s.getOrCreate(
				func(db repository.DBTX) (int64, error) {
					t, err := repository.NewCourseTypeRepository(db).GetByName(ctx, ct.Name)
					if err != nil {
						return 0, err
					}
					return t.ID, nil
				},
				func(db repository.DBTX) (int64, error) {
					return repository.NewCourseTypeRepository(db).Create(ctx, &ct)
				},
			)
			if err != nil {
				return fmt.Errorf("course type %q: %w", ct.Name, err)
			}
			count("course_type", ct.Name, isNew)
		}

		institutes := make(map[string]int64, len(seedInstitutes))
		for _, inst := range seedInstitutes {
			id, isNew, err := s.getOrCreate(
				func(db repository.DBTX) (int64, error) {
					i, err := repository.NewInstituteRepository(db).GetByName(ctx, inst.Name)
					if err != nil {
						return 0, err
					}
					return i.ID, nil
				},
				func(db repository.DBTX) (int64, error) {
					return repository.NewInstituteRepository(db).Create(ctx, &inst)
				},
			)
			if err != nil {
				return fmt.Errorf("institute %q: %w", inst.Name, err)
			}
			institutes[inst.Name] = id
			count("institute", inst.Name, isNew)
		}

		departments := make(map[string]int64, len(seedDepartments))
		for _, d := range seedDepartments {
			id, isNew, err := s.department(d.name, institutes[d.institute])
			if err != nil {
				return fmt.Errorf("department %q: %w", d.name, err)
			}
			departments[d.name] = id
			count("department", d.name, isNew)
		}

		for _, p := range seedPrograms {
			in := &model.StudyProgramInput{
				Name:         p.name,
				Description:  p.description,
				DepartmentID: departments[p.department],
				Year:         p.year,
			}
			_, isNew, err := s.getOrCreate(
				func(db repository.DBTX) (int64, error) {
					sp, err := repository.NewStudyProgramRepository(db).GetByNameAndYear(ctx, in.Name, in.Year)
					if err != nil {
						return 0, err
					}
					return sp.ID, nil
				},
				func(db repository.DBTX) (int64, error) {
					return repository.NewStudyProgramRepository(db).Create(ctx, in)
				},
			)
			if err != nil {
				return fmt.Errorf("study program %q: %w", p.name, err)
			}
			count("study_program", p.name, isNew)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
