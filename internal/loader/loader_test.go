package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/uniak/teaching-backend/internal/model"
)

const sample = `{
  "departments": ["Graphic Design", "Architecture"],
  "institutes": ["Institute of Design"],
  "teachers": [
    {"name": "Anna Berger", "email": "a.berger@example.org", "department": "Graphic Design", "bio": "Typography"},
    {"name": "Lukas Hofer"}
  ],
  "courses": [
    {"course_code": "S05618", "title": "Typography I", "credits": 2.5, "semester": "2025W",
     "year": 2025, "teacher": "Anna Berger", "department": "Graphic Design",
     "institute": "Institute of Design", "course_type": "Seminar"},
    {"course_code": "S00001", "credits": "4", "year": "2026"},
    {"course_code": "X123", "title": "Broken"},
    {"course_code": "S00002", "credits": "3 ECTS", "year": null, "semester": "Unknown"}
  ]
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Departments) != 2 || len(doc.Institutes) != 1 || len(doc.Teachers) != 2 || len(doc.Courses) != 4 {
		t.Fatalf("unexpected sizes: %+v", doc)
	}
	if doc.Courses[1].Credits != "4" || doc.Courses[1].Year != "2026" {
		t.Errorf("quoted numbers: credits %q year %q", doc.Courses[1].Credits, doc.Courses[1].Year)
	}
	if doc.Courses[0].Credits != "2.5" {
		t.Errorf("credits = %q, want 2.5", doc.Courses[0].Credits)
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	if _, err := ParseDocument(strings.NewReader(`{"courses": [`)); err == nil {
		t.Error("expected error for truncated document")
	}
}

func TestNormalize(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	full, err := doc.Courses[0].normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if full.credits != 3 {
		t.Errorf("credits = %d, want 3 (2.5 rounded)", full.credits)
	}
	if full.semesterYear != 2025 || full.semesterSeason != model.SeasonWinter {
		t.Errorf("semester = %d%s", full.semesterYear, full.semesterSeason)
	}
	if full.courseType != "Seminar" || full.institute != "Institute of Design" {
		t.Errorf("got %+v", full)
	}

	sparse, err := doc.Courses[1].normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := course{
		code:       "S00001",
		title:      DefaultTitle,
		credits:    4,
		year:       2026,
		teacher:    DefaultTeacher,
		department: DefaultDepartment,
		institute:  DefaultInstitute,
	}
	if sparse != want {
		t.Errorf("sparse = %+v, want %+v", sparse, want)
	}

	if _, err := doc.Courses[2].normalize(); !errors.Is(err, model.ErrCourseCodeFormat) {
		t.Errorf("err = %v, want ErrCourseCodeFormat", err)
	}
	if _, err := (CourseRecord{}).normalize(); !errors.Is(err, model.ErrCourseCodeEmpty) {
		t.Errorf("err = %v, want ErrCourseCodeEmpty", err)
	}

	odd, err := doc.Courses[3].normalize()
	if err != nil {
		t.Fatal(err)
	}
	if odd.credits != 2 || odd.year != DefaultYear || odd.semesterYear != 0 {
		t.Errorf("unparseable values should fall back: %+v", odd)
	}
}

func TestNormalizeTruncatesLongTitles(t *testing.T) {
	rec := CourseRecord{CourseCode: "S12345", Title: strings.Repeat("ä", 120)}
	c, err := rec.normalize()
	if err != nil {
		t.Fatal(err)
	}
	if n := len([]rune(c.title)); n != 100 {
		t.Errorf("title has %d runes, want 100", n)
	}
}

func TestPlaceholderEmail(t *testing.T) {
	tests := map[string]string{
		"Anna Berger":         "anna.berger@uni-ak.ac.at",
		"Unknown Teacher":     "unknown.teacher@uni-ak.ac.at",
		"  Maria  von Trapp ": "maria.von.trapp@uni-ak.ac.at",
	}
	for name, want := range tests {
		if got := PlaceholderEmail(name); got != want {
			t.Errorf("PlaceholderEmail(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSeedReferencesResolve(t *testing.T) {
	institutes := map[string]bool{}
	for _, i := range seedInstitutes {
		institutes[i.Name] = true
	}
	departments := map[string]bool{}
	for _, d := range seedDepartments {
		if !institutes[d.institute] {
			t.Errorf("department %q references unknown institute %q", d.name, d.institute)
		}
		if departments[d.name] {
			t.Errorf("department %q listed twice", d.name)
		}
		departments[d.name] = true
	}
	for _, p := range seedPrograms {
		if !departments[p.department] {
			t.Errorf("program %q references unknown department %q", p.name, p.department)
		}
	}
	if len(seedCourseTypes) != 6 || len(seedInstitutes) != 5 || len(departments) != 10 || len(seedPrograms) != 8 {
		t.Errorf("seed sizes changed: %d types, %d institutes, %d departments, %d programs",
			len(seedCourseTypes), len(seedInstitutes), len(departments), len(seedPrograms))
	}
}
