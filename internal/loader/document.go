package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/uniak/teaching-backend/internal/model"
)

// Fallbacks for fields missing from a course record.
const (
	DefaultDepartment = "Applied Arts"
	DefaultInstitute  = "General Studies"
	DefaultTeacher    = "Unknown Teacher"
	DefaultTitle      = "Unknown Course"
	DefaultYear       = 2025
	DefaultCredits    = 2.0

	placeholderDomain = "uni-ak.ac.at"
)

// Document is the bulk load input.
type Document struct {
	Departments []string        `json:"departments"`
	Institutes  []string        `json:"institutes"`
	Teachers    []TeacherRecord `json:"teachers"`
	Courses     []CourseRecord  `json:"courses"`
}

type TeacherRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
}

// CourseRecord is one scraped course. Numbers may arrive quoted.
type CourseRecord struct {
	CourseCode  string `json:"course_code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Credits     Number `json:"credits"`
	Semester    string `json:"semester"`
	Year        Number `json:"year"`
	Teacher     string `json:"teacher"`
	Department  string `json:"department"`
	Institute   string `json:"institute"`
	CourseType  string `json:"course_type"`
}

// Number holds a JSON number or string verbatim. Values that do not parse
// are treated as missing.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	*n = Number(b)
	return nil
}

func (n Number) float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.Replace(string(n), ",", ".", 1), 64)
	return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseDocument decodes a bulk load document.
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// PlaceholderEmail derives an address for a teacher without one:
// "Anna Maria Berger" becomes anna.maria.berger@uni-ak.ac.at.
func PlaceholderEmail(name string) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))
	return local + "@" + placeholderDomain
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// course is a CourseRecord with defaults applied.
type course struct {
	code        string
	title       string
	description string
	credits     int32
	year        int32
	teacher     string
	department  string
	institute   string
	courseType  string

	// semesterYear is zero when the record has no usable semester label.
	semesterYear   int32
	semesterSeason model.Season
}

// normalize applies defaults and validates the course code.
func (r CourseRecord) normalize() (course, error) {
	c := course{
		code:        strings.TrimSpace(r.CourseCode),
		title:       orDefault(r.Title, DefaultTitle),
		description: strings.TrimSpace(r.Description),
		credits:     int32(math.Round(DefaultCredits)),
		year:        DefaultYear,
		teacher:     orDefault(r.Teacher, DefaultTeacher),
		department:  orDefault(r.Department, DefaultDepartment),
		institute:   orDefault(r.Institute, DefaultInstitute),
		courseType:  strings.TrimSpace(r.CourseType),
	}
	if err := model.ValidateCourseCode(c.code); err != nil {
		return c, fmt.Errorf("course %q: %w", r.CourseCode, err)
	}

	if f, ok := r.Credits.float(); ok && f >= 0 && f <= math.MaxInt32 {
		c.credits = int32(math.Round(f))
	}
	if y, ok := r.Year.float(); ok && y >= 1 && y <= 9999 {
		c.year = int32(y)
	}
	if year, season, err := model.ParseSemester(strings.TrimSpace(r.Semester)); err == nil {
		c.semesterYear, c.semesterSeason = year, season
	}
	if t := []rune(c.title); len(t) > 100 {
		c.title = string(t[:100])
	}
	return c, nil
}
