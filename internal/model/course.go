package model

import (
	"errors"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

var courseCodePattern = regexp.MustCompile(`^S\d{5}$`)

var (
	ErrCourseCodeEmpty  = errors.New("course code cannot be empty")
	ErrCourseCodeFormat = errors.New("course code must be S followed by 5 digits (e.g. S05618)")
)

// ValidateCourseCode checks the S + 5 digits course code format.
func ValidateCourseCode(code string) error {
	if code == "" {
		return ErrCourseCodeEmpty
	}
	if !courseCodePattern.MatchString(code) {
		return ErrCourseCodeFormat
	}
	return nil
}

// Course is a catalog entry. All references are optional.
// The nested relations are populated on read only.
type Course struct {
	ID                  int64       `json:"id"`
	Title               string      `json:"title"`
	CourseCode          string      `json:"course_code"`
	Description         string      `json:"description"`
	TypeID              *int64      `json:"type_id"`
	Year                *int32      `json:"year"`
	StartDate           pgtype.Date `json:"start_date"`
	EndDate             pgtype.Date `json:"end_date"`
	TeacherID           *int64      `json:"teacher_id"`
	Credits             *int32      `json:"credits"`
	GenderDiversity     bool        `json:"gender_diversity"`
	InstituteID         *int64      `json:"institute_id"`
	DepartmentID        *int64      `json:"department_id"`
	StudyProgramID      *int64      `json:"study_program_id"`
	CurriculumSubjectID *int64      `json:"curriculum_subject_id"`
	StudySubjectID      *int64      `json:"study_subject_id"`
	SemesterIDs         []int64     `json:"semester_ids"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`

	Type              *CourseType        `json:"type,omitempty"`
	Teacher           *Teacher           `json:"teacher,omitempty"`
	Institute         *Institute         `json:"institute,omitempty"`
	Department        *Department        `json:"department,omitempty"`
	StudyProgram      *StudyProgram      `json:"study_program,omitempty"`
	CurriculumSubject *CurriculumSubject `json:"curriculum_subject,omitempty"`
	StudySubject      *StudySubject      `json:"study_subject,omitempty"`
	Semesters         []Semester         `json:"semesters,omitempty"`
}

// FormattedCourseCode returns the code for display, or "No Code".
func (c *Course) FormattedCourseCode() string {
	if c.CourseCode == "" {
		return "No Code"
	}
	return c.CourseCode
}

// CourseInput is the write payload for a course. References are raw ids.
type CourseInput struct {
	Title               string      `json:"title" binding:"required,max=100"`
	CourseCode          string      `json:"course_code" binding:"required,coursecode"`
	Description         string      `json:"description" binding:"required"`
	TypeID              *int64      `json:"type_id"`
	Year                *int32      `json:"year"`
	StartDate           pgtype.Date `json:"start_date"`
	EndDate             pgtype.Date `json:"end_date"`
	TeacherID           *int64      `json:"teacher_id"`
	Credits             *int32      `json:"credits" binding:"omitempty,min=0"`
	GenderDiversity     bool        `json:"gender_diversity"`
	InstituteID         *int64      `json:"institute_id"`
	DepartmentID        *int64      `json:"department_id"`
	StudyProgramID      *int64      `json:"study_program_id"`
	CurriculumSubjectID *int64      `json:"curriculum_subject_id"`
	StudySubjectID      *int64      `json:"study_subject_id"`
	SemesterIDs         []int64     `json:"semester_ids" binding:"omitempty,dive,gt=0"`
}

// Input returns the writable form of the course.
func (c *Course) Input() CourseInput {
	return CourseInput{
		Title:               c.Title,
		CourseCode:          c.CourseCode,
		Description:         c.Description,
		TypeID:              c.TypeID,
		Year:                c.Year,
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		TeacherID:           c.TeacherID,
		Credits:             c.Credits,
		GenderDiversity:     c.GenderDiversity,
		InstituteID:         c.InstituteID,
		DepartmentID:        c.DepartmentID,
		StudyProgramID:      c.StudyProgramID,
		CurriculumSubjectID: c.CurriculumSubjectID,
		StudySubjectID:      c.StudySubjectID,
		SemesterIDs:         append([]int64(nil), c.SemesterIDs...),
	}
}
