package model

import "time"

// Curriculum groups courses for a department and year.
type Curriculum struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Year         int32     `json:"year"`
	DepartmentID int64     `json:"department_id"`
	CourseIDs    []int64   `json:"course_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Department *Department `json:"department,omitempty"`
	Courses    []Course    `json:"courses,omitempty"`
}

// CurriculumInput is the write payload for a curriculum.
type CurriculumInput struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Description  string  `json:"description" binding:"required"`
	Year         int32   `json:"year" binding:"required"`
	DepartmentID int64   `json:"department_id" binding:"required,gt=0"`
	CourseIDs    []int64 `json:"course_ids" binding:"omitempty,dive,gt=0"`
}

// Input returns the writable form of the curriculum.
func (c *Curriculum) Input() CurriculumInput {
	return CurriculumInput{
		Name:         c.Name,
		Description:  c.Description,
		Year:         c.Year,
		DepartmentID: c.DepartmentID,
		CourseIDs:    append([]int64(nil), c.CourseIDs...),
	}
}
