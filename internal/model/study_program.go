package model

import "time"

// StudyProgram is a degree program offered by a department.
type StudyProgram struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DepartmentID int64     `json:"department_id"`
	Year         int32     `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Department *Department `json:"department,omitempty"`
}

// StudyProgramInput is the write payload for a study program.
type StudyProgramInput struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description" binding:"required"`
	DepartmentID int64  `json:"department_id" binding:"required,gt=0"`
	Year         int32  `json:"year" binding:"required"`
}

// Input returns the writable form of the study program.
func (p *StudyProgram) Input() StudyProgramInput {
	return StudyProgramInput{
		Name:         p.Name,
		Description:  p.Description,
		DepartmentID: p.DepartmentID,
		Year:         p.Year,
	}
}
