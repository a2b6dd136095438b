package model

import "time"

// Department belongs to one institute and owns study programs.
type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	InstituteID int64     `json:"institute_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Institute *Institute `json:"institute,omitempty"`
}

// DepartmentInput is the write payload for a department.
type DepartmentInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	InstituteID int64  `json:"institute_id" binding:"required,gt=0"`
}

// Input returns the writable form of the department.
func (d *Department) Input() DepartmentInput {
	return DepartmentInput{Name: d.Name, InstituteID: d.InstituteID}
}
