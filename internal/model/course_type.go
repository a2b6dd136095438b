package model

import "time"

// CourseType categorizes courses (seminar, lecture, workshop, ...).
type CourseType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseTypeInput is the write payload for a course type.
type CourseTypeInput struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"required"`
}

// Input returns the writable form of the course type.
func (t *CourseType) Input() CourseTypeInput {
	return CourseTypeInput{Name: t.Name, Description: t.Description}
}
