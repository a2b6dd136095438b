package model

import "time"

// Teacher is a lecturer referenced by courses. Email is unique.
type Teacher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeacherInput is the write payload for a teacher.
type TeacherInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Subject string `json:"subject" binding:"required,max=100"`
}

// Input returns the writable form of the teacher.
func (t *Teacher) Input() TeacherInput {
	return TeacherInput{Name: t.Name, Email: t.Email, Subject: t.Subject}
}
