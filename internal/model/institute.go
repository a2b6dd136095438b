package model

import "time"

// Institute is the top of the academic hierarchy. It owns departments.
type Institute struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InstituteInput is the write payload for an institute.
type InstituteInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
}

// Input returns the writable form of the institute.
func (i *Institute) Input() InstituteInput {
	return InstituteInput{Name: i.Name, Description: i.Description}
}
