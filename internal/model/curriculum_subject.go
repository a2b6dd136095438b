package model

import "time"

// CurriculumSubject is a subject in a study program's curriculum.
type CurriculumSubject struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	StudyProgramID int64     `json:"study_program_id"`
	Credits        int32     `json:"credits"`
	SemesterNumber int32     `json:"semester_number"`
	IsMandatory    bool      `json:"is_mandatory"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	StudyProgram *StudyProgram `json:"study_program,omitempty"`
}

// CurriculumSubjectInput is the write payload for a curriculum subject.
// IsMandatory defaults to true when omitted.
type CurriculumSubjectInput struct {
	Name           string `json:"name" binding:"required,max=100"`
	Description    string `json:"description"`
	StudyProgramID int64  `json:"study_program_id" binding:"required,gt=0"`
	Credits        int32  `json:"credits" binding:"min=0"`
	SemesterNumber int32  `json:"semester_number" binding:"required,min=1"`
	IsMandatory    *bool  `json:"is_mandatory"`
}

// Input returns the writable form of the curriculum subject.
func (s *CurriculumSubject) Input() CurriculumSubjectInput {
	mandatory := s.IsMandatory
	return CurriculumSubjectInput{
		Name:           s.Name,
		Description:    s.Description,
		StudyProgramID: s.StudyProgramID,
		Credits:        s.Credits,
		SemesterNumber: s.SemesterNumber,
		IsMandatory:    &mandatory,
	}
}
