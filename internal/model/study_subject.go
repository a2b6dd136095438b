package model

import "time"

// SubjectType classifies how a study subject is taught.
type SubjectType string

const (
	SubjectTypeLecture   SubjectType = "lecture"
	SubjectTypeSeminar   SubjectType = "seminar"
	SubjectTypeWorkshop  SubjectType = "workshop"
	SubjectTypePractical SubjectType = "practical"
	SubjectTypeProject   SubjectType = "project"
	SubjectTypeThesis    SubjectType = "thesis"
)

// StudySubject is a teachable unit of a curriculum subject.
type StudySubject struct {
	ID                  int64       `json:"id"`
	Name                string      `json:"name"`
	Description         string      `json:"description"`
	CurriculumSubjectID int64       `json:"curriculum_subject_id"`
	Credits             int32       `json:"credits"`
	HoursPerWeek        int32       `json:"hours_per_week"`
	SubjectType         SubjectType `json:"subject_type"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`

	CurriculumSubject *CurriculumSubject `json:"curriculum_subject,omitempty"`
}

// StudySubjectInput is the write payload for a study subject.
// SubjectType defaults to lecture when omitted.
type StudySubjectInput struct {
	Name                string      `json:"name" binding:"required,max=100"`
	Description         string      `json:"description"`
	CurriculumSubjectID int64       `json:"curriculum_subject_id" binding:"required,gt=0"`
	Credits             int32       `json:"credits" binding:"min=0"`
	HoursPerWeek        int32       `json:"hours_per_week" binding:"min=0"`
	SubjectType         SubjectType `json:"subject_type" binding:"omitempty,oneof=lecture seminar workshop practical project thesis"`
}

// Input returns the writable form of the study subject.
func (s *StudySubject) Input() StudySubjectInput {
	return StudySubjectInput{
		Name:                s.Name,
		Description:         s.Description,
		CurriculumSubjectID: s.CurriculumSubjectID,
		Credits:             s.Credits,
		HoursPerWeek:        s.HoursPerWeek,
		SubjectType:         s.SubjectType,
	}
}
