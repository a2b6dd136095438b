package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Season is the half of the academic year a semester falls in.
type Season string

const (
	SeasonWinter Season = "W"
	SeasonSummer Season = "S"
)

// Semester is a teaching period such as 2025W. (year, season) is unique.
type Semester struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Year      int32       `json:"year"`
	Season    Season      `json:"season"`
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SemesterInput is the write payload for a semester.
// IsActive defaults to true when omitted.
type SemesterInput struct {
	Name      string      `json:"name" binding:"required,max=20"`
	Year      int32       `json:"year" binding:"required"`
	Season    Season      `json:"season" binding:"required,oneof=W S"`
	StartDate pgtype.Date `json:"start_date"`
	EndDate   pgtype.Date `json:"end_date"`
	IsActive  *bool       `json:"is_active"`
}

// Input returns the writable form of the semester.
func (s *Semester) Input() SemesterInput {
	active := s.IsActive
	return SemesterInput{
		Name:      s.Name,
		Year:      s.Year,
		Season:    s.Season,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  &active,
	}
}

// FormatSemester builds the "<year><season>" label.
func FormatSemester(year int32, season Season) string {
	return fmt.Sprintf("%d%s", year, season)
}

// ParseSemester splits a label such as "2026S" into year and season.
func ParseSemester(label string) (int32, Season, error) {
	if len(label) != 5 {
		return 0, "", fmt.Errorf("semester %q: want <year><W|S>", label)
	}
	season := Season(label[4:])
	if season != SeasonWinter && season != SeasonSummer {
		return 0, "", fmt.Errorf("semester %q: unknown season %q", label, season)
	}
	year, err := strconv.Atoi(label[:4])
	if err != nil {
		return 0, "", fmt.Errorf("semester %q: %w", label, err)
	}
	return int32(year), season, nil
}
