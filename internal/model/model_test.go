package model

import (
	"errors"
	"testing"
)

func TestValidateCourseCode(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"S05618", nil},
		{"S00000", nil},
		{"", ErrCourseCodeEmpty},
		{"S1234", ErrCourseCodeFormat},
		{"S123456", ErrCourseCodeFormat},
		{"X12345", ErrCourseCodeFormat},
		{"s12345", ErrCourseCodeFormat},
		{" S12345", ErrCourseCodeFormat},
		{"S1234a", ErrCourseCodeFormat},
	}
	for _, tt := range tests {
		if got := ValidateCourseCode(tt.code); !errors.Is(got, tt.want) {
			t.Errorf("ValidateCourseCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestParseSemester(t *testing.T) {
	year, season, err := ParseSemester("2025W")
	if err != nil || year != 2025 || season != SeasonWinter {
		t.Fatalf("ParseSemester(2025W) = %d, %q, %v", year, season, err)
	}
	if got := FormatSemester(year, season); got != "2025W" {
		t.Errorf("FormatSemester = %q, want 2025W", got)
	}

	for _, bad := range []string{"", "2025", "2025X", "20x5S", "2025WS"} {
		if _, _, err := ParseSemester(bad); err == nil {
			t.Errorf("ParseSemester(%q) succeeded, want error", bad)
		}
	}
}

func TestTierAllows(t *testing.T) {
	tests := []struct {
		tier          Tier
		authenticated bool
		staff         bool
		want          bool
	}{
		{TierPublic, false, false, true},
		{TierAuthenticated, false, false, false},
		{TierAuthenticated, true, false, true},
		{TierAdministrative, true, false, false},
		{TierAdministrative, true, true, true},
		{TierAdministrative, false, true, false},
		{Tier("unknown"), true, true, false},
	}
	for _, tt := range tests {
		if got := tt.tier.Allows(tt.authenticated, tt.staff); got != tt.want {
			t.Errorf("%s.Allows(%v, %v) = %v, want %v", tt.tier, tt.authenticated, tt.staff, got, tt.want)
		}
	}
}

func TestCourseInputCopiesSemesterIDs(t *testing.T) {
	c := &Course{CourseCode: "S00001", SemesterIDs: []int64{1, 2}}
	in := c.Input()
	in.SemesterIDs[0] = 99
	if c.SemesterIDs[0] != 1 {
		t.Error("Input shares the SemesterIDs backing array with the course")
	}
	if c.FormattedCourseCode() != "S00001" {
		t.Errorf("FormattedCourseCode = %q", c.FormattedCourseCode())
	}
	if (&Course{}).FormattedCourseCode() != "No Code" {
		t.Error("empty code should format as No Code")
	}
}
