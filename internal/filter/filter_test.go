package filter

import (
	"net/url"
	"reflect"
	"testing"
)

var courseLike = Set{
	{"gender_diversity", Bool("c.gender_diversity")},
	{"year", Int("c.year")},
	{"season", Choice("c.season", "W", "S")},
	{"teacher", IDs("c.teacher_id")},
	{"semester", RelatedIDs("EXISTS (SELECT 1 FROM course_semesters cs WHERE cs.course_id = c.id AND cs.semester_id = ANY(%s))")},
	{"semester_format", Related("EXISTS (SELECT 1 FROM semesters s WHERE s.name = %[1]s OR s.year::text || s.season = %[1]s)")},
	{"search", Search("c.title", "c.course_code")},
}

func TestBuildEmptyHasNoClause(t *testing.T) {
	w := courseLike.Build(url.Values{})
	if w.SQL() != "" {
		t.Errorf("SQL() = %q, want empty", w.SQL())
	}
	if len(w.Args()) != 0 {
		t.Errorf("Args() = %v, want none", w.Args())
	}
}

func TestBuildUnknownParamsIgnored(t *testing.T) {
	w := courseLike.Build(url.Values{"ordering": {"title"}, "page": {"2"}})
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"yes", false},
		{"", false},
	}
	for _, tt := range tests {
		w := courseLike.Build(url.Values{"gender_diversity": {tt.value}})
		if w.SQL() != " WHERE c.gender_diversity = $1" {
			t.Errorf("%q: SQL() = %q", tt.value, w.SQL())
		}
		if !reflect.DeepEqual(w.Args(), []any{tt.want}) {
			t.Errorf("%q: Args() = %v, want [%v]", tt.value, w.Args(), tt.want)
		}
	}

	if w := courseLike.Build(url.Values{}); w.Len() != 0 {
		t.Errorf("absent flag: expected no clause, got %q", w.SQL())
	}
}

func TestIntMalformedIgnored(t *testing.T) {
	for _, v := range []string{"abc", "", "20x5", "99999999999"} {
		w := courseLike.Build(url.Values{"year": {v}})
		if w.Len() != 0 {
			t.Errorf("year=%q: expected no clause, got %q", v, w.SQL())
		}
	}

	w := courseLike.Build(url.Values{"year": {"2025"}})
	if w.SQL() != " WHERE c.year = $1" || !reflect.DeepEqual(w.Args(), []any{int32(2025)}) {
		t.Errorf("year=2025: SQL() = %q Args() = %v", w.SQL(), w.Args())
	}
}

func TestChoiceOutsideSetIgnored(t *testing.T) {
	if w := courseLike.Build(url.Values{"season": {"X"}}); w.Len() != 0 {
		t.Errorf("season=X: expected no clause, got %q", w.SQL())
	}
	if w := courseLike.Build(url.Values{"season": {"w"}}); w.Len() != 0 {
		t.Errorf("season=w: expected no clause, got %q", w.SQL())
	}
	if w := courseLike.Build(url.Values{"season": {"S"}}); w.SQL() != " WHERE c.season = $1" {
		t.Errorf("season=S: SQL() = %q", w.SQL())
	}
}

func TestIDsUnionDropsMalformed(t *testing.T) {
	w := courseLike.Build(url.Values{"teacher": {"3", "x", "5", "3", "-1"}})
	if w.SQL() != " WHERE c.teacher_id = ANY($1)" {
		t.Errorf("SQL() = %q", w.SQL())
	}
	if !reflect.DeepEqual(w.Args(), []any{[]int64{3, 5}}) {
		t.Errorf("Args() = %v", w.Args())
	}

	if w := courseLike.Build(url.Values{"teacher": {"x", ""}}); w.Len() != 0 {
		t.Errorf("all-malformed set should be absent, got %q", w.SQL())
	}
}

func TestRelatedIDsUsesExists(t *testing.T) {
	w := courseLike.Build(url.Values{"semester": {"1", "2"}})
	want := " WHERE EXISTS (SELECT 1 FROM course_semesters cs WHERE cs.course_id = c.id AND cs.semester_id = ANY($1))"
	if w.SQL() != want {
		t.Errorf("SQL() = %q, want %q", w.SQL(), want)
	}
}

func TestRelatedReusesPlaceholder(t *testing.T) {
	w := courseLike.Build(url.Values{"semester_format": {"2025W"}})
	want := " WHERE EXISTS (SELECT 1 FROM semesters s WHERE s.name = $1 OR s.year::text || s.season = $1)"
	if w.SQL() != want {
		t.Errorf("SQL() = %q, want %q", w.SQL(), want)
	}
	if !reflect.DeepEqual(w.Args(), []any{"2025W"}) {
		t.Errorf("Args() = %v", w.Args())
	}
}

func TestSearchEscapesAndOrsColumns(t *testing.T) {
	w := courseLike.Build(url.Values{"search": {"50%_off"}})
	if w.SQL() != " WHERE (c.title ILIKE $1 OR c.course_code ILIKE $1)" {
		t.Errorf("SQL() = %q", w.SQL())
	}
	if !reflect.DeepEqual(w.Args(), []any{`%50\%\_off%`}) {
		t.Errorf("Args() = %v", w.Args())
	}
}

func TestConjunctionNumbersPlaceholdersInSetOrder(t *testing.T) {
	w := courseLike.Build(url.Values{
		"search":           {"art"},
		"teacher":          {"7"},
		"gender_diversity": {"true"},
	})
	want := " WHERE c.gender_diversity = $1 AND c.teacher_id = ANY($2) AND (c.title ILIKE $3 OR c.course_code ILIKE $3)"
	if w.SQL() != want {
		t.Errorf("SQL() = %q, want %q", w.SQL(), want)
	}
	if len(w.Args()) != 3 {
		t.Errorf("len(Args()) = %d, want 3", len(w.Args()))
	}
}

func TestWhereArgBeforeConditions(t *testing.T) {
	w := &Where{}
	id := w.Arg(int64(9))
	w.Add("x.id = " + id)
	if w.SQL() != " WHERE x.id = $1" {
		t.Errorf("SQL() = %q", w.SQL())
	}
}

func TestEscapeLike(t *testing.T) {
	if got := EscapeLike(`a\b%c_d`); got != `a\\b\%c\_d` {
		t.Errorf("EscapeLike = %q", got)
	}
}
