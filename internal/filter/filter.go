// Package filter turns list query parameters into a conjunctive SQL WHERE
// clause with numbered pgx placeholders.
//
// Every recognized parameter contributes at most one condition. Values that
// cannot be interpreted are ignored as if the parameter were absent, so a
// malformed filter never fails a request.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Where accumulates conditions and their positional arguments.
type Where struct {
	conds []string
	args  []any
}

// Arg appends v to the argument list and returns its placeholder.
func (w *Where) Arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// Add appends a condition. Conditions are AND-combined.
func (w *Where) Add(cond string) {
	w.conds = append(w.conds, cond)
}

// SQL returns " WHERE ..." or an empty string when no condition was added.
func (w *Where) SQL() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (w *Where) Args() []any {
	return w.args
}

// Len reports the number of conditions.
func (w *Where) Len() int {
	return len(w.conds)
}

// Field maps the raw values of one query parameter to a condition.
type Field interface {
	apply(w *Where, values []string)
}

// Param binds a query parameter name to a Field.
type Param struct {
	Name  string
	Field Field
}

// Set is the ordered list of parameters an endpoint recognizes.
// Order determines placeholder numbering only.
type Set []Param

// Build applies every recognized parameter present in q.
func (s Set) Build(q url.Values) *Where {
	w := &Where{}
	for _, p := range s {
		if values, ok := q[p.Name]; ok && len(values) > 0 {
			p.Field.apply(w, values)
		}
	}
	return w
}

// ─── Field kinds ────────────────────────────────────────────────────────────

type boolField struct{ column string }

// Bool matches a boolean column. The value is compared case-insensitively
// to "true"; any other present value, including "", means false.
func Bool(column string) Field { return boolField{column} }

func (f boolField) apply(w *Where, values []string) {
	w.Add(f.column + " = " + w.Arg(strings.EqualFold(values[0], "true")))
}

type intField struct{ column string }

// Int matches an integer column exactly. Unparseable values are ignored.
func Int(column string) Field { return intField{column} }

func (f intField) apply(w *Where, values []string) {
	n, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 32)
	if err != nil {
		return
	}
	w.Add(f.column + " = " + w.Arg(int32(n)))
}

type choiceField struct {
	column  string
	allowed map[string]struct{}
}

// Choice matches a text column against a closed set of values.
// Values outside the set are ignored.
func Choice(column string, allowed ...string) Field {
	f := choiceField{column: column, allowed: make(map[string]struct{}, len(allowed))}
	for _, a := range allowed {
		f.allowed[a] = struct{}{}
	}
	return f
}

func (f choiceField) apply(w *Where, values []string) {
	v := values[0]
	if _, ok := f.allowed[v]; !ok {
		return
	}
	w.Add(f.column + " = " + w.Arg(v))
}

type idSetField struct{ cond string }

// IDs matches an id column against every value of a repeatable parameter
// (union semantics). Non-integer members are dropped.
func IDs(column string) Field { return idSetField{cond: column + " = ANY(%s)"} }

// RelatedIDs is IDs for a many-to-many relation. subquery is an EXISTS
// expression with one %s verb receiving the id array placeholder, so each
// parent row matches at most once.
func RelatedIDs(subquery string) Field { return idSetField{cond: subquery} }

func (f idSetField) apply(w *Where, values []string) {
	ids := ParseIDs(values)
	if len(ids) == 0 {
		return
	}
	w.Add(fmt.Sprintf(f.cond, w.Arg(ids)))
}

type relatedField struct{ cond string }

// Related matches a single text value through a subquery. cond uses %[1]s
// wherever the placeholder is needed.
func Related(cond string) Field { return relatedField{cond} }

func (f relatedField) apply(w *Where, values []string) {
	v := strings.TrimSpace(values[0])
	if v == "" {
		return
	}
	w.Add(fmt.Sprintf(f.cond, w.Arg(v)))
}

type searchField struct{ columns []string }

// Search is a case-insensitive substring match across columns, OR-combined.
func Search(columns ...string) Field { return searchField{columns} }

func (f searchField) apply(w *Where, values []string) {
	v := values[0]
	if v == "" || len(f.columns) == 0 {
		return
	}
	ph := w.Arg("%" + EscapeLike(v) + "%")
	parts := make([]string, len(f.columns))
	for i, c := range f.columns {
		parts[i] = c + " ILIKE " + ph
	}
	if len(parts) == 1 {
		w.Add(parts[0])
		return
	}
	w.Add("(" + strings.Join(parts, " OR ") + ")")
}

// ─── Helpers ────────────────────────────────────────────────────────────────

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters using the default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ParseIDs parses positive integer ids, dropping anything else and
// duplicates while keeping first-seen order.
func ParseIDs(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	seen := make(map[int64]struct{}, len(values))
	for _, v := range values {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		ids = append(ids, n)
	}
	return ids
}
