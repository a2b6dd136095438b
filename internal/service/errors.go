package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/uniak/teaching-backend/internal/repository"
)

// ValidationError carries field-level messages for a rejected write.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Store is what catalog services need from the pool.
type Store interface {
	repository.DBTX
	repository.Beginner
}

// ref is a foreign key to verify before a write. A nil id is a null
// reference and always passes.
type ref struct {
	field string
	table string
	id    *int64
}

func requiredRef(field, table string, id int64) ref {
	return ref{field: field, table: table, id: &id}
}

// checkRefs verifies every reference resolves, reporting all missing ones.
func checkRefs(ctx context.Context, db repository.DBTX, refs ...ref) error {
	fields := map[string]string{}
	for _, r := range refs {
		if r.id == nil {
			continue
		}
		ok, err := repository.Exists(ctx, db, r.table, *r.id)
		if err != nil {
			return fmt.Errorf("check %s: %w", r.field, err)
		}
		if !ok {
			fields[r.field] = fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(*r.id))
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// checkLinks verifies every id of a many-to-many payload exists.
func checkLinks(ctx context.Context, db repository.DBTX, field, table string, ids []int64) error {
	missing, err := repository.MissingIDs(ctx, db, table, ids)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if len(missing) > 0 {
		return invalid(field, fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(missing[0])))
	}
	return nil
}

// dedupe drops repeated ids while keeping order.
func dedupe(ids []int64) []int64 {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func inTx(ctx context.Context, db repository.Beginner, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, fn)
}
