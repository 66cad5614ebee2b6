// Package generator holds the value-generator contract, the registry that
// selects among generators, and the built-in type-specific generators.
package generator

import (
	"context"
	"fmt"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/random"
)

// Generator is a named capability that produces a value for a field type
// and constraint set.
type Generator interface {
	Name() string

	// CanHandle reports whether this generator claims the type and
	// constraint shape. Constraints may be nil.
	CanHandle(ft analyzer.FieldType, c *analyzer.Constraints) bool

	// Generate produces one value. Given a fixed random seed and identical
	// context the result is deterministic.
	Generate(ctx context.Context, gc *Context) (any, error)

	// Validate checks a produced value against the constraints.
	Validate(v any, c *analyzer.Constraints) bool

	// Synchronous reports whether Generate completes without suspension.
	// The builder's synchronous path rejects non-synchronous generators at
	// selection time. All built-ins are synchronous.
	Synchronous() bool
}

// Context is the per-field generation request. One Context is created per
// builder run and mutated across the record loop; Siblings is reset per
// record.
type Context struct {
	FieldPath    string
	RecordIndex  int
	TotalRecords int

	Field  *analyzer.FieldAnalysis
	Source *random.Source

	// Siblings holds values already generated for the current record,
	// keyed by path, so e.g. an end-date generator can see its start date.
	Siblings map[string]any

	// Unique tracks values handed out for unique fields during this run.
	Unique *UniqueTracker
}

// UniqueTracker records generated values per field path for the duration
// of one builder run.
type UniqueTracker struct {
	seen map[string]map[string]bool
}

// NewUniqueTracker creates an empty tracker.
func NewUniqueTracker() *UniqueTracker {
	return &UniqueTracker{seen: make(map[string]map[string]bool)}
}

// Seen reports whether v was already handed out for path.
func (u *UniqueTracker) Seen(path string, v any) bool {
	return u.seen[path][key(v)]
}

// Record marks v as handed out for path.
func (u *UniqueTracker) Record(path string, v any) {
	m := u.seen[path]
	if m == nil {
		m = make(map[string]bool)
		u.seen[path] = m
	}
	m[key(v)] = true
}

// Count returns how many distinct values path has handed out.
func (u *UniqueTracker) Count(path string) int {
	return len(u.seen[path])
}

func key(v any) string {
	return fmt.Sprintf("%v", v)
}

// fieldName returns the last path segment, the part name-driven dispatch
// keys on.
func fieldName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
