package generator

import (
	"context"
	"strings"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/random"
)

// arrayGenerator produces length-bounded lists whose element kind follows
// the field name. Enum-constrained arrays draw exclusively from the enum.
type arrayGenerator struct{}

func (arrayGenerator) Name() string { return "array" }

func (arrayGenerator) Synchronous() bool { return true }

func (arrayGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeArray
}

var skillWords = []string{
	"go", "sql", "python", "javascript", "kubernetes", "terraform",
	"react", "design", "writing", "analytics",
}

var categoryWords = []string{
	"electronics", "books", "clothing", "sports", "home", "garden",
	"toys", "food", "health",
}

var roleWords = []string{"admin", "editor", "viewer", "member", "moderator"}

var languageCodes = []string{"en", "es", "fr", "de", "ja", "pt", "zh"}

func (g arrayGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	c := &gc.Field.Constraints
	name := strings.ToLower(fieldName(gc.FieldPath))

	if len(c.Enum) > 0 {
		return sampleEnum(s, c.Enum, g.length(s, c, 1, 4)), nil
	}

	has := func(terms ...string) bool {
		for _, t := range terms {
			if strings.Contains(name, t) {
				return true
			}
		}
		return false
	}

	switch {
	case has("tag", "label", "keyword"):
		return fill(g.length(s, c, 2, 5), func() any { return s.Word() }), nil
	case has("skill"):
		return sampleStrings(s, skillWords, g.length(s, c, 2, 5)), nil
	case has("email"):
		return fill(g.length(s, c, 1, 3), func() any { return s.Email() }), nil
	case has("phone"):
		return fill(g.length(s, c, 1, 2), func() any { return s.Phone() }), nil
	case has("name"):
		return fill(g.length(s, c, 2, 4), func() any { return s.FullName() }), nil
	case has("categor"):
		return sampleStrings(s, categoryWords, g.length(s, c, 1, 3)), nil
	case has("role", "permission"):
		return sampleStrings(s, roleWords, g.length(s, c, 1, 2)), nil
	case has("language", "locale"):
		return sampleStrings(s, languageCodes, g.length(s, c, 1, 3)), nil
	case has("image", "photo", "picture"):
		return fill(g.length(s, c, 1, 3), func() any { return s.ImageURL() }), nil
	case has("comment"):
		return fill(g.length(s, c, 1, 3), func() any { return s.Sentence() }), nil
	case has("score", "number", "value", "point"):
		return fill(g.length(s, c, 3, 6), func() any { return s.IntBetween(0, 100) }), nil
	default:
		return fill(g.length(s, c, 1, 4), func() any { return mixedElement(s) }), nil
	}
}

// length bounds element count, honoring declared length constraints when
// present.
func (arrayGenerator) length(s *random.Source, c *analyzer.Constraints, lo, hi int) int {
	if c.MinLength != nil {
		lo = *c.MinLength
	}
	if c.MaxLength != nil {
		hi = *c.MaxLength
	}
	if hi < lo {
		hi = lo
	}
	return s.IntBetween(lo, hi)
}

func fill(n int, next func() any) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = next()
	}
	return out
}

// sampleEnum draws without replacement until the set is exhausted, then
// repeats.
func sampleEnum(s *random.Source, enum []string, n int) []any {
	out := make([]any, 0, n)
	remaining := make([]string, len(enum))
	copy(remaining, enum)
	for len(out) < n {
		if len(remaining) == 0 {
			remaining = append(remaining, enum...)
		}
		i := s.Intn(len(remaining))
		out = append(out, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return out
}

func sampleStrings(s *random.Source, values []string, n int) []any {
	if n > len(values) {
		n = len(values)
	}
	return sampleEnum(s, values, n)
}

func mixedElement(s *random.Source) any {
	switch s.Intn(3) {
	case 0:
		return s.Word()
	case 1:
		return s.IntBetween(0, 100)
	default:
		return s.Bool(0.5)
	}
}

func (arrayGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if c != nil && v == nil {
		return !c.Required
	}
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	if c == nil {
		return true
	}
	if c.Required && len(arr) == 0 {
		return false
	}
	if len(c.Enum) > 0 {
		for _, el := range arr {
			s, isStr := el.(string)
			if !isStr || !inEnum(s, c.Enum) {
				return false
			}
		}
	}
	if c.Validator != nil && !c.Validator(v) {
		return false
	}
	return true
}
