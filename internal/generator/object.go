package generator

import (
	"context"
	"strings"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/random"
)

// objectGenerator covers object and mixed fields without a nested schema.
// Known names get a fixed structured shape; anything else is a mixed value,
// which may legitimately be null.
type objectGenerator struct{}

func (objectGenerator) Name() string { return "object" }

func (objectGenerator) Synchronous() bool { return true }

func (objectGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeObject || ft == analyzer.TypeMixed
}

func (objectGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	name := strings.ToLower(fieldName(gc.FieldPath))

	switch {
	case strings.Contains(name, "metadata") || strings.Contains(name, "meta"):
		return map[string]any{
			"source":  s.Word(),
			"version": s.IntBetween(1, 9),
			"origin":  s.Domain(),
		}, nil
	case strings.Contains(name, "settings") || strings.Contains(name, "preferences") || strings.Contains(name, "config"):
		return map[string]any{
			"theme":         random.Pick(s, []string{"light", "dark", "system"}),
			"notifications": s.Bool(0.75),
			"language":      random.Pick(s, languageCodes),
		}, nil
	case strings.Contains(name, "attribute") || strings.Contains(name, "propert"):
		out := make(map[string]any)
		for i := s.IntBetween(2, 4); i > 0; i-- {
			out[s.Word()] = attributeValue(s)
		}
		return out, nil
	case strings.Contains(name, "content") || strings.Contains(name, "body"):
		return map[string]any{
			"title": s.Words(s.IntBetween(3, 6)),
			"text":  s.Paragraph(),
		}, nil
	}

	// Mixed fields draw a shape uniformly; null is an allowed outcome
	// unless the field is required.
	shapes := 6
	if gc.Field != nil && gc.Field.Constraints.Required {
		shapes = 5
	}
	switch s.Intn(shapes) {
	case 0:
		return s.Words(s.IntBetween(2, 5)), nil
	case 1:
		return s.IntBetween(0, 1000), nil
	case 2:
		return s.Bool(0.5), nil
	case 3:
		return map[string]any{s.Word(): s.Word()}, nil
	case 4:
		return []any{s.Word(), s.IntBetween(0, 100)}, nil
	default:
		return nil, nil
	}
}

func attributeValue(s *random.Source) any {
	if s.Bool(0.5) {
		return s.Word()
	}
	return s.IntBetween(0, 100)
}

func (objectGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if c != nil && c.Required && v == nil {
		return false
	}
	if c != nil && c.Validator != nil && v != nil && !c.Validator(v) {
		return false
	}
	return true
}
