package generator

import (
	"context"
	"strings"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/random"
)

// stringGenerator produces realistic strings. Selection order: enum (which
// always wins so enum closure holds), recognized name patterns, semantic
// category, regex-directed shapes, then bounded lorem text. A final pass
// enforces length bounds and gives regex constraints one regeneration
// attempt.
type stringGenerator struct{}

func (stringGenerator) Name() string { return "string" }

func (stringGenerator) Synchronous() bool { return true }

func (stringGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeString
}

var statusValues = []string{"active", "pending", "inactive", "archived"}

var currencyCodes = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD"}

func (g stringGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	c := &gc.Field.Constraints

	if len(c.Enum) > 0 {
		return random.Pick(s, c.Enum), nil
	}

	value := ""
	for _, m := range gc.Field.Patterns {
		if v, ok := byPattern(s, m.Name, fieldName(gc.FieldPath)); ok {
			value = v
			break
		}
	}
	if value == "" {
		value = bySemantic(s, gc.Field.Semantic)
	}
	if value == "" && c.Match != nil {
		value = byRegexShape(s, c.Match.String())
	}
	if value == "" {
		value = loremBounded(s, c)
	}

	return g.applyConstraints(s, value, c), nil
}

// byPattern maps a recognized pattern to a concrete draw.
func byPattern(s *random.Source, patternName, field string) (string, bool) {
	lower := strings.ToLower(field)
	switch patternName {
	case "email":
		return s.Email(), true
	case "phone":
		return s.Phone(), true
	case "url":
		return s.URL(), true
	case "name":
		switch {
		case strings.Contains(lower, "first"):
			return s.FirstName(), true
		case strings.Contains(lower, "last"):
			return s.LastName(), true
		case strings.Contains(lower, "user") || strings.Contains(lower, "nick"):
			return s.Username(), true
		case strings.Contains(lower, "company"):
			return s.Company(), true
		default:
			return s.FullName(), true
		}
	case "address":
		return s.Address(), true
	case "description":
		return s.Paragraph(), true
	case "title":
		if strings.Contains(lower, "job") || strings.Contains(lower, "position") || strings.Contains(lower, "occupation") {
			return s.JobTitle(), true
		}
		return s.Words(s.IntBetween(3, 6)), true
	case "password":
		return s.Password(), true
	case "username":
		return s.Username(), true
	case "slug":
		return s.Slug(), true
	case "uuid":
		return s.UUID(), true
	case "token":
		return s.Hex(32), true
	case "color":
		if strings.Contains(lower, "hex") {
			return s.HexColor(), true
		}
		return s.ColorName(), true
	case "company":
		return s.Company(), true
	case "status":
		return random.Pick(s, statusValues), true
	case "country":
		return s.Country(), true
	case "currency":
		return random.Pick(s, currencyCodes), true
	case "ip":
		return s.IP(), true
	case "image":
		return s.ImageURL(), true
	default:
		return "", false
	}
}

func bySemantic(s *random.Source, category string) string {
	switch category {
	case "personal_info":
		return s.FullName()
	case "contact":
		return s.Email()
	case "credentials":
		return s.Username()
	case "content":
		return s.Sentence()
	case "workflow":
		return random.Pick(s, statusValues)
	case "geo":
		return s.City()
	case "financial":
		return random.Pick(s, currencyCodes)
	case "business":
		return s.Company()
	default:
		return ""
	}
}

// byRegexShape recognizes a handful of hardcoded shapes. This is a coarse
// heuristic on purpose; anything else falls back to lorem text.
func byRegexShape(s *random.Source, source string) string {
	switch {
	case strings.Contains(source, "@"):
		return s.Email()
	case strings.Contains(source, `\d`):
		return s.Phone()
	case strings.Contains(source, "http"):
		return s.URL()
	default:
		return s.Words(s.IntBetween(2, 5))
	}
}

func loremBounded(s *random.Source, c *analyzer.Constraints) string {
	n := s.IntBetween(2, 6)
	return s.Words(n)
}

// applyConstraints pads to minLength, truncates to maxLength, and gives a
// failing regex constraint exactly one regeneration attempt.
func (g stringGenerator) applyConstraints(s *random.Source, v string, c *analyzer.Constraints) string {
	if c.Match != nil && !c.Match.MatchString(v) {
		v = byRegexShape(s, c.Match.String())
	}
	if c.MinLength != nil {
		for len(v) < *c.MinLength {
			v += " " + s.Word()
		}
	}
	if c.MaxLength != nil && len(v) > *c.MaxLength {
		v = v[:*c.MaxLength]
	}
	return v
}

func (stringGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	if c == nil {
		return true
	}
	if c.Required && s == "" {
		return false
	}
	if c.MinLength != nil && len(s) < *c.MinLength {
		return false
	}
	if c.MaxLength != nil && len(s) > *c.MaxLength {
		return false
	}
	if c.Match != nil && !c.Match.MatchString(s) {
		return false
	}
	return true
}
