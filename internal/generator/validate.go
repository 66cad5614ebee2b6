package generator

import (
	"time"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
)

// Shared validation pieces. Every generator's Validate covers at minimum
// required, enum and the custom validator; type-specific checks layer on
// top.

func baseValid(v any, c *analyzer.Constraints) bool {
	if c == nil {
		return v != nil
	}
	if v == nil {
		return !c.Required
	}
	if len(c.Enum) > 0 {
		if s, ok := v.(string); ok && !inEnum(s, c.Enum) {
			return false
		}
	}
	if c.Validator != nil && !c.Validator(v) {
		return false
	}
	return true
}

func inEnum(s string, enum []string) bool {
	for _, e := range enum {
		if e == s {
			return true
		}
	}
	return false
}

// asFloat normalizes the numeric kinds generators produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func inRange(v float64, c *analyzer.Constraints) bool {
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	return true
}

func inDateRange(t time.Time, c *analyzer.Constraints) bool {
	if c.MinDate != nil && t.Before(*c.MinDate) {
		return false
	}
	if c.MaxDate != nil && t.After(*c.MaxDate) {
		return false
	}
	return true
}
