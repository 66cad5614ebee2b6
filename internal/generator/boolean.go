package generator

import (
	"context"
	"strings"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
)

// booleanGenerator flips a weighted coin whose probability comes from a
// field-name table. A heuristic, not a hard rule: the first matching row
// applies, unmatched names get an even coin.
type booleanGenerator struct{}

func (booleanGenerator) Name() string { return "boolean" }

func (booleanGenerator) Synchronous() bool { return true }

func (booleanGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeBoolean
}

type boolRow struct {
	terms []string
	p     float64
}

var boolTable = []boolRow{
	{[]string{"active", "enabled", "visible", "published"}, 0.8},
	{[]string{"verified", "confirmed", "approved"}, 0.7},
	{[]string{"premium", "paid"}, 0.25},
	{[]string{"admin", "staff"}, 0.1},
	{[]string{"notification", "notify", "alert", "subscribe"}, 0.75},
	{[]string{"private", "privacy", "hidden"}, 0.5},
	{[]string{"public"}, 0.85},
	{[]string{"deleted", "banned", "blocked", "suspended"}, 0.15},
	{[]string{"featured", "pinned", "highlighted"}, 0.3},
	{[]string{"terms", "consent", "agree", "accepted"}, 0.9},
	{[]string{"beta", "experimental"}, 0.4},
	{[]string{"online", "available"}, 0.8},
}

func (booleanGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	name := strings.ToLower(fieldName(gc.FieldPath))
	p := 0.5
	for _, row := range boolTable {
		matched := false
		for _, t := range row.terms {
			if strings.Contains(name, t) {
				matched = true
				break
			}
		}
		if matched {
			p = row.p
			break
		}
	}
	return gc.Source.Bool(p), nil
}

func (booleanGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	_, ok := v.(bool)
	return ok
}
