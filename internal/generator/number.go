package generator

import (
	"context"
	"math"
	"strings"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/random"
)

// numberGenerator dispatches on field-name substrings to weighted realistic
// buckets, then falls back to constraint-directed uniform draws, then to a
// bounded default. A final pass clamps into declared bounds.
type numberGenerator struct{}

func (numberGenerator) Name() string { return "number" }

func (numberGenerator) Synchronous() bool { return true }

func (numberGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeNumber
}

// bucket is one sub-range of a weighted distribution.
type bucket struct {
	min, max, weight float64
}

func drawBucket(s *random.Source, buckets []bucket, integer bool) any {
	weights := make([]float64, len(buckets))
	for i, b := range buckets {
		weights[i] = b.weight
	}
	b := buckets[s.WeightedIndex(weights)]
	if integer {
		return s.IntBetween(int(b.min), int(b.max))
	}
	return s.Round2(b.min, b.max)
}

var priceBuckets = []bucket{
	{1, 20, 30}, {20, 100, 40}, {100, 500, 20}, {500, 5000, 10},
}

var ageBuckets = []bucket{
	{18, 25, 20}, {26, 40, 40}, {41, 60, 30}, {61, 80, 10},
}

var quantityBuckets = []bucket{
	{1, 5, 50}, {6, 20, 30}, {21, 100, 20},
}

var percentageBuckets = []bucket{
	{0, 25, 20}, {25, 50, 25}, {50, 75, 30}, {75, 100, 25},
}

func (g numberGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	c := &gc.Field.Constraints
	name := strings.ToLower(fieldName(gc.FieldPath))

	v := g.semanticValue(s, name)
	if v == nil {
		v = constraintDirected(s, c)
	}
	return clampNumber(v, c), nil
}

func (numberGenerator) semanticValue(s *random.Source, name string) any {
	has := func(terms ...string) bool {
		for _, t := range terms {
			if strings.Contains(name, t) {
				return true
			}
		}
		return false
	}

	switch {
	case has("price", "cost", "amount", "fee", "total", "salary"):
		return drawBucket(s, priceBuckets, false)
	case has("age"):
		return drawBucket(s, ageBuckets, true)
	case has("quantity", "qty", "stock"):
		return drawBucket(s, quantityBuckets, true)
	case has("rating"):
		return math.Round(s.Float(1, 5)*10) / 10
	case has("score", "grade"):
		return s.IntBetween(0, 100)
	case has("percent"):
		return drawBucket(s, percentageBuckets, false)
	case has("latitude") || name == "lat":
		return math.Round(s.Float(-90, 90)*1e6) / 1e6
	case has("longitude") || name == "lng" || name == "lon":
		return math.Round(s.Float(-180, 180)*1e6) / 1e6
	case has("weight"):
		return s.Round2(1, 200)
	case has("height"):
		return s.Round2(50, 200)
	case has("temperature", "temp"):
		return s.Round2(-10, 40)
	case has("year"):
		return s.IntBetween(1970, s.Now().Year())
	case has("month"):
		return s.IntBetween(1, 12)
	case has("day"):
		return s.IntBetween(1, 28)
	case has("hour"):
		return s.IntBetween(0, 23)
	case has("minute"):
		return s.IntBetween(0, 59)
	case has("size"):
		return s.IntBetween(1, 10000)
	case has("duration"):
		return s.IntBetween(1, 3600)
	case has("priority"):
		return s.IntBetween(1, 5)
	case has("level"):
		return s.IntBetween(1, 10)
	default:
		return nil
	}
}

// constraintDirected draws uniformly within declared bounds, choosing
// float when bounds are non-integral or the range is narrow (variety on
// small ranges), integer otherwise.
func constraintDirected(s *random.Source, c *analyzer.Constraints) any {
	if c.Min == nil && c.Max == nil {
		return s.IntBetween(0, 100)
	}

	min := 0.0
	if c.Min != nil {
		min = *c.Min
	}
	max := min + 100
	if c.Max != nil {
		max = *c.Max
	}
	if max < min {
		max = min
	}

	fractional := min != math.Trunc(min) || max != math.Trunc(max)
	if fractional || max-min <= 10 {
		return s.Round2(min, max)
	}
	return s.IntBetween(int(min), int(max))
}

func clampNumber(v any, c *analyzer.Constraints) any {
	f, ok := asFloat(v)
	if !ok {
		return v
	}
	clamped := f
	if c.Min != nil && clamped < *c.Min {
		clamped = *c.Min
	}
	if c.Max != nil && clamped > *c.Max {
		clamped = *c.Max
	}
	if clamped == f {
		return v
	}
	// A fractional bound must survive the clamp even for int inputs,
	// otherwise truncation would push the value back out of range.
	if _, isInt := v.(int); isInt && clamped == math.Trunc(clamped) {
		return int(clamped)
	}
	return clamped
}

func (numberGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	f, ok := asFloat(v)
	if !ok {
		return false
	}
	if c == nil {
		return true
	}
	return inRange(f, c)
}
