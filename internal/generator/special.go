package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
)

// Specialized format generators: binary buffers, key-value maps, UUIDs,
// high-precision decimals and big integers. Each has minimal name-driven
// variation but a strict output format.

// bufferGenerator produces raw bytes sized by what the name suggests.
type bufferGenerator struct{}

func (bufferGenerator) Name() string { return "buffer" }

func (bufferGenerator) Synchronous() bool { return true }

func (bufferGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeBuffer
}

func (bufferGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	name := strings.ToLower(fieldName(gc.FieldPath))
	switch {
	case strings.Contains(name, "hash") || strings.Contains(name, "digest"):
		return s.Bytes(32), nil
	case strings.Contains(name, "key") || strings.Contains(name, "token"):
		return s.Bytes(16), nil
	default:
		return s.Bytes(s.IntBetween(8, 64)), nil
	}
}

func (bufferGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	b, ok := v.([]byte)
	return ok && (c == nil || !c.Required || len(b) > 0)
}

// mapGenerator produces small string-keyed maps.
type mapGenerator struct{}

func (mapGenerator) Name() string { return "map" }

func (mapGenerator) Synchronous() bool { return true }

func (mapGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeMap
}

func (mapGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	name := strings.ToLower(fieldName(gc.FieldPath))
	out := make(map[string]any)
	switch {
	case strings.Contains(name, "translation") || strings.Contains(name, "i18n"):
		for _, lang := range languageCodes[:s.IntBetween(2, 4)] {
			out[lang] = s.Words(s.IntBetween(2, 4))
		}
	case strings.Contains(name, "score") || strings.Contains(name, "count"):
		for i := s.IntBetween(2, 4); i > 0; i-- {
			out[s.Word()] = s.IntBetween(0, 100)
		}
	default:
		for i := s.IntBetween(2, 4); i > 0; i-- {
			out[s.Word()] = s.Word()
		}
	}
	return out, nil
}

func (mapGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	_, ok := v.(map[string]any)
	return ok
}

// uuidGenerator produces canonical v4 UUID strings.
type uuidGenerator struct{}

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func (uuidGenerator) Name() string { return "uuid" }

func (uuidGenerator) Synchronous() bool { return true }

func (uuidGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeUUID
}

func (uuidGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	return gc.Source.UUID(), nil
}

func (uuidGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && uuidV4.MatchString(s)
}

// decimalGenerator produces Decimal128 values for money-grade precision.
type decimalGenerator struct{}

var decimalShape = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

func (decimalGenerator) Name() string { return "decimal128" }

func (decimalGenerator) Synchronous() bool { return true }

func (decimalGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeDecimal
}

func (decimalGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	c := &gc.Field.Constraints
	name := strings.ToLower(fieldName(gc.FieldPath))

	var f float64
	switch {
	case strings.Contains(name, "price") || strings.Contains(name, "cost") ||
		strings.Contains(name, "amount") || strings.Contains(name, "balance"):
		f, _ = asFloat(drawBucket(s, priceBuckets, false))
	case c.Min != nil || c.Max != nil:
		v, _ := asFloat(constraintDirected(s, c))
		f = v
	default:
		f = s.Round2(0, 10000)
	}

	text := fmt.Sprintf("%.2f", f)
	dec, err := primitive.ParseDecimal128(text)
	if err != nil {
		return nil, fmt.Errorf("decimal128 from %q: %w", text, err)
	}
	return dec, nil
}

func (decimalGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	switch d := v.(type) {
	case nil:
		return true
	case primitive.Decimal128:
		return decimalShape.MatchString(d.String())
	case string:
		return decimalShape.MatchString(d)
	default:
		return false
	}
}

// bigintGenerator produces int64 values beyond the plain number range.
type bigintGenerator struct{}

func (bigintGenerator) Name() string { return "bigint" }

func (bigintGenerator) Synchronous() bool { return true }

func (bigintGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeBigInt
}

func (bigintGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	c := &gc.Field.Constraints
	if c.Min != nil || c.Max != nil {
		v, _ := asFloat(constraintDirected(s, c))
		return int64(v), nil
	}
	return s.Int64n(1_000_000_000_000), nil
}

func (bigintGenerator) Validate(v any, c *analyzer.Constraints) bool {
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
