package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mockdata-labs/fabricate/internal/schema"
)

// classifyType maps a declared native type name to the normalized
// FieldType. Unknown declarations become mixed rather than failing.
func classifyType(declared string) FieldType {
	switch strings.ToLower(declared) {
	case "string", "text", "varchar":
		return TypeString
	case "number", "int", "integer", "float", "double", "decimal":
		return TypeNumber
	case "bool", "boolean":
		return TypeBoolean
	case "date", "datetime", "timestamp":
		return TypeDate
	case "objectid", "id", "ref":
		return TypeObjectID
	case "array":
		return TypeArray
	case "object", "subdocument":
		return TypeObject
	case "mixed", "any":
		return TypeMixed
	case "buffer", "binary", "bytes":
		return TypeBuffer
	case "map":
		return TypeMap
	case "decimal128":
		return TypeDecimal
	case "bigint", "long", "int64":
		return TypeBigInt
	case "uuid":
		return TypeUUID
	default:
		return TypeMixed
	}
}

// extractConstraints reads declared options into a normalized record. The
// only transformation is compiling the match pattern; a bad pattern is a
// declaration error, not something to paper over.
func extractConstraints(f *schema.Field) (Constraints, error) {
	c := Constraints{
		Required:     f.Required,
		Unique:       f.Unique,
		Min:          f.Min,
		Max:          f.Max,
		MinDate:      f.MinDate,
		MaxDate:      f.MaxDate,
		MinLength:    f.MinLength,
		MaxLength:    f.MaxLength,
		Enum:         f.Enum,
		Default:      f.Default,
		Validator:    f.Validate,
		ValidatorMsg: f.ValidateMsg,
	}
	if f.Match != "" {
		re, err := regexp.Compile(f.Match)
		if err != nil {
			return Constraints{}, fmt.Errorf("field %s: invalid match pattern %q: %w", f.Name, f.Match, err)
		}
		c.Match = re
	}
	return c, nil
}

// detectRelationship checks reference first, then embedded, then
// subdocument. First match wins.
func detectRelationship(f *schema.Field) *Relationship {
	if f.Ref != "" {
		return &Relationship{Kind: KindReference, Target: f.Ref, IsArray: f.IsArray}
	}
	if f.Schema != nil {
		return &Relationship{Kind: KindEmbedded, IsArray: f.IsArray}
	}
	if len(f.Fields) > 0 {
		return &Relationship{Kind: KindSubdocument, IsArray: f.IsArray}
	}
	return nil
}
