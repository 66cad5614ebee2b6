package schema

import (
	"fmt"
	"strings"
	"time"
)

// Schema describes a document type: an ordered list of typed fields with
// their declared validation options. It is the introspection surface the
// analyzer walks; nothing here is inferred, only what the caller declared.
type Schema struct {
	Name   string
	Fields []*Field
}

// Field is one declared field. Type holds the native type name as declared
// ("string", "number", "date", "objectid", ...); unknown names are treated
// as mixed downstream. Nested object fields carry their sub-fields in
// Fields; embedded schema fields carry a full Schema.
type Field struct {
	Name     string
	Type     string
	Required bool
	Unique   bool
	IsArray  bool

	Min *float64
	Max *float64

	MinDate *time.Time
	MaxDate *time.Time

	MinLength *int
	MaxLength *int

	Match string
	Enum  []string

	Default any

	// Ref names the target type for reference fields.
	Ref string

	// Fields holds an inline subdocument definition.
	Fields []*Field

	// Schema holds an embedded schema definition.
	Schema *Schema

	// Validate is an optional custom validator. It is opaque to generation
	// and only consulted when validating produced values.
	Validate    func(any) bool
	ValidateMsg string
}

// New builds a schema from fields, preserving declaration order.
func New(name string, fields ...*Field) *Schema {
	return &Schema{Name: name, Fields: fields}
}

// Field returns the declared field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Validate checks structural sanity of the declaration: non-empty field
// names, no duplicate names at one level, consistent bounds, and recurses
// into nested definitions.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	seen := make(map[string]bool)
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %s: field with empty name", s.Name)
		}
		if strings.Contains(f.Name, ".") {
			return fmt.Errorf("schema %s: field name %q must not contain dots", s.Name, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %s: duplicate field %q", s.Name, f.Name)
		}
		seen[f.Name] = true
		if err := f.validate(s.Name); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) validate(schemaName string) error {
	if f.Ref != "" && f.Type != "" && f.Type != "objectid" {
		return fmt.Errorf("schema %s: field %s declares ref %q but type %q (refs must be objectid)", schemaName, f.Name, f.Ref, f.Type)
	}
	if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
		return fmt.Errorf("schema %s: field %s has min %v > max %v", schemaName, f.Name, *f.Min, *f.Max)
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("schema %s: field %s has minLength %d > maxLength %d", schemaName, f.Name, *f.MinLength, *f.MaxLength)
	}
	if f.Schema != nil {
		if err := f.Schema.Validate(); err != nil {
			return err
		}
	}
	for _, sub := range f.Fields {
		if err := sub.validate(schemaName + "." + f.Name); err != nil {
			return err
		}
	}
	return nil
}

// Float, Int and Time are pointer helpers for inline schema declarations.

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func Time(v time.Time) *time.Time { return &v }
