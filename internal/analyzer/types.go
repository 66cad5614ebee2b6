package analyzer

import (
	"regexp"
	"time"

	"github.com/mockdata-labs/fabricate/internal/pattern"
)

// FieldType is the normalized type a generator is selected against.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeDate     FieldType = "date"
	TypeObjectID FieldType = "objectid"
	TypeArray    FieldType = "array"
	TypeObject   FieldType = "object"
	TypeMixed    FieldType = "mixed"
	TypeBuffer   FieldType = "buffer"
	TypeMap      FieldType = "map"
	TypeDecimal  FieldType = "decimal128"
	TypeBigInt   FieldType = "bigint"
	TypeUUID     FieldType = "uuid"
)

// Constraints is the normalized validation record extracted from a field's
// declared options. Nothing is inferred; absent declarations stay nil.
type Constraints struct {
	Required bool
	Unique   bool

	Min *float64
	Max *float64

	MinDate *time.Time
	MaxDate *time.Time

	MinLength *int
	MaxLength *int

	Match *regexp.Regexp
	Enum  []string

	Default any

	// Validator is opaque to generation; it only participates in
	// post-generation validation.
	Validator    func(any) bool
	ValidatorMsg string
}

// RelationshipKind distinguishes how a field connects to other records.
type RelationshipKind string

const (
	KindReference   RelationshipKind = "reference"
	KindEmbedded    RelationshipKind = "embedded"
	KindSubdocument RelationshipKind = "subdocument"
)

// Relationship describes a reference or nested-document link.
type Relationship struct {
	Kind    RelationshipKind
	Target  string
	IsArray bool
}

// FieldAnalysis is the full per-field result the builder consumes.
type FieldAnalysis struct {
	Path     string
	Type     FieldType
	Required bool
	Unique   bool
	IsArray  bool

	Default      any
	Constraints  Constraints
	Relationship *Relationship

	Patterns []pattern.Match
	Semantic string

	// GeneratorHint prefers the top pattern's generator, then
	// "semantic:<category>", then "type:<fieldType>".
	GeneratorHint string

	// AutoGenerate is false when a default exists; such fields are left to
	// the schema layer to fill.
	AutoGenerate bool

	Nested *Analysis
}

// Complexity tiers a schema by size, relationships and nesting.
type Complexity string

const (
	Simple   Complexity = "simple"
	Moderate Complexity = "moderate"
	Complex  Complexity = "complex"
)

// Analysis aggregates every analyzable field of one schema. Fields keeps
// declaration order; lookup by path goes through Field(). Instances are
// immutable once Analyze returns them.
type Analysis struct {
	ModelName string
	Fields    []*FieldAnalysis

	RequiredFields     []string
	UniqueFields       []string
	RelationshipFields []string

	Complexity Complexity
	Depth      int

	byPath map[string]*FieldAnalysis

	// Counts across every nesting level, feeding the complexity tier.
	totalFields        int
	totalRelationships int
}

// Field returns the analysis for a path at this level, or nil.
func (a *Analysis) Field(path string) *FieldAnalysis {
	return a.byPath[path]
}

// FieldCount is the number of analyzable fields at this level.
func (a *Analysis) FieldCount() int { return len(a.Fields) }
