// Package fabricate generates realistic test data from typed schemas. It
// analyzes a schema's fields, infers semantic intent from field names,
// extracts validation constraints, selects the best-matching generator
// per field, and assembles complete documents with overrides, nested
// paths and relationships applied.
//
// The entry point is For:
//
//	user := schema.New("user",
//		&schema.Field{Name: "name", Type: "string", Required: true},
//		&schema.Field{Name: "age", Type: "number", Min: schema.Float(18), Max: schema.Float(65)},
//		&schema.Field{Name: "email", Type: "string", Unique: true},
//	)
//	docs, err := fabricate.For(user, fabricate.WithSeed(42)).Build(5)
package fabricate

import (
	"github.com/mockdata-labs/fabricate/internal/factory"
	"github.com/mockdata-labs/fabricate/internal/schema"
)

// Builder configures and runs document generation for one schema.
type Builder = factory.Builder

// Document is one generated record.
type Document = factory.Document

// Option configures a Builder.
type Option = factory.Option

// Re-exported builder options.
var (
	WithSeed             = factory.WithSeed
	WithSource           = factory.WithSource
	WithRegistry         = factory.WithRegistry
	WithAnalyzer         = factory.WithAnalyzer
	WithSink             = factory.WithSink
	WithModels           = factory.WithModels
	WithBatchSize        = factory.WithBatchSize
	WithContinueOnError  = factory.WithContinueOnError
	WithStrictValidation = factory.WithStrictValidation
)

// For returns a builder for the given schema. It attaches to any schema
// without modifying it; the schema stays a plain declaration.
func For(s *schema.Schema, opts ...Option) *Builder {
	return factory.New(s, opts...)
}

// RegisterModel makes a schema resolvable by name for relationship
// stitching via the shared model set.
func RegisterModel(s *schema.Schema) error {
	return factory.RegisterModel(s)
}
