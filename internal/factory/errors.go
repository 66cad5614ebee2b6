package factory

import "fmt"

// The error taxonomy: configuration, generation, relationship, validation
// and persistence errors. Each carries enough context (field path, record
// index, generator name) to reproduce the failure under the same seed.

// ConfigError is an invalid builder configuration, reported on the first
// terminal call after the offending chained call.
type ConfigError struct {
	Op     string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Op, e.Reason)
}

// GenerationError is fatal for the whole run: no generator for a field, a
// generator failure, or a sync path hitting an async-only generator.
type GenerationError struct {
	FieldPath   string
	RecordIndex int
	Generator   string
	Reason      string
	Err         error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("generation error at %s (record %d)", e.FieldPath, e.RecordIndex)
	if e.Generator != "" {
		msg += fmt.Sprintf(" via %s", e.Generator)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }

// RelationshipError names the field whose related records could not be
// resolved or created.
type RelationshipError struct {
	Field  string
	Reason string
	Err    error
}

func (e *RelationshipError) Error() string {
	msg := fmt.Sprintf("relationship error on field %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RelationshipError) Unwrap() error { return e.Err }

// ValidationError records a generated value that failed its own
// constraints after the single permitted regeneration attempt. Collected
// as warnings unless strict validation escalates it.
type ValidationError struct {
	FieldPath   string
	RecordIndex int
	Reason      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error at %s (record %d): %s", e.FieldPath, e.RecordIndex, e.Reason)
}

// PersistenceError wraps a failed batch insert.
type PersistenceError struct {
	Batch int
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error in batch %d: %v", e.Batch, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
