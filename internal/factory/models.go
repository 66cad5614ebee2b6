package factory

import (
	"fmt"
	"sync"

	"github.com/mockdata-labs/fabricate/internal/schema"
)

// ModelSet resolves type names to schemas for relationship stitching. The
// builder defaults to a shared instance for convenience, but any set can
// be injected so tests stay isolated.
type ModelSet struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema
}

// NewModelSet creates an empty model set.
func NewModelSet() *ModelSet {
	return &ModelSet{schemas: make(map[string]*schema.Schema)}
}

// Register makes a schema resolvable under its name.
func (m *ModelSet) Register(s *schema.Schema) error {
	if s == nil || s.Name == "" {
		return fmt.Errorf("register model: schema must have a name")
	}
	m.mu.Lock()
	m.schemas[s.Name] = s
	m.mu.Unlock()
	return nil
}

// Resolve returns the schema registered under name.
func (m *ModelSet) Resolve(name string) (*schema.Schema, bool) {
	m.mu.RLock()
	s, ok := m.schemas[name]
	m.mu.RUnlock()
	return s, ok
}

var defaultModels = NewModelSet()

// DefaultModels returns the shared model set.
func DefaultModels() *ModelSet { return defaultModels }

// RegisterModel registers a schema in the shared model set.
func RegisterModel(s *schema.Schema) error { return defaultModels.Register(s) }
