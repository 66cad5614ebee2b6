// Package sink is the persistence boundary: the create path inserts
// generated documents in batches, and the relationship stitcher reads
// existing candidates back. Three implementations ship: in-memory
// (default), MongoDB, and SQL.
package sink

import (
	"context"
	"sync"
)

// Sink persists and queries generated documents by collection name.
type Sink interface {
	// InsertMany stores docs. With ordered true the first failure aborts
	// the batch; with ordered false valid documents are kept and the
	// error reports what was skipped. It returns the stored documents,
	// identifiers filled in.
	InsertMany(ctx context.Context, collection string, docs []map[string]any, ordered bool) ([]map[string]any, error)

	// Find returns up to limit existing documents from a collection.
	Find(ctx context.Context, collection string, limit int) ([]map[string]any, error)
}

// Memory is the default sink: an in-process document store. Safe for
// concurrent use.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]map[string]any)}
}

// InsertMany appends docs to the named collection.
func (m *Memory) InsertMany(_ context.Context, collection string, docs []map[string]any, _ bool) ([]map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], docs...)
	return docs, nil
}

// Find returns up to limit documents from the named collection.
func (m *Memory) Find(_ context.Context, collection string, limit int) ([]map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.collections[collection]
	if limit > 0 && limit < len(stored) {
		stored = stored[:limit]
	}
	out := make([]map[string]any, len(stored))
	copy(out, stored)
	return out, nil
}

// Count returns the number of stored documents in a collection.
func (m *Memory) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}
