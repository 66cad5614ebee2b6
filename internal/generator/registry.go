package generator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
)

// Config controls how a generator is registered.
type Config struct {
	// Priority breaks ties between competing generators; higher wins.
	Priority int
	// Disabled registers the generator without making it selectable.
	Disabled bool
}

type entry struct {
	gen      Generator
	name     string
	priority int
	enabled  bool
	order    int
}

// Registry is the catalogue of generators. Mutations and the per-type
// selection cache are guarded by one mutex; registration invalidates the
// cache, which is rebuilt lazily on the next lookup.
type Registry struct {
	mu      sync.Mutex
	entries []*entry
	byName  map[string]*entry
	cache   map[analyzer.FieldType][]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*entry),
		cache:  make(map[analyzer.FieldType][]*entry),
	}
}

// Register adds a generator under name. A nil generator or a duplicate
// name is a configuration error raised here, not at generation time.
func (r *Registry) Register(name string, g Generator, cfg Config) error {
	if g == nil {
		return fmt.Errorf("register %q: nil generator", name)
	}
	if name == "" {
		return fmt.Errorf("register: empty generator name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("register %q: already registered", name)
	}

	e := &entry{
		gen:      g,
		name:     name,
		priority: cfg.Priority,
		enabled:  !cfg.Disabled,
		order:    len(r.entries),
	}
	r.entries = append(r.entries, e)
	r.byName[name] = e
	r.cache = make(map[analyzer.FieldType][]*entry)
	return nil
}

// Enable marks a registered generator selectable.
func (r *Registry) Enable(name string) error { return r.setEnabled(name, true) }

// Disable removes a generator from selection without unregistering it.
func (r *Registry) Disable(name string) error { return r.setEnabled(name, false) }

func (r *Registry) setEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("unknown generator %q", name)
	}
	e.enabled = enabled
	r.cache = make(map[analyzer.FieldType][]*entry)
	return nil
}

// candidates returns enabled entries claiming the field type, from the
// cache when warm.
func (r *Registry) candidates(ft analyzer.FieldType) []*entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[ft]; ok {
		return cached
	}
	var out []*entry
	for _, e := range r.entries {
		if e.enabled && e.gen.CanHandle(ft, nil) {
			out = append(out, e)
		}
	}
	r.cache[ft] = out
	return out
}

// All returns every enabled generator claiming the field type, in
// registration order.
func (r *Registry) All(ft analyzer.FieldType) []Generator {
	entries := r.candidates(ft)
	out := make([]Generator, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.gen)
	}
	return out
}

// Best selects the winning generator for (type, constraints), or nil when
// none claims the pair. Ordering: priority desc, specificity desc,
// registration order (stable sort).
func (r *Registry) Best(ft analyzer.FieldType, c *analyzer.Constraints) Generator {
	var matched []*entry
	for _, e := range r.candidates(ft) {
		if e.gen.CanHandle(ft, c) {
			matched = append(matched, e)
		}
	}
	switch len(matched) {
	case 0:
		return nil
	case 1:
		return matched[0].gen
	}

	sorted := make([]*entry, len(matched))
	copy(sorted, matched)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].priority != sorted[j].priority {
			return sorted[i].priority > sorted[j].priority
		}
		return specificity(sorted[i].name, c) > specificity(sorted[j].name, c)
	})
	return sorted[0].gen
}

// specificity weights a generator by the constraint shapes its type name
// suggests it handles.
func specificity(name string, c *analyzer.Constraints) int {
	if c == nil {
		return 0
	}
	score := 0
	if len(c.Enum) > 0 && (strings.Contains(name, "string") || strings.Contains(name, "array")) {
		score += 2
	}
	if c.Match != nil && strings.Contains(name, "string") {
		score += 2
	}
	if c.Min != nil || c.Max != nil {
		if strings.Contains(name, "number") || strings.Contains(name, "date") ||
			strings.Contains(name, "decimal") || strings.Contains(name, "bigint") {
			score++
		}
	}
	return score
}
