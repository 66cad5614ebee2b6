// Package analyzer turns a schema declaration into the per-field analysis
// the document builder consumes: normalized types, extracted constraints,
// detected relationships, recognized name patterns and semantic categories.
package analyzer

import (
	"fmt"
	"sync"

	"github.com/mockdata-labs/fabricate/internal/pattern"
	"github.com/mockdata-labs/fabricate/internal/schema"
)

// DefaultMaxDepth bounds recursion into nested definitions so a
// self-referential schema cannot loop forever.
const DefaultMaxDepth = 5

// internalFields are identity/version fields never analyzed or generated.
var internalFields = map[string]bool{
	"_id": true,
	"__v": true,
}

// Options control one analyzer instance.
type Options struct {
	// MaxDepth bounds nested recursion; zero means DefaultMaxDepth.
	MaxDepth int
	// EnableCaching reuses results keyed by (model name, options). Cache
	// hits return the identical Analysis pointer. There is no automatic
	// invalidation; callers that mutate a schema must ClearCache.
	EnableCaching bool
}

// Analyzer walks schemas. Safe for concurrent use; the cache is
// mutex-guarded.
type Analyzer struct {
	opts Options

	mu    sync.RWMutex
	cache map[string]*Analysis
}

// New creates an analyzer.
func New(opts Options) *Analyzer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Analyzer{
		opts:  opts,
		cache: make(map[string]*Analysis),
	}
}

// ClearCache drops every cached analysis.
func (a *Analyzer) ClearCache() {
	a.mu.Lock()
	a.cache = make(map[string]*Analysis)
	a.mu.Unlock()
}

func (a *Analyzer) cacheKey(modelName string) string {
	return fmt.Sprintf("%s|depth=%d", modelName, a.opts.MaxDepth)
}

// Analyze produces the complete analysis for a schema.
func (a *Analyzer) Analyze(s *schema.Schema) (*Analysis, error) {
	if s == nil {
		return nil, fmt.Errorf("analyze: nil schema")
	}

	if a.opts.EnableCaching {
		a.mu.RLock()
		cached, ok := a.cache[a.cacheKey(s.Name)]
		a.mu.RUnlock()
		if ok {
			return cached, nil
		}
	}

	result, err := a.walk(s.Name, "", s.Fields, 1)
	if err != nil {
		return nil, err
	}

	if a.opts.EnableCaching {
		a.mu.Lock()
		a.cache[a.cacheKey(s.Name)] = result
		a.mu.Unlock()
	}
	return result, nil
}

// walk analyzes one level of fields. prefix is the dotted path to this
// level ("" at the top) and depth counts levels starting at 1.
func (a *Analyzer) walk(modelName, prefix string, fields []*schema.Field, depth int) (*Analysis, error) {
	result := &Analysis{
		ModelName: modelName,
		Depth:     depth,
		byPath:    make(map[string]*FieldAnalysis),
	}

	maxDepth := depth
	relationships := 0
	totalFields := 0

	for _, f := range fields {
		if internalFields[f.Name] {
			continue
		}
		totalFields++

		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		constraints, err := extractConstraints(f)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", modelName, err)
		}

		fa := &FieldAnalysis{
			Path:         path,
			Required:     f.Required,
			Unique:       f.Unique,
			IsArray:      f.IsArray,
			Default:      f.Default,
			Constraints:  constraints,
			Relationship: detectRelationship(f),
			AutoGenerate: f.Default == nil,
		}
		fa.Type = classifyType(f.Type)

		switch {
		case fa.Relationship != nil && fa.Relationship.Kind == KindReference:
			// Reference fields carry identifiers regardless of how they
			// were declared.
			fa.Type = TypeObjectID
			relationships++
		case fa.Relationship != nil:
			fa.Type = TypeObject
			relationships++
			if depth < a.opts.MaxDepth {
				nestedFields := f.Fields
				nestedName := modelName
				if f.Schema != nil {
					nestedFields = f.Schema.Fields
					nestedName = f.Schema.Name
				}
				nested, err := a.walk(nestedName, path, nestedFields, depth+1)
				if err != nil {
					return nil, err
				}
				fa.Nested = nested
				totalFields += nested.totalFields
				relationships += nested.totalRelationships
				if d := nested.Depth; d > maxDepth {
					maxDepth = d
				}
			}
		case fa.IsArray && fa.Type != TypeArray:
			// Arrays of scalars go to the array generator; the element
			// semantics come from the field name and constraints.
			fa.Type = TypeArray
		}

		fa.Patterns = pattern.Recognize(f.Name)
		if sem, ok := pattern.AnalyzeSemantics(f.Name, string(fa.Type)); ok {
			fa.Semantic = sem.Category
		}
		fa.GeneratorHint = hint(fa)

		result.Fields = append(result.Fields, fa)
		result.byPath[path] = fa

		if fa.Required {
			result.RequiredFields = append(result.RequiredFields, path)
		}
		if fa.Unique {
			result.UniqueFields = append(result.UniqueFields, path)
		}
		if fa.Relationship != nil {
			result.RelationshipFields = append(result.RelationshipFields, path)
		}
	}

	result.Depth = maxDepth
	result.totalFields = totalFields
	result.totalRelationships = relationships
	result.Complexity = complexity(totalFields, relationships, maxDepth)
	return result, nil
}

func hint(fa *FieldAnalysis) string {
	if len(fa.Patterns) > 0 {
		return fa.Patterns[0].Generator
	}
	if fa.Semantic != "" {
		return "semantic:" + fa.Semantic
	}
	return "type:" + string(fa.Type)
}

func complexity(fieldCount, relationships, depth int) Complexity {
	switch {
	case fieldCount <= 5 && relationships <= 1 && depth <= 2:
		return Simple
	case fieldCount <= 15 && relationships <= 5 && depth <= 4:
		return Moderate
	default:
		return Complex
	}
}
