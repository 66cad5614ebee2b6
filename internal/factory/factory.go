// Package factory assembles documents: it walks a schema analysis in
// declaration order, selects the best generator per field, writes values
// into (possibly nested) output paths, then applies overrides and stitches
// relationships. Build produces plain documents, Make adds identifiers
// without persisting, Create persists through the configured sink in
// fixed-size batches.
package factory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/generator"
	"github.com/mockdata-labs/fabricate/internal/random"
	"github.com/mockdata-labs/fabricate/internal/schema"
	"github.com/mockdata-labs/fabricate/internal/sink"
)

// Document is one generated record.
type Document = map[string]any

// DefaultBatchSize is the persistence batch size unless configured.
const DefaultBatchSize = 100

// uniqueAttempts bounds the retry loop for unique fields before the run
// fails with a generation error.
const uniqueAttempts = 100

type relatedRequest struct {
	field string
	count int
}

// Builder is the factory core. Configure it with chained calls, then
// finish with Build, Make or Create. A Builder is single-use state for one
// logical configuration but may run Build multiple times; it is not safe
// for concurrent use.
type Builder struct {
	schema     *schema.Schema
	collection string

	an       *analyzer.Analyzer
	registry *generator.Registry
	source   *random.Source
	store    sink.Sink
	models   *ModelSet

	count           int
	overrides       map[string]any
	overrideOrder   []string
	traits          []string
	traitDefs       map[string]map[string]any
	related         []relatedRequest
	batchSize       int
	continueOnError bool
	strict          bool

	cfgErr       error
	lastWarnings []error
}

// Option configures a Builder.
type Option func(*Builder)

// WithSeed makes the whole pipeline deterministic.
func WithSeed(seed int64) Option {
	return func(b *Builder) { b.source = random.NewSource(seed) }
}

// WithSource injects a fully constructed randomness source.
func WithSource(s *random.Source) Option {
	return func(b *Builder) { b.source = s }
}

// WithRegistry injects a generator registry.
func WithRegistry(r *generator.Registry) Option {
	return func(b *Builder) { b.registry = r }
}

// WithAnalyzer injects a schema analyzer.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(b *Builder) { b.an = a }
}

// WithSink sets the persistence sink used by Create.
func WithSink(s sink.Sink) Option {
	return func(b *Builder) { b.store = s }
}

// WithModels sets the model set used to resolve relationship targets.
func WithModels(m *ModelSet) Option {
	return func(b *Builder) { b.models = m }
}

// WithBatchSize sets the persistence batch size.
func WithBatchSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithContinueOnError makes Create skip failed batches instead of
// aborting, reporting them on the result.
func WithContinueOnError() Option {
	return func(b *Builder) { b.continueOnError = true }
}

// WithStrictValidation escalates post-generation validation failures to
// generation errors.
func WithStrictValidation() Option {
	return func(b *Builder) { b.strict = true }
}

var defaultRegistry = generator.DefaultRegistry()

// New creates a builder for a schema. Defaults: count 1, shared default
// registry and model set, a fresh in-memory sink, batch size 100, and a
// time-seeded source.
func New(s *schema.Schema, opts ...Option) *Builder {
	b := &Builder{
		schema:     s,
		collection: s.Name,
		an:         analyzer.New(analyzer.Options{EnableCaching: true}),
		registry:   defaultRegistry,
		models:     DefaultModels(),
		store:      sink.NewMemory(),
		count:      1,
		batchSize:  DefaultBatchSize,
		overrides:  make(map[string]any),
		traitDefs:  make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.source == nil {
		b.source = random.NewSource(time.Now().UnixNano())
	}
	return b
}

func (b *Builder) configErr(op, reason string) *Builder {
	if b.cfgErr == nil {
		b.cfgErr = &ConfigError{Op: op, Reason: reason}
	}
	return b
}

// Count sets how many documents terminal calls produce by default.
func (b *Builder) Count(n int) *Builder {
	if n < 0 {
		return b.configErr("Count", fmt.Sprintf("negative count %d", n))
	}
	b.count = n
	return b
}

// With overrides a single field. Dotted paths replace the whole value at
// that path; top-level overrides shallow-merge over generated output.
func (b *Builder) With(field string, value any) *Builder {
	if field == "" {
		return b.configErr("With", "empty field name")
	}
	if _, exists := b.overrides[field]; !exists {
		b.overrideOrder = append(b.overrideOrder, field)
	}
	b.overrides[field] = value
	return b
}

// WithValues merges a map of overrides.
func (b *Builder) WithValues(values map[string]any) *Builder {
	// Deterministic application order regardless of map iteration.
	keys := sortedKeys(values)
	for _, k := range keys {
		b.With(k, values[k])
	}
	return b
}

// WithRelated requests n related records for a relationship field,
// stitched in after generation.
func (b *Builder) WithRelated(field string, n int) *Builder {
	if field == "" {
		return b.configErr("WithRelated", "empty field name")
	}
	if n < 0 {
		return b.configErr("WithRelated", fmt.Sprintf("negative count %d for field %s", n, field))
	}
	b.related = append(b.related, relatedRequest{field: field, count: n})
	return b
}

// DefineTrait registers a named bundle of overrides on this builder.
func (b *Builder) DefineTrait(name string, overrides map[string]any) *Builder {
	if name == "" {
		return b.configErr("DefineTrait", "empty trait name")
	}
	b.traitDefs[name] = overrides
	return b
}

// Trait applies a previously defined trait. Adding the same name twice
// has no additional effect; first-insertion order is preserved.
func (b *Builder) Trait(name string) *Builder {
	for _, existing := range b.traits {
		if existing == name {
			return b
		}
	}
	b.traits = append(b.traits, name)
	return b
}

// Warnings returns validation warnings collected by the last run.
func (b *Builder) Warnings() []error { return b.lastWarnings }

// Build generates documents synchronously. Every participating generator
// must have a synchronous path; documents are plain values with no
// identifiers assigned.
func (b *Builder) Build(n ...int) ([]Document, error) {
	return b.run(context.Background(), b.resolveCount(n), runModeBuild)
}

// BuildOne generates a single document.
func (b *Builder) BuildOne() (Document, error) {
	docs, err := b.run(context.Background(), 1, runModeBuild)
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// Make generates documents synchronously with identifiers assigned, still
// unpersisted.
func (b *Builder) Make(n ...int) ([]Document, error) {
	return b.run(context.Background(), b.resolveCount(n), runModeMake)
}

// MakeOne generates a single unpersisted document with an identifier.
func (b *Builder) MakeOne() (Document, error) {
	docs, err := b.run(context.Background(), 1, runModeMake)
	if err != nil {
		return nil, err
	}
	return docs[0], nil
}

// Create generates documents on the asynchronous path and persists them
// in fixed-size batches.
func (b *Builder) Create(ctx context.Context, n ...int) (*CreateResult, error) {
	docs, err := b.run(ctx, b.resolveCount(n), runModeCreate)
	if err != nil {
		return nil, err
	}
	return b.persist(ctx, docs)
}

// CreateOne generates and persists a single document.
func (b *Builder) CreateOne(ctx context.Context) (Document, error) {
	result, err := b.Create(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(result.Documents) == 0 {
		return nil, &PersistenceError{Batch: 0, Err: fmt.Errorf("no document persisted")}
	}
	return result.Documents[0], nil
}

func (b *Builder) resolveCount(n []int) int {
	if len(n) > 0 {
		return n[0]
	}
	return b.count
}

type runMode int

const (
	runModeBuild runMode = iota
	runModeMake
	runModeCreate
)

// runState is the per-run mutable context: the unique tracker spans the
// whole N-record loop, the stitch cache keeps relationship targets stable
// within one run.
type runState struct {
	analysis    *analyzer.Analysis
	overrides   map[string]any
	unique      *generator.UniqueTracker
	stitchCache map[string][]any
	mode        runMode
	warnings    []error
}

func (b *Builder) run(ctx context.Context, n int, mode runMode) ([]Document, error) {
	if b.cfgErr != nil {
		return nil, b.cfgErr
	}
	if n < 0 {
		return nil, &ConfigError{Op: "run", Reason: fmt.Sprintf("negative count %d", n)}
	}

	analysis, err := b.an.Analyze(b.schema)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze schema %s: %w", b.schema.Name, err)
	}

	state := &runState{
		analysis:    analysis,
		overrides:   b.effectiveOverrides(),
		unique:      generator.NewUniqueTracker(),
		stitchCache: make(map[string][]any),
		mode:        mode,
	}

	docs := make([]Document, 0, n)
	for i := 0; i < n; i++ {
		doc, err := b.buildRecord(ctx, state, i, n)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	b.lastWarnings = state.warnings
	return docs, nil
}

// effectiveOverrides merges trait overrides in trait order, then user
// overrides on top. Overrides always win over generated values.
func (b *Builder) effectiveOverrides() map[string]any {
	merged := make(map[string]any)
	for _, name := range b.traits {
		for _, k := range sortedKeys(b.traitDefs[name]) {
			merged[k] = b.traitDefs[name][k]
		}
	}
	for _, k := range b.overrideOrder {
		merged[k] = b.overrides[k]
	}
	return merged
}

func (b *Builder) buildRecord(ctx context.Context, state *runState, index, total int) (Document, error) {
	doc := Document{}
	siblings := make(map[string]any)

	if err := b.generateFields(ctx, state, state.analysis, doc, siblings, index, total); err != nil {
		return nil, err
	}

	for path, value := range state.overrides {
		setPath(doc, path, value)
	}

	if state.mode != runModeBuild {
		sink.EnsureID(doc, b.source.ObjectID())
	}

	for _, req := range b.related {
		if err := b.stitch(ctx, state, doc, req.field, req.count); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// generateFields walks one analysis level in declaration order.
func (b *Builder) generateFields(ctx context.Context, state *runState, analysis *analyzer.Analysis, doc Document, siblings map[string]any, index, total int) error {
	for _, fa := range analysis.Fields {
		if _, overridden := state.overrides[fa.Path]; overridden {
			continue
		}
		if !fa.AutoGenerate {
			// Declared defaults are what the store would fill in; Make and
			// Create materialize them, Build leaves them to the store.
			if state.mode != runModeBuild && fa.Default != nil {
				setPath(doc, fa.Path, fa.Default)
				siblings[fa.Path] = fa.Default
			}
			continue
		}
		if b.pendingRelated(fa.Path) {
			continue
		}

		// Nested definitions generate structurally rather than through a
		// generator.
		if fa.Nested != nil && fa.Relationship != nil && fa.Relationship.Kind != analyzer.KindReference {
			value, err := b.generateNested(ctx, state, fa, siblings, index, total)
			if err != nil {
				return err
			}
			setPath(doc, fa.Path, value)
			siblings[fa.Path] = value
			continue
		}

		value, err := b.generateField(ctx, state, fa, siblings, index, total)
		if err != nil {
			return err
		}
		setPath(doc, fa.Path, value)
		siblings[fa.Path] = value
	}
	return nil
}

func (b *Builder) generateNested(ctx context.Context, state *runState, fa *analyzer.FieldAnalysis, siblings map[string]any, index, total int) (any, error) {
	build := func() (Document, error) {
		nested := Document{}
		if err := b.generateFields(ctx, state, fa.Nested, nested, siblings, index, total); err != nil {
			return nil, err
		}
		// Nested paths are dotted inside their own analysis; lift the
		// leaves back out of the intermediate containers.
		return extractAt(nested, fa.Path), nil
	}

	if fa.IsArray {
		n := b.source.IntBetween(1, 3)
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			doc, err := build()
			if err != nil {
				return nil, err
			}
			out = append(out, doc)
		}
		return out, nil
	}
	return build()
}

func (b *Builder) generateField(ctx context.Context, state *runState, fa *analyzer.FieldAnalysis, siblings map[string]any, index, total int) (any, error) {
	gen := b.registry.Best(fa.Type, &fa.Constraints)
	if gen == nil {
		return nil, &GenerationError{
			FieldPath:   fa.Path,
			RecordIndex: index,
			Reason:      fmt.Sprintf("no generator for type %s", fa.Type),
		}
	}
	if state.mode != runModeCreate && !gen.Synchronous() {
		return nil, &GenerationError{
			FieldPath:   fa.Path,
			RecordIndex: index,
			Generator:   gen.Name(),
			Reason:      "generator has no synchronous path",
		}
	}

	gc := &generator.Context{
		FieldPath:    fa.Path,
		RecordIndex:  index,
		TotalRecords: total,
		Field:        fa,
		Source:       b.source,
		Siblings:     siblings,
		Unique:       state.unique,
	}

	value, err := b.drawValue(ctx, state, gen, gc, fa, index)
	if err != nil {
		return nil, err
	}

	// Reference fields declared as arrays carry lists of identifiers.
	if fa.IsArray && fa.Type == analyzer.TypeObjectID {
		n := b.source.IntBetween(1, 3)
		out := []any{value}
		for len(out) < n {
			extra, err := gen.Generate(ctx, gc)
			if err != nil {
				return nil, &GenerationError{FieldPath: fa.Path, RecordIndex: index, Generator: gen.Name(), Err: err}
			}
			out = append(out, extra)
		}
		return out, nil
	}

	if !gen.Validate(value, &fa.Constraints) {
		warning := &ValidationError{
			FieldPath:   fa.Path,
			RecordIndex: index,
			Reason:      fmt.Sprintf("value %v failed constraints", value),
		}
		if b.strict {
			return nil, &GenerationError{
				FieldPath:   fa.Path,
				RecordIndex: index,
				Generator:   gen.Name(),
				Reason:      warning.Reason,
			}
		}
		state.warnings = append(state.warnings, warning)
	}
	return value, nil
}

// drawValue invokes the generator, retrying a bounded number of times for
// unique fields before failing the run.
func (b *Builder) drawValue(ctx context.Context, state *runState, gen generator.Generator, gc *generator.Context, fa *analyzer.FieldAnalysis, index int) (any, error) {
	if !fa.Unique {
		value, err := gen.Generate(ctx, gc)
		if err != nil {
			return nil, &GenerationError{FieldPath: fa.Path, RecordIndex: index, Generator: gen.Name(), Err: err}
		}
		return value, nil
	}

	for attempt := 0; attempt < uniqueAttempts; attempt++ {
		value, err := gen.Generate(ctx, gc)
		if err != nil {
			return nil, &GenerationError{FieldPath: fa.Path, RecordIndex: index, Generator: gen.Name(), Err: err}
		}
		if !state.unique.Seen(fa.Path, value) {
			state.unique.Record(fa.Path, value)
			return value, nil
		}
	}
	return nil, &GenerationError{
		FieldPath:   fa.Path,
		RecordIndex: index,
		Generator:   gen.Name(),
		Reason:      fmt.Sprintf("could not produce a unique value in %d attempts", uniqueAttempts),
	}
}

// BatchFailure records one failed batch under continue-on-error.
type BatchFailure struct {
	Index int
	Size  int
	Err   error
}

// CreateResult summarizes a Create call.
type CreateResult struct {
	Documents     []Document
	Inserted      int
	FailedBatches []BatchFailure
}

func (b *Builder) persist(ctx context.Context, docs []Document) (*CreateResult, error) {
	result := &CreateResult{Documents: docs}
	for start := 0; start < len(docs); start += b.batchSize {
		end := start + b.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]
		batchIndex := start / b.batchSize

		saved, err := b.store.InsertMany(ctx, b.collection, batch, !b.continueOnError)
		if err != nil {
			if !b.continueOnError {
				return nil, &PersistenceError{Batch: batchIndex, Err: err}
			}
			result.FailedBatches = append(result.FailedBatches, BatchFailure{
				Index: batchIndex,
				Size:  len(batch),
				Err:   err,
			})
			result.Inserted += len(saved)
			continue
		}
		result.Inserted += len(saved)
	}
	return result, nil
}

// setPath writes a value at a dotted path, creating intermediate maps.
func setPath(doc Document, path string, value any) {
	current := doc
	for {
		i := indexDot(path)
		if i < 0 {
			current[path] = value
			return
		}
		head, rest := path[:i], path[i+1:]
		next, ok := current[head].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[head] = next
		}
		current = next
		path = rest
	}
}

// extractAt returns the nested container a dotted prefix points at.
func extractAt(doc Document, prefix string) Document {
	current := doc
	path := prefix
	for {
		i := indexDot(path)
		if i < 0 {
			if inner, ok := current[path].(map[string]any); ok {
				return inner
			}
			return current
		}
		head, rest := path[:i], path[i+1:]
		inner, ok := current[head].(map[string]any)
		if !ok {
			return current
		}
		current = inner
		path = rest
	}
}

func indexDot(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

func (b *Builder) pendingRelated(path string) bool {
	for _, req := range b.related {
		if req.field == path {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
