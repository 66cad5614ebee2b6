package factory

import (
	"context"
	"fmt"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/schema"
	"github.com/mockdata-labs/fabricate/internal/sink"
)

// stitch resolves or creates related records for one field and writes the
// link (identifiers for references, documents for embeds) into the parent.
// Resolved identifiers are cached per (target, field) so repeated requests
// within one run link consistently; the cache is never invalidated
// mid-run on purpose.
func (b *Builder) stitch(ctx context.Context, state *runState, doc Document, field string, count int) error {
	fa := state.analysis.Field(field)
	if fa == nil || fa.Relationship == nil {
		return &RelationshipError{Field: field, Reason: "no relationship metadata"}
	}

	if count == 0 {
		if fa.IsArray || fa.Relationship.IsArray {
			doc[field] = []any{}
		}
		return nil
	}

	switch fa.Relationship.Kind {
	case analyzer.KindReference:
		return b.stitchReference(ctx, state, doc, field, fa, count)
	case analyzer.KindEmbedded, analyzer.KindSubdocument:
		return b.stitchEmbedded(ctx, state, doc, field, fa, count)
	default:
		return &RelationshipError{Field: field, Reason: fmt.Sprintf("unknown relationship kind %s", fa.Relationship.Kind)}
	}
}

func (b *Builder) stitchReference(ctx context.Context, state *runState, doc Document, field string, fa *analyzer.FieldAnalysis, count int) error {
	target := fa.Relationship.Target
	if target == "" {
		return &RelationshipError{Field: field, Reason: "reference without a target type"}
	}
	targetSchema, ok := b.models.Resolve(target)
	if !ok {
		return &RelationshipError{Field: field, Reason: fmt.Sprintf("cannot resolve target type %q", target)}
	}

	cacheKey := target + "|" + field
	ids := state.stitchCache[cacheKey]

	if len(ids) < count {
		resolved, err := b.resolveTargets(ctx, state, targetSchema, count-len(ids))
		if err != nil {
			return &RelationshipError{Field: field, Reason: "failed to resolve related records", Err: err}
		}
		ids = append(ids, resolved...)
		state.stitchCache[cacheKey] = ids
	}

	if fa.IsArray || fa.Relationship.IsArray {
		linked := make([]any, count)
		copy(linked, ids[:count])
		doc[field] = linked
	} else {
		doc[field] = ids[0]
	}
	return nil
}

// resolveTargets reuses existing records from the sink first, then creates
// the remainder through a child builder sharing this builder's source,
// registry, sink and models.
func (b *Builder) resolveTargets(ctx context.Context, state *runState, targetSchema *schema.Schema, need int) ([]any, error) {
	var ids []any

	if state.mode == runModeCreate {
		existing, err := b.store.Find(ctx, targetSchema.Name, need)
		if err != nil {
			return nil, fmt.Errorf("failed to query existing %s records: %w", targetSchema.Name, err)
		}
		for _, doc := range existing {
			if id, ok := sink.DocumentID(doc); ok {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) >= need {
		return ids[:need], nil
	}

	child := b.child(targetSchema)
	remaining := need - len(ids)

	var created []Document
	if state.mode == runModeCreate {
		result, err := child.Create(ctx, remaining)
		if err != nil {
			return nil, err
		}
		created = result.Documents
	} else {
		docs, err := child.Make(remaining)
		if err != nil {
			return nil, err
		}
		created = docs
	}

	for _, doc := range created {
		id, ok := sink.DocumentID(doc)
		if !ok {
			return nil, fmt.Errorf("created %s record has no identifier", targetSchema.Name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (b *Builder) stitchEmbedded(ctx context.Context, state *runState, doc Document, field string, fa *analyzer.FieldAnalysis, count int) error {
	var nestedSchema *schema.Schema
	if f := b.schema.Field(field); f != nil {
		switch {
		case f.Schema != nil:
			nestedSchema = f.Schema
		case len(f.Fields) > 0:
			nestedSchema = &schema.Schema{Name: b.schema.Name + "." + field, Fields: f.Fields}
		}
	}
	if nestedSchema == nil {
		return &RelationshipError{Field: field, Reason: "no nested schema to embed"}
	}

	child := b.child(nestedSchema)
	docs, err := child.Build(count)
	if err != nil {
		return &RelationshipError{Field: field, Reason: "failed to build embedded records", Err: err}
	}

	if fa.IsArray || fa.Relationship.IsArray {
		out := make([]any, len(docs))
		for i, d := range docs {
			out[i] = d
		}
		doc[field] = out
	} else {
		doc[field] = docs[0]
	}
	return nil
}

// child builds a sub-builder sharing the parent's environment so one seed
// drives the whole recursive run.
func (b *Builder) child(s *schema.Schema) *Builder {
	child := New(s,
		WithSource(b.source),
		WithRegistry(b.registry),
		WithAnalyzer(b.an),
		WithSink(b.store),
		WithModels(b.models),
		WithBatchSize(b.batchSize),
	)
	if b.continueOnError {
		WithContinueOnError()(child)
	}
	if b.strict {
		WithStrictValidation()(child)
	}
	return child
}
