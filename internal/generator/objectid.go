package generator

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
)

// objectIDGenerator produces identifiers in the host database's native
// format: 24 lowercase hex characters encoding a timestamp, machine,
// process and counter composite. Structural validity is a hard contract;
// the bytes come from the seeded source so output is reproducible.
type objectIDGenerator struct{}

func (objectIDGenerator) Name() string { return "objectid" }

func (objectIDGenerator) Synchronous() bool { return true }

func (objectIDGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeObjectID
}

func (objectIDGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	return gc.Source.ObjectID(), nil
}

func (objectIDGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	switch id := v.(type) {
	case nil:
		return true
	case primitive.ObjectID:
		return !id.IsZero()
	case string:
		_, err := primitive.ObjectIDFromHex(id)
		return err == nil
	default:
		return false
	}
}
