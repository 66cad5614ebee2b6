package sink

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo persists documents into MongoDB collections.
type Mongo struct {
	database *mongo.Database
}

// NewMongo wraps an already-connected database handle.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{database: db}
}

// ConnectMongo dials a MongoDB deployment and returns a sink over the
// named database, plus a disconnect func.
func ConnectMongo(ctx context.Context, url, dbName string) (*Mongo, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return NewMongo(client.Database(dbName)), client.Disconnect, nil
}

// InsertMany writes docs through the driver's InsertMany, mapping ordered
// directly onto the driver option. Assigned _id values are copied back
// into the returned documents. On a partial failure only the documents
// that actually landed are returned, alongside the error.
func (m *Mongo) InsertMany(ctx context.Context, collection string, docs []map[string]any, ordered bool) ([]map[string]any, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	payload := make([]any, len(docs))
	for i, doc := range docs {
		payload[i] = bson.M(doc)
	}

	result, err := m.database.Collection(collection).InsertMany(ctx, payload, options.InsertMany().SetOrdered(ordered))
	if err != nil {
		saved := succeededDocs(docs, result, err)
		return saved, fmt.Errorf("insert into %s: %w", collection, err)
	}
	for i, id := range result.InsertedIDs {
		docs[i]["_id"] = id
	}
	return docs, nil
}

// succeededDocs picks out the documents a failed InsertMany still wrote.
// The driver strips failed entries from InsertedIDs, so the remaining IDs
// line up with the docs whose indexes carry no write error.
func succeededDocs(docs []map[string]any, result *mongo.InsertManyResult, err error) []map[string]any {
	if result == nil || len(result.InsertedIDs) == 0 {
		return nil
	}
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return nil
	}
	failed := make(map[int]bool, len(bwe.WriteErrors))
	for _, we := range bwe.WriteErrors {
		failed[we.Index] = true
	}
	saved := make([]map[string]any, 0, len(result.InsertedIDs))
	for i, doc := range docs {
		if failed[i] {
			continue
		}
		if len(saved) < len(result.InsertedIDs) {
			doc["_id"] = result.InsertedIDs[len(saved)]
		}
		saved = append(saved, doc)
	}
	return saved
}

// Find reads up to limit documents from a collection.
func (m *Mongo) Find(ctx context.Context, collection string, limit int) ([]map[string]any, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := m.database.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var out []map[string]any
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode from %s: %w", collection, err)
		}
		out = append(out, map[string]any(doc))
	}
	return out, cursor.Err()
}

// DocumentID extracts a document's identifier, preferring _id.
func DocumentID(doc map[string]any) (any, bool) {
	if id, ok := doc["_id"]; ok {
		return id, true
	}
	if id, ok := doc["id"]; ok {
		return id, true
	}
	return nil, false
}

// EnsureID assigns the given ObjectID when the document has none.
func EnsureID(doc map[string]any, id primitive.ObjectID) {
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = id
	}
}
