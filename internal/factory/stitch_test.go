package factory

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mockdata-labs/fabricate/internal/schema"
	"github.com/mockdata-labs/fabricate/internal/sink"
)

func orderSchemas() (*schema.Schema, *schema.Schema, *ModelSet) {
	product := schema.New("Product",
		&schema.Field{Name: "name", Type: "string", Required: true},
		&schema.Field{Name: "price", Type: "number", Min: schema.Float(1), Max: schema.Float(500)},
	)
	order := schema.New("Order",
		&schema.Field{Name: "status", Type: "string", Enum: []string{"open", "shipped"}},
		&schema.Field{Name: "items", Ref: "Product", IsArray: true},
	)
	models := NewModelSet()
	models.Register(product)
	models.Register(order)
	return order, product, models
}

func TestWithRelatedCreatesAndLinks(t *testing.T) {
	order, _, models := orderSchemas()
	store := sink.NewMemory()

	result, err := New(order, seeded(20), WithModels(models), WithSink(store)).
		WithRelated("items", 3).
		Create(context.Background(), 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	doc := result.Documents[0]
	items, ok := doc["items"].([]any)
	if !ok {
		t.Fatalf("Expected items to be a list, got %T", doc["items"])
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 linked identifiers, got %d", len(items))
	}
	if store.Count("Product") != 3 {
		t.Errorf("Expected 3 persisted products, got %d", store.Count("Product"))
	}

	// Every link must resolve to a stored product.
	stored, err := store.Find(context.Background(), "Product", 0)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	ids := make(map[primitive.ObjectID]bool)
	for _, p := range stored {
		ids[p["_id"].(primitive.ObjectID)] = true
	}
	for i, item := range items {
		id, ok := item.(primitive.ObjectID)
		if !ok {
			t.Fatalf("Item %d: expected an ObjectID link, got %T", i, item)
		}
		if !ids[id] {
			t.Fatalf("Item %d: link %s resolves to nothing", i, id.Hex())
		}
	}
}

func TestWithRelatedReusesExisting(t *testing.T) {
	order, product, models := orderSchemas()
	store := sink.NewMemory()

	// Pre-populate the sink with products.
	if _, err := New(product, seeded(21), WithModels(models), WithSink(store)).Create(context.Background(), 5); err != nil {
		t.Fatalf("Failed to seed products: %v", err)
	}

	_, err := New(order, seeded(22), WithModels(models), WithSink(store)).
		WithRelated("items", 2).
		Create(context.Background(), 1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if store.Count("Product") != 5 {
		t.Errorf("Expected existing products to be reused, got %d stored", store.Count("Product"))
	}
}

func TestWithRelatedCacheIsStableWithinRun(t *testing.T) {
	order, _, models := orderSchemas()
	store := sink.NewMemory()

	result, err := New(order, seeded(23), WithModels(models), WithSink(store)).
		WithRelated("items", 2).
		Create(context.Background(), 4)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// One run resolves targets once; every order links the same products.
	if store.Count("Product") != 2 {
		t.Errorf("Expected 2 products for the whole run, got %d", store.Count("Product"))
	}
	first := result.Documents[0]["items"].([]any)
	for i, doc := range result.Documents {
		items := doc["items"].([]any)
		if len(items) != 2 {
			t.Fatalf("Order %d: expected 2 links, got %d", i, len(items))
		}
		if items[0] != first[0] || items[1] != first[1] {
			t.Errorf("Order %d: expected the cached targets to be reused", i)
		}
	}
}

func TestWithRelatedZeroCount(t *testing.T) {
	order, _, models := orderSchemas()
	docs, err := New(order, seeded(24), WithModels(models)).
		WithRelated("items", 0).
		Make(1)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	items, ok := docs[0]["items"].([]any)
	if !ok {
		t.Fatalf("Expected an empty list, got %T", docs[0]["items"])
	}
	if len(items) != 0 {
		t.Errorf("Expected zero links, got %d", len(items))
	}
}

func TestWithRelatedMakeDoesNotPersist(t *testing.T) {
	order, _, models := orderSchemas()
	store := sink.NewMemory()

	docs, err := New(order, seeded(25), WithModels(models), WithSink(store)).
		WithRelated("items", 2).
		Make(1)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if store.Count("Product") != 0 {
		t.Errorf("Expected Make to leave the sink untouched, got %d stored", store.Count("Product"))
	}
	if items := docs[0]["items"].([]any); len(items) != 2 {
		t.Errorf("Expected 2 links on the unpersisted document, got %d", len(items))
	}
}

func TestWithRelatedUnknownField(t *testing.T) {
	order, _, models := orderSchemas()
	_, err := New(order, seeded(26), WithModels(models)).
		WithRelated("nonexistent", 2).
		Make(1)
	if err == nil {
		t.Fatal("Expected error for a field without relationship metadata")
	}
	var relErr *RelationshipError
	if !errors.As(err, &relErr) {
		t.Fatalf("Expected a RelationshipError, got %T", err)
	}
}

func TestWithRelatedUnresolvableTarget(t *testing.T) {
	order := schema.New("Order",
		&schema.Field{Name: "customer", Ref: "Ghost"},
	)
	_, err := New(order, seeded(27), WithModels(NewModelSet())).
		WithRelated("customer", 1).
		Make(1)
	if err == nil {
		t.Fatal("Expected error for an unresolvable target type")
	}
	var relErr *RelationshipError
	if !errors.As(err, &relErr) {
		t.Fatalf("Expected a RelationshipError, got %T", err)
	}
	if relErr.Field != "customer" {
		t.Errorf("Expected the offending field name, got %q", relErr.Field)
	}
}

func TestSingleReference(t *testing.T) {
	user := schema.New("User",
		&schema.Field{Name: "name", Type: "string"},
	)
	post := schema.New("Post",
		&schema.Field{Name: "title", Type: "string"},
		&schema.Field{Name: "author", Ref: "User"},
	)
	models := NewModelSet()
	models.Register(user)
	models.Register(post)

	docs, err := New(post, seeded(28), WithModels(models)).
		WithRelated("author", 1).
		Make(1)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if _, ok := docs[0]["author"].(primitive.ObjectID); !ok {
		t.Errorf("Expected a single identifier for a scalar reference, got %T", docs[0]["author"])
	}
}

func TestEmbeddedStitch(t *testing.T) {
	address := schema.New("Address",
		&schema.Field{Name: "street", Type: "string"},
		&schema.Field{Name: "city", Type: "string"},
	)
	company := schema.New("Company",
		&schema.Field{Name: "name", Type: "string"},
		&schema.Field{Name: "locations", Schema: address, IsArray: true},
	)

	docs, err := New(company, seeded(29)).
		WithRelated("locations", 2).
		Build(1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	locations, ok := docs[0]["locations"].([]any)
	if !ok {
		t.Fatalf("Expected embedded documents, got %T", docs[0]["locations"])
	}
	if len(locations) != 2 {
		t.Fatalf("Expected 2 embedded documents, got %d", len(locations))
	}
	for i, loc := range locations {
		embedded, ok := loc.(Document)
		if !ok {
			t.Fatalf("Location %d: expected a document, got %T", i, loc)
		}
		if _, ok := embedded["street"]; !ok {
			t.Errorf("Location %d: expected embedded fields to generate", i)
		}
	}
}

func TestSubdocumentStitch(t *testing.T) {
	s := schema.New("User",
		&schema.Field{Name: "profile", Fields: []*schema.Field{
			{Name: "bio", Type: "string"},
		}},
	)
	docs, err := New(s, seeded(30)).
		WithRelated("profile", 1).
		Build(1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	profile, ok := docs[0]["profile"].(Document)
	if !ok {
		t.Fatalf("Expected a subdocument, got %T", docs[0]["profile"])
	}
	if _, ok := profile["bio"]; !ok {
		t.Error("Expected subdocument fields to generate")
	}
}
