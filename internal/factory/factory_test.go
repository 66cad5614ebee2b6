package factory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mockdata-labs/fabricate/internal/random"
	"github.com/mockdata-labs/fabricate/internal/schema"
	"github.com/mockdata-labs/fabricate/internal/sink"
)

var refTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func seeded(seed int64) Option {
	return WithSource(random.NewSourceAt(seed, refTime))
}

func userSchema() *schema.Schema {
	return schema.New("User",
		&schema.Field{Name: "name", Type: "string", Required: true},
		&schema.Field{Name: "email", Type: "string", Required: true, Unique: true},
		&schema.Field{Name: "age", Type: "number", Min: schema.Float(18), Max: schema.Float(65)},
		&schema.Field{Name: "status", Type: "string", Enum: []string{"active", "pending", "banned"}},
		&schema.Field{Name: "isActive", Type: "boolean"},
		&schema.Field{Name: "createdAt", Type: "date"},
		&schema.Field{Name: "updatedAt", Type: "date"},
	)
}

func TestBuildCount(t *testing.T) {
	docs, err := New(userSchema(), seeded(1)).Build(3)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("Expected 3 documents, got %d", len(docs))
	}

	docs, err = New(userSchema(), seeded(1)).Count(5).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(docs) != 5 {
		t.Errorf("Expected Count to set the default, got %d", len(docs))
	}

	docs, err = New(userSchema(), seeded(1)).Build(0)
	if err != nil {
		t.Fatalf("Build(0) failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected empty result for zero count, got %d", len(docs))
	}
}

func TestRequiredMixedField(t *testing.T) {
	s := schema.New("Event",
		&schema.Field{Name: "kind", Type: "string", Required: true},
		&schema.Field{Name: "payload", Type: "mixed", Required: true},
	)
	b := New(s, seeded(3))
	docs, err := b.Build(60)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, doc := range docs {
		if doc["payload"] == nil {
			t.Fatalf("Record %d: required mixed field is nil", i)
		}
	}
	if w := b.Warnings(); len(w) != 0 {
		t.Errorf("Expected no validation warnings, got %v", w)
	}
}

func TestBuildOneCollapses(t *testing.T) {
	doc, err := New(userSchema(), seeded(1)).BuildOne()
	if err != nil {
		t.Fatalf("BuildOne failed: %v", err)
	}
	if doc == nil {
		t.Fatal("Expected a single document, got nil")
	}
	if _, ok := doc["name"]; !ok {
		t.Error("Expected generated fields on the document")
	}
}

func TestRequiredFieldsAlwaysPresent(t *testing.T) {
	docs, err := New(userSchema(), seeded(2)).Build(25)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, doc := range docs {
		for _, field := range []string{"name", "email"} {
			v, ok := doc[field]
			if !ok || v == nil {
				t.Fatalf("Record %d missing required field %s", i, field)
			}
			if s, isStr := v.(string); isStr && s == "" {
				t.Fatalf("Record %d has empty required field %s", i, field)
			}
		}
	}
}

func TestRangeContainment(t *testing.T) {
	docs, err := New(userSchema(), seeded(3)).Build(50)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, doc := range docs {
		age, ok := toFloat(doc["age"])
		if !ok {
			t.Fatalf("Record %d: age is %T, not numeric", i, doc["age"])
		}
		if age < 18 || age > 65 {
			t.Fatalf("Record %d: age %v outside [18, 65]", i, age)
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func TestEnumClosure(t *testing.T) {
	docs, err := New(userSchema(), seeded(4)).Build(30)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	allowed := map[string]bool{"active": true, "pending": true, "banned": true}
	seen := map[string]bool{}
	for i, doc := range docs {
		s, ok := doc["status"].(string)
		if !ok {
			t.Fatalf("Record %d: status is %T", i, doc["status"])
		}
		if !allowed[s] {
			t.Fatalf("Record %d: status %q not in enum", i, s)
		}
		seen[s] = true
	}
	if len(seen) < 2 {
		t.Errorf("Expected some enum variety across 30 records, saw %v", seen)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Document {
		docs, err := New(userSchema(), seeded(99)).Build(10)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		return docs
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical documents for identical seeds")
	}

	third, err := New(userSchema(), seeded(100)).Build(10)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if reflect.DeepEqual(first, third) {
		t.Error("Expected different seeds to produce different documents")
	}
}

func TestUniqueEmails(t *testing.T) {
	docs, err := New(userSchema(), seeded(5)).Build(50)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	seen := make(map[string]bool)
	for i, doc := range docs {
		email := doc["email"].(string)
		if seen[email] {
			t.Fatalf("Record %d: duplicate email %q", i, email)
		}
		seen[email] = true
	}
}

func TestUniqueExhaustionFails(t *testing.T) {
	s := schema.New("Flag",
		&schema.Field{Name: "value", Type: "string", Unique: true, Enum: []string{"on", "off"}},
	)
	_, err := New(s, seeded(6)).Build(3)
	if err == nil {
		t.Fatal("Expected failure when the unique space is exhausted")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected a GenerationError, got %T", err)
	}
	if genErr.FieldPath != "value" {
		t.Errorf("Expected the failing field path, got %q", genErr.FieldPath)
	}
}

func TestOverridePrecedence(t *testing.T) {
	docs, err := New(userSchema(), seeded(7)).
		With("name", "Fixed Name").
		With("age", 30).
		Build(5)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, doc := range docs {
		if doc["name"] != "Fixed Name" {
			t.Fatalf("Record %d: override lost, name = %v", i, doc["name"])
		}
		if doc["age"] != 30 {
			t.Fatalf("Record %d: override lost, age = %v", i, doc["age"])
		}
	}
}

func TestOverrideSkipsConstraintChecks(t *testing.T) {
	// Overrides are trusted verbatim, even outside declared bounds.
	doc, err := New(userSchema(), seeded(7)).With("age", 200).BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if doc["age"] != 200 {
		t.Errorf("Expected the raw override value, got %v", doc["age"])
	}
}

func TestDottedOverride(t *testing.T) {
	s := schema.New("User",
		&schema.Field{Name: "profile", Type: "object", Fields: []*schema.Field{
			{Name: "bio", Type: "string"},
			{Name: "website", Type: "string"},
		}},
	)
	doc, err := New(s, seeded(8)).With("profile.bio", "hello").BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	profile, ok := doc["profile"].(map[string]any)
	if !ok {
		t.Fatalf("Expected nested map, got %T", doc["profile"])
	}
	if profile["bio"] != "hello" {
		t.Errorf("Expected dotted override to land, got %v", profile["bio"])
	}
	if _, ok := profile["website"]; !ok {
		t.Error("Expected sibling nested field to still generate")
	}
}

func TestWithValuesDeterministicOrder(t *testing.T) {
	doc, err := New(userSchema(), seeded(9)).
		WithValues(map[string]any{"name": "A", "email": "a@b.c"}).
		BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if doc["name"] != "A" || doc["email"] != "a@b.c" {
		t.Errorf("Expected both overrides applied, got %v / %v", doc["name"], doc["email"])
	}
}

func TestTraits(t *testing.T) {
	b := New(userSchema(), seeded(10)).
		DefineTrait("admin", map[string]any{"status": "active", "isActive": true}).
		DefineTrait("banned", map[string]any{"status": "banned"}).
		Trait("admin").
		Trait("banned").
		Trait("admin") // repeat is a no-op

	doc, err := b.BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if doc["status"] != "banned" {
		t.Errorf("Expected later trait to win, got %v", doc["status"])
	}
	if doc["isActive"] != true {
		t.Errorf("Expected earlier trait's other field to survive, got %v", doc["isActive"])
	}
}

func TestUserOverrideBeatsTrait(t *testing.T) {
	doc, err := New(userSchema(), seeded(10)).
		DefineTrait("admin", map[string]any{"status": "active"}).
		Trait("admin").
		With("status", "pending").
		BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if doc["status"] != "pending" {
		t.Errorf("Expected explicit override to beat the trait, got %v", doc["status"])
	}
}

func TestBuildHasNoID(t *testing.T) {
	doc, err := New(userSchema(), seeded(11)).BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := doc["_id"]; ok {
		t.Error("Expected Build documents to carry no identifier")
	}
}

func TestMakeAssignsID(t *testing.T) {
	docs, err := New(userSchema(), seeded(11)).Make(3)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	seen := make(map[primitive.ObjectID]bool)
	for i, doc := range docs {
		id, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			t.Fatalf("Record %d: expected ObjectID identifier, got %T", i, doc["_id"])
		}
		if seen[id] {
			t.Fatalf("Record %d: duplicate identifier", i)
		}
		seen[id] = true
	}
}

func TestCreatePersists(t *testing.T) {
	store := sink.NewMemory()
	result, err := New(userSchema(), seeded(12), WithSink(store)).Create(context.Background(), 7)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.Inserted != 7 {
		t.Errorf("Expected 7 inserted, got %d", result.Inserted)
	}
	if store.Count("User") != 7 {
		t.Errorf("Expected 7 stored documents, got %d", store.Count("User"))
	}
	if len(result.FailedBatches) != 0 {
		t.Errorf("Expected no failed batches, got %v", result.FailedBatches)
	}
}

func TestNegativeCountIsConfigError(t *testing.T) {
	_, err := New(userSchema(), seeded(13)).Count(-1).Build()
	if err == nil {
		t.Fatal("Expected error for negative count")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected a ConfigError, got %T", err)
	}

	_, err = New(userSchema(), seeded(13)).WithRelated("posts", -2).Build()
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected a ConfigError for negative related count, got %T", err)
	}

	_, err = New(userSchema(), seeded(13)).With("", 1).Build()
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected a ConfigError for empty field name, got %T", err)
	}
}

func TestUpdatedAfterCreated(t *testing.T) {
	docs, err := New(userSchema(), seeded(14)).Build(30)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i, doc := range docs {
		created, ok1 := doc["createdAt"].(time.Time)
		updated, ok2 := doc["updatedAt"].(time.Time)
		if !ok1 || !ok2 {
			t.Fatalf("Record %d: timestamps missing or mistyped", i)
		}
		if updated.Before(created) {
			t.Fatalf("Record %d: updatedAt %v before createdAt %v", i, updated, created)
		}
	}
}

func TestDeclarationOrderIndependentOfOverrides(t *testing.T) {
	// Overriding a later field must not shift the draws of earlier fields.
	base, err := New(userSchema(), seeded(15)).BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	patched, err := New(userSchema(), seeded(15)).With("updatedAt", refTime).BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if base["name"] != patched["name"] || base["email"] != patched["email"] {
		t.Error("Expected earlier fields to draw identically when a later field is overridden")
	}
}

func TestWarningsCollected(t *testing.T) {
	// A match pattern the string generator cannot satisfy produces a
	// validation warning, not a failure.
	s := schema.New("Odd",
		&schema.Field{Name: "code", Type: "string", Match: `^XYZ-\d{4}$`},
	)
	b := New(s, seeded(16))
	if _, err := b.Build(3); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(b.Warnings()) == 0 {
		t.Error("Expected validation warnings for an unsatisfiable pattern")
	}
}

func TestStrictValidationFails(t *testing.T) {
	s := schema.New("Odd",
		&schema.Field{Name: "code", Type: "string", Match: `^XYZ-\d{4}$`},
	)
	_, err := New(s, seeded(16), WithStrictValidation()).Build(3)
	if err == nil {
		t.Fatal("Expected strict validation to fail the run")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected a GenerationError, got %T", err)
	}
}

// failSink fails every InsertMany call.
type failSink struct{}

func (failSink) InsertMany(context.Context, string, []map[string]any, bool) ([]map[string]any, error) {
	return nil, fmt.Errorf("sink unavailable")
}

func (failSink) Find(context.Context, string, int) ([]map[string]any, error) {
	return nil, nil
}

func TestCreateAbortsOnBatchFailure(t *testing.T) {
	_, err := New(userSchema(), seeded(17), WithSink(failSink{}), WithBatchSize(2)).Create(context.Background(), 5)
	if err == nil {
		t.Fatal("Expected persistence failure to abort")
	}
	var perErr *PersistenceError
	if !errors.As(err, &perErr) {
		t.Fatalf("Expected a PersistenceError, got %T", err)
	}
	if perErr.Batch != 0 {
		t.Errorf("Expected the first batch to fail, got %d", perErr.Batch)
	}
}

func TestCreateContinueOnError(t *testing.T) {
	result, err := New(userSchema(), seeded(17),
		WithSink(failSink{}), WithBatchSize(2), WithContinueOnError()).
		Create(context.Background(), 5)
	if err != nil {
		t.Fatalf("Expected continue-on-error to return a result, got %v", err)
	}
	if len(result.FailedBatches) != 3 {
		t.Errorf("Expected 3 failed batches for 5 docs in pairs, got %d", len(result.FailedBatches))
	}
	if result.Inserted != 0 {
		t.Errorf("Expected nothing inserted, got %d", result.Inserted)
	}
	if len(result.Documents) != 5 {
		t.Errorf("Expected all generated documents on the result, got %d", len(result.Documents))
	}
}

func TestDefaultValueHandling(t *testing.T) {
	s := schema.New("Member",
		&schema.Field{Name: "role", Type: "string", Default: "member"},
		&schema.Field{Name: "name", Type: "string"},
	)

	built, err := New(s, seeded(18)).BuildOne()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := built["role"]; ok {
		t.Errorf("Expected Build to leave defaults to the store, got %v", built["role"])
	}

	made, err := New(s, seeded(18)).MakeOne()
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if made["role"] != "member" {
		t.Errorf("Expected Make to materialize the declared default, got %v", made["role"])
	}
}
