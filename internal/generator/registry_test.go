package generator

import (
	"context"
	"testing"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
)

// stub is a configurable generator for selection tests.
type stub struct {
	name    string
	handles map[analyzer.FieldType]bool
	sync    bool
}

func (s stub) Name() string { return s.name }

func (s stub) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return s.handles[ft]
}

func (s stub) Generate(_ context.Context, _ *Context) (any, error) { return s.name, nil }

func (s stub) Validate(any, *analyzer.Constraints) bool { return true }

func (s stub) Synchronous() bool { return s.sync }

func newStub(name string, types ...analyzer.FieldType) stub {
	handles := make(map[analyzer.FieldType]bool)
	for _, t := range types {
		handles[t] = true
	}
	return stub{name: name, handles: handles, sync: true}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("a", newStub("a", analyzer.TypeString), Config{}); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if err := r.Register("a", newStub("a", analyzer.TypeString), Config{}); err == nil {
		t.Error("Expected error for duplicate name")
	}
	if err := r.Register("", newStub("x", analyzer.TypeString), Config{}); err == nil {
		t.Error("Expected error for empty name")
	}
	if err := r.Register("nil", nil, Config{}); err == nil {
		t.Error("Expected error for nil generator")
	}
}

func TestBestByPriority(t *testing.T) {
	r := NewRegistry()
	r.Register("low", newStub("low", analyzer.TypeString), Config{Priority: 1})
	r.Register("high", newStub("high", analyzer.TypeString), Config{Priority: 10})

	best := r.Best(analyzer.TypeString, nil)
	if best == nil || best.Name() != "high" {
		t.Errorf("Expected 'high' to win on priority, got %v", best)
	}
}

func TestBestRegistrationOrderBreaksTies(t *testing.T) {
	r := NewRegistry()
	r.Register("first", newStub("first", analyzer.TypeString), Config{Priority: 5})
	r.Register("second", newStub("second", analyzer.TypeString), Config{Priority: 5})

	best := r.Best(analyzer.TypeString, nil)
	if best == nil || best.Name() != "first" {
		t.Errorf("Expected registration order to break the tie, got %v", best)
	}
}

func TestBestNoCandidate(t *testing.T) {
	r := NewRegistry()
	r.Register("strings", newStub("strings", analyzer.TypeString), Config{})

	if best := r.Best(analyzer.TypeNumber, nil); best != nil {
		t.Errorf("Expected nil for an unclaimed type, got %s", best.Name())
	}
}

func TestDisableAndEnable(t *testing.T) {
	r := NewRegistry()
	r.Register("only", newStub("only", analyzer.TypeString), Config{})

	if err := r.Disable("only"); err != nil {
		t.Fatalf("Failed to disable: %v", err)
	}
	if best := r.Best(analyzer.TypeString, nil); best != nil {
		t.Error("Expected disabled generator to be skipped")
	}

	if err := r.Enable("only"); err != nil {
		t.Fatalf("Failed to enable: %v", err)
	}
	if best := r.Best(analyzer.TypeString, nil); best == nil {
		t.Error("Expected re-enabled generator to be selectable")
	}

	if err := r.Disable("missing"); err == nil {
		t.Error("Expected error for unknown generator")
	}
}

func TestRegisterDisabled(t *testing.T) {
	r := NewRegistry()
	r.Register("off", newStub("off", analyzer.TypeString), Config{Disabled: true})
	if best := r.Best(analyzer.TypeString, nil); best != nil {
		t.Error("Expected generator registered disabled to be skipped")
	}
}

func TestCacheInvalidatedByRegistration(t *testing.T) {
	r := NewRegistry()
	r.Register("a", newStub("a", analyzer.TypeString), Config{Priority: 1})

	// Warm the cache.
	if got := r.Best(analyzer.TypeString, nil); got == nil || got.Name() != "a" {
		t.Fatal("Expected 'a' before second registration")
	}

	r.Register("b", newStub("b", analyzer.TypeString), Config{Priority: 10})
	if got := r.Best(analyzer.TypeString, nil); got == nil || got.Name() != "b" {
		t.Error("Expected new higher-priority generator after cache invalidation")
	}
}

func TestAllReturnsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("one", newStub("one", analyzer.TypeString, analyzer.TypeNumber), Config{})
	r.Register("two", newStub("two", analyzer.TypeString), Config{})

	all := r.All(analyzer.TypeString)
	if len(all) != 2 || all[0].Name() != "one" || all[1].Name() != "two" {
		t.Errorf("Unexpected All result: %v", all)
	}
	if got := r.All(analyzer.TypeNumber); len(got) != 1 {
		t.Errorf("Expected one number generator, got %d", len(got))
	}
}

func TestSpecificityPrefersConstraintShape(t *testing.T) {
	c := &analyzer.Constraints{Enum: []string{"a", "b"}}
	if specificity("string", c) <= specificity("number", c) {
		t.Error("Expected enum constraints to favor string-shaped generators")
	}

	c = &analyzer.Constraints{Min: analyzerFloat(1), Max: analyzerFloat(10)}
	if specificity("number", c) <= specificity("string", c) {
		t.Error("Expected numeric bounds to favor number-shaped generators")
	}
}

func analyzerFloat(v float64) *float64 { return &v }

func TestDefaultRegistryCoversCoreTypes(t *testing.T) {
	r := DefaultRegistry()
	types := []analyzer.FieldType{
		analyzer.TypeString, analyzer.TypeNumber, analyzer.TypeBoolean,
		analyzer.TypeDate, analyzer.TypeObjectID, analyzer.TypeArray,
		analyzer.TypeObject, analyzer.TypeBuffer, analyzer.TypeMap,
		analyzer.TypeUUID, analyzer.TypeDecimal, analyzer.TypeBigInt,
	}
	for _, ft := range types {
		if r.Best(ft, nil) == nil {
			t.Errorf("Expected a default generator for type %s", ft)
		}
	}
}
