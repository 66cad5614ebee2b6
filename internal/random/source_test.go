package random

import (
	"regexp"
	"testing"
	"time"
)

var refTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestDeterminism(t *testing.T) {
	a := NewSourceAt(42, refTime)
	b := NewSourceAt(42, refTime)

	for i := 0; i < 100; i++ {
		if av, bv := a.Intn(1000), b.Intn(1000); av != bv {
			t.Fatalf("Sources diverged at draw %d: %d vs %d", i, av, bv)
		}
	}
	if a.Email() != b.Email() {
		t.Error("Expected identical emails from identical sources")
	}
	if a.UUID() != b.UUID() {
		t.Error("Expected identical UUIDs from identical sources")
	}
	if a.ObjectID() != b.ObjectID() {
		t.Error("Expected identical ObjectIDs from identical sources")
	}
	if !a.PastDate(365 * day).Equal(b.PastDate(365 * day)) {
		t.Error("Expected identical dates from identical sources")
	}
}

const day = 24 * time.Hour

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewSourceAt(1, refTime)
	b := NewSourceAt(2, refTime)

	same := true
	for i := 0; i < 20; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different seeds to produce different streams")
	}
}

func TestIntBetween(t *testing.T) {
	s := NewSourceAt(7, refTime)
	for i := 0; i < 1000; i++ {
		v := s.IntBetween(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("IntBetween(3, 9) returned %d", v)
		}
	}
	if v := s.IntBetween(5, 5); v != 5 {
		t.Errorf("IntBetween(5, 5) = %d, want 5", v)
	}
	if v := s.IntBetween(9, 3); v != 9 {
		t.Errorf("Inverted bounds should collapse to min, got %d", v)
	}
}

func TestFloatRange(t *testing.T) {
	s := NewSourceAt(7, refTime)
	for i := 0; i < 1000; i++ {
		v := s.Float(1.5, 2.5)
		if v < 1.5 || v >= 2.5 {
			t.Fatalf("Float(1.5, 2.5) returned %f", v)
		}
	}
}

func TestUUIDShape(t *testing.T) {
	v4 := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	s := NewSourceAt(11, refTime)
	for i := 0; i < 50; i++ {
		id := s.UUID()
		if !v4.MatchString(id) {
			t.Fatalf("Expected a v4 UUID, got %q", id)
		}
	}
}

func TestObjectID(t *testing.T) {
	s := NewSourceAt(11, refTime)
	first := s.ObjectID()
	second := s.ObjectID()

	if first == second {
		t.Error("Expected consecutive ObjectIDs to differ")
	}
	if first.Timestamp().Unix() != refTime.Unix() {
		t.Errorf("Expected ObjectID timestamp %d, got %d", refTime.Unix(), first.Timestamp().Unix())
	}
	if len(first.Hex()) != 24 {
		t.Errorf("Expected 24 hex chars, got %d", len(first.Hex()))
	}
}

func TestDateBetween(t *testing.T) {
	s := NewSourceAt(3, refTime)
	from := refTime.AddDate(0, -1, 0)
	for i := 0; i < 100; i++ {
		v := s.DateBetween(from, refTime)
		if v.Before(from) || v.After(refTime) {
			t.Fatalf("DateBetween out of range: %v", v)
		}
	}
	if v := s.DateBetween(refTime, from); !v.Equal(refTime) {
		t.Errorf("Inverted window should collapse to from, got %v", v)
	}
}

func TestPastAndFutureDate(t *testing.T) {
	s := NewSourceAt(3, refTime)
	for i := 0; i < 100; i++ {
		p := s.PastDate(30 * day)
		if p.After(s.Now()) || p.Before(s.Now().Add(-30*day)) {
			t.Fatalf("PastDate out of window: %v", p)
		}
		f := s.FutureDate(30 * day)
		if f.Before(s.Now()) || f.After(s.Now().Add(30*day)) {
			t.Fatalf("FutureDate out of window: %v", f)
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	s := NewSourceAt(5, refTime)
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		idx := s.WeightedIndex([]float64{0.8, 0.15, 0.05})
		if idx < 0 || idx > 2 {
			t.Fatalf("WeightedIndex out of range: %d", idx)
		}
		counts[idx]++
	}
	if counts[0] <= counts[1] || counts[1] <= counts[2] {
		t.Errorf("Expected counts to follow weights, got %v", counts)
	}
}

func TestEmailShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z]+\.[a-z]+\d*@[a-z.]+$`)
	s := NewSourceAt(9, refTime)
	for i := 0; i < 50; i++ {
		e := s.Email()
		if !shape.MatchString(e) {
			t.Fatalf("Unexpected email shape: %q", e)
		}
	}
}

func TestHexAndDigits(t *testing.T) {
	s := NewSourceAt(9, refTime)
	hex := regexp.MustCompile(`^[0-9a-f]+$`)
	if v := s.Hex(32); len(v) != 32 || !hex.MatchString(v) {
		t.Errorf("Hex(32) = %q", v)
	}
	digits := regexp.MustCompile(`^[0-9]+$`)
	if v := s.Digits(10); len(v) != 10 || !digits.MatchString(v) {
		t.Errorf("Digits(10) = %q", v)
	}
}
