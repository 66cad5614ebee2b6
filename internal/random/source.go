// Package random is the single source of randomness for the generation
// pipeline. Everything flows through a Source so that a fixed seed makes
// the whole pipeline reproducible, dates and ObjectIDs included.
package random

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source produces realistic primitives from a seeded PRNG and a fixed
// reference clock. It is not safe for concurrent use; the builder runs a
// single sequential loop, matching that.
type Source struct {
	rnd *rand.Rand
	now time.Time

	machine [5]byte
	counter uint32
}

// NewSource creates a source seeded with seed, anchored at the current
// wall-clock time.
func NewSource(seed int64) *Source {
	return NewSourceAt(seed, time.Now())
}

// NewSourceAt creates a source with an explicit reference time. Two
// sources with the same seed and reference time produce identical output.
func NewSourceAt(seed int64, at time.Time) *Source {
	s := &Source{
		rnd: rand.New(rand.NewSource(seed)),
		now: at.UTC().Truncate(time.Second),
	}
	s.rnd.Read(s.machine[:])
	s.counter = s.rnd.Uint32() & 0xffffff
	return s
}

// Now returns the source's fixed reference time.
func (s *Source) Now() time.Time { return s.now }

// Read makes Source an io.Reader over its PRNG stream.
func (s *Source) Read(p []byte) (int, error) { return s.rnd.Read(p) }

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int { return s.rnd.Intn(n) }

// IntBetween returns a uniform int in [min, max] inclusive.
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rnd.Intn(max-min+1)
}

// Int64n returns a uniform int64 in [0, n).
func (s *Source) Int64n(n int64) int64 { return s.rnd.Int63n(n) }

// Float returns a uniform float64 in [min, max).
func (s *Source) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rnd.Float64()*(max-min)
}

// Round2 returns a uniform float64 in [min, max) rounded to two decimals.
func (s *Source) Round2(min, max float64) float64 {
	v := s.Float(min, max)
	return float64(int64(v*100)) / 100
}

// Bool returns true with probability p.
func (s *Source) Bool(p float64) bool {
	return s.rnd.Float64() < p
}

// Pick returns a uniform element of values.
func Pick[T any](s *Source, values []T) T {
	return values[s.rnd.Intn(len(values))]
}

// WeightedIndex selects an index by cumulative-weight roulette.
func (s *Source) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := s.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if roll < acc {
			return i
		}
	}
	return len(weights) - 1
}

// PastDate returns a time uniformly within the window ending at the
// reference time.
func (s *Source) PastDate(window time.Duration) time.Time {
	return s.now.Add(-time.Duration(s.rnd.Int63n(int64(window))))
}

// FutureDate returns a time uniformly within the window starting at the
// reference time.
func (s *Source) FutureDate(window time.Duration) time.Time {
	return s.now.Add(time.Duration(s.rnd.Int63n(int64(window))))
}

// DateBetween returns a time uniformly in [from, to]. Inverted windows
// collapse to from.
func (s *Source) DateBetween(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := to.Sub(from)
	return from.Add(time.Duration(s.rnd.Int63n(int64(span) + 1))).Truncate(time.Second)
}

// YearsAgo returns a time between min and max years before the reference
// time.
func (s *Source) YearsAgo(min, max int) time.Time {
	years := s.IntBetween(min, max)
	days := s.Intn(365)
	return s.now.AddDate(-years, 0, -days)
}

// UUID returns a deterministic v4 UUID drawn from the source's stream.
func (s *Source) UUID() string {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		// rand.Rand.Read never fails; keep the contract total anyway.
		var raw [16]byte
		s.rnd.Read(raw[:])
		raw[6] = (raw[6] & 0x0f) | 0x40
		raw[8] = (raw[8] & 0x3f) | 0x80
		id = uuid.UUID(raw)
	}
	return id.String()
}

// ObjectID returns a structurally valid ObjectID: a 4-byte timestamp from
// the reference clock, the source's 5 random machine/process bytes, and a
// 3-byte incrementing counter. Deterministic for a fixed seed and clock.
func (s *Source) ObjectID() primitive.ObjectID {
	var id primitive.ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(s.now.Unix()))
	copy(id[4:9], s.machine[:])
	s.counter = (s.counter + 1) & 0xffffff
	id[9] = byte(s.counter >> 16)
	id[10] = byte(s.counter >> 8)
	id[11] = byte(s.counter)
	return id
}

// Hex returns n lowercase hex characters.
func (s *Source) Hex(n int) string {
	const charset = "0123456789abcdef"
	out := make([]byte, n)
	for i := range out {
		out[i] = charset[s.rnd.Intn(16)]
	}
	return string(out)
}

// Digits returns n decimal digit characters.
func (s *Source) Digits(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('0' + s.rnd.Intn(10))
	}
	return string(out)
}

// Bytes returns n random bytes.
func (s *Source) Bytes(n int) []byte {
	out := make([]byte, n)
	s.rnd.Read(out)
	return out
}
