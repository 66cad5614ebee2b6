package generator

import (
	"context"
	"strings"
	"time"

	"github.com/mockdata-labs/fabricate/internal/analyzer"
	"github.com/mockdata-labs/fabricate/internal/random"
)

// dateGenerator maps field names to relative time windows. Ordering
// matters for sibling-aware windows: "updated" samples between the
// record's already-generated created value and now, "end" after its
// sibling "start".
type dateGenerator struct{}

func (dateGenerator) Name() string { return "date" }

func (dateGenerator) Synchronous() bool { return true }

func (dateGenerator) CanHandle(ft analyzer.FieldType, _ *analyzer.Constraints) bool {
	return ft == analyzer.TypeDate
}

const day = 24 * time.Hour

func (g dateGenerator) Generate(_ context.Context, gc *Context) (any, error) {
	s := gc.Source
	c := &gc.Field.Constraints
	name := strings.ToLower(fieldName(gc.FieldPath))

	v := g.semanticDate(s, name, gc.Siblings)
	if v.IsZero() {
		if c.MinDate != nil || c.MaxDate != nil {
			v = constraintWindow(s, c)
		} else {
			v = s.PastDate(365 * day)
		}
	}

	// Clamp only when both bounds were declared and violated.
	if c.MinDate != nil && c.MaxDate != nil {
		if v.Before(*c.MinDate) {
			v = *c.MinDate
		} else if v.After(*c.MaxDate) {
			v = *c.MaxDate
		}
	}
	return v, nil
}

func (dateGenerator) semanticDate(s *random.Source, name string, siblings map[string]any) time.Time {
	has := func(terms ...string) bool {
		for _, t := range terms {
			if strings.Contains(name, t) {
				return true
			}
		}
		return false
	}

	switch {
	case has("birth", "born", "dob"):
		return s.YearsAgo(18, 80)
	case has("creat", "insert"):
		return s.PastDate(365 * day)
	case has("updat", "modif", "chang"):
		if created, ok := siblingDate(siblings, "creat"); ok {
			return s.DateBetween(created, s.Now())
		}
		return s.PastDate(30 * day)
	case has("expir", "deadline"):
		return s.DateBetween(s.Now().Add(30*day), s.Now().AddDate(5, 0, 0))
	case has("start", "begin", "from"):
		return s.PastDate(30 * day)
	case has("end", "finish", "until", "to_date"):
		if start, ok := siblingDate(siblings, "start"); ok {
			return s.DateBetween(start, start.Add(90*day))
		}
		return s.FutureDate(90 * day)
	case has("due"):
		return s.FutureDate(60 * day)
	case has("publish"):
		return s.PastDate(180 * day)
	case has("schedul"):
		return s.FutureDate(30 * day)
	case has("login", "seen"):
		return s.PastDate(7 * day)
	case has("register", "joined", "signup"):
		return s.PastDate(2 * 365 * day)
	case has("timestamp"):
		return s.PastDate(365 * day)
	default:
		return time.Time{}
	}
}

// siblingDate finds an already-generated date whose field name contains
// term. The earliest match is kept so the pick does not depend on map
// iteration order.
func siblingDate(siblings map[string]any, term string) (time.Time, bool) {
	var found time.Time
	ok := false
	for path, v := range siblings {
		t, isTime := v.(time.Time)
		if !isTime {
			continue
		}
		if strings.Contains(strings.ToLower(fieldName(path)), term) {
			if !ok || t.Before(found) {
				found = t
				ok = true
			}
		}
	}
	return found, ok
}

func constraintWindow(s *random.Source, c *analyzer.Constraints) time.Time {
	from := s.Now().AddDate(-1, 0, 0)
	to := s.Now()
	if c.MinDate != nil {
		from = *c.MinDate
	}
	if c.MaxDate != nil {
		to = *c.MaxDate
	}
	return s.DateBetween(from, to)
}

func (dateGenerator) Validate(v any, c *analyzer.Constraints) bool {
	if !baseValid(v, c) {
		return false
	}
	if v == nil {
		return true
	}
	t, ok := v.(time.Time)
	if !ok {
		return false
	}
	if c == nil {
		return true
	}
	return inDateRange(t, c)
}
