package generator

// DefaultRegistry builds a fresh registry with every built-in generator
// registered. Callers get their own instance; nothing here is process
// global, so tests can mutate a registry without cross-test pollution.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Registration order is the final tie-break, so the specific formats
	// come first.
	must(r.Register("objectid", objectIDGenerator{}, Config{Priority: 20}))
	must(r.Register("uuid", uuidGenerator{}, Config{Priority: 15}))
	must(r.Register("decimal128", decimalGenerator{}, Config{Priority: 15}))
	must(r.Register("bigint", bigintGenerator{}, Config{Priority: 15}))
	must(r.Register("string", stringGenerator{}, Config{Priority: 10}))
	must(r.Register("number", numberGenerator{}, Config{Priority: 10}))
	must(r.Register("date", dateGenerator{}, Config{Priority: 10}))
	must(r.Register("boolean", booleanGenerator{}, Config{Priority: 10}))
	must(r.Register("array", arrayGenerator{}, Config{Priority: 10}))
	must(r.Register("buffer", bufferGenerator{}, Config{Priority: 10}))
	must(r.Register("map", mapGenerator{}, Config{Priority: 10}))
	must(r.Register("object", objectGenerator{}, Config{Priority: 5}))

	return r
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
