package sink

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// validIdentifier guards table/column names interpolated into SQL.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQL persists the scalar top-level fields of generated documents into
// relational tables. Nested values are skipped; the document store sinks
// handle those.
type SQL struct {
	db          *sql.DB
	placeholder sq.PlaceholderFormat
}

// NewSQL wraps an open database handle. provider picks the placeholder
// dialect the way the provider string picks a driver.
func NewSQL(db *sql.DB, provider string) *SQL {
	placeholder := sq.PlaceholderFormat(sq.Question)
	switch provider {
	case "postgres", "postgresql":
		placeholder = sq.Dollar
	}
	return &SQL{db: db, placeholder: placeholder}
}

// OpenSQL opens a database/sql handle for a provider. Callers must have
// blank-imported the matching driver.
func OpenSQL(provider, url string) (*SQL, error) {
	var driverName string
	switch provider {
	case "postgresql", "postgres":
		driverName = "pgx"
	case "mysql":
		driverName = "mysql"
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported sql provider: %s", provider)
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", provider, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", provider, err)
	}
	return NewSQL(db, provider), nil
}

// Close releases the underlying database handle.
func (s *SQL) Close() error {
	return s.db.Close()
}

// InsertMany builds one multi-row INSERT per call. Ordered semantics are
// native (a failing statement persists nothing); unordered falls back to
// row-at-a-time inserts, skipping failures.
func (s *SQL) InsertMany(ctx context.Context, table string, docs []map[string]any, ordered bool) ([]map[string]any, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if !validIdentifier.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}

	columns := scalarColumns(docs[0])
	if len(columns) == 0 {
		return nil, fmt.Errorf("no scalar fields to insert into %s", table)
	}
	for _, col := range columns {
		if !validIdentifier.MatchString(col) {
			return nil, fmt.Errorf("invalid column name: %s", col)
		}
	}

	if !ordered {
		return s.insertUnordered(ctx, table, columns, docs)
	}

	builder := sq.Insert(table).Columns(columns...).PlaceholderFormat(s.placeholder)
	for _, doc := range docs {
		builder = builder.Values(rowValues(doc, columns)...)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert for %s: %w", table, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return docs, nil
}

func (s *SQL) insertUnordered(ctx context.Context, table string, columns []string, docs []map[string]any) ([]map[string]any, error) {
	var inserted []map[string]any
	var firstErr error
	for _, doc := range docs {
		query, args, err := sq.Insert(table).
			Columns(columns...).
			Values(rowValues(doc, columns)...).
			PlaceholderFormat(s.placeholder).
			ToSql()
		if err == nil {
			_, err = s.db.ExecContext(ctx, query, args...)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		inserted = append(inserted, doc)
	}
	if firstErr != nil && len(inserted) < len(docs) {
		return inserted, fmt.Errorf("insert into %s: %d of %d rows failed: %w", table, len(docs)-len(inserted), len(docs), firstErr)
	}
	return inserted, nil
}

// Find reads up to limit rows back as documents.
func (s *SQL) Find(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	if !validIdentifier.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	builder := sq.Select("*").From(table).PlaceholderFormat(s.placeholder)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select for %s: %w", table, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		doc := make(map[string]any, len(columns))
		for i, col := range columns {
			doc[col] = values[i]
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// scalarColumns returns the sorted scalar top-level keys of a document.
func scalarColumns(doc map[string]any) []string {
	var columns []string
	for key, v := range doc {
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}

func rowValues(doc map[string]any, columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		v := doc[col]
		if t, ok := v.(time.Time); ok {
			v = t.UTC()
		}
		values[i] = v
	}
	return values
}
