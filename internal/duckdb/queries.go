package duckdb

import (
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/logduck/logduck/internal/model"
	"github.com/logduck/logduck/internal/schema"
)

// dangerousKeywordPattern matches mutation keywords at word boundaries. The
// filter surface is read-only; a WHERE clause has no business containing
// these. Used after comment stripping and semicolon rejection.
var dangerousKeywordPattern = regexp.MustCompile(
	`(?i)\b(INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|TRUNCATE|COPY|ATTACH|LOAD|EXPORT|IMPORT|INSTALL|CALL|EXECUTE|PRAGMA|SET)\b`,
)

// blockCommentPattern matches C-style block comments (/* ... */).
var blockCommentPattern = regexp.MustCompile(`/\*[\s\S]*?\*/`)

// stripSQLComments removes -- line comments and /* */ block comments.
func stripSQLComments(query string) string {
	cleaned := blockCommentPattern.ReplaceAllString(query, " ")
	var result strings.Builder
	for _, line := range strings.Split(cleaned, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		result.WriteString(line)
		result.WriteByte('\n')
	}
	return result.String()
}

// GuardWhereClause rejects WHERE-clause text that could mutate the database.
// Anything it passes is forwarded to the engine verbatim; malformed SQL is
// the engine's to diagnose.
func GuardWhereClause(where string) error {
	if strings.Contains(where, ";") {
		return fmt.Errorf("filter must not contain semicolons")
	}
	stripped := stripSQLComments(where)
	if match := dangerousKeywordPattern.FindString(stripped); match != "" {
		return fmt.Errorf("filter contains disallowed keyword: %s", strings.ToUpper(match))
	}
	return nil
}

// QueryRecords returns the rows matching the WHERE clause (empty clause =
// all rows) in insertion order, rebuilt as LogRecords using the pinned
// schema's column types. The result set is capped at MaxRows. Engine errors
// are returned verbatim.
func (s *Store) QueryRecords(whereClause string) ([]model.LogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.schema == nil {
		return nil, ErrNoTable
	}

	whereClause = strings.TrimSpace(whereClause)
	if whereClause != "" {
		if err := GuardWhereClause(whereClause); err != nil {
			return nil, err
		}
	}

	fields := s.schema.Fields()
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, quoteColumn(f.Name))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), s.table)
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY id"
	if s.MaxRows > 0 {
		query += fmt.Sprintf(" LIMIT %d", s.MaxRows)
	}

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.LogRecord
	for rows.Next() {
		dest := make([]interface{}, len(fields))
		for i, f := range fields {
			dest[i] = scanDestFor(f.Type)
		}
		if err := rows.Scan(dest...); err != nil {
			log.Printf("duckdb: scan error (QueryRecords): %v", err)
			continue
		}

		rec := model.LogRecord{Fields: make(map[string]model.Value, len(fields))}
		for i, f := range fields {
			rec.Keys = append(rec.Keys, f.Name)
			rec.Fields[f.Name] = valueFromScan(dest[i], f.Type)
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

// CountRecords returns the number of loaded rows.
func (s *Store) CountRecords() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.table == "" {
		return 0, ErrNoTable
	}

	ctx, cancel := s.queryCtx()
	defer cancel()

	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&count)
	return count, err
}

// scanDestFor returns a nullable scan target for a column type.
func scanDestFor(t schema.FieldType) interface{} {
	switch t {
	case schema.FieldInteger:
		return new(sql.NullInt64)
	case schema.FieldFloat:
		return new(sql.NullFloat64)
	case schema.FieldBoolean:
		return new(sql.NullBool)
	default:
		return new(sql.NullString)
	}
}

// valueFromScan rebuilds a tagged value from a scanned column.
func valueFromScan(dest interface{}, t schema.FieldType) model.Value {
	switch d := dest.(type) {
	case *sql.NullInt64:
		if !d.Valid {
			return model.NullValue()
		}
		return model.IntValue(d.Int64)
	case *sql.NullFloat64:
		if !d.Valid {
			return model.NullValue()
		}
		return model.FloatValue(d.Float64)
	case *sql.NullBool:
		if !d.Valid {
			return model.NullValue()
		}
		return model.BoolValue(d.Bool)
	case *sql.NullString:
		if !d.Valid {
			return model.NullValue()
		}
		if t == schema.FieldJSON {
			trimmed := strings.TrimSpace(d.String)
			if strings.HasPrefix(trimmed, "[") {
				return model.ArrayValue(d.String)
			}
			if strings.HasPrefix(trimmed, "{") {
				return model.ObjectValue(d.String)
			}
		}
		return model.TextValue(d.String)
	}
	return model.NullValue()
}
