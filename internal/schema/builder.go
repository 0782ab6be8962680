package schema

import (
	"fmt"
	"strings"

	"github.com/logduck/logduck/internal/model"
)

// Field is one named, typed schema column.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the finalized, immutable mapping from normalized field name to
// field type, in first-seen column order.
type Schema struct {
	fields []Field
	index  map[string]int
}

// Fields returns the columns in order. Callers must not mutate the result.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Type looks up the column type for a normalized field name.
func (s *Schema) Type(name string) (FieldType, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldText, false
	}
	return s.fields[i].Type, true
}

// Has reports whether a normalized field name is a schema column.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// quoteIdent wraps a column name in double quotes for the DDL statement.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// CreateTableSQL emits the table definition for this schema. The output is
// deterministic: the same schema always produces byte-identical text.
func (s *Schema) CreateTableSQL(tableName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE SEQUENCE IF NOT EXISTS seq_%s_id START 1;\n", tableName)
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", tableName)
	fmt.Fprintf(&sb, "    id INTEGER PRIMARY KEY DEFAULT nextval('seq_%s_id')", tableName)
	for _, f := range s.fields {
		fmt.Fprintf(&sb, ",\n    %s %s", quoteIdent(f.Name), f.Type.SQLType())
	}
	sb.WriteString("\n)")
	return sb.String()
}

// Builder accumulates per-field type observations across sampled records and
// folds conflicts through Merge.
type Builder struct {
	order     []string
	types     map[string]FieldType
	observed  map[string]bool // has a non-null observation
	finalized bool
}

// NewBuilder returns an empty schema builder.
func NewBuilder() *Builder {
	return &Builder{
		types:    make(map[string]FieldType),
		observed: make(map[string]bool),
	}
}

// Observe folds one record's fields into the running schema. Records must be
// observed in file order for stable column ordering; the merged types
// themselves are order-independent. Observations after Finalize are ignored.
func (b *Builder) Observe(r *model.LogRecord) {
	if b.finalized {
		return
	}
	for _, key := range r.Keys {
		name := Normalize(key)
		if _, seen := b.types[name]; !seen && !b.contains(name) {
			b.order = append(b.order, name)
		}
		v := r.Fields[key]
		t, constrains := Infer(v)
		if !constrains {
			// Nulls register the column but leave its type open.
			continue
		}
		if existing, ok := b.types[name]; ok {
			b.types[name] = Merge(existing, t)
		} else {
			b.types[name] = t
		}
		b.observed[name] = true
	}
}

func (b *Builder) contains(name string) bool {
	for _, n := range b.order {
		if n == name {
			return true
		}
	}
	return false
}

// Finalize freezes the builder and returns the immutable schema. Fields seen
// only as null finalize as Text.
func (b *Builder) Finalize() *Schema {
	b.finalized = true

	fields := make([]Field, 0, len(b.order))
	index := make(map[string]int, len(b.order))
	for _, name := range b.order {
		t, ok := b.types[name]
		if !ok {
			t = FieldText
		}
		index[name] = len(fields)
		fields = append(fields, Field{Name: name, Type: t})
	}
	return &Schema{fields: fields, index: index}
}
