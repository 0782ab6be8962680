package schema

import (
	"testing"

	"github.com/logduck/logduck/internal/model"
)

// rec builds a record from alternating key/value pairs, preserving order.
func rec(t *testing.T, pairs ...interface{}) *model.LogRecord {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("rec: odd number of arguments")
	}
	r := &model.LogRecord{Fields: make(map[string]model.Value)}
	for i := 0; i < len(pairs); i += 2 {
		key := Normalize(pairs[i].(string))
		val := pairs[i+1].(model.Value)
		if _, dup := r.Fields[key]; !dup {
			r.Keys = append(r.Keys, key)
		}
		r.Fields[key] = val
	}
	return r
}

func TestBuilder_CollapsesNormalizedNames(t *testing.T) {
	b := NewBuilder()
	b.Observe(rec(t, "msg", model.TextValue("one"), "level", model.IntValue(30), "time", model.IntValue(1000)))
	b.Observe(rec(t, "message", model.TextValue("two"), "lvl", model.IntValue(40), "timestamp", model.IntValue(2000)))
	s := b.Finalize()

	if s.Len() != 3 {
		t.Fatalf("schema has %d fields, want 3: %+v", s.Len(), s.Fields())
	}
	for _, want := range []struct {
		name string
		ft   FieldType
	}{
		{"message", FieldText},
		{"level", FieldInteger},
		{"time", FieldInteger},
	} {
		got, ok := s.Type(want.name)
		if !ok {
			t.Errorf("schema missing field %q", want.name)
			continue
		}
		if got != want.ft {
			t.Errorf("field %q type = %v, want %v", want.name, got, want.ft)
		}
	}
}

func TestBuilder_MergesConflictingTypes(t *testing.T) {
	b := NewBuilder()
	b.Observe(rec(t, "value", model.IntValue(42)))
	b.Observe(rec(t, "value", model.FloatValue(3.14)))
	b.Observe(rec(t, "status", model.IntValue(200)))
	b.Observe(rec(t, "status", model.TextValue("ok")))
	s := b.Finalize()

	if ft, _ := s.Type("value"); ft != FieldFloat {
		t.Errorf("value type = %v, want Float", ft)
	}
	if ft, _ := s.Type("status"); ft != FieldText {
		t.Errorf("status type = %v, want Text", ft)
	}
}

func TestBuilder_NullsImposeNoConstraint(t *testing.T) {
	b := NewBuilder()
	b.Observe(rec(t, "count", model.NullValue()))
	b.Observe(rec(t, "count", model.IntValue(7)))
	b.Observe(rec(t, "ghost", model.NullValue()))
	s := b.Finalize()

	if ft, _ := s.Type("count"); ft != FieldInteger {
		t.Errorf("count type = %v, want Integer (null must not force Text)", ft)
	}
	// A field only ever seen as null still gets a column, defaulting to Text.
	ft, ok := s.Type("ghost")
	if !ok {
		t.Fatal("null-only field missing from schema")
	}
	if ft != FieldText {
		t.Errorf("ghost type = %v, want Text", ft)
	}
}

func TestBuilder_SampleOrderDoesNotChangeTypes(t *testing.T) {
	records := []*model.LogRecord{
		rec(t, "v", model.IntValue(1), "w", model.BoolValue(true)),
		rec(t, "v", model.FloatValue(1.5), "w", model.TextValue("x")),
		rec(t, "v", model.IntValue(2), "w", model.BoolValue(false)),
	}

	forward := NewBuilder()
	for _, r := range records {
		forward.Observe(r)
	}
	backward := NewBuilder()
	for i := len(records) - 1; i >= 0; i-- {
		backward.Observe(records[i])
	}

	fs, bs := forward.Finalize(), backward.Finalize()
	for _, name := range []string{"v", "w"} {
		ft, _ := fs.Type(name)
		bt, _ := bs.Type(name)
		if ft != bt {
			t.Errorf("field %q: forward type %v != backward type %v", name, ft, bt)
		}
	}
}

func TestBuilder_IgnoresObservationsAfterFinalize(t *testing.T) {
	b := NewBuilder()
	b.Observe(rec(t, "a", model.IntValue(1)))
	s := b.Finalize()
	b.Observe(rec(t, "late", model.TextValue("nope")))

	if s.Has("late") {
		t.Error("field observed after Finalize leaked into schema")
	}
	if s.Len() != 1 {
		t.Errorf("schema has %d fields, want 1", s.Len())
	}
}

func TestCreateTableSQL_Deterministic(t *testing.T) {
	build := func() *Schema {
		b := NewBuilder()
		b.Observe(rec(t,
			"msg", model.TextValue("hello"),
			"level", model.IntValue(30),
			"time", model.IntValue(1234567890),
			"ratio", model.FloatValue(3.14),
			"enabled", model.BoolValue(true),
			"metadata", model.ObjectValue(`{"foo":"bar"}`),
		))
		return b.Finalize()
	}

	first := build().CreateTableSQL("logs")
	second := build().CreateTableSQL("logs")
	if first != second {
		t.Fatalf("CreateTableSQL is not deterministic:\n%s\n---\n%s", first, second)
	}

	want := "CREATE SEQUENCE IF NOT EXISTS seq_logs_id START 1;\n" +
		"CREATE TABLE logs (\n" +
		"    id INTEGER PRIMARY KEY DEFAULT nextval('seq_logs_id'),\n" +
		"    \"message\" TEXT,\n" +
		"    \"level\" BIGINT,\n" +
		"    \"time\" BIGINT,\n" +
		"    \"ratio\" DOUBLE,\n" +
		"    \"enabled\" BOOLEAN,\n" +
		"    \"metadata\" TEXT\n" +
		")"
	if first != want {
		t.Errorf("CreateTableSQL mismatch:\ngot:\n%s\nwant:\n%s", first, want)
	}
}
