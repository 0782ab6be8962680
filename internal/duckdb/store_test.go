package duckdb

import (
	"strings"
	"testing"
	"time"

	"github.com/logduck/logduck/internal/model"
	"github.com/logduck/logduck/internal/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// testRecord builds a record with normalized keys in the given order.
func testRecord(t *testing.T, line int, pairs ...interface{}) *model.LogRecord {
	t.Helper()
	r := &model.LogRecord{Fields: make(map[string]model.Value), LineNum: line}
	for i := 0; i < len(pairs); i += 2 {
		key := schema.Normalize(pairs[i].(string))
		r.Keys = append(r.Keys, key)
		r.Fields[key] = pairs[i+1].(model.Value)
	}
	return r
}

func buildSchema(t *testing.T, records ...*model.LogRecord) *schema.Schema {
	t.Helper()
	b := schema.NewBuilder()
	for _, r := range records {
		b.Observe(r)
	}
	return b.Finalize()
}

func setupLoadedStore(t *testing.T, records []*model.LogRecord) *Store {
	t.Helper()
	store := newTestStore(t)
	sc := buildSchema(t, records...)
	if err := store.CreateTable(sc, "logs"); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	inserted, failures, err := store.InsertBatches(records, 2)
	if err != nil {
		t.Fatalf("InsertBatches: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("InsertBatches reported %d batch failures: %+v", len(failures), failures)
	}
	if inserted != len(records) {
		t.Fatalf("inserted %d records, want %d", inserted, len(records))
	}
	return store
}

func sampleRecords(t *testing.T) []*model.LogRecord {
	t.Helper()
	return []*model.LogRecord{
		testRecord(t, 1,
			"level", model.IntValue(30),
			"time", model.IntValue(1000),
			"msg", model.TextValue("start")),
		testRecord(t, 2,
			"level", model.IntValue(50),
			"time", model.IntValue(2000),
			"message", model.TextValue("boom"),
			"extra", model.ObjectValue(`{"code":1}`)),
		testRecord(t, 3,
			"level", model.IntValue(40),
			"time", model.IntValue(3000),
			"msg", model.TextValue("careful")),
	}
}

func TestCreateTableAndLoad(t *testing.T) {
	store := setupLoadedStore(t, sampleRecords(t))

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != 3 {
		t.Errorf("CountRecords = %d, want 3", count)
	}
}

func TestQueryRecords_Unfiltered(t *testing.T) {
	store := setupLoadedStore(t, sampleRecords(t))

	rows, err := store.QueryRecords("")
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Insertion order preserved.
	if rows[0].Message() != "start" || rows[2].Message() != "careful" {
		t.Errorf("rows out of insertion order: %q, %q", rows[0].Message(), rows[2].Message())
	}
}

func TestQueryRecords_ErrorsOnlyPreset(t *testing.T) {
	store := setupLoadedStore(t, sampleRecords(t))

	rows, err := store.QueryRecords("level >= 50")
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want exactly 1", len(rows))
	}
	if rows[0].Message() != "boom" {
		t.Errorf("filtered row message = %q, want %q", rows[0].Message(), "boom")
	}
	extra, ok := rows[0].Fields["extra"]
	if !ok || extra.Kind != model.KindObject {
		t.Errorf("extra field = %+v, want object value queryable as text", extra)
	}
}

func TestQueryRecords_MissingFieldsAreNull(t *testing.T) {
	store := setupLoadedStore(t, sampleRecords(t))

	rows, err := store.QueryRecords("")
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	// First record never had an "extra" field.
	if v := rows[0].Fields["extra"]; v.Kind != model.KindNull {
		t.Errorf("missing field loaded as %v, want null", v.Kind)
	}
}

func TestQueryRecords_EngineErrorVerbatim(t *testing.T) {
	store := setupLoadedStore(t, sampleRecords(t))

	_, err := store.QueryRecords("nonsense_column = 42")
	if err == nil {
		t.Fatal("expected engine error for unknown column")
	}
	if strings.Contains(err.Error(), "disallowed") {
		t.Errorf("engine error was reinterpreted by the guard: %v", err)
	}
}

func TestGuardWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		where  string
		wantOK bool
	}{
		{"plain comparison", "level >= 40", true},
		{"string match", "message LIKE '%fail%'", true},
		{"semicolon chain", "level >= 40; DROP TABLE logs", false},
		{"drop keyword", "DROP TABLE logs", false},
		{"keyword in comment", "level >= 40 /* DELETE */", false},
		{"reset is not set", "message = 'RESETTING'", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GuardWhereClause(tt.where)
			if (err == nil) != tt.wantOK {
				t.Errorf("GuardWhereClause(%q) err = %v, wantOK = %v", tt.where, err, tt.wantOK)
			}
		})
	}
}

func TestInsertBatches_CoercesDriftedTypes(t *testing.T) {
	// Schema established from the first record only: status is Integer.
	first := testRecord(t, 1, "status", model.IntValue(200), "msg", model.TextValue("ok"))
	store := newTestStore(t)
	if err := store.CreateTable(buildSchema(t, first), "logs"); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	// A later record carries status as text: dropped to NULL for an
	// Integer column rather than failing the batch.
	drifted := testRecord(t, 2, "status", model.TextValue("teapot"), "msg", model.TextValue("odd"))
	inserted, failures, err := store.InsertBatches([]*model.LogRecord{first, drifted}, 10)
	if err != nil {
		t.Fatalf("InsertBatches: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected batch failures: %+v", failures)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	rows, err := store.QueryRecords("status IS NULL")
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if len(rows) != 1 || rows[0].Message() != "odd" {
		t.Errorf("drifted record not stored with NULL status: %+v", rows)
	}
}

func TestInsertBatches_TimeoutIsPerBatchNotPerLoad(t *testing.T) {
	// A load spread over many small batches must not be bounded by one
	// shared deadline: each transaction gets its own. With a 300ms budget
	// and thousands of batches, a load-wide deadline would start failing
	// batches partway through and drop valid records.
	store, err := NewStore("", 300*time.Millisecond)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	records := make([]*model.LogRecord, 20000)
	for i := range records {
		records[i] = testRecord(t, i+1, "level", model.IntValue(30))
	}
	if err := store.CreateTable(buildSchema(t, records[0]), "logs"); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	inserted, failures, err := store.InsertBatches(records, 10)
	if err != nil {
		t.Fatalf("InsertBatches: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("batch failures under short timeout: %+v", failures[0])
	}
	if inserted != len(records) {
		t.Fatalf("inserted = %d, want %d", inserted, len(records))
	}

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if count != int64(len(records)) {
		t.Fatalf("count = %d, want %d", count, len(records))
	}
}

func TestQueryRecords_MaxRowsCapsResultSet(t *testing.T) {
	store := setupLoadedStore(t, sampleRecords(t))
	store.MaxRows = 2

	rows, err := store.QueryRecords("")
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want cap of 2", len(rows))
	}
	// Insertion order is preserved, so the cap keeps the earliest rows.
	if rows[0].Message() != "start" {
		t.Errorf("first capped row = %q, want \"start\"", rows[0].Message())
	}

	store.MaxRows = 0
	rows, err = store.QueryRecords("")
	if err != nil {
		t.Fatalf("QueryRecords: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("uncapped len(rows) = %d, want 3", len(rows))
	}
}

func TestInsertBatches_BeforeCreateTable(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.InsertBatches([]*model.LogRecord{testRecord(t, 1, "a", model.IntValue(1))}, 10)
	if err != ErrNoTable {
		t.Errorf("InsertBatches before CreateTable: err = %v, want ErrNoTable", err)
	}
}
