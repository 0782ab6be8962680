package ingest

import (
	"errors"
	"testing"

	"github.com/logduck/logduck/internal/model"
)

func TestParseLine_PinoRecord(t *testing.T) {
	line := `{"level":30,"time":1531171074631,"msg":"hello world","pid":657,"hostname":"web-01"}`
	record, err := ParseLine(line, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}

	if record.Message() != "hello world" {
		t.Errorf("Message() = %q, want %q", record.Message(), "hello world")
	}
	if n, ok := record.LevelNum(); !ok || n != 30 {
		t.Errorf("LevelNum() = %d, %v; want 30, true", n, ok)
	}
	if ms, ok := record.TimestampMillis(); !ok || ms != 1531171074631 {
		t.Errorf("TimestampMillis() = %d, %v; want 1531171074631, true", ms, ok)
	}
	if record.LineNum != 1 {
		t.Errorf("LineNum = %d, want 1", record.LineNum)
	}
}

func TestParseLine_NormalizesFieldNames(t *testing.T) {
	record, err := ParseLine(`{"msg":"x","lvl":40,"timestamp":2000}`, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	for _, name := range []string{"message", "level", "time"} {
		if _, ok := record.Fields[name]; !ok {
			t.Errorf("normalized field %q missing; keys = %v", name, record.Keys)
		}
	}
	for _, name := range []string{"msg", "lvl", "timestamp"} {
		if _, ok := record.Fields[name]; ok {
			t.Errorf("raw field %q should have been normalized away", name)
		}
	}
}

func TestParseLine_KeepsKeyOrder(t *testing.T) {
	record, err := ParseLine(`{"b":1,"a":2,"c":3}`, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	want := []string{"b", "a", "c"}
	if len(record.Keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", record.Keys, want)
	}
	for i, k := range want {
		if record.Keys[i] != k {
			t.Errorf("Keys[%d] = %q, want %q", i, record.Keys[i], k)
		}
	}
}

func TestParseLine_ValueKinds(t *testing.T) {
	line := `{"n":null,"b":true,"i":42,"f":3.14,"s":"text","a":[1,2],"o":{"k":"v"}}`
	record, err := ParseLine(line, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}

	tests := []struct {
		field string
		kind  model.ValueKind
	}{
		{"n", model.KindNull},
		{"b", model.KindBool},
		{"i", model.KindNumber},
		{"f", model.KindNumber},
		{"s", model.KindText},
		{"a", model.KindArray},
		{"o", model.KindObject},
	}
	for _, tt := range tests {
		v, ok := record.Fields[tt.field]
		if !ok {
			t.Errorf("field %q missing", tt.field)
			continue
		}
		if v.Kind != tt.kind {
			t.Errorf("field %q kind = %v, want %v", tt.field, v.Kind, tt.kind)
		}
	}

	if v := record.Fields["i"]; !v.IsInt || v.Int != 42 {
		t.Errorf("integer field = %+v, want IsInt 42", v)
	}
	if v := record.Fields["f"]; v.IsInt || v.Float != 3.14 {
		t.Errorf("float field = %+v, want 3.14", v)
	}
	if v := record.Fields["o"]; v.JSON != `{"k":"v"}` {
		t.Errorf("object field JSON = %q, want %q", v.JSON, `{"k":"v"}`)
	}
}

func TestParseLine_EmptyLine(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		_, err := ParseLine(line, 7)
		if !errors.Is(err, ErrEmptyLine) {
			t.Errorf("ParseLine(%q) err = %v, want ErrEmptyLine", line, err)
		}
	}
}

func TestParseLine_InvalidJSON(t *testing.T) {
	_, err := ParseLine("not valid json", 1)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseLine_NotAnObject(t *testing.T) {
	for _, line := range []string{`[1,2,3]`, `"just a string"`, `42`, `true`} {
		_, err := ParseLine(line, 1)
		if !errors.Is(err, ErrNotObject) {
			t.Errorf("ParseLine(%q) err = %v, want ErrNotObject", line, err)
		}
	}
}

func TestParseLine_EmptyObject(t *testing.T) {
	_, err := ParseLine(`{}`, 1)
	if !errors.Is(err, ErrEmptyObject) {
		t.Errorf("ParseLine({}) err = %v, want ErrEmptyObject", err)
	}
}

func TestParseLine_UnparseableTimeKeepsRecord(t *testing.T) {
	record, err := ParseLine(`{"time":"not a number","msg":"still here"}`, 1)
	if err != nil {
		t.Fatalf("record with bad time field must still parse, got %v", err)
	}
	if _, ok := record.TimestampMillis(); ok {
		t.Error("TimestampMillis() should report false for a text time field")
	}
	if record.Message() != "still here" {
		t.Errorf("Message() = %q, want %q", record.Message(), "still here")
	}
}
