package model

import (
	"strconv"

	"github.com/logduck/logduck/internal/logparse"
)

// ValueKind tags the six JSON value shapes a log field can carry.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindText
	KindArray
	KindObject
)

// String returns the kind name for diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is one parsed JSON field value. Kind selects which payload field is
// meaningful; consumers must switch over all six kinds.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64   // set when Kind == KindNumber and IsInt
	Float float64 // set when Kind == KindNumber and !IsInt
	IsInt bool
	Text  string // set when Kind == KindText
	JSON  string // serialized form, set when Kind is KindArray or KindObject
}

// NullValue returns the null variant.
func NullValue() Value { return Value{Kind: KindNull} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IntValue wraps an integral number.
func IntValue(i int64) Value { return Value{Kind: KindNumber, IsInt: true, Int: i} }

// FloatValue wraps a non-integral number.
func FloatValue(f float64) Value { return Value{Kind: KindNumber, Float: f} }

// TextValue wraps a string.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// ArrayValue wraps the serialized JSON text of an array.
func ArrayValue(raw string) Value { return Value{Kind: KindArray, JSON: raw} }

// ObjectValue wraps the serialized JSON text of an object.
func ObjectValue(raw string) Value { return Value{Kind: KindObject, JSON: raw} }

// Display renders a value for the log list and detail modal.
func (v Value) Display() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		if v.IsInt {
			return strconv.FormatInt(v.Int, 10)
		}
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindArray, KindObject:
		return v.JSON
	}
	return ""
}

// LogRecord is one parsed JSON log line. Field names are normalized at parse
// time so lookups and schema building agree on column names.
type LogRecord struct {
	Fields  map[string]Value
	Keys    []string // normalized field names in appearance order, deduplicated
	RawLine string
	LineNum int // 1-based line number in the source file
}

// TimestampMillis returns the record timestamp in milliseconds since epoch
// from the normalized "time" field, or false if absent or non-numeric.
func (r *LogRecord) TimestampMillis() (int64, bool) {
	v, ok := r.Fields["time"]
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	if v.IsInt {
		return v.Int, true
	}
	return int64(v.Float), true
}

// Message returns the normalized "message" field when it is text.
func (r *LogRecord) Message() string {
	if v, ok := r.Fields["message"]; ok && v.Kind == KindText {
		return v.Text
	}
	return ""
}

// LevelNum returns the raw numeric value of the "level" field, or false when
// the field is absent or not numeric.
func (r *LogRecord) LevelNum() (int64, bool) {
	v, ok := r.Fields["level"]
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	if v.IsInt {
		return v.Int, true
	}
	return int64(v.Float), true
}

// Level maps the numeric level field onto the defined log levels. A text
// level name ("warn") is accepted as a fallback.
func (r *LogRecord) Level() (logparse.Level, bool) {
	if n, ok := r.LevelNum(); ok {
		return logparse.LevelFromNumeric(n), true
	}
	if v, ok := r.Fields["level"]; ok && v.Kind == KindText {
		return logparse.LevelFromName(v.Text)
	}
	return 0, false
}
