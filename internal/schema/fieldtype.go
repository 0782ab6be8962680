package schema

import "github.com/logduck/logduck/internal/model"

// FieldType is the inferred storage type for one log field.
type FieldType uint8

const (
	FieldText FieldType = iota
	FieldInteger
	FieldFloat
	FieldBoolean
	FieldJSON
)

// String returns the display name shown in the filter panel.
func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "TEXT"
	case FieldInteger:
		return "INTEGER"
	case FieldFloat:
		return "FLOAT"
	case FieldBoolean:
		return "BOOLEAN"
	case FieldJSON:
		return "JSON"
	}
	return "TEXT"
}

// SQLType returns the DuckDB column type for this field type. JSON fields are
// stored as their serialized text so they stay queryable.
func (t FieldType) SQLType() string {
	switch t {
	case FieldText:
		return "TEXT"
	case FieldInteger:
		return "BIGINT"
	case FieldFloat:
		return "DOUBLE"
	case FieldBoolean:
		return "BOOLEAN"
	case FieldJSON:
		return "TEXT"
	}
	return "TEXT"
}

// Merge reconciles two type observations for the same field. Equal types keep
// themselves, Integer and Float widen to Float, and any other conflict falls
// back to Text. The operation is commutative and associative.
func Merge(a, b FieldType) FieldType {
	if a == b {
		return a
	}
	if (a == FieldInteger && b == FieldFloat) || (a == FieldFloat && b == FieldInteger) {
		return FieldFloat
	}
	return FieldText
}

// Infer returns the field type for one observed value. Null values impose no
// constraint and report false.
func Infer(v model.Value) (FieldType, bool) {
	switch v.Kind {
	case model.KindNull:
		return FieldText, false
	case model.KindBool:
		return FieldBoolean, true
	case model.KindNumber:
		if v.IsInt {
			return FieldInteger, true
		}
		return FieldFloat, true
	case model.KindText:
		return FieldText, true
	case model.KindArray, model.KindObject:
		return FieldJSON, true
	}
	return FieldText, true
}
