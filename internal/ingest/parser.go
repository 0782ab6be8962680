package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/logduck/logduck/internal/model"
	"github.com/logduck/logduck/internal/schema"
)

// ParseLine parses one JSON log line into a LogRecord. Field names are
// normalized and kept in appearance order so schema building sees a stable
// column order. Empty lines and non-object JSON are format errors.
func ParseLine(line string, lineNum int) (*model.LogRecord, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, ErrEmptyLine
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	record := &model.LogRecord{
		Fields:  make(map[string]model.Value),
		RawLine: trimmed,
		LineNum: lineNum,
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, ErrNotObject
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}

		name := schema.Normalize(key)
		if _, dup := record.Fields[name]; !dup {
			record.Keys = append(record.Keys, name)
		}
		record.Fields[name] = valueFromRaw(raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if len(record.Fields) == 0 {
		return nil, ErrEmptyObject
	}
	return record, nil
}

// valueFromRaw classifies one raw JSON value into the tagged variant.
// Arrays and objects keep their source text so they load as queryable JSON.
func valueFromRaw(raw json.RawMessage) model.Value {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return model.NullValue()
	}
	switch s[0] {
	case 'n':
		return model.NullValue()
	case 't':
		return model.BoolValue(true)
	case 'f':
		return model.BoolValue(false)
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return model.TextValue(s)
		}
		return model.TextValue(text)
	case '[':
		return model.ArrayValue(s)
	case '{':
		return model.ObjectValue(s)
	default:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return model.IntValue(i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return model.FloatValue(f)
		}
		return model.TextValue(s)
	}
}
