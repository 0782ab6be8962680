package ingest

import (
	"errors"
	"fmt"
)

// Per-line format violations. These never abort an ingestion run; they are
// recorded against the line number and surfaced in the debug panel.
var (
	ErrEmptyLine   = errors.New("empty line")
	ErrNotObject   = errors.New("line is not a JSON object")
	ErrEmptyObject = errors.New("empty JSON object")
)

// LineError ties a parse failure to its 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}
