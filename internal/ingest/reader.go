package ingest

import (
	"bufio"
	"fmt"
	"os"

	"github.com/logduck/logduck/internal/model"
)

// maxLineBytes bounds a single log line; lines beyond this fail the scan.
const maxLineBytes = 16 * 1024 * 1024

// ReadFile reads a line-delimited JSON log file, parsing every line
// independently. Parse failures are recorded per line and never stop the
// scan; only an unopenable file is an error.
func ReadFile(path string) ([]*model.LogRecord, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var records []*model.LogRecord
	var failures []LineError

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		record, perr := ParseLine(scanner.Text(), lineNum)
		if perr != nil {
			failures = append(failures, LineError{Line: lineNum, Err: perr})
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read log file: %w", err)
	}

	return records, failures, nil
}
