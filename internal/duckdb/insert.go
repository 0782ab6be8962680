package duckdb

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/logduck/logduck/internal/model"
	"github.com/logduck/logduck/internal/schema"
)

// ErrNoTable is returned when loading is attempted before CreateTable.
var ErrNoTable = errors.New("duckdb: table not created")

// InsertBatches loads records in schema column order, grouped into chunks of
// batchSize rows. Each chunk commits as one transaction; a failed chunk is
// rolled back and retried record-by-record to salvage what it can, leaving
// previously committed chunks intact. Returns the number of rows committed
// and one BatchFailure per rolled-back chunk.
func (s *Store) InsertBatches(records []*model.LogRecord, batchSize int) (int, []model.BatchFailure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schema == nil {
		return 0, nil, ErrNoTable
	}
	if batchSize <= 0 {
		batchSize = model.DefaultBatchSize
	}

	insertSQL := s.insertSQL()

	var inserted int
	var failures []model.BatchFailure

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		err := s.insertBatchTx(insertSQL, batch)
		if err == nil {
			inserted += len(batch)
			continue
		}

		// Batch failed, rolled back. Retry record-by-record to salvage
		// what we can; committed batches are untouched.
		salvaged := 0
		for _, r := range batch {
			if rerr := s.insertBatchTx(insertSQL, []*model.LogRecord{r}); rerr != nil {
				log.Printf("duckdb: dropping record line=%d: %v", r.LineNum, rerr)
			} else {
				salvaged++
			}
		}
		inserted += salvaged
		failures = append(failures, model.BatchFailure{
			Records:  len(batch),
			Salvaged: salvaged,
			Err:      err,
		})
		log.Printf("duckdb: batch of %d failed, salvaged %d: %v", len(batch), salvaged, err)
	}

	return inserted, failures, nil
}

// insertSQL builds the INSERT statement for the pinned schema.
func (s *Store) insertSQL() string {
	cols := make([]string, 0, s.schema.Len())
	params := make([]string, 0, s.schema.Len())
	for _, f := range s.schema.Fields() {
		cols = append(cols, quoteColumn(f.Name))
		params = append(params, "?")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(cols, ", "), strings.Join(params, ", "))
}

func quoteColumn(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// insertBatchTx inserts records in a single transaction. The query timeout
// bounds each transaction separately; a long load is limited per batch, not
// in total, so loading never fails just because the file is large.
func (s *Store) insertBatchTx(insertSQL string, records []*model.LogRecord) error {
	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		args := make([]interface{}, 0, s.schema.Len())
		for _, f := range s.schema.Fields() {
			args = append(args, paramFor(r.Fields[f.Name], f.Type))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("record insert (line %d): %w", r.LineNum, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// paramFor converts a field value into the driver argument for its column
// type. Missing and null fields map to NULL; values whose kind no longer
// matches the stored type (fields that drifted after the sample window) are
// coerced into the nearest compatible representation or dropped to NULL.
func paramFor(v model.Value, t schema.FieldType) interface{} {
	if v.Kind == model.KindNull {
		return nil
	}

	switch t {
	case schema.FieldInteger:
		if v.Kind == model.KindNumber {
			if v.IsInt {
				return v.Int
			}
			return int64(v.Float)
		}
		return nil
	case schema.FieldFloat:
		if v.Kind == model.KindNumber {
			if v.IsInt {
				return float64(v.Int)
			}
			return v.Float
		}
		return nil
	case schema.FieldBoolean:
		if v.Kind == model.KindBool {
			return v.Bool
		}
		return nil
	case schema.FieldJSON:
		// Arrays and objects are stored as their JSON text so they remain
		// queryable; scalars that drifted in are stored as display text.
		switch v.Kind {
		case model.KindArray, model.KindObject:
			return v.JSON
		default:
			return v.Display()
		}
	default: // FieldText
		return v.Display()
	}
}
