package ingest

import (
	"fmt"
	"log"
	"sort"

	"github.com/logduck/logduck/internal/model"
	"github.com/logduck/logduck/internal/schema"
)

// TableWriter is the storage surface the pipeline needs: create the inferred
// table, then batch-load rows into it.
type TableWriter interface {
	CreateTable(sc *schema.Schema, tableName string) error
	model.RecordWriter
}

// Config holds the tunable ingestion parameters.
type Config struct {
	SampleSize int    // records fed to the schema builder
	BatchSize  int    // rows per insert transaction
	TableName  string // target table
}

// Report summarizes one ingestion run for the status line and debug panel.
type Report struct {
	TotalLines    int
	Loaded        int
	ParseFailures []LineError
	BatchFailures []model.BatchFailure
	// DroppedFields counts occurrences of fields first seen after the
	// schema sample window closed. They are not loaded.
	DroppedFields map[string]int
}

// DroppedFieldNames returns the dropped field names in sorted order.
func (r *Report) DroppedFieldNames() []string {
	names := make([]string, 0, len(r.DroppedFields))
	for name := range r.DroppedFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline runs one ingestion: read, sample, create table, batch load.
// It runs to completion before the interactive loop starts and owns no
// state afterwards.
type Pipeline struct {
	store TableWriter
	cfg   Config
}

// NewPipeline creates a pipeline writing into store.
func NewPipeline(store TableWriter, cfg Config) *Pipeline {
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = model.DefaultSampleSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = model.DefaultBatchSize
	}
	if cfg.TableName == "" {
		cfg.TableName = model.DefaultTableName
	}
	return &Pipeline{store: store, cfg: cfg}
}

// Run ingests the file at path. Isolated bad lines never abort the run; it
// fails only when the file cannot be read or the table definition is
// rejected by the engine.
func (p *Pipeline) Run(path string) (*schema.Schema, *Report, error) {
	records, parseFailures, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	sampleSize := p.cfg.SampleSize
	if sampleSize > len(records) {
		sampleSize = len(records)
	}

	builder := schema.NewBuilder()
	for _, r := range records[:sampleSize] {
		builder.Observe(r)
	}
	sc := builder.Finalize()

	log.Printf("ingest: sampled %d of %d records, schema has %d fields",
		sampleSize, len(records), sc.Len())

	if err := p.store.CreateTable(sc, p.cfg.TableName); err != nil {
		return nil, nil, fmt.Errorf("table definition rejected: %w", err)
	}

	report := &Report{
		TotalLines:    len(records) + len(parseFailures),
		ParseFailures: parseFailures,
		DroppedFields: countDroppedFields(sc, records[sampleSize:]),
	}

	inserted, batchFailures, err := p.store.InsertBatches(records, p.cfg.BatchSize)
	if err != nil {
		return nil, nil, err
	}
	report.Loaded = inserted
	report.BatchFailures = batchFailures

	for name, count := range report.DroppedFields {
		log.Printf("ingest: field %q first seen after sample window, dropped from %d records", name, count)
	}
	log.Printf("ingest: loaded %d records, %d parse failures", report.Loaded, len(report.ParseFailures))

	return sc, report, nil
}

// countDroppedFields tallies fields in post-sample records that have no
// schema column. Their values are silently absent from the table, so the
// report calls them out.
func countDroppedFields(sc *schema.Schema, rest []*model.LogRecord) map[string]int {
	dropped := make(map[string]int)
	for _, r := range rest {
		for _, name := range r.Keys {
			if !sc.Has(name) {
				dropped[name]++
			}
		}
	}
	return dropped
}
