package model

// BatchFailure describes one batch whose transaction was rolled back. Records
// is the number of rows the batch contained; Salvaged counts rows recovered
// by the record-by-record retry.
type BatchFailure struct {
	Records  int
	Salvaged int
	Err      error
}

// RecordQuerier runs a SELECT over the loaded log table with an optional
// WHERE clause (empty = unfiltered) and returns matching records in
// insertion order.
type RecordQuerier interface {
	QueryRecords(whereClause string) ([]LogRecord, error)
}

// RecordWriter loads finalized-schema rows into the backing table in chunked
// transactions. It returns the number of rows committed plus one failure
// entry per rolled-back batch; the error is reserved for structural faults
// that stop loading entirely.
type RecordWriter interface {
	InsertBatches(records []*LogRecord, batchSize int) (int, []BatchFailure, error)
}
