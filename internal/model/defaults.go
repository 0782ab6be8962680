package model

// Shared defaults used by the binary and the ingestion pipeline.
const (
	DefaultSampleSize = 100
	DefaultBatchSize  = 1000
	DefaultTableName  = "logs"
	DefaultMaxRows    = 10000
)
