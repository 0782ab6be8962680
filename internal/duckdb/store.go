package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/logduck/logduck/internal/model"
	"github.com/logduck/logduck/internal/schema"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store owns the single DuckDB connection for the process lifetime. All table
// creation, loading, and filter queries go through it.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	table        string
	schema       *schema.Schema
	QueryTimeout time.Duration
	// MaxRows caps the result set of QueryRecords; 0 disables the cap.
	MaxRows int
}

// NewStore opens or creates a DuckDB database.
// If dbPath is empty, an in-memory database is used.
// An optional queryTimeout can be passed; it defaults to 30s.
func NewStore(dbPath string, queryTimeout ...time.Duration) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}

	qt := 30 * time.Second
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	return &Store{
		db:           db,
		dbPath:       dbPath,
		QueryTimeout: qt,
		MaxRows:      model.DefaultMaxRows,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}

// CreateTable executes the table definition generated from the finalized
// schema and pins the schema to the store for subsequent loads and queries.
// Failure here is structural and aborts ingestion.
func (s *Store) CreateTable(sc *schema.Schema, tableName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	ddl := sc.CreateTableSQL(tableName)
	for _, stmt := range strings.Split(ddl, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", tableName, err)
		}
	}

	s.table = tableName
	s.schema = sc
	return nil
}

// Table returns the active table name.
func (s *Store) Table() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Schema returns the schema pinned by CreateTable, or nil before it runs.
func (s *Store) Schema() *schema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema
}
