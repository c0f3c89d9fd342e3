// Package duckdb serves the product catalog from an in-memory DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/pharmacare/showcase/internal/duckdb/migrate"
)

// DefaultQueryTimeout bounds every catalog query.
const DefaultQueryTimeout = 30 * time.Second

// Store manages the DuckDB connection and provides catalog queries.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	log          zerolog.Logger
	QueryTimeout time.Duration
}

// NewStore opens an in-memory DuckDB database and applies the catalog schema.
// An optional queryTimeout can be passed; it defaults to 30s.
func NewStore(log zerolog.Logger, queryTimeout ...time.Duration) (*Store, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	qt := DefaultQueryTimeout
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	runner := migrate.NewRunner(db)
	runner.OnApply = func(version int, name string) {
		log.Debug().Int("version", version).Str("name", name).Msg("Applied migration")
	}
	ctx, cancel := context.WithTimeout(context.Background(), qt)
	defer cancel()
	if err := runner.Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating catalog schema: %w", err)
	}

	return &Store{
		db:           db,
		log:          log,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}
