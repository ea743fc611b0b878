// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
database_utils.go - Database Utility Functions

Profiling:
  - enableProfiling(): Enables DuckDB query profiling when ENABLE_QUERY_PROFILING=true

Context Management:
  - ensureContext(): Creates a context with 30-second timeout if none provided

Maintenance:
  - Checkpoint(): Forces a WAL checkpoint
  - GetRecordCounts(): Row counts logged at startup
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/travelworld/internal/logging"
)

// enableProfiling enables DuckDB query profiling for performance debugging
func (db *DB) enableProfiling() error {
	if os.Getenv("ENABLE_QUERY_PROFILING") != "true" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "PRAGMA enable_profiling"); err != nil {
		return fmt.Errorf("failed to enable profiling: %w", err)
	}
	if _, err := db.conn.ExecContext(ctx, "PRAGMA profiling_mode = 'detailed'"); err != nil {
		return fmt.Errorf("failed to set profiling mode: %w", err)
	}

	logging.Info().Msg("Query profiling enabled (detailed mode)")
	return nil
}

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// RecordCounts are table sizes across all users.
type RecordCounts struct {
	Trips     int64 `json:"trips"`
	Photos    int64 `json:"photos"`
	Portraits int64 `json:"portraits"`
}

// GetRecordCounts returns the count of records in main tables
func (db *DB) GetRecordCounts(ctx context.Context) (RecordCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c RecordCounts
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM trips),
		(SELECT COUNT(*) FROM photos),
		(SELECT COUNT(*) FROM ai_portraits)`).Scan(&c.Trips, &c.Photos, &c.Portraits)
	if err != nil {
		return RecordCounts{}, fmt.Errorf("failed to count records: %w", err)
	}
	return c, nil
}
