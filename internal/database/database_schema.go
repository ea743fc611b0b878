// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
database_schema.go - Database Schema

Tables:
  - trips: one journey to one country; the source of "visited" alongside
    visited_countries
  - visited_countries: manual markers, unique per (user_id, country_code)
  - photos: image metadata; bytes live in the photo blob store
  - ai_portraits: append-only portrait log, newest row per user is current
  - profiles: optional display name per user

The schema is applied through versioned migrations (migrations.go). Foreign
keys are not declared: DuckDB cannot cascade deletes, so trip deletion
removes photo rows explicitly in the same transaction.

Timestamps are TIMESTAMP (no zone) holding UTC so no ICU extension is needed.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

const createTripsTable = `
CREATE TABLE IF NOT EXISTS trips (
	id VARCHAR PRIMARY KEY,
	user_id VARCHAR NOT NULL,
	country_code VARCHAR(2) NOT NULL,
	country_name VARCHAR NOT NULL,
	city VARCHAR,
	title VARCHAR,
	started_at DATE NOT NULL,
	ended_at DATE,
	notes VARCHAR,
	mood VARCHAR,
	is_public BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

const createVisitedCountriesTable = `
CREATE TABLE IF NOT EXISTS visited_countries (
	id VARCHAR PRIMARY KEY,
	user_id VARCHAR NOT NULL,
	country_code VARCHAR(2) NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE (user_id, country_code)
);`

const createPhotosTable = `
CREATE TABLE IF NOT EXISTS photos (
	id VARCHAR PRIMARY KEY,
	trip_id VARCHAR NOT NULL,
	user_id VARCHAR NOT NULL,
	storage_path VARCHAR NOT NULL,
	content_type VARCHAR NOT NULL,
	size_bytes BIGINT NOT NULL,
	caption VARCHAR,
	sort_order INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

const createPortraitsTable = `
CREATE TABLE IF NOT EXISTS ai_portraits (
	id VARCHAR PRIMARY KEY,
	user_id VARCHAR NOT NULL,
	archetype VARCHAR,
	content VARCHAR NOT NULL,
	trips_count INTEGER NOT NULL,
	model_version VARCHAR NOT NULL,
	generated_at TIMESTAMP NOT NULL
);`

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id VARCHAR PRIMARY KEY,
	display_name VARCHAR,
	updated_at TIMESTAMP NOT NULL
);`

// createIndexes creates secondary indexes. All are idempotent.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, q := range db.getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", q, err)
		}
	}
	return nil
}

func (db *DB) getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_trips_user_started ON trips(user_id, started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_trips_user_country ON trips(user_id, country_code);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_trip ON photos(trip_id);`,
		`CREATE INDEX IF NOT EXISTS idx_portraits_user_generated ON ai_portraits(user_id, generated_at);`,
	}
}
