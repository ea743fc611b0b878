// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package database is the DuckDB data layer for trips, manual visited
// markers, photo metadata, AI portraits and profiles.
//
// # Architecture
//
//   - database.go: lifecycle (open, migrate, close) and transaction helper
//   - database_schema.go: table DDL and secondary indexes
//   - migrations.go: versioned, append-only schema migrations
//   - database_connection.go: pool configuration and driver error classifiers
//   - database_utils.go: profiling, context timeouts, checkpoints, counts
//   - crud_*.go: per-table data access
//   - query/: WHERE clause builder used by filtered listings
//
// # Ownership
//
// Every read and write is scoped by user ID. A row owned by another user is
// reported as ErrNotFound, never as a permission error, so IDs do not leak.
//
// # Visited Countries
//
// "Visited" is never stored. It is derived from trip country codes plus
// manual markers (see internal/stats). UnmarkVisited refuses with
// ErrCountryHasTrips while trips still reference the country, and manual
// markers survive trip deletion.
//
// # Testing
//
// Tests open ":memory:" databases. DuckDB is CGO-backed, so tests that
// touch the database are serialized through a package semaphore.
package database
