// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/models"
)

// maxConflictRetries bounds retries of optimistic-concurrency conflicts.
const maxConflictRetries = 3

// MarkVisited records a manual marker for code. Marking an already marked
// country returns the existing row unchanged.
func (db *DB) MarkVisited(ctx context.Context, userID, code string) (_ *models.VisitedCountry, err error) {
	start := time.Now()
	defer func() { observe("upsert", "visited_countries", start, err) }()

	code = strings.ToUpper(strings.TrimSpace(code))

	for attempt := 1; ; attempt++ {
		_, err = db.conn.ExecContext(ctx, `INSERT INTO visited_countries (id, user_id, country_code, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, country_code) DO NOTHING`,
			uuid.New().String(), userID, code, db.now())
		if err == nil {
			break
		}
		if !isTransactionConflict(err) || attempt >= maxConflictRetries {
			return nil, fmt.Errorf("failed to mark %s visited: %w", code, err)
		}
		logging.Ctx(ctx).Debug().Err(err).Int("attempt", attempt).Msg("Retrying visited marker after conflict")
	}

	var v models.VisitedCountry
	err = db.conn.QueryRowContext(ctx, `SELECT id, user_id, country_code, created_at
		FROM visited_countries WHERE user_id = ? AND country_code = ?`, userID, code).
		Scan(&v.ID, &v.UserID, &v.CountryCode, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read visited marker: %w", err)
	}
	return &v, nil
}

// UnmarkVisited removes the manual marker for code. It fails with
// ErrCountryHasTrips while trips reference the country. Removing a marker
// that does not exist is not an error.
func (db *DB) UnmarkVisited(ctx context.Context, userID, code string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "visited_countries", start, err) }()

	code = strings.ToUpper(strings.TrimSpace(code))

	return db.withTx(ctx, func(tx *sql.Tx) error {
		trips, err := countTripsIn(ctx, tx, userID, code)
		if err != nil {
			return err
		}
		if trips > 0 {
			return fmt.Errorf("%w: %s is referenced by %d trips", ErrCountryHasTrips, code, trips)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM visited_countries WHERE user_id = ? AND country_code = ?`, userID, code); err != nil {
			return fmt.Errorf("failed to unmark %s: %w", code, err)
		}
		return nil
	})
}

// ManualCodes returns userID's manually marked codes in marking order.
func (db *DB) ManualCodes(ctx context.Context, userID string) (_ []string, err error) {
	start := time.Now()
	defer func() { observe("select", "visited_countries", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT country_code FROM visited_countries WHERE user_id = ? ORDER BY created_at, country_code`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visited markers: %w", err)
	}
	defer closeWithLog(rows, nil, "visited rows")

	codes := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan visited marker: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}
