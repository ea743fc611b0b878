// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/travelworld/internal/database/query"
	"github.com/tomtom215/travelworld/internal/models"
	"github.com/tomtom215/travelworld/internal/stats"
)

// TripFilter narrows ListTrips. Zero values mean "no filter".
type TripFilter struct {
	CountryCode string
	Mood        string
	From        *time.Time
	To          *time.Time
	Search      string
	Limit       int
	Offset      int
}

const tripColumns = `id, user_id, country_code, country_name, city, title,
	started_at, ended_at, notes, mood, is_public, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	var t models.Trip
	err := row.Scan(&t.ID, &t.UserID, &t.CountryCode, &t.CountryName, &t.City, &t.Title,
		&t.StartedAt, &t.EndedAt, &t.Notes, &t.Mood, &t.IsPublic, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullMood(m *models.Mood) any {
	if m == nil {
		return nil
	}
	return string(*m)
}

// CreateTrip inserts trip, assigning ID and timestamps when unset.
func (db *DB) CreateTrip(ctx context.Context, trip *models.Trip) (err error) {
	start := time.Now()
	defer func() { observe("insert", "trips", start, err) }()

	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	trip.CreatedAt = db.now()
	trip.UpdatedAt = trip.CreatedAt

	_, err = db.conn.ExecContext(ctx, `INSERT INTO trips (`+tripColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.UserID, trip.CountryCode, trip.CountryName,
		nullString(trip.City), nullString(trip.Title),
		trip.StartedAt, nullTime(trip.EndedAt), nullString(trip.Notes), nullMood(trip.Mood),
		trip.IsPublic, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTrip returns one of userID's trips with its photos.
func (db *DB) GetTrip(ctx context.Context, userID, id string) (_ *models.Trip, err error) {
	start := time.Now()
	defer func() { observe("select", "trips", start, err) }()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ? AND user_id = ?`, id, userID)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	trip.Photos, err = db.ListPhotos(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns a page of userID's trips, newest first, and the total
// number of trips matching the filter.
func (db *DB) ListTrips(ctx context.Context, userID string, f TripFilter) (_ []models.Trip, total int, err error) {
	start := time.Now()
	defer func() { observe("select", "trips", start, err) }()

	wb := query.NewWhereBuilder().AddClause("user_id = ?", userID)
	if f.CountryCode != "" {
		wb.AddClause("country_code = ?", f.CountryCode)
	}
	if f.Mood != "" {
		wb.AddClause("mood = ?", f.Mood)
	}
	wb.AddDateRange("started_at", f.From, f.To)
	wb.AddSearch(f.Search, "title", "city", "notes", "country_name")
	where, args := wb.BuildWithPrefix()

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	q := `SELECT ` + tripColumns + ` FROM trips ` + where + ` ORDER BY started_at DESC, created_at DESC`
	if f.Limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, max(f.Offset, 0))
	}

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer closeWithLog(rows, nil, "trip rows")

	trips := make([]models.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trips: %w", err)
	}
	return trips, total, nil
}

// AllTrips returns every trip of userID, oldest first.
func (db *DB) AllTrips(ctx context.Context, userID string) (_ []models.Trip, err error) {
	start := time.Now()
	defer func() { observe("select", "trips", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = ? ORDER BY started_at, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer closeWithLog(rows, nil, "trip rows")

	trips := make([]models.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// UpdateTrip overwrites the editable fields of an existing trip.
func (db *DB) UpdateTrip(ctx context.Context, trip *models.Trip) (err error) {
	start := time.Now()
	defer func() { observe("update", "trips", start, err) }()

	trip.UpdatedAt = db.now()
	res, err := db.conn.ExecContext(ctx, `UPDATE trips SET
		country_code = ?, country_name = ?, city = ?, title = ?,
		started_at = ?, ended_at = ?, notes = ?, mood = ?, is_public = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		trip.CountryCode, trip.CountryName, nullString(trip.City), nullString(trip.Title),
		trip.StartedAt, nullTime(trip.EndedAt), nullString(trip.Notes), nullMood(trip.Mood),
		trip.IsPublic, trip.UpdatedAt,
		trip.ID, trip.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrip removes a trip and its photo rows in one transaction. Photo
// blobs must be removed by the caller beforehand.
func (db *DB) DeleteTrip(ctx context.Context, userID, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "trips", start, err) }()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE trip_id = ? AND user_id = ?`, id, userID); err != nil {
			return fmt.Errorf("failed to delete trip photos: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = ? AND user_id = ?`, id, userID)
		if err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountTrips returns how many trips userID has logged.
func (db *DB) CountTrips(ctx context.Context, userID string) (n int, err error) {
	start := time.Now()
	defer func() { observe("count", "trips", start, err) }()

	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count trips: %w", err)
	}
	return n, nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// countTripsIn counts userID's trips that reference code.
func countTripsIn(ctx context.Context, q rowQuerier, userID, code string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trips WHERE user_id = ? AND country_code = ?`, userID, code).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to check trips for %s: %w", code, err)
	}
	return n, nil
}

// TripRefs returns the country and start date of every trip in insertion
// order, which the aggregator uses to break most-visited ties.
func (db *DB) TripRefs(ctx context.Context, userID string) (_ []stats.TripRef, err error) {
	start := time.Now()
	defer func() { observe("select", "trips", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT country_code, started_at FROM trips WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trip refs: %w", err)
	}
	defer closeWithLog(rows, nil, "trip ref rows")

	refs := make([]stats.TripRef, 0)
	for rows.Next() {
		var r stats.TripRef
		if err := rows.Scan(&r.CountryCode, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip ref: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}
