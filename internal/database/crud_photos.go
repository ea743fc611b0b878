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

	"github.com/tomtom215/travelworld/internal/models"
)

const photoColumns = `id, trip_id, user_id, storage_path, content_type, size_bytes, caption, sort_order, created_at`

func scanPhoto(row rowScanner) (*models.Photo, error) {
	var p models.Photo
	err := row.Scan(&p.ID, &p.TripID, &p.UserID, &p.StoragePath, &p.ContentType,
		&p.SizeBytes, &p.Caption, &p.SortOrder, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertPhoto appends photo to its trip, assigning the next sort order. It
// fails with ErrPhotoLimit when the trip already holds maxPerTrip photos and
// with ErrNotFound when the trip is not the user's.
func (db *DB) InsertPhoto(ctx context.Context, photo *models.Photo, maxPerTrip int) (err error) {
	start := time.Now()
	defer func() { observe("insert", "photos", start, err) }()

	if photo.ID == "" {
		photo.ID = uuid.New().String()
	}
	photo.CreatedAt = db.now()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		var owned int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE id = ? AND user_id = ?`,
			photo.TripID, photo.UserID).Scan(&owned); err != nil {
			return fmt.Errorf("failed to check trip: %w", err)
		}
		if owned == 0 {
			return ErrNotFound
		}

		var count, next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*), COALESCE(MAX(sort_order) + 1, 0) FROM photos WHERE trip_id = ?`,
			photo.TripID).Scan(&count, &next); err != nil {
			return fmt.Errorf("failed to count photos: %w", err)
		}
		if maxPerTrip > 0 && count >= maxPerTrip {
			return ErrPhotoLimit
		}
		photo.SortOrder = next

		_, err := tx.ExecContext(ctx, `INSERT INTO photos (`+photoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			photo.ID, photo.TripID, photo.UserID, photo.StoragePath, photo.ContentType,
			photo.SizeBytes, nullString(photo.Caption), photo.SortOrder, photo.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert photo: %w", err)
		}
		return nil
	})
}

// CountPhotos returns how many photos tripID holds.
func (db *DB) CountPhotos(ctx context.Context, tripID string) (n int, err error) {
	start := time.Now()
	defer func() { observe("count", "photos", start, err) }()

	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE trip_id = ?`, tripID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}

// GetPhoto returns one of userID's photos.
func (db *DB) GetPhoto(ctx context.Context, userID, id string) (_ *models.Photo, err error) {
	start := time.Now()
	defer func() { observe("select", "photos", start, err) }()

	p, err := scanPhoto(db.conn.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

// ListPhotos returns tripID's photos in album order.
func (db *DB) ListPhotos(ctx context.Context, tripID string) (_ []models.Photo, err error) {
	start := time.Now()
	defer func() { observe("select", "photos", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE trip_id = ? ORDER BY sort_order, created_at`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer closeWithLog(rows, nil, "photo rows")

	photos := make([]models.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// UpdatePhotoCaption sets or clears a photo's caption.
func (db *DB) UpdatePhotoCaption(ctx context.Context, userID, id string, caption *string) (_ *models.Photo, err error) {
	start := time.Now()
	defer func() { observe("update", "photos", start, err) }()

	res, err := db.conn.ExecContext(ctx, `UPDATE photos SET caption = ? WHERE id = ? AND user_id = ?`,
		nullString(caption), id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update caption: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetPhoto(ctx, userID, id)
}

// DeletePhoto removes a photo row. The blob must be removed by the caller.
func (db *DB) DeletePhoto(ctx context.Context, userID, id string) (err error) {
	start := time.Now()
	defer func() { observe("delete", "photos", start, err) }()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM photos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
