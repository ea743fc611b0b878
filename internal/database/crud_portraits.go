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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/travelworld/internal/models"
)

const portraitColumns = `id, user_id, archetype, content, trips_count, model_version, generated_at`

func scanPortrait(row rowScanner) (*models.Portrait, error) {
	var p models.Portrait
	if err := row.Scan(&p.ID, &p.UserID, &p.Archetype, &p.Content, &p.TripsCount, &p.ModelVersion, &p.GeneratedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertPortrait appends a portrait to the user's log.
func (db *DB) InsertPortrait(ctx context.Context, p *models.Portrait) (err error) {
	start := time.Now()
	defer func() { observe("insert", "ai_portraits", start, err) }()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = db.now()
	}

	_, err = db.conn.ExecContext(ctx, `INSERT INTO ai_portraits (`+portraitColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, nullString(p.Archetype), p.Content, p.TripsCount, p.ModelVersion, p.GeneratedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert portrait: %w", err)
	}
	return nil
}

// LatestPortrait returns the user's newest portrait, or nil, nil when there
// is none.
func (db *DB) LatestPortrait(ctx context.Context, userID string) (_ *models.Portrait, err error) {
	start := time.Now()
	defer func() { observe("select", "ai_portraits", start, err) }()

	p, err := scanPortrait(db.conn.QueryRowContext(ctx, `SELECT `+portraitColumns+`
		FROM ai_portraits WHERE user_id = ? ORDER BY generated_at DESC LIMIT 1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest portrait: %w", err)
	}
	return p, nil
}

// ListPortraits returns up to limit of the user's portraits, newest first.
func (db *DB) ListPortraits(ctx context.Context, userID string, limit int) (_ []models.Portrait, err error) {
	start := time.Now()
	defer func() { observe("select", "ai_portraits", start, err) }()

	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.QueryContext(ctx, `SELECT `+portraitColumns+`
		FROM ai_portraits WHERE user_id = ? ORDER BY generated_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list portraits: %w", err)
	}
	defer closeWithLog(rows, nil, "portrait rows")

	out := make([]models.Portrait, 0)
	for rows.Next() {
		p, err := scanPortrait(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portrait: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetProfile returns the user's profile, or nil, nil when none was saved.
func (db *DB) GetProfile(ctx context.Context, userID string) (_ *models.Profile, err error) {
	start := time.Now()
	defer func() { observe("select", "profiles", start, err) }()

	var p models.Profile
	err = db.conn.QueryRowContext(ctx, `SELECT user_id, display_name, updated_at FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.DisplayName, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile sets the user's display name. A blank name clears it.
func (db *DB) UpsertProfile(ctx context.Context, userID string, displayName *string) (_ *models.Profile, err error) {
	start := time.Now()
	defer func() { observe("upsert", "profiles", start, err) }()

	if displayName != nil {
		trimmed := strings.TrimSpace(*displayName)
		displayName = &trimmed
		if trimmed == "" {
			displayName = nil
		}
	}

	p := &models.Profile{UserID: userID, DisplayName: displayName, UpdatedAt: db.now()}
	_, err = db.conn.ExecContext(ctx, `INSERT INTO profiles (user_id, display_name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET display_name = EXCLUDED.display_name, updated_at = EXCLUDED.updated_at`,
		p.UserID, nullString(p.DisplayName), p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}
