// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package models defines the persisted records and API payloads shared by the
// database, service and HTTP layers.
package models

import (
	"time"
)

// Mood is how a traveler felt about a trip.
type Mood string

const (
	MoodAmazing  Mood = "amazing"
	MoodGood     Mood = "good"
	MoodNeutral  Mood = "neutral"
	MoodTough    Mood = "tough"
	MoodTerrible Mood = "terrible"
)

// Moods lists valid moods, best first.
var Moods = []Mood{MoodAmazing, MoodGood, MoodNeutral, MoodTough, MoodTerrible}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

// Trip is one journey to one country. Its country code is what makes a
// country count as visited; there is no stored "visited" flag.
//
// StartedAt and EndedAt are calendar dates without time zone; they are
// stored at midnight UTC.
type Trip struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	CountryCode string     `json:"country_code"`
	CountryName string     `json:"country_name"`
	City        *string    `json:"city"`
	Title       *string    `json:"title"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	Notes       *string    `json:"notes"`
	Mood        *Mood      `json:"mood"`
	IsPublic    bool       `json:"is_public"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Photos is populated on detail reads only, ordered by SortOrder.
	Photos []Photo `json:"photos,omitempty"`
}

// Photo is an image attached to a trip. The bytes live in the photo store
// under StoragePath; this row only references them.
type Photo struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	UserID      string    `json:"user_id"`
	StoragePath string    `json:"storage_path"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Caption     *string   `json:"caption"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// VisitedCountry is a manual "I have been here" marker. Unique per
// (UserID, CountryCode).
type VisitedCountry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CountryCode string    `json:"country_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// Portrait is one stored generation. Rows are never updated; the newest row
// per user is the current portrait.
type Portrait struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Archetype    *string   `json:"archetype"`
	Content      string    `json:"content"`
	TripsCount   int       `json:"trips_count"`
	ModelVersion string    `json:"model_version"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Profile holds the optional display name shown on the dashboard.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName *string   `json:"display_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}
