// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package models

import (
	"fmt"
	"strings"
	"time"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	CountryCode string `json:"country_code" validate:"required,len=2,alpha,country"`
	CountryName string `json:"country_name" validate:"required,max=100"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Title       string `json:"title" validate:"omitempty,max=200"`
	StartedAt   string `json:"started_at" validate:"required,datetime=2006-01-02"`
	EndedAt     string `json:"ended_at" validate:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes" validate:"omitempty,max=10000"`
	Mood        string `json:"mood" validate:"omitempty,oneof=amazing good neutral tough terrible"`
	IsPublic    bool   `json:"is_public"`
}

// ToTrip converts a validated request into a Trip owned by userID. Empty
// optional strings become nil.
func (r *TripRequest) ToTrip(userID string) (*Trip, error) {
	started, err := time.Parse(DateLayout, r.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("started_at: %w", err)
	}

	t := &Trip{
		UserID:      userID,
		CountryCode: strings.ToUpper(strings.TrimSpace(r.CountryCode)),
		CountryName: strings.TrimSpace(r.CountryName),
		City:        optional(r.City),
		Title:       optional(r.Title),
		StartedAt:   started,
		Notes:       optional(r.Notes),
		IsPublic:    r.IsPublic,
	}

	if r.EndedAt != "" {
		ended, err := time.Parse(DateLayout, r.EndedAt)
		if err != nil {
			return nil, fmt.Errorf("ended_at: %w", err)
		}
		if ended.Before(started) {
			return nil, fmt.Errorf("ended_at %s is before started_at %s", r.EndedAt, r.StartedAt)
		}
		t.EndedAt = &ended
	}
	if r.Mood != "" {
		m := Mood(r.Mood)
		t.Mood = &m
	}
	return t, nil
}

// PhotoCaptionRequest updates a photo caption.
type PhotoCaptionRequest struct {
	Caption string `json:"caption" validate:"max=500"`
}

// ProfileRequest updates the dashboard display name.
type ProfileRequest struct {
	DisplayName string `json:"display_name" validate:"max=100"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
