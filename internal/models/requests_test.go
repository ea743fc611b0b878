// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package models

import (
	"testing"
	"time"
)

func TestTripRequestToTrip(t *testing.T) {
	t.Parallel()

	req := &TripRequest{
		CountryCode: "fr",
		CountryName: " France ",
		City:        "Lyon",
		StartedAt:   "2024-05-01",
		EndedAt:     "2024-05-09",
		Mood:        "amazing",
	}

	trip, err := req.ToTrip("user-1")
	if err != nil {
		t.Fatalf("ToTrip() error = %v", err)
	}
	if trip.CountryCode != "FR" {
		t.Errorf("CountryCode = %q, want FR", trip.CountryCode)
	}
	if trip.CountryName != "France" {
		t.Errorf("CountryName = %q", trip.CountryName)
	}
	if trip.City == nil || *trip.City != "Lyon" {
		t.Errorf("City = %v", trip.City)
	}
	if trip.Title != nil || trip.Notes != nil {
		t.Error("empty optional fields should be nil")
	}
	if !trip.StartedAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartedAt = %v", trip.StartedAt)
	}
	if trip.EndedAt == nil || trip.EndedAt.Day() != 9 {
		t.Errorf("EndedAt = %v", trip.EndedAt)
	}
	if trip.Mood == nil || *trip.Mood != MoodAmazing {
		t.Errorf("Mood = %v", trip.Mood)
	}
}

func TestTripRequestToTripErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  TripRequest
	}{
		{"bad start", TripRequest{CountryCode: "FR", CountryName: "France", StartedAt: "05/01/2024"}},
		{"bad end", TripRequest{CountryCode: "FR", CountryName: "France", StartedAt: "2024-05-01", EndedAt: "soon"}},
		{"end before start", TripRequest{CountryCode: "FR", CountryName: "France", StartedAt: "2024-05-10", EndedAt: "2024-05-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tt.req.ToTrip("u"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMoodValid(t *testing.T) {
	t.Parallel()

	for _, m := range Moods {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if Mood("ecstatic").Valid() {
		t.Error("ecstatic should be invalid")
	}
}
