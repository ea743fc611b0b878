// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/travelworld/internal/models"
)

func TestTripRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mood := models.MoodGood
	end := date(2024, 5, 10)
	trip := &models.Trip{
		UserID:      "u1",
		CountryCode: "JP",
		CountryName: "Japan",
		City:        strPtr("Kyoto"),
		Title:       strPtr("Spring"),
		StartedAt:   date(2024, 5, 1),
		EndedAt:     &end,
		Mood:        &mood,
		IsPublic:    true,
	}
	if err := db.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if trip.ID == "" || trip.CreatedAt.IsZero() {
		t.Fatal("CreateTrip should assign ID and timestamps")
	}

	got, err := db.GetTrip(ctx, "u1", trip.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.CountryCode != "JP" || got.City == nil || *got.City != "Kyoto" {
		t.Errorf("unexpected trip %+v", got)
	}
	if !got.StartedAt.Equal(trip.StartedAt) || got.EndedAt == nil || !got.EndedAt.Equal(end) {
		t.Errorf("dates = %v..%v", got.StartedAt, got.EndedAt)
	}
	if got.Mood == nil || *got.Mood != models.MoodGood {
		t.Errorf("mood = %v", got.Mood)
	}
	if got.Notes != nil {
		t.Errorf("notes = %q, want nil", *got.Notes)
	}
	if !got.IsPublic {
		t.Error("IsPublic lost")
	}
	if got.Photos == nil || len(got.Photos) != 0 {
		t.Errorf("photos = %v, want empty slice", got.Photos)
	}
}

func TestGetTripScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	trip := insertTrip(t, db, "u1", "FR", date(2024, 1, 1))

	_, err := db.GetTrip(context.Background(), "u2", trip.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("other user's trip: got %v, want ErrNotFound", err)
	}
	_, err = db.GetTrip(context.Background(), "u1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing trip: got %v, want ErrNotFound", err)
	}
}

func TestListTripsOrderingAndFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insertTrip(t, db, "u1", "FR", date(2023, 6, 1))
	jp := insertTrip(t, db, "u1", "JP", date(2024, 4, 1))
	insertTrip(t, db, "u1", "FR", date(2025, 1, 1))
	insertTrip(t, db, "u2", "BR", date(2024, 1, 1))

	jp.Title = strPtr("Cherry blossoms")
	if err := db.UpdateTrip(ctx, jp); err != nil {
		t.Fatalf("UpdateTrip: %v", err)
	}

	all, total, err := db.ListTrips(ctx, "u1", TripFilter{})
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("got %d/%d trips, want 3", len(all), total)
	}
	if !all[0].StartedAt.Equal(date(2025, 1, 1)) || !all[2].StartedAt.Equal(date(2023, 6, 1)) {
		t.Errorf("trips not newest first: %v, %v", all[0].StartedAt, all[2].StartedAt)
	}

	from := date(2024, 1, 1)
	tests := []struct {
		name   string
		filter TripFilter
		want   int
		total  int
	}{
		{"country", TripFilter{CountryCode: "FR"}, 2, 2},
		{"from date", TripFilter{From: &from}, 2, 2},
		{"search title", TripFilter{Search: "cherry"}, 1, 1},
		{"page", TripFilter{Limit: 2, Offset: 2}, 1, 3},
		{"no match", TripFilter{CountryCode: "BR"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := db.ListTrips(ctx, "u1", tt.filter)
			if err != nil {
				t.Fatalf("ListTrips: %v", err)
			}
			if len(got) != tt.want || total != tt.total {
				t.Errorf("got %d trips (total %d), want %d (total %d)", len(got), total, tt.want, tt.total)
			}
		})
	}
}

func TestUpdateTripNotFound(t *testing.T) {
	db := setupTestDB(t)
	trip := insertTrip(t, db, "u1", "FR", date(2024, 1, 1))

	trip.UserID = "u2"
	if err := db.UpdateTrip(context.Background(), trip); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteTripRemovesPhotos(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	trip := insertTrip(t, db, "u1", "FR", date(2024, 1, 1))

	photo := &models.Photo{TripID: trip.ID, UserID: "u1", StoragePath: "u1/x.jpg", ContentType: "image/jpeg", SizeBytes: 10}
	if err := db.InsertPhoto(ctx, photo, 20); err != nil {
		t.Fatalf("InsertPhoto: %v", err)
	}

	if err := db.DeleteTrip(ctx, "u2", trip.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete by other user: got %v, want ErrNotFound", err)
	}
	if n, _ := db.CountPhotos(ctx, trip.ID); n != 1 {
		t.Fatal("failed delete must not remove photos")
	}

	if err := db.DeleteTrip(ctx, "u1", trip.ID); err != nil {
		t.Fatalf("DeleteTrip: %v", err)
	}
	if n, _ := db.CountPhotos(ctx, trip.ID); n != 0 {
		t.Errorf("photos left after delete: %d", n)
	}
	if n, _ := db.CountTrips(ctx, "u1"); n != 0 {
		t.Errorf("trips left after delete: %d", n)
	}
}

func TestTripRefsInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insertTrip(t, db, "u1", "JP", date(2025, 1, 1))
	insertTrip(t, db, "u1", "FR", date(2020, 1, 1))
	insertTrip(t, db, "u1", "JP", date(2021, 1, 1))

	refs, err := db.TripRefs(ctx, "u1")
	if err != nil {
		t.Fatalf("TripRefs: %v", err)
	}
	got := make([]string, len(refs))
	for i, r := range refs {
		got[i] = r.CountryCode
	}
	if len(got) != 3 || got[0] != "JP" || got[1] != "FR" || got[2] != "JP" {
		t.Errorf("refs = %v, want insertion order [JP FR JP]", got)
	}

	all, err := db.AllTrips(ctx, "u1")
	if err != nil {
		t.Fatalf("AllTrips: %v", err)
	}
	if all[0].CountryCode != "FR" {
		t.Errorf("AllTrips should be oldest first, got %s", all[0].CountryCode)
	}

	if n, err := countTripsIn(ctx, db.conn, "u1", "JP"); err != nil || n != 2 {
		t.Errorf("countTripsIn(JP) = %d, %v", n, err)
	}
	if n, _ := countTripsIn(ctx, db.conn, "u1", "BR"); n != 0 {
		t.Errorf("countTripsIn(BR) = %d, want 0", n)
	}
}
