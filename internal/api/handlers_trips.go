// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/travelworld/internal/countries"
	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/eventprocessor"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/models"
)

// TripListResponse is one page of trips.
type TripListResponse struct {
	Trips      []models.Trip         `json:"trips"`
	Pagination models.PaginationInfo `json:"pagination"`
}

func (h *Handler) pageSizes() (def, maxSize int) {
	def, maxSize = h.config.API.DefaultPageSize, h.config.API.MaxPageSize
	if maxSize <= 0 {
		maxSize = 200
	}
	if def <= 0 || def > maxSize {
		def = min(50, maxSize)
	}
	return def, maxSize
}

// ListTrips returns the user's trips, newest first.
//
// Query parameters: limit, offset, country, mood, from, to (YYYY-MM-DD) and
// q (substring of title, city, notes or country name).
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	def, maxSize := h.pageSizes()
	q := r.URL.Query()
	req := TripListRequest{
		Limit:   min(getIntParam(r, "limit", def), maxSize),
		Offset:  getIntParam(r, "offset", 0),
		Country: strings.TrimSpace(q.Get("country")),
		Mood:    strings.TrimSpace(q.Get("mood")),
		From:    strings.TrimSpace(q.Get("from")),
		To:      strings.TrimSpace(q.Get("to")),
		Search:  strings.TrimSpace(q.Get("q")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	filter := database.TripFilter{
		CountryCode: countries.NormalizeCode(req.Country),
		Mood:        req.Mood,
		Search:      req.Search,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if req.From != "" {
		from, _ := time.Parse(models.DateLayout, req.From)
		filter.From = &from
	}
	if req.To != "" {
		// inclusive of the whole end day
		to, _ := time.Parse(models.DateLayout, req.To)
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	trips, total, err := h.db.ListTrips(r.Context(), uid, filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to list trips", err)
		return
	}

	respondData(w, http.StatusOK, TripListResponse{
		Trips: trips,
		Pagination: models.PaginationInfo{
			Limit:      req.Limit,
			Offset:     req.Offset,
			HasMore:    req.Offset+len(trips) < total,
			TotalCount: total,
		},
	}, start, false)
}

// CreateTrip records a new trip.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.TripRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	trip, err := req.ToTrip(uid)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	if err := h.db.CreateTrip(r.Context(), trip); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to create trip", err)
		return
	}
	trip.Photos = []models.Photo{}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicTripsChanged, eventprocessor.ActionCreated, uid).WithTrip(trip.ID, trip.CountryCode))
	logging.Ctx(r.Context()).Info().Str("trip_id", trip.ID).Str("country", trip.CountryCode).Msg("Trip created")

	respondData(w, http.StatusCreated, trip, start, false)
}

// GetTrip returns one trip with its ordered photos.
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	trip, err := h.db.GetTrip(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respondData(w, http.StatusOK, trip, start, false)
}

// UpdateTrip replaces a trip's editable fields. The whole trip is sent;
// omitted optional fields are cleared.
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req models.TripRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	updated, err := req.ToTrip(uid)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	existing, err := h.db.GetTrip(r.Context(), uid, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Photos = existing.Photos

	if err := h.db.UpdateTrip(r.Context(), updated); err != nil {
		writeDomainError(w, err)
		return
	}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicTripsChanged, eventprocessor.ActionUpdated, uid).WithTrip(updated.ID, updated.CountryCode))
	if existing.CountryCode != updated.CountryCode {
		logging.Ctx(r.Context()).Info().
			Str("trip_id", id).
			Str("from", existing.CountryCode).
			Str("to", updated.CountryCode).
			Msg("Trip moved to another country")
	}

	respondData(w, http.StatusOK, updated, start, false)
}

// DeleteTrip removes a trip, its photo rows and its photo blobs. Manual
// visit markers for the country are kept.
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.photos.DeleteTrip(r.Context(), uid, id); err != nil {
		writeDomainError(w, err)
		return
	}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicTripsChanged, eventprocessor.ActionDeleted, uid).WithTrip(id, ""))
	logging.Ctx(r.Context()).Info().Str("trip_id", id).Msg("Trip deleted")

	w.WriteHeader(http.StatusNoContent)
}
