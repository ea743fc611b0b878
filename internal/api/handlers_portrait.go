// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/travelworld/internal/models"
	"github.com/tomtom215/travelworld/internal/portrait"
)

// GeneratedPortrait is the POST /portrait response.
type GeneratedPortrait struct {
	Portrait        *models.Portrait `json:"portrait"`
	Sections        portrait.Parsed  `json:"sections"`
	NextAvailableAt *time.Time       `json:"next_available_at"`
}

// PortraitHistoryItem is one past portrait with its parsed sections.
type PortraitHistoryItem struct {
	models.Portrait
	Sections portrait.Parsed `json:"sections"`
}

// GetPortrait returns the current portrait (null if none), the trip count
// and when the next generation becomes possible.
func (h *Handler) GetPortrait(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	status, err := h.portraits.Current(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load portrait", err)
		return
	}

	respondData(w, http.StatusOK, status, start, false)
}

// GeneratePortrait asks the LLM for a new portrait. Answers 400 when the
// user has too few trips, 429 with next_available_at while cooling down,
// and 502 when the provider fails.
func (h *Handler) GeneratePortrait(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	p, err := h.portraits.Generate(r.Context(), uid)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	gate := h.portraits.Gate()
	respondData(w, http.StatusCreated, GeneratedPortrait{
		Portrait:        p,
		Sections:        portrait.Parse(p.Content),
		NextAvailableAt: gate.NextAvailable(&p.GeneratedAt),
	}, start, false)
}

// PortraitHistory lists past portraits, newest first.
func (h *Handler) PortraitHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	req := PortraitHistoryRequest{Limit: getIntParam(r, "limit", 10)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	list, err := h.db.ListPortraits(r.Context(), uid, req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to list portraits", err)
		return
	}

	items := make([]PortraitHistoryItem, 0, len(list))
	for _, p := range list {
		items = append(items, PortraitHistoryItem{Portrait: p, Sections: portrait.Parse(p.Content)})
	}
	respondData(w, http.StatusOK, items, start, false)
}
