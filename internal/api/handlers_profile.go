// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/travelworld/internal/models"
)

// ProfileResponse always carries a display name, falling back to the
// default for users who never set one.
type ProfileResponse struct {
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	IsDefault   bool       `json:"is_default"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func profileResponse(uid string, p *models.Profile) ProfileResponse {
	resp := ProfileResponse{UserID: uid, DisplayName: defaultDisplayName, IsDefault: true}
	if p == nil {
		return resp
	}
	resp.UpdatedAt = &p.UpdatedAt
	if p.DisplayName != nil && *p.DisplayName != "" {
		resp.DisplayName = *p.DisplayName
		resp.IsDefault = false
	}
	return resp
}

// GetProfile returns the user's display name.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	p, err := h.db.GetProfile(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load profile", err)
		return
	}
	respondData(w, http.StatusOK, profileResponse(uid, p), start, false)
}

// UpdateProfile sets the display name; a blank name restores the default.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.db.UpsertProfile(r.Context(), uid, &req.DisplayName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to save profile", err)
		return
	}
	// the dashboard embeds the display name
	h.cache.InvalidateUser(uid, "profile")

	respondData(w, http.StatusOK, profileResponse(uid, p), start, false)
}
