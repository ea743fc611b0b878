// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/travelworld/internal/cache"
	"github.com/tomtom215/travelworld/internal/stats"
)

// DashboardResponse is the map page payload.
type DashboardResponse struct {
	stats.Dashboard
	DisplayName string `json:"display_name"`
}

// MapResponse shades every requested map feature.
type MapResponse struct {
	Regions []stats.MapRegion `json:"regions"`
	Visited int               `json:"visited"`
}

// Dashboard returns the user's visited statistics.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	v, hit, err := h.cached(uid, cache.UserKey(uid, "dashboard", nil), func() (interface{}, error) {
		refs, manual, err := h.visitInputs(r, uid)
		if err != nil {
			return nil, err
		}
		resp := DashboardResponse{
			Dashboard:   stats.Aggregate(h.registry, refs, manual),
			DisplayName: defaultDisplayName,
		}
		profile, err := h.db.GetProfile(r.Context(), uid)
		if err != nil {
			return nil, err
		}
		if profile != nil && profile.DisplayName != nil && strings.TrimSpace(*profile.DisplayName) != "" {
			resp.DisplayName = *profile.DisplayName
		}
		return resp, nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load dashboard", err)
		return
	}

	respondData(w, http.StatusOK, v, start, hit)
}

// maxMapIDs bounds the ids parameter. World geometries carry a few hundred
// features at most.
const maxMapIDs = 512

// Map returns per-region shading for the world map widget. The optional
// ids parameter lists the numeric feature ids of the loaded geometry;
// without it every id in the reconciliation table is shaded. Only the
// visited set is cached, so arbitrary id lists do not grow the cache.
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	ids := parseCommaSeparated(r.URL.Query().Get("ids"))
	if len(ids) > maxMapIDs {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest,
			fmt.Sprintf("At most %d ids may be requested", maxMapIDs), nil)
		return
	}

	v, hit, err := h.cached(uid, cache.UserKey(uid, "visited", nil), func() (interface{}, error) {
		refs, manual, err := h.visitInputs(r, uid)
		if err != nil {
			return nil, err
		}
		return stats.VisitedCodes(h.registry, refs, manual), nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load map", err)
		return
	}
	visited, _ := v.([]string)

	respondData(w, http.StatusOK, MapResponse{
		Regions: stats.MapRegions(ids, visited),
		Visited: len(visited),
	}, start, hit)
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
