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

	"github.com/tomtom215/travelworld/internal/cache"
	"github.com/tomtom215/travelworld/internal/countries"
	"github.com/tomtom215/travelworld/internal/eventprocessor"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/stats"
)

// RegistryGroup is one continent of the public registry listing.
type RegistryGroup struct {
	Continent countries.Continent `json:"continent"`
	Countries []countries.Country `json:"countries"`
}

// RegistryResponse is the full country registry grouped by continent.
type RegistryResponse struct {
	Total  int             `json:"total"`
	Groups []RegistryGroup `json:"groups"`
}

// NumericLookupResponse is the reconciliation entry for one numeric code.
type NumericLookupResponse struct {
	Numeric string `json:"numeric"`
	Alpha2  string `json:"alpha2,omitempty"`
	Name    string `json:"name,omitempty"`
	Known   bool   `json:"known"`
}

// CountryRegistry lists the registry grouped by continent. An optional q
// parameter filters by case-insensitive name prefix.
func (h *Handler) CountryRegistry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var list []countries.Country
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		list = h.registry.Search(q)
	} else {
		list = h.registry.All()
	}

	byContinent := make(map[countries.Continent][]countries.Country)
	for _, c := range list {
		byContinent[c.Continent] = append(byContinent[c.Continent], c)
	}
	resp := RegistryResponse{Total: len(list), Groups: make([]RegistryGroup, 0, len(countries.Continents))}
	for _, cont := range countries.Continents {
		group := byContinent[cont]
		if group == nil {
			group = []countries.Country{}
		}
		resp.Groups = append(resp.Groups, RegistryGroup{Continent: cont, Countries: group})
	}

	respondData(w, http.StatusOK, resp, start, false)
}

// NumericLookup resolves an ISO numeric code to alpha-2. An unmapped code
// is not an error: the response reports known=false.
func (h *Handler) NumericLookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	num := countries.NormalizeNumeric(chi.URLParam(r, "numeric"))
	resp := NumericLookupResponse{Numeric: num}
	if a2, ok := countries.Alpha2ForNumeric(num); ok {
		resp.Alpha2 = a2
		resp.Known = true
		resp.Name = h.registry.Name(a2)
	}

	respondData(w, http.StatusOK, resp, start, false)
}

// Countries returns the user's checklist of every registry country.
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	v, hit, err := h.cached(uid, cache.UserKey(uid, "countries", nil), func() (interface{}, error) {
		refs, manual, err := h.visitInputs(r, uid)
		if err != nil {
			return nil, err
		}
		d := stats.Aggregate(h.registry, refs, manual)
		return stats.BuildCountryList(h.registry, d.TripCodes, manual), nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load countries", err)
		return
	}

	respondData(w, http.StatusOK, v, start, hit)
}

// pathCountry reads and validates the {code} URL parameter.
func (h *Handler) pathCountry(w http.ResponseWriter, r *http.Request) (string, bool) {
	code := countries.NormalizeCode(chi.URLParam(r, "code"))
	if !h.registry.Contains(code) {
		respondErrorDetails(w, http.StatusBadRequest, ErrCodeValidation, "Unknown country code",
			map[string]interface{}{"code": sanitizeLogValue(code)}, nil)
		return "", false
	}
	return code, true
}

// MarkVisited records a manual visit marker. Marking twice is harmless.
func (h *Handler) MarkVisited(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	code, ok := h.pathCountry(w, r)
	if !ok {
		return
	}

	v, err := h.db.MarkVisited(r.Context(), uid, code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicVisitsChanged, eventprocessor.ActionMarked, uid).WithCountry(code))
	logging.Ctx(r.Context()).Info().Str("country", code).Msg("Country marked visited")

	respondData(w, http.StatusOK, v, start, false)
}

// UnmarkVisited removes a manual marker. Countries with trips answer 409;
// removing a marker that does not exist succeeds.
func (h *Handler) UnmarkVisited(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	code, ok := h.pathCountry(w, r)
	if !ok {
		return
	}

	if err := h.db.UnmarkVisited(r.Context(), uid, code); err != nil {
		writeDomainError(w, err)
		return
	}

	h.announce(r.Context(), eventprocessor.NewChangeEvent(
		eventprocessor.TopicVisitsChanged, eventprocessor.ActionUnmarked, uid).WithCountry(code))
	logging.Ctx(r.Context()).Info().Str("country", code).Msg("Country unmarked")

	w.WriteHeader(http.StatusNoContent)
}

// visitInputs loads the two visit sources for the aggregator.
func (h *Handler) visitInputs(r *http.Request, uid string) ([]stats.TripRef, []string, error) {
	refs, err := h.db.TripRefs(r.Context(), uid)
	if err != nil {
		return nil, nil, err
	}
	manual, err := h.db.ManualCodes(r.Context(), uid)
	if err != nil {
		return nil, nil, err
	}
	return refs, manual, nil
}
