// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"
	"strconv"
	"strings"
)

// TripListRequest represents the validated query parameters for GET /trips.
// Request bodies live in package models; these structs cover query strings.
type TripListRequest struct {
	Limit   int    `json:"limit" validate:"min=1,max=1000"`
	Offset  int    `json:"offset" validate:"min=0,max=1000000"`
	Country string `json:"country" validate:"omitempty,len=2,alpha,country"`
	Mood    string `json:"mood" validate:"omitempty,oneof=amazing good neutral tough terrible"`
	From    string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Search  string `json:"q" validate:"max=200"`
}

// PortraitHistoryRequest represents the query parameters for GET /portrait/history.
type PortraitHistoryRequest struct {
	Limit int `json:"limit" validate:"min=1,max=50"`
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	return intValue
}
