// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package models

import (
	"time"
)

// APIResponse is the envelope every JSON endpoint returns.
//
// Status is "success" (see Data) or "error" (see Error).
//
//	{
//	  "status": "success",
//	  "data": {"total_countries": 12, "percent_world": 6.2},
//	  "metadata": {"timestamp": "2026-05-01T12:00:00Z", "query_time_ms": 3}
//	}
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-05-01T12:00:00Z"},
//	  "error": {
//	    "code": "PORTRAIT_COOLDOWN",
//	    "message": "Next portrait can be generated later",
//	    "details": {"nextAvailableAt": "2026-05-04T12:00:00Z"}
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for observability.
//
// QueryTimeMS is zero and Cached is true when the payload came from the
// response cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Codes in use:
//   - VALIDATION_ERROR: malformed or invalid request input
//   - UNAUTHORIZED: missing or invalid bearer token
//   - NOT_FOUND: the resource does not exist or belongs to another user
//   - COUNTRY_HAS_TRIPS: unmark refused because trips reference the country
//   - PHOTO_LIMIT, PHOTO_TOO_LARGE, PHOTO_TYPE: upload rejected
//   - INSUFFICIENT_TRIPS, PORTRAIT_COOLDOWN: portrait generation refused
//   - LLM_ERROR: the language model call failed
//   - DATABASE_ERROR, STORAGE_ERROR, INTERNAL_ERROR: server-side failures
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo describes a limit/offset page of a list endpoint.
type PaginationInfo struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
	TotalCount int  `json:"total_count"`
}

// HealthStatus is returned by GET /api/v1/health.
type HealthStatus struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	DatabaseOK      bool      `json:"database_ok"`
	PhotoStoreOK    bool      `json:"photo_store_ok"`
	PortraitEnabled bool      `json:"portrait_enabled"`
	SchemaVersion   int       `json:"schema_version"`
	Cache           CacheInfo `json:"cache"`
	Uptime          float64   `json:"uptime_seconds"`
	CheckedAt       time.Time `json:"checked_at"`
}

// CacheInfo summarises the response cache for the health endpoint.
type CacheInfo struct {
	Enabled bool    `json:"enabled"`
	Entries int     `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}
