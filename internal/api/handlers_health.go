// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/models"
)

// Health handles health check requests. It always answers 200; a failed
// database ping is reported as status "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbOK := h.db != nil && h.db.Ping(r.Context()) == nil

	status := "healthy"
	if !dbOK {
		status = "degraded"
	}

	var schema int
	if dbOK {
		v, err := h.db.GetCurrentSchemaVersion(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to read schema version")
		}
		schema = v
	}

	respondData(w, http.StatusOK, models.HealthStatus{
		Status:          status,
		Version:         Version,
		DatabaseOK:      dbOK,
		PhotoStoreOK:    h.photos != nil,
		PortraitEnabled: h.portraits != nil && h.portraits.Enabled(),
		SchemaVersion:   schema,
		Cache: models.CacheInfo{
			Enabled: h.cache.Enabled(),
			Entries: h.cache.Len(),
			HitRate: h.cache.HitRate(),
		},
		Uptime:          time.Since(h.startTime).Seconds(),
		CheckedAt:       time.Now().UTC(),
	}, start, false)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now(), false)
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 503 until the database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbOK := h.db != nil && h.db.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !dbOK {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_ok":    dbOK,
			"ready_to_serve": dbOK,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
