// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package middleware provides the HTTP infrastructure middleware shared by
all routes.

  - RequestID: reuses or generates X-Request-ID and stores it for logging.Ctx
  - AccessLog: one structured zerolog line per request
  - Metrics / PrometheusMetrics: request count, latency and in-flight gauge,
    labelled by chi route pattern
  - Compress / Compression: gzip for JSON responses

Authentication lives in internal/auth; CORS and rate limiting use go-chi/cors
and go-chi/httprate directly in the router. A typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Group(func(r chi.Router) {
	    r.Use(middleware.Metrics)
	    r.Use(middleware.Compress)
	    r.Get("/api/v1/dashboard", h.Dashboard)
	})
*/
package middleware
