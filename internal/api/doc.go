// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package api provides the HTTP REST API layer for Travel World.

Every JSON response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": false}
	}

Errors carry {"code", "message", "details"} in the error field. Domain
sentinel errors map to status codes in writeDomainError.

Route groups:

  - /api/v1/health: liveness and readiness, no authentication
  - /api/v1/countries/registry, /api/v1/countries/numeric/{numeric}:
    public country reference data
  - /api/v1/dashboard, /api/v1/map, /api/v1/countries: derived visited
    statistics, cached per user and invalidated through the event bus
  - /api/v1/trips, /api/v1/photos: journal CRUD and photo albums
  - /api/v1/portrait: the AI traveler portrait behind the cooldown gate
  - /api/v1/profile: display name
  - /metrics: Prometheus

All /api/v1 routes except health and the public country data require a
bearer token or the token cookie (see package auth). Cookie-authenticated
writes are refused unless they come from the server's own origin or a
configured CORS origin.

Usage:

	handler := api.NewHandler(api.Deps{DB: db, Photos: photoSvc, Portraits: portraitSvc, Cache: c, Bus: bus, Config: cfg})
	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager, auth.WithTrustedOrigins(cfg.Security.CORSOrigins...)),
		api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
