// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/travelworld/internal/auth"
	"github.com/tomtom215/travelworld/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mwConfig uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.Metrics)

		// Public reference data
		r.Group(func(r chi.Router) {
			r.Use(middleware.Compress)
			r.Get("/countries/registry", h.CountryRegistry)
			r.Get("/countries/numeric/{numeric}", h.NumericLookup)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.auth.Handler)

			// photo bytes are already compressed images
			r.Get("/photos/{id}", h.GetPhoto)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Compress)

				r.Get("/dashboard", h.Dashboard)
				r.Get("/map", h.Map)

				r.Get("/countries", h.Countries)
				r.Put("/countries/{code}/visited", h.MarkVisited)
				r.Delete("/countries/{code}/visited", h.UnmarkVisited)

				r.Route("/trips", func(r chi.Router) {
					r.Get("/", h.ListTrips)
					r.Post("/", h.CreateTrip)
					r.Get("/{id}", h.GetTrip)
					r.Put("/{id}", h.UpdateTrip)
					r.Delete("/{id}", h.DeleteTrip)
					r.With(router.chiMiddleware.RateLimitCustom(RateLimitUpload)).
						Post("/{id}/photos", h.UploadPhotos)
				})

				r.Patch("/photos/{id}", h.UpdatePhotoCaption)
				r.Delete("/photos/{id}", h.DeletePhoto)

				r.Get("/portrait", h.GetPortrait)
				r.With(router.chiMiddleware.RateLimitCustom(RateLimitPortrait)).
					Post("/portrait", h.GeneratePortrait)
				r.Get("/portrait/history", h.PortraitHistory)

				r.Get("/profile", h.GetProfile)
				r.Put("/profile", h.UpdateProfile)
			})
		})
	})

	return r
}
