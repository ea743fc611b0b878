// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/travelworld/internal/auth"
	"github.com/tomtom215/travelworld/internal/cache"
	"github.com/tomtom215/travelworld/internal/config"
	"github.com/tomtom215/travelworld/internal/countries"
	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/eventprocessor"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/photos"
	"github.com/tomtom215/travelworld/internal/portrait"
)

// Version is reported by the health endpoint.
var Version = "dev"

// defaultDisplayName is shown when a user never set a display name.
const defaultDisplayName = "Traveler"

// Deps are the handler's collaborators. Bus may be nil, in which case
// caches are invalidated directly after each write.
type Deps struct {
	DB        *database.DB
	Photos    *photos.Service
	Portraits *portrait.Service
	Cache     *cache.Cache
	Bus       *eventprocessor.Bus
	Registry  *countries.Registry
	Config    *config.Config
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by resource:
//   - handlers_health.go: liveness and readiness
//   - handlers_countries.go: registry, reconciliation lookup, visit markers
//   - handlers_dashboard.go: dashboard statistics and map shading
//   - handlers_trips.go: trip CRUD
//   - handlers_photos.go: photo albums
//   - handlers_portrait.go: traveler portrait
//   - handlers_profile.go: display name
type Handler struct {
	db        *database.DB
	photos    *photos.Service
	portraits *portrait.Service
	cache     *cache.Cache
	bus       *eventprocessor.Bus
	registry  *countries.Registry
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler. A nil Registry means the built-in
// country list; a nil Cache disables response caching.
func NewHandler(d Deps) *Handler {
	reg := d.Registry
	if reg == nil {
		reg = countries.Default()
	}
	c := d.Cache
	if c == nil {
		c = cache.New("api", 0)
	}
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Handler{
		db:        d.DB,
		photos:    d.Photos,
		portraits: d.Portraits,
		cache:     c,
		bus:       d.Bus,
		registry:  reg,
		config:    cfg,
		startTime: time.Now(),
	}
}

// announce drops the user's cached statistics and publishes a change event
// for other consumers. The cache is always invalidated here: the bus
// accepts messages without delivering them while no router is subscribed.
func (h *Handler) announce(ctx context.Context, event *eventprocessor.ChangeEvent) {
	h.cache.InvalidateUser(event.UserID, event.Topic)
	if h.bus == nil {
		return
	}
	if err := h.bus.Publish(ctx, event); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("topic", event.Topic).Msg("Event publish failed")
	}
}

// userID returns the authenticated user. Routes are mounted behind the auth
// middleware, so an empty id means a wiring error and is answered with 401.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := auth.UserID(r.Context())
	if id == "" {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return "", false
	}
	return id, true
}

// cached serves key from the cache or computes and stores it. A result is
// not stored if the user's data changed while it was being computed.
func (h *Handler) cached(uid, key string, compute func() (interface{}, error)) (interface{}, bool, error) {
	if v, ok := h.cache.Get(key); ok {
		return v, true, nil
	}
	gen := h.cache.Generation(uid)
	v, err := compute()
	if err != nil {
		return nil, false, err
	}
	h.cache.SetForUser(uid, gen, key, v)
	return v, false, nil
}
