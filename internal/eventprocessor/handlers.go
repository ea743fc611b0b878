// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/metrics"
)

// Invalidator drops cached data derived from one user's journal.
type Invalidator interface {
	InvalidateUser(userID, reason string) int
}

// CacheInvalidationHandler clears a user's cached dashboard, country list
// and map whenever their trips or visit markers change.
type CacheInvalidationHandler struct {
	caches []Invalidator
}

// NewCacheInvalidationHandler wraps the caches to invalidate.
func NewCacheInvalidationHandler(caches ...Invalidator) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{caches: caches}
}

// Handle processes one message. Malformed messages are logged and acked:
// redelivering them cannot succeed.
func (h *CacheInvalidationHandler) Handle(msg *message.Message) error {
	event, err := Unmarshal(msg.Payload)
	if err == nil {
		err = event.Validate()
	}
	if err != nil {
		logging.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed change event")
		metrics.EventsHandled.WithLabelValues("unknown", "dropped").Inc()
		return nil
	}

	removed := 0
	for _, c := range h.caches {
		removed += c.InvalidateUser(event.UserID, event.Topic)
	}

	logging.Debug().
		Str("topic", event.Topic).
		Str("action", event.Action).
		Str("user_id", event.UserID).
		Str("request_id", msg.Metadata.Get("request_id")).
		Int("entries_removed", removed).
		Msg("Cache invalidated")
	metrics.EventsHandled.WithLabelValues(event.Topic, "ok").Inc()
	return nil
}

// Register subscribes the handler to every change topic.
func (h *CacheInvalidationHandler) Register(r *Router) {
	r.AddConsumerHandler("cache-invalidation-trips", TopicTripsChanged, h.Handle)
	r.AddConsumerHandler("cache-invalidation-visits", TopicVisitsChanged, h.Handle)
}
