// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package eventprocessor

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version.
const SchemaVersion = 1

// Topics on the in-process bus.
const (
	TopicTripsChanged  = "trips.changed"
	TopicVisitsChanged = "visits.changed"
)

// Actions carried by ChangeEvent.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionMarked   = "marked"
	ActionUnmarked = "unmarked"
	ActionPhotos   = "photos"
)

// ChangeEvent announces that a user's journal data changed, so anything
// derived from it (cached dashboards, country lists, map shading) is stale.
type ChangeEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	Topic         string    `json:"topic"`
	Action        string    `json:"action"`
	UserID        string    `json:"user_id"`
	CountryCode   string    `json:"country_code,omitempty"`
	TripID        string    `json:"trip_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewChangeEvent fills the generated fields.
func NewChangeEvent(topic, action, userID string) *ChangeEvent {
	return &ChangeEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Topic:         topic,
		Action:        action,
		UserID:        userID,
		Timestamp:     time.Now().UTC(),
	}
}

// WithTrip sets the trip and its country.
func (e *ChangeEvent) WithTrip(tripID, countryCode string) *ChangeEvent {
	e.TripID = tripID
	e.CountryCode = countryCode
	return e
}

// WithCountry sets the country code.
func (e *ChangeEvent) WithCountry(code string) *ChangeEvent {
	e.CountryCode = code
	return e
}

// Validate checks required fields.
func (e *ChangeEvent) Validate() error {
	var errs []error
	if e.EventID == "" {
		errs = append(errs, errors.New("event_id is required"))
	}
	if e.UserID == "" {
		errs = append(errs, errors.New("user_id is required"))
	}
	switch e.Topic {
	case TopicTripsChanged, TopicVisitsChanged:
	default:
		errs = append(errs, fmt.Errorf("unknown topic %q", e.Topic))
	}
	if e.Action == "" {
		errs = append(errs, errors.New("action is required"))
	}
	return errors.Join(errs...)
}

// Marshal validates and encodes an event.
func Marshal(e *ChangeEvent) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes an event. Events from a newer schema are rejected.
func Unmarshal(data []byte) (*ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if e.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", e.SchemaVersion)
	}
	return &e, nil
}
