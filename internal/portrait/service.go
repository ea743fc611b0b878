// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package portrait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/metrics"
	"github.com/tomtom215/travelworld/internal/models"
)

// ErrGeneration wraps any failure of the LLM provider.
var ErrGeneration = errors.New("portrait: generation failed")

// Store is the persistence the service needs.
type Store interface {
	CountTrips(ctx context.Context, userID string) (int, error)
	AllTrips(ctx context.Context, userID string) ([]models.Trip, error)
	// LatestPortrait returns nil, nil when the user has none.
	LatestPortrait(ctx context.Context, userID string) (*models.Portrait, error)
	InsertPortrait(ctx context.Context, p *models.Portrait) error
}

// Status is what the portrait page renders.
type Status struct {
	Portrait        *models.Portrait `json:"portrait"`
	Sections        *Parsed          `json:"sections"`
	TripsCount      int              `json:"trips_count"`
	MinTrips        int              `json:"min_trips"`
	State           State            `json:"state"`
	CanGenerate     bool             `json:"can_generate"`
	NextAvailableAt *time.Time       `json:"next_available_at"`
}

// Service gates, generates and stores portraits.
type Service struct {
	store        Store
	gen          Generator
	gate         Gate
	modelVersion string
	now          func() time.Time

	inflight singleflight.Group
}

// NewService wires a service. modelVersion is recorded on every row, for
// example "gemini/gemini-2.0-flash".
func NewService(store Store, gen Generator, gate Gate, modelVersion string) *Service {
	return &Service{
		store:        store,
		gen:          gen,
		gate:         gate,
		modelVersion: modelVersion,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether the configured provider can generate portraits.
func (s *Service) Enabled() bool {
	return Available(s.gen)
}

// Gate returns the gate the service enforces.
func (s *Service) Gate() Gate {
	return s.gate
}

// Current returns the newest portrait (if any) with the gate state.
func (s *Service) Current(ctx context.Context, userID string) (*Status, error) {
	trips, err := s.store.CountTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count trips: %w", err)
	}
	latest, err := s.store.LatestPortrait(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest portrait: %w", err)
	}

	var last *time.Time
	st := &Status{TripsCount: trips, MinTrips: s.gate.MinTrips, Portrait: latest}
	if latest != nil {
		last = &latest.GeneratedAt
		parsed := Parse(latest.Content)
		st.Sections = &parsed
	}
	now := s.now()
	st.State = s.gate.State(last, now)
	st.NextAvailableAt = s.gate.NextAvailable(last)
	st.CanGenerate = s.gate.Check(trips, last, now) == nil && Available(s.gen)
	return st, nil
}

// Generate produces and stores a new portrait. Gate rejections are returned
// as *InsufficientTripsError or *CooldownError; provider failures wrap
// ErrGeneration. Concurrent calls for one user share a single generation,
// which outlives the caller that started it: a disconnecting client must
// not fail the callers that joined.
func (s *Service) Generate(ctx context.Context, userID string) (*models.Portrait, error) {
	v, err, shared := s.inflight.Do(userID, func() (any, error) {
		return s.generate(context.WithoutCancel(ctx), userID)
	})
	if shared {
		logging.Ctx(ctx).Debug().Msg("Joined in-flight portrait generation")
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.Portrait), nil
}

func (s *Service) generate(ctx context.Context, userID string) (*models.Portrait, error) {
	count, err := s.store.CountTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count trips: %w", err)
	}
	latest, err := s.store.LatestPortrait(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("latest portrait: %w", err)
	}
	var last *time.Time
	if latest != nil {
		last = &latest.GeneratedAt
	}

	if err := s.gate.Check(count, last, s.now()); err != nil {
		switch {
		case errors.Is(err, ErrInsufficientTrips):
			metrics.RecordPortraitRequest("insufficient_trips")
		case errors.Is(err, ErrCoolingDown):
			metrics.RecordPortraitRequest("cooldown")
		}
		return nil, err
	}

	trips, err := s.store.AllTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}

	text, err := s.gen.Generate(ctx, SystemPrompt, BuildUserPrompt(trips))
	if err != nil {
		metrics.RecordPortraitRequest("error")
		logging.Ctx(ctx).Error().Err(err).Str("provider", s.gen.Provider()).Msg("Portrait generation failed")
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	p := &models.Portrait{
		ID:           uuid.NewString(),
		UserID:       userID,
		Content:      text,
		TripsCount:   len(trips),
		ModelVersion: s.modelVersion,
		GeneratedAt:  s.now(),
	}
	if a := Parse(text).Archetype; a != "" {
		p.Archetype = &a
	}
	if err := s.store.InsertPortrait(ctx, p); err != nil {
		metrics.RecordPortraitRequest("error")
		return nil, fmt.Errorf("store portrait: %w", err)
	}

	metrics.RecordPortraitRequest("generated")
	logging.Ctx(ctx).Info().Int("trips", p.TripsCount).Str("model", p.ModelVersion).Msg("Portrait generated")
	return p, nil
}
