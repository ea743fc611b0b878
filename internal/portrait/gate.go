// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package portrait

import (
	"errors"
	"fmt"
	"time"
)

// Defaults for the generation gate.
const (
	DefaultCooldown = 72 * time.Hour
	DefaultMinTrips = 3
)

var (
	// ErrInsufficientTrips rejects generation for users with too few trips.
	// It applies regardless of cooldown state.
	ErrInsufficientTrips = errors.New("portrait: not enough trips")

	// ErrCoolingDown rejects generation inside the cooldown window. The
	// concrete error is a *CooldownError carrying the retry time.
	ErrCoolingDown = errors.New("portrait: cooling down")
)

// InsufficientTripsError reports how many trips the user has and needs.
// errors.Is(err, ErrInsufficientTrips) holds.
type InsufficientTripsError struct {
	Have int
	Need int
}

func (e *InsufficientTripsError) Error() string {
	return fmt.Sprintf("portrait: %d trips recorded, at least %d required", e.Have, e.Need)
}

// Is matches ErrInsufficientTrips.
func (e *InsufficientTripsError) Is(target error) bool {
	return target == ErrInsufficientTrips
}

// CooldownError reports when the next generation becomes possible.
// errors.Is(err, ErrCoolingDown) holds.
type CooldownError struct {
	NextAvailableAt time.Time
}

func (e *CooldownError) Error() string {
	return "portrait: next generation available at " + e.NextAvailableAt.UTC().Format(time.RFC3339)
}

// Is matches ErrCoolingDown.
func (e *CooldownError) Is(target error) bool {
	return target == ErrCoolingDown
}

// State is the gate's cooldown state.
type State string

const (
	StateAvailable   State = "available"
	StateCoolingDown State = "cooling_down"
)

// Gate decides whether a user may request a new portrait.
//
// After a successful generation at T the gate is cooling down for every
// instant in [T, T+Cooldown) and available again at T+Cooldown.
type Gate struct {
	Cooldown time.Duration
	MinTrips int
}

// DefaultGate is a three-day cooldown with a three-trip minimum.
func DefaultGate() Gate {
	return Gate{Cooldown: DefaultCooldown, MinTrips: DefaultMinTrips}
}

// NextAvailable returns lastGenerated+Cooldown, or nil when the user has
// never generated a portrait.
func (g Gate) NextAvailable(lastGenerated *time.Time) *time.Time {
	if lastGenerated == nil {
		return nil
	}
	next := lastGenerated.Add(g.Cooldown)
	return &next
}

// State reports the cooldown state at now.
func (g Gate) State(lastGenerated *time.Time, now time.Time) State {
	next := g.NextAvailable(lastGenerated)
	if next == nil || !now.Before(*next) {
		return StateAvailable
	}
	return StateCoolingDown
}

// Check returns nil when generation is permitted. The trip minimum is
// checked first so a user with too few trips never sees a cooldown.
func (g Gate) Check(tripsCount int, lastGenerated *time.Time, now time.Time) error {
	if tripsCount < g.MinTrips {
		return &InsufficientTripsError{Have: tripsCount, Need: g.MinTrips}
	}
	if g.State(lastGenerated, now) == StateCoolingDown {
		return &CooldownError{NextAvailableAt: *g.NextAvailable(lastGenerated)}
	}
	return nil
}
