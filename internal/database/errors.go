// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package database

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tomtom215/travelworld/internal/logging"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrCountryHasTrips rejects unmarking a country that trips reference.
	ErrCountryHasTrips = errors.New("country has trips")

	// ErrPhotoLimit is returned when a trip already holds the maximum
	// number of photos.
	ErrPhotoLimit = errors.New("trip photo limit reached")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *slog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error("failed to close resource",
				"type", resourceType,
				"error", err)
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
