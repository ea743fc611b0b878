// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/models"
	"github.com/tomtom215/travelworld/internal/photos"
	"github.com/tomtom215/travelworld/internal/portrait"
	"github.com/tomtom215/travelworld/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeCoolingDown      = "PORTRAIT_COOLDOWN"
	ErrCodeInsufficient     = "INSUFFICIENT_TRIPS"
	ErrCodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	ErrCodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeDatabase         = "DATABASE_ERROR"
	ErrCodeLLM              = "LLM_ERROR"
)

// maxJSONBody bounds request bodies decoded by decodeJSON.
const maxJSONBody = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData wraps data in a success envelope.
func respondData(w http.ResponseWriter, status int, data interface{}, start time.Time, cached bool) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		evt := logging.Warn()
		if status >= http.StatusInternalServerError {
			evt = logging.Error()
		}
		evt.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// writeDomainError maps sentinel errors from the domain packages to
// status codes. Unknown errors become 500 with a generic message.
func writeDomainError(w http.ResponseWriter, err error) {
	var cooldown *portrait.CooldownError
	var insufficient *portrait.InsufficientTripsError

	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	case errors.Is(err, database.ErrCountryHasTrips):
		respondError(w, http.StatusConflict, ErrCodeConflict,
			"Country has trips; delete them before unmarking", err)
	case errors.Is(err, photos.ErrMissingPhotoBlob):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Photo bytes not found", err)
	case errors.Is(err, photos.ErrNoFiles):
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "No files uploaded", err)
	case errors.Is(err, photos.ErrTooManyPhotos):
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), err)
	case errors.Is(err, photos.ErrFileTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, err.Error(), err)
	case errors.Is(err, photos.ErrUnsupportedType):
		respondError(w, http.StatusUnsupportedMediaType, ErrCodeUnsupportedMedia, err.Error(), err)
	case errors.As(err, &insufficient):
		respondErrorDetails(w, http.StatusBadRequest, ErrCodeInsufficient, insufficient.Error(),
			map[string]interface{}{"trips_count": insufficient.Have, "min_trips": insufficient.Need}, nil)
	case errors.Is(err, portrait.ErrInsufficientTrips):
		respondError(w, http.StatusBadRequest, ErrCodeInsufficient, "Not enough trips", nil)
	case errors.As(err, &cooldown):
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds(cooldown.NextAvailableAt)))
		respondErrorDetails(w, http.StatusTooManyRequests, ErrCodeCoolingDown, "Portrait is cooling down",
			map[string]interface{}{"next_available_at": cooldown.NextAvailableAt.UTC()}, nil)
	case errors.Is(err, portrait.ErrGeneration):
		respondError(w, http.StatusBadGateway, ErrCodeLLM, "Portrait generation failed", err)
	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}

func retryAfterSeconds(at time.Time) int64 {
	secs := int64(time.Until(at).Seconds()) + 1
	if secs < 1 {
		return 1
	}
	return secs
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeAndValidate combines decodeJSON and validateRequest, writing the
// 400 response itself. It reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return false
	}
	if apiErr := validateRequest(dst); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return false
	}
	return true
}
