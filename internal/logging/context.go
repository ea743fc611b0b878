// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
)

// GenerateRequestID returns a new UUID string.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID stores the HTTP request ID for later log events.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithUserID stores the authenticated user ID for later log events.
func ContextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the user ID or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger enriched with request_id and user_id
// when ctx carries them.
//
//	logging.Ctx(r.Context()).Info().Str("trip_id", id).Msg("Trip deleted")
func Ctx(ctx context.Context) *zerolog.Logger {
	zctx := With()
	if id := RequestIDFromContext(ctx); id != "" {
		zctx = zctx.Str("request_id", id)
	}
	if id := UserIDFromContext(ctx); id != "" {
		zctx = zctx.Str("user_id", id)
	}
	l := zctx.Logger()
	return &l
}
