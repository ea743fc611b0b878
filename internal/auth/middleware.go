// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/travelworld/internal/logging"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// TokenCookie is the cookie consulted when no Authorization header is sent.
const TokenCookie = "token"

// Middleware authenticates requests with bearer tokens or the token
// cookie. Cookie-authenticated writes must also come from a trusted origin.
type Middleware struct {
	jwtManager     *JWTManager
	trustedOrigins map[string]bool
}

// NewMiddleware wraps a JWT manager.
func NewMiddleware(jwtManager *JWTManager, opts ...Option) *Middleware {
	m := &Middleware{jwtManager: jwtManager, trustedOrigins: make(map[string]bool)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticate rejects requests without a valid token with 401. On success
// the claims and user ID are stored in the request context.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, fromCookie, err := extractToken(r)
		if err != nil {
			writeUnauthorized(w, err.Error())
			return
		}
		if fromCookie {
			if err := m.checkOrigin(r); err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).
					Str("method", r.Method).
					Str("origin", r.Header.Get("Origin")).
					Msg("Rejected cross-site cookie request")
				writeForbidden(w, err)
				return
			}
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			writeUnauthorized(w, "invalid token")
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		next(w, r.WithContext(ctx))
	}
}

// Handler adapts Authenticate to chi's middleware signature.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return m.Authenticate(next.ServeHTTP)
}

// extractToken reads "Authorization: Bearer <jwt>", falling back to the
// token cookie. fromCookie reports which source was used.
func extractToken(r *http.Request) (token string, fromCookie bool, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(TokenCookie)
		if err != nil || cookie.Value == "" {
			return "", false, ErrMissingToken
		}
		return cookie.Value, true, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false, errInvalidHeader
	}
	return strings.TrimSpace(parts[1]), false, nil
}

var errInvalidHeader = errors.New("invalid authorization header")

// writeUnauthorized emits the JSON error envelope.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="travelworld"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "error",
		"data":   nil,
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// ContextWithClaims stores claims and the user ID for handlers and logs.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, claimsContextKey, claims)
	return logging.ContextWithUserID(ctx, claims.Subject)
}

// ClaimsFromContext returns the authenticated claims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// UserID returns the authenticated user ID, or "".
func UserID(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.Subject
	}
	return ""
}
