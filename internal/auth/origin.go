// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Cross-site request errors for cookie-authenticated writes.
var (
	ErrOriginMissing    = errors.New("origin header missing")
	ErrOriginNotTrusted = errors.New("origin not trusted")
)

// safeMethods never change state and skip the origin check.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithTrustedOrigins lists origins, besides the request's own host, that
// may send state-changing requests authenticated by the token cookie. A
// "*" entry is ignored: a wildcard cannot vouch for ambient credentials.
func WithTrustedOrigins(origins ...string) Option {
	return func(m *Middleware) {
		for _, o := range origins {
			o = normalizeOrigin(o)
			if o == "" || o == "*" {
				continue
			}
			m.trustedOrigins[o] = true
		}
	}
}

// checkOrigin guards cookie-authenticated writes against cross-site
// requests. Browsers attach Origin to every cross-site POST, PUT, PATCH and
// DELETE; Referer is the fallback for older clients. Bearer-token requests
// never reach this check since a foreign page cannot set the header.
func (m *Middleware) checkOrigin(r *http.Request) error {
	if safeMethods[r.Method] {
		return nil
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		if ref, err := url.Parse(r.Referer()); err == nil && ref.Host != "" {
			origin = ref.Scheme + "://" + ref.Host
		}
	}
	if origin == "" {
		return ErrOriginMissing
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return ErrOriginNotTrusted
	}
	if strings.EqualFold(u.Host, r.Host) {
		return nil
	}
	if m.trustedOrigins[normalizeOrigin(origin)] {
		return nil
	}
	return ErrOriginNotTrusted
}

func normalizeOrigin(o string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
}

func writeForbidden(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "error",
		"data":   nil,
		"error": map[string]string{
			"code":    "CSRF_FAILED",
			"message": err.Error(),
		},
	})
}
