// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/travelworld/internal/config"
)

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		sec             config.SecurityConfig
		wantCredentials bool
		wantRequests    int
	}{
		{
			name:            "explicit origins keep credentials",
			sec:             config.SecurityConfig{CORSOrigins: []string{"https://travel.example"}, RateLimitReqs: 30},
			wantCredentials: true,
			wantRequests:    30,
		},
		{
			name:            "wildcard drops credentials",
			sec:             config.SecurityConfig{CORSOrigins: []string{"*"}},
			wantCredentials: false,
			wantRequests:    100,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := ChiMiddlewareConfigFromSecurity(tt.sec)
			if cfg.CORSAllowCredentials != tt.wantCredentials {
				t.Errorf("CORSAllowCredentials = %v, want %v", cfg.CORSAllowCredentials, tt.wantCredentials)
			}
			if cfg.RateLimitRequests != tt.wantRequests {
				t.Errorf("RateLimitRequests = %d, want %d", cfg.RateLimitRequests, tt.wantRequests)
			}
			if cfg.RateLimitWindow != time.Minute {
				t.Errorf("RateLimitWindow = %v", cfg.RateLimitWindow)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://travel.example"}
	m := NewChiMiddleware(cfg)
	handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/trips", nil)
	req.Header.Set("Origin", "https://travel.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://travel.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/trips", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestRateLimitDisabledIsPassthrough(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.RateLimitRequests = 1
	m := NewChiMiddleware(cfg)
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, rec.Code)
		}
	}
}

func TestAPISecurityHeadersHSTS(t *testing.T) {
	t.Parallel()

	handler := APISecurityHeaders()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}
