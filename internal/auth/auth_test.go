// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/travelworld/internal/config"
	"github.com/tomtom215/travelworld/internal/logging"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{"valid secret", testSecret, nil},
		{"empty secret", "", ErrEmptySecret},
		{"short secret", "too-short", ErrShortSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: tt.secret})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && m.ttl != 24*time.Hour {
				t.Errorf("default ttl = %v", m.ttl)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	token, err := m.GenerateToken("user-42", "Ana")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID() != "user-42" || claims.Name != "Ana" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := m.GenerateToken("", ""); err == nil {
		t.Error("empty user id should be rejected")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)

	other, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("x", 40)})
	foreign, _ := other.GenerateToken("u1", "")

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	noSubToken, _ := noSub.SignedString([]byte(testSecret))

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	hs512Token, _ := hs512.SignedString([]byte(testSecret))

	expired := newTestManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.GenerateToken("u1", "")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"missing sub", noSubToken, ErrInvalidToken},
		{"other algorithm", hs512Token, ErrInvalidToken},
		{"expired", expiredToken, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	mw := NewMiddleware(m)
	token, _ := m.GenerateToken("user-7", "")

	var seenUser, seenLogUser string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserID(r.Context())
		seenLogUser = logging.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusNoContent},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) }, http.StatusNoContent},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token}) }, http.StatusNoContent},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"basic scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenLogUser = "", ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent {
				if seenUser != "user-7" || seenLogUser != "user-7" {
					t.Errorf("user in context = %q / %q", seenUser, seenLogUser)
				}
				return
			}
			if !strings.Contains(rec.Body.String(), `"UNAUTHORIZED"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestCookieWritesRequireTrustedOrigin(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	mw := NewMiddleware(m, WithTrustedOrigins("https://app.travel.example/", "*"))
	token, _ := m.GenerateToken("user-7", "")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		method     string
		bearer     bool
		origin     string
		referer    string
		wantStatus int
	}{
		{"cookie GET from anywhere", http.MethodGet, false, "https://evil.example", "", http.StatusNoContent},
		{"cookie POST same host", http.MethodPost, false, "http://example.com", "", http.StatusNoContent},
		{"cookie POST trusted origin", http.MethodPost, false, "https://APP.travel.example", "", http.StatusNoContent},
		{"cookie POST foreign origin", http.MethodPost, false, "https://evil.example", "", http.StatusForbidden},
		{"cookie DELETE null origin", http.MethodDelete, false, "null", "", http.StatusForbidden},
		{"cookie PUT referer fallback", http.MethodPut, false, "", "http://example.com/trips", http.StatusNoContent},
		{"cookie PATCH foreign referer", http.MethodPatch, false, "", "https://evil.example/x", http.StatusForbidden},
		{"cookie POST no origin", http.MethodPost, false, "", "", http.StatusForbidden},
		{"wildcard does not trust", http.MethodPost, false, "https://other.example", "", http.StatusForbidden},
		{"bearer POST foreign origin", http.MethodPost, true, "https://evil.example", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, "/api/v1/trips", nil)
			if tt.bearer {
				req.Header.Set("Authorization", "Bearer "+token)
			} else {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
			}
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusForbidden && !strings.Contains(rec.Body.String(), `"CSRF_FAILED"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestUserIDWithoutClaims(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if UserID(req.Context()) != "" || ClaimsFromContext(req.Context()) != nil {
		t.Error("unauthenticated context should carry no user")
	}
}
