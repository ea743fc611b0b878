// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/travelworld/internal/auth"
	"github.com/tomtom215/travelworld/internal/cache"
	"github.com/tomtom215/travelworld/internal/config"
	"github.com/tomtom215/travelworld/internal/database"
	"github.com/tomtom215/travelworld/internal/eventprocessor"
	"github.com/tomtom215/travelworld/internal/photos"
	"github.com/tomtom215/travelworld/internal/portrait"
)

// testDBSemaphore serialises tests that open DuckDB.
var testDBSemaphore = make(chan struct{}, 1)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

const portraitText = `## Archetype
The Slow Wanderer

## Analysis
You return to places you love.

## Insight
France keeps calling you back.

## Recommendation
Try Portugal next spring.`

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type fakeGenerator struct {
	err   error
	calls atomic.Int32
}

func (g *fakeGenerator) Generate(context.Context, string, string) (string, error) {
	g.calls.Add(1)
	if g.err != nil {
		return "", g.err
	}
	return portraitText, nil
}

func (g *fakeGenerator) Provider() string { return "fake" }

type testServer struct {
	t       *testing.T
	handler http.Handler
	h       *Handler
	db      *database.DB
	cache   *cache.Cache
	gen     *fakeGenerator
	jwt     *auth.JWTManager
	token   string
}

type serverOption func(*Deps, *ChiMiddlewareConfig)

func withBus(bus *eventprocessor.Bus) serverOption {
	return func(d *Deps, _ *ChiMiddlewareConfig) { d.Bus = bus }
}

func withRateLimit(n int) serverOption {
	return func(_ *Deps, c *ChiMiddlewareConfig) {
		c.RateLimitDisabled = false
		c.RateLimitRequests = n
		c.RateLimitWindow = time.Minute
	}
}

// newTestServer wires the full router over an in-memory database and an
// in-memory blob store, authenticated as user-1.
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	blobs, err := photos.OpenBadgerStore(":memory:")
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	t.Cleanup(func() { _ = blobs.Close() })

	jwtManager, err := auth.NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	gen := &fakeGenerator{}
	c := cache.New("api-test", time.Minute)
	deps := Deps{
		DB:        db,
		Photos:    photos.NewService(db, blobs, 3, 1024),
		Portraits: portrait.NewService(db, gen, portrait.DefaultGate(), "fake/test"),
		Cache:     c,
		Config: &config.Config{
			API: config.APIConfig{DefaultPageSize: 2, MaxPageSize: 10},
		},
	}
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	for _, opt := range opts {
		opt(&deps, mw)
	}

	h := NewHandler(deps)
	ts := &testServer{
		t:       t,
		handler: NewRouter(h, auth.NewMiddleware(jwtManager), mw).SetupChi(),
		h:       h,
		db:      db,
		cache:   c,
		gen:     gen,
		jwt:     jwtManager,
	}
	ts.token = ts.tokenFor("user-1")
	return ts
}

func (ts *testServer) tokenFor(userID string) string {
	ts.t.Helper()
	token, err := ts.jwt.GenerateToken(userID, "Test User")
	if err != nil {
		ts.t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

// do sends a request as user-1. body may be nil, a []byte, or a value to
// JSON-encode.
func (ts *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.doAs(ts.token, method, path, body, "")
}

func (ts *testServer) doAs(token, method, path string, body interface{}, contentType string) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			ts.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Cached bool `json:"cached"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, data interface{}) envelope {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, wantStatus, rec.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body: %s", err, rec.Body.String())
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v; data: %s", err, env.Data)
		}
	}
	return env
}

type tripBody map[string]interface{}

func (ts *testServer) createTrip(code, started string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/v1/trips", tripBody{
		"country_code": code,
		"country_name": code,
		"started_at":   started,
	})
	var trip struct {
		ID string `json:"id"`
	}
	decodeEnvelope(ts.t, rec, http.StatusCreated, &trip)
	if trip.ID == "" {
		ts.t.Fatal("created trip has no id")
	}
	return trip.ID
}

// multipartFiles builds a multipart body with one "files" part per entry.
func multipartFiles(t *testing.T, files map[string][]byte, captions ...string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	for _, c := range captions {
		if err := mw.WriteField("captions", c); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return buf.Bytes(), mw.FormDataContentType()
}

var errProviderDown = errors.New("provider down")
