// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package portrait

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/travelworld/internal/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewGeminiClient(&config.PortraitConfig{
		Provider:       config.ProviderGemini,
		APIKey:         "test-key",
		Model:          "gemini-test",
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		RequestsPerMin: 60000,
		MaxRetries:     2,
	})
	c.initialInterval = time.Millisecond
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const okBody = `{"candidates":[{"content":{"role":"model","parts":[{"text":"## Archetype\n"},{"text":"Nomad"}]},"finishReason":"STOP"}]}`

func TestGeminiGenerate(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	var gotReq geminiRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeJSON(w, http.StatusOK, okBody)
	})

	text, err := c.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "## Archetype\nNomad" {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "system" {
		t.Errorf("system instruction = %+v", gotReq.SystemInstruction)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "user" {
		t.Errorf("contents = %+v", gotReq.Contents)
	}
}

func TestGeminiRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, `{"error":{"code":503,"message":"overloaded"}}`)
			return
		}
		writeJSON(w, http.StatusOK, okBody)
	})

	if _, err := c.Generate(context.Background(), "s", "u"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestGeminiDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid"}}`)
	})

	_, err := c.Generate(context.Background(), "s", "u")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "API key not valid" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestGeminiGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, `{"error":{"code":500,"message":"internal"}}`)
	})

	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3 (one try plus two retries)", n)
	}
}

func TestGeminiEmptyCompletion(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := c.Generate(context.Background(), "s", "u")
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("got %v, want ErrEmptyCompletion", err)
	}
}

func TestGeminiCircuitOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`)
	})

	for i := 0; i < 5; i++ {
		if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	_, err := c.Generate(context.Background(), "s", "u")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("got %v, want ErrOpenState", err)
	}
	if n := calls.Load(); n != 5 {
		t.Errorf("server saw %d calls, want 5", n)
	}
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       config.PortraitConfig
		wantErr   bool
		available bool
		genErr    error
	}{
		{"gemini with key", config.PortraitConfig{Provider: "gemini", APIKey: "k", BaseURL: "http://localhost"}, false, true, nil},
		{"gemini without key", config.PortraitConfig{Provider: "gemini"}, false, false, ErrNotConfigured},
		{"claude", config.PortraitConfig{Provider: "claude"}, false, false, ErrProviderNotImplemented},
		{"openai", config.PortraitConfig{Provider: "openai"}, false, false, ErrProviderNotImplemented},
		{"unknown", config.PortraitConfig{Provider: "llama"}, true, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := NewGenerator(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := Available(g); got != tt.available {
				t.Errorf("Available = %v, want %v", got, tt.available)
			}
			if tt.genErr != nil {
				if _, err := g.Generate(context.Background(), "s", "u"); !errors.Is(err, tt.genErr) {
					t.Errorf("Generate err = %v, want %v", err, tt.genErr)
				}
			}
		})
	}
}
