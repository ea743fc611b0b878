// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package portrait

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/travelworld/internal/config"
)

// ErrProviderNotImplemented is returned by generators for providers that are
// accepted in configuration but have no client yet.
var ErrProviderNotImplemented = errors.New("portrait: LLM provider not implemented")

// ErrNotConfigured is returned when the provider lacks credentials.
var ErrNotConfigured = errors.New("portrait: LLM provider not configured")

// Generator produces raw portrait text from a system and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Provider() string
}

// NewGenerator returns the client for cfg.Provider. claude and openai
// resolve to a generator that always fails with ErrProviderNotImplemented.
func NewGenerator(cfg *config.PortraitConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			return unavailable{provider: cfg.Provider, err: fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrNotConfigured)}, nil
		}
		return NewGeminiClient(cfg), nil
	case config.ProviderClaude, config.ProviderOpenAI:
		return unavailable{
			provider: cfg.Provider,
			err:      fmt.Errorf("%w: %s (set LLM_PROVIDER=gemini)", ErrProviderNotImplemented, cfg.Provider),
		}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// unavailable keeps the server bootable when portraits cannot be generated;
// every call fails with err.
type unavailable struct {
	provider string
	err      error
}

func (u unavailable) Generate(context.Context, string, string) (string, error) {
	return "", u.err
}

func (u unavailable) Provider() string { return u.provider }

// Available reports whether g can actually produce text.
func Available(g Generator) bool {
	_, stub := g.(unavailable)
	return g != nil && !stub
}
