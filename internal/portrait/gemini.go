// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package portrait

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/travelworld/internal/config"
	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/metrics"
)

const breakerName = "gemini-api"

// ErrEmptyCompletion is returned when Gemini answers without text, for
// example because the prompt was blocked.
var ErrEmptyCompletion = errors.New("portrait: model returned no text")

// APIError is a non-2xx Gemini response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: HTTP %d: %s", e.StatusCode, e.Message)
}

// retryable reports whether the status is worth another attempt.
func (e *APIError) retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// GeminiClient calls the generateContent REST endpoint.
//
// Calls pass through a token-bucket limiter, then a circuit breaker, and
// transient failures (429, 5xx, transport errors) are retried with
// exponential backoff inside a single breaker execution.
type GeminiClient struct {
	http       *resty.Client
	model      string
	apiKey     string
	maxRetries uint64
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[string]

	// initialInterval seeds the retry backoff; tests shorten it.
	initialInterval time.Duration
}

// NewGeminiClient builds a client from portrait configuration.
func NewGeminiClient(cfg *config.PortraitConfig) *GeminiClient {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	perMin := cfg.RequestsPerMin
	if perMin <= 0 {
		perMin = 10
	}

	c := &GeminiClient{
		http:            httpClient,
		model:           cfg.Model,
		apiKey:          cfg.APIKey,
		maxRetries:      uint64(max(cfg.MaxRetries, 0)),
		limiter:         rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), 1),
		initialInterval: 500 * time.Millisecond,
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	c.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A caller giving up is not the provider's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return c
}

// Provider implements Generator.
func (c *GeminiClient) Provider() string { return config.ProviderGemini }

// Generate implements Generator.
func (c *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("gemini rate limiter: %w", err)
	}

	start := time.Now()
	text, err := c.cb.Execute(func() (string, error) {
		return c.generateWithRetry(ctx, systemPrompt, userPrompt)
	})
	metrics.RecordLLMRequest(config.ProviderGemini, time.Since(start), err)

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
	return text, err
}

func (c *GeminiClient) generateWithRetry(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	exp.MaxInterval = 10 * time.Second
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, c.maxRetries), ctx)

	var text string
	attempt := 0
	op := func() error {
		attempt++
		var err error
		text, err = c.generateOnce(ctx, systemPrompt, userPrompt)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return backoff.Permanent(err)
		}
		if errors.Is(err, ErrEmptyCompletion) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		logging.Ctx(ctx).Warn().Err(err).Int("attempt", attempt).Msg("Gemini request failed, retrying")
		return err
	}

	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return text, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) generateOnce(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: userPrompt}}}},
	}
	if systemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}

	var out geminiResponse
	var apiErr geminiErrorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(&body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return "", &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	var b strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}
	if b.Len() == 0 {
		reason := "no candidates"
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			reason = "blocked: " + out.PromptFeedback.BlockReason
		} else if len(out.Candidates) > 0 && out.Candidates[0].FinishReason != "" {
			reason = "finish reason " + out.Candidates[0].FinishReason
		}
		return "", fmt.Errorf("%w (%s)", ErrEmptyCompletion, reason)
	}
	return b.String(), nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
