// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// RouterConfig holds configuration for the Watermill Router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults for the Router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		RetryMultiplier:      2.0,
	}
}

type handlerSpec struct {
	name    string
	topic   string
	handler message.NoPublishHandlerFunc
}

// Router runs consumer handlers over the bus as a suture service. Each
// Serve call builds a fresh watermill router, because a closed router
// cannot be run again and suture restarts services after failures.
type Router struct {
	subscriber message.Subscriber
	config     RouterConfig
	logger     watermill.LoggerAdapter

	mu       sync.Mutex
	handlers []handlerSpec

	runningOnce sync.Once
	running     chan struct{}
}

// NewRouter creates a router reading from subscriber.
func NewRouter(cfg *RouterConfig, subscriber message.Subscriber, logger watermill.LoggerAdapter) *Router {
	if cfg == nil {
		d := DefaultRouterConfig()
		cfg = &d
	}
	if logger == nil {
		logger = NewLoggerAdapter()
	}
	return &Router{
		subscriber: subscriber,
		config:     *cfg,
		logger:     logger,
		running:    make(chan struct{}),
	}
}

// AddConsumerHandler registers a handler for topic. Handlers must be added
// before Serve.
func (r *Router) AddConsumerHandler(name, topic string, handler message.NoPublishHandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, handlerSpec{name: name, topic: topic, handler: handler})
}

// Running closes once the first router instance has started all handlers.
func (r *Router) Running() <-chan struct{} {
	return r.running
}

func (r *Router) build() (*message.Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: r.config.CloseTimeout}, r.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Recoverer is outermost and turns a handler panic into an error.
	wmRouter.AddMiddleware(middleware.Recoverer)
	wmRouter.AddMiddleware(middleware.Retry{
		MaxRetries:      r.config.RetryMaxRetries,
		InitialInterval: r.config.RetryInitialInterval,
		MaxInterval:     r.config.RetryMaxInterval,
		Multiplier:      r.config.RetryMultiplier,
		Logger:          r.logger,
	}.Middleware)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.handlers {
		wmRouter.AddConsumerHandler(h.name, h.topic, r.subscriber, h.handler)
	}
	return wmRouter, nil
}

// Serve runs the handlers until ctx is canceled. It implements
// suture.Service.
func (r *Router) Serve(ctx context.Context) error {
	wmRouter, err := r.build()
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-wmRouter.Running():
			r.runningOnce.Do(func() { close(r.running) })
		case <-ctx.Done():
		}
	}()

	if err := wmRouter.Run(ctx); err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

// String names the service for supervisor logs.
func (r *Router) String() string {
	return "event-router"
}
