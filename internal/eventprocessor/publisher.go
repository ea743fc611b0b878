// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/travelworld/internal/logging"
	"github.com/tomtom215/travelworld/internal/metrics"
)

// Bus is the in-process pub/sub carrying ChangeEvents.
//
// Publish blocks until every subscriber has acknowledged the message, so a
// handler that publishes after a write sees derived caches already
// invalidated when Publish returns. With no subscriber attached Publish
// returns immediately.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the bus.
func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = NewLoggerAdapter()
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		}, logger),
	}
}

// Publish encodes and publishes an event on its topic.
func (b *Bus) Publish(ctx context.Context, e *ChangeEvent) error {
	payload, err := Marshal(e)
	if err != nil {
		return err
	}

	msg := message.NewMessage(e.EventID, payload)
	msg.Metadata.Set("user_id", e.UserID)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}

	if err := b.pubsub.Publish(e.Topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Topic, err)
	}
	metrics.EventsPublished.WithLabelValues(e.Topic).Inc()
	return nil
}

// Subscriber exposes the subscribing side for the router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts the bus down; later publishes fail.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
