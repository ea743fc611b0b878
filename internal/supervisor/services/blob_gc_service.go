// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package services

import (
	"context"
	"time"

	"github.com/tomtom215/travelworld/internal/logging"
)

// ValueLogCollector is satisfied by *photos.BadgerStore.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// BlobGCService periodically reclaims value-log space left by deleted
// photos. A failed pass is logged and retried on the next tick; it never
// takes the service down.
type BlobGCService struct {
	store        ValueLogCollector
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewBlobGCService creates the GC loop. Zero values mean a 10 minute
// interval and a 0.5 discard ratio.
func NewBlobGCService(store ValueLogCollector, interval time.Duration, discardRatio float64) *BlobGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &BlobGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		name:         "photo-blob-gc",
	}
}

// Serve implements suture.Service.
func (s *BlobGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunValueLogGC(s.discardRatio); err != nil {
				logging.Warn().Err(err).Str("service", s.name).Msg("Photo store value log GC failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Photo store value log GC complete")
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (s *BlobGCService) String() string {
	return s.name
}
