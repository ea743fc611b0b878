// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/travelworld/internal/photos"
)

var _ suture.Service = (*BlobGCService)(nil)

var _ ValueLogCollector = (*photos.BadgerStore)(nil)

type countingCollector struct {
	calls atomic.Int32
	ratio atomic.Value
	err   error
}

func (c *countingCollector) RunValueLogGC(discardRatio float64) error {
	c.calls.Add(1)
	c.ratio.Store(discardRatio)
	return c.err
}

func TestNewBlobGCServiceDefaults(t *testing.T) {
	t.Parallel()

	svc := NewBlobGCService(&countingCollector{}, 0, 1.5)
	if svc.interval != 10*time.Minute || svc.discardRatio != 0.5 {
		t.Errorf("defaults = %v, %v", svc.interval, svc.discardRatio)
	}
	if svc.String() != "photo-blob-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestBlobGCServiceRunsPeriodically(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		// failures are logged and the loop keeps going
		{"failing store", errors.New("gc rejected")},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := &countingCollector{err: tt.err}
			svc := NewBlobGCService(store, 10*time.Millisecond, 0.7)

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			deadline := time.Now().Add(2 * time.Second)
			for store.calls.Load() < 3 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			cancel()

			if err := <-errCh; !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
			if store.calls.Load() < 3 {
				t.Errorf("GC ran %d times, want at least 3", store.calls.Load())
			}
			if r, _ := store.ratio.Load().(float64); r != 0.7 {
				t.Errorf("discard ratio = %v, want 0.7", r)
			}
		})
	}
}

func TestBlobGCServiceInMemoryStore(t *testing.T) {
	t.Parallel()

	store, err := photos.OpenBadgerStore(":memory:")
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer store.Close()

	svc := NewBlobGCService(store, 5*time.Millisecond, 0.5)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}
