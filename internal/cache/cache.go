// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/travelworld/internal/metrics"
)

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with TTL support. Keys built with
// UserKey can be dropped per user with InvalidateUser.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	name    string
	now     func() time.Time
	stats   Stats
	// gens counts invalidations per user; see Generation.
	gens map[string]uint64
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits          int64
	Misses        int64
	Evictions     int64
	Invalidations int64
	TotalKeys     int64
	LastCleanup   time.Time
}

// New creates a cache whose entries live for ttl. A non-positive ttl
// disables caching: Set is a no-op and Get always misses.
//
// Expired entries are removed lazily on Get and in bulk by Serve.
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		name:    name,
		now:     time.Now,
	}
}

// Enabled reports whether entries are retained at all.
func (c *Cache) Enabled() bool {
	return c.ttl > 0
}

// Get retrieves a value by key. Expired entries are removed and count as
// misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.stats.Evictions++
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value that expires after ttl.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Generation returns the user's invalidation count. Read it before
// computing a value and hand it to SetForUser.
func (c *Cache) Generation(userID string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[userID]
}

// SetForUser stores value under key only if userID has not been
// invalidated since gen was read, so a value computed from data that a
// concurrent write already replaced is never cached. It reports whether the
// value was stored.
func (c *Cache) SetForUser(userID string, gen uint64, key string, value interface{}) bool {
	if c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] != gen {
		return false
	}
	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(c.ttl)}
	return true
}

// InvalidateUser drops every entry cached for userID and advances the
// user's generation. reason labels the invalidation metric, e.g. the event
// topic that caused it.
func (c *Cache) InvalidateUser(userID, reason string) int {
	prefix := userPrefix(userID)
	c.mu.Lock()
	c.gens[userID]++
	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	c.stats.Invalidations += int64(n)
	c.mu.Unlock()
	if n > 0 {
		metrics.CacheInvalidations.WithLabelValues(reason).Add(float64(n))
	}
	return n
}

// Len is the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.TotalKeys = int64(len(c.entries))
	return s
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (c *Cache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cleanup removes all expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.stats.Evictions += int64(evicted)
	c.stats.LastCleanup = now
	return evicted
}

// Serve runs Cleanup every interval until ctx is done. It implements
// suture.Service so the janitor can run under the supervisor tree.
func (c *Cache) Serve(ctx context.Context) error {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// String names the service for supervisor logs.
func (c *Cache) String() string {
	return "cache-janitor:" + c.name
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func userPrefix(userID string) string {
	return "user:" + userID + ":"
}

// UserKey builds a key scoped to one user, so InvalidateUser can find it.
//
//	cache.UserKey("u1", "dashboard", nil) // "user:u1:dashboard:<hash>"
func UserKey(userID, method string, params interface{}) string {
	return userPrefix(userID) + GenerateKey(method, params)
}

// GenerateKey creates a cache key from the method name and parameters
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
