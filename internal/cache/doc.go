// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

/*
Package cache provides the in-memory TTL cache in front of the per-user
read endpoints (dashboard, country list, map).

Entries are keyed per user with UserKey. When trips or visit markers
change, the event subscriber calls InvalidateUser so the next read
recomputes from the database instead of waiting for the TTL:

	c := cache.New("dashboard", 5*time.Minute)
	key := cache.UserKey(userID, "dashboard", nil)
	if v, ok := c.Get(key); ok {
	    return v.(*stats.Dashboard)
	}
	// compute, then
	c.Set(key, dash)

Hits, misses and invalidations are exported as Prometheus counters labelled
with the cache name.
*/
package cache
