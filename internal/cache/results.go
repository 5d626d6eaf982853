// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tomtom215/reelpick/internal/metrics"
	"github.com/tomtom215/reelpick/internal/recommend"
)

const resultCacheName = "results"

// ResultCache holds recommendation results keyed by user ID.
// A zero TTL disables caching: Get always misses and Set is a no-op.
//
// Every Invalidate stamps the user with a new generation. A result computed
// from a Generation taken before that stamp is refused by SetIfCurrent.
type ResultCache struct {
	lru *expirable.LRU[string, *recommend.Result]

	mu     sync.Mutex
	seq    uint64
	stamps *lru.Cache[string, uint64]
	// floor is the newest stamp evicted from stamps. Users without a stamp
	// are treated as invalidated at floor.
	floor uint64
}

// NewResultCache creates a result cache bounded to size entries.
func NewResultCache(size int, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		return &ResultCache{}
	}
	c := &ResultCache{
		lru: expirable.NewLRU[string, *recommend.Result](size, nil, ttl),
	}
	// Evictions run inside Invalidate, under c.mu.
	c.stamps, _ = lru.NewWithEvict[string, uint64](max(size, 1), func(_ string, stamp uint64) { //nolint:errcheck // size is positive
		if stamp > c.floor {
			c.floor = stamp
		}
	})
	return c
}

// Generation returns the token to pass to SetIfCurrent for a result about
// to be computed for userID.
func (c *ResultCache) Generation(_ string) uint64 {
	if c.lru == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// SetIfCurrent stores res unless userID was invalidated after gen was
// taken. It reports whether res was stored.
func (c *ResultCache) SetIfCurrent(userID string, gen uint64, res *recommend.Result) bool {
	if c.lru == nil || res == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp, ok := c.stamps.Peek(userID)
	if !ok {
		stamp = c.floor
	}
	if stamp > gen {
		metrics.CacheStaleWrites.WithLabelValues(resultCacheName).Inc()
		return false
	}
	c.lru.Add(userID, res)
	return true
}

// Get returns the cached result for userID.
func (c *ResultCache) Get(userID string) (*recommend.Result, bool) {
	if c.lru == nil {
		return nil, false
	}
	res, ok := c.lru.Get(userID)
	metrics.RecordCacheLookup(resultCacheName, ok)
	return res, ok
}

// Set stores res for userID.
func (c *ResultCache) Set(userID string, res *recommend.Result) {
	if c.lru == nil || res == nil {
		return
	}
	c.lru.Add(userID, res)
}

// Invalidate drops the cached result for userID and reports whether one
// was present.
func (c *ResultCache) Invalidate(userID string) bool {
	if c.lru == nil {
		return false
	}
	c.mu.Lock()
	c.seq++
	c.stamps.Add(userID, c.seq)
	c.mu.Unlock()

	removed := c.lru.Remove(userID)
	if removed {
		metrics.CacheEvictions.WithLabelValues(resultCacheName).Inc()
	}
	return removed
}

// Len returns the number of live entries.
func (c *ResultCache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every entry and refuses results computed before the purge.
func (c *ResultCache) Purge() {
	if c.lru == nil {
		return
	}
	c.mu.Lock()
	c.seq++
	c.floor = c.seq
	c.stamps.Purge()
	c.mu.Unlock()
	c.lru.Purge()
}
