// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the process-local TTL cache that fronts every
// object store read. Entries expire after a configurable TTL and can be
// invalidated individually, by key prefix, or all at once (the admin
// purge action). The cache is process-lifetime only and unbounded: the
// dataset is a single admin-curated knowledge base, not a high-cardinality
// workload. In a multi-instance deployment other instances may serve stale
// entries for up to the TTL — a documented limitation, not a bug.
package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long an entry stays fresh unless configured otherwise.
const DefaultTTL = 5 * time.Minute

// entry is a cached value with the time it was stored.
type entry struct {
	data     any
	storedAt time.Time
}

// Cache is a TTL-based in-memory key-value cache. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New creates a cache with the given TTL. A zero or negative TTL falls
// back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key. An entry older than the TTL is
// evicted and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: the entry may have been refreshed.
		if cur, ok := c.entries[key]; ok && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.data, true
}

// Set stores a value under key, resetting its TTL.
func (c *Cache) Set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, storedAt: c.now()}
}

// Invalidate removes a single key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix removes every key starting with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Clear removes all entries. Backs the admin purge-cache action.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of live entries, counting expired ones that have
// not yet been evicted by a Get.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetString is a convenience typed accessor for string values.
func GetString(c *Cache, key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetAs retrieves a value and asserts it to T. A type mismatch is treated
// as a miss.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
