// Package cache provides a small TTL-keyed in-memory cache. It replaces the
// module-global dictionary the dashboard grew organically: the cache is an
// explicit service constructed once at startup and injected where needed.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	storedAt time.Time
	value    V
}

// Cache maps keys to values with a fixed time-to-live. Get treats entries
// older than the TTL as absent and evicts them; Set is last-write-wins.
// Safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[K]entry[V]
	now     func() time.Time
}

// New creates a cache with the given TTL. A non-positive TTL means entries
// never expire.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value when present and fresh.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V

	if !ok {
		return zero, false
	}

	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if cur, still := c.entries[key]; still && cur.storedAt.Equal(e.storedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return zero, false
	}

	return e.value, true
}

// Set stores the value unconditionally.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{storedAt: c.now(), value: value}
	c.mu.Unlock()
}

// Len returns the number of entries, including any not yet evicted.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
