// Package cache wraps github.com/hashicorp/golang-lru/v2 into the bounded,
// per-command parse cache, grounded on mmp-vice's use of the same library
// family (wx/manifest.go uses the "expirable" variant; the parse cache here
// has no time dimension so the plain LRU is the right fit). Ring, in this
// package too, covers the unkeyed bounded-history case (completion store)
// that an LRU doesn't fit.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded, least-recently-used associative container keyed by K.
// A hit bumps recency; eviction happens automatically once Capacity entries
// are held.
type Cache[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// New builds a Cache bounded to capacity entries. A non-positive capacity
// disables the cache: Get always misses and Add is a no-op.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		return &Cache[K, V]{}
	}
	inner, err := lru.New[K, V](capacity)
	if err != nil {
		// Only returned by golang-lru when capacity <= 0, already excluded above.
		panic(err)
	}
	return &Cache[K, V]{inner: inner}
}

// Get returns the cached value for key, bumping its recency on a hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if c.inner == nil {
		var zero V
		return zero, false
	}
	return c.inner.Get(key)
}

// Add inserts or updates key's value, evicting the least-recently-used entry
// if the cache is full.
func (c *Cache[K, V]) Add(key K, value V) {
	if c.inner == nil {
		return
	}
	c.inner.Add(key, value)
}

// Remove purges a single key, if present.
func (c *Cache[K, V]) Remove(key K) {
	if c.inner == nil {
		return
	}
	c.inner.Remove(key)
}

// Purge evicts every entry.
func (c *Cache[K, V]) Purge() {
	if c.inner == nil {
		return
	}
	c.inner.Purge()
}

// Len reports the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	if c.inner == nil {
		return 0
	}
	return c.inner.Len()
}

// Enabled reports whether this cache actually stores anything.
func (c *Cache[K, V]) Enabled() bool {
	return c.inner != nil
}
