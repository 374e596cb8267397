// Package cache provides a small TTL cache with a bounded entry count.
//
// Expiry and eviction happen synchronously inside Get/Set; there are no
// background timers. Eviction follows insertion order, with reads pushing
// an entry to the back — an LRU approximation, not the real thing.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value V
	until time.Time
}

// Cache is a mutex-guarded TTL cache keyed by string.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	order   []string // insertion order, for size-capped eviction
	maxSize int      // 0 means unbounded
}

// New creates a cache. maxSize <= 0 means no size bound.
func New[V any](maxSize int) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		maxSize: maxSize,
	}
}

// Get returns the cached value for key. Expired entries are treated as
// absent and removed on discovery.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.until) {
		c.remove(key)
		var zero V
		return zero, false
	}
	c.touch(key)
	return e.value, true
}

// Set stores value under key for ttl. Inserting a new key first sweeps any
// already-expired entries, then evicts oldest-inserted entries until the
// cache is under maxSize.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.sweepExpired()
		if c.maxSize > 0 {
			for len(c.entries) >= c.maxSize && len(c.order) > 0 {
				c.remove(c.order[0])
			}
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry[V]{value: value, until: time.Now().Add(ttl)}
}

// Len returns the number of live (possibly expired but unswept) entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// touch moves key to the back of the order slice, so a recently read entry
// is the last eviction candidate. Caller holds mu.
func (c *Cache[V]) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(append(c.order[:i], c.order[i+1:]...), key)
			return
		}
	}
}

// remove deletes key from both the map and the order slice. Caller holds mu.
func (c *Cache[V]) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// sweepExpired drops every expired entry. Caller holds mu.
func (c *Cache[V]) sweepExpired() {
	now := time.Now()
	kept := c.order[:0]
	for _, k := range c.order {
		if e, ok := c.entries[k]; ok && now.After(e.until) {
			delete(c.entries, k)
			continue
		}
		kept = append(kept, k)
	}
	c.order = kept
}
