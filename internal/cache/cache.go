// Package cache provides a typed expiring cache on top of patrickmn/go-cache.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache holding values of a single type.
type Cache[T any] struct {
	c *gocache.Cache
}

// New creates a cache whose entries expire after ttl. Expired entries are
// purged every cleanupInterval; a non-positive interval disables the janitor.
func New[T any](ttl, cleanupInterval time.Duration) *Cache[T] {
	return &Cache[T]{c: gocache.New(ttl, cleanupInterval)}
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := c.c.Get(key)
	if !ok {
		return zero, false
	}
	data, ok := v.(T)
	if !ok {
		return zero, false
	}
	return data, true
}

// Set stores a value with the default TTL.
func (c *Cache[T]) Set(key string, data T) {
	c.c.Set(key, data, gocache.DefaultExpiration)
}

// Delete removes a key from the cache.
func (c *Cache[T]) Delete(key string) {
	c.c.Delete(key)
}

// Flush drops every entry.
func (c *Cache[T]) Flush() {
	c.c.Flush()
}

// Size returns the number of items, expired ones included until purged.
func (c *Cache[T]) Size() int {
	return c.c.ItemCount()
}
