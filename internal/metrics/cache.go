package metrics

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL-bounded single-value cache with a stampede guard: when N
// concurrent readers race past an expired entry, the compute function runs
// exactly once and all N receive its result. Staleness is detected lazily on
// access; there is no background eviction.
type Cache[T any] struct {
	mu          sync.RWMutex
	value       T
	lastUpdated time.Time
	populated   bool

	ttl time.Duration
	now func() time.Time
}

// NewCache creates an empty (expired) cache with the given TTL.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: time.Now}
}

// GetOrCompute returns the cached value when fresh, otherwise recomputes it
// under an exclusive lock with a double-checked expiry test: a caller that
// waited while another refreshed gets the fresh value without recomputing.
// Value and timestamp always change together. A compute error leaves the
// cache unchanged.
func (c *Cache[T]) GetOrCompute(ctx context.Context, compute func(context.Context) (T, error)) (T, error) {
	c.mu.RLock()
	if !c.expiredLocked() {
		v := c.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.expiredLocked() {
		return c.value, nil
	}

	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = v
	c.lastUpdated = c.now()
	c.populated = true
	return v, nil
}

// Invalidate marks the entry expired so the next access recomputes.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.populated = false
	c.mu.Unlock()
}

// expiredLocked requires at least a read lock.
func (c *Cache[T]) expiredLocked() bool {
	return !c.populated || c.now().Sub(c.lastUpdated) >= c.ttl
}
