package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedResult holds a reconciliation result and when it was built.
type CachedResult struct {
	// Result is the reconciliation output.
	Result *Result

	// Built is the timestamp when this result was produced.
	Built time.Time

	// TTL is the time-to-live for this result.
	TTL time.Duration
}

// IsExpired returns true if this result has expired based on its TTL.
func (c *CachedResult) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// ResultCache stores results by cache key. Concurrent requests for the same
// key share a single build.
type ResultCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	results map[string]*CachedResult
	sf      singleflight.Group
}

// NewResultCache creates a cache. A zero ttl disables caching but still
// collapses concurrent identical builds.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		results: make(map[string]*CachedResult),
	}
}

// GetOrBuild returns a fresh cached result for key, or calls build.
// The second return value reports whether the result came from the cache
// or from another in-flight build.
//
// A shared build runs detached from any single caller's cancellation. Each
// caller stops waiting when its own ctx is done.
func (c *ResultCache) GetOrBuild(ctx context.Context, key string, build func(context.Context) (*Result, error)) (*Result, bool, error) {
	// Fast path: check if result exists and is fresh
	c.mu.RLock()
	cached, exists := c.results[key]
	c.mu.RUnlock()

	if exists && !cached.IsExpired() {
		return cached.Result, true, nil
	}

	buildCtx := context.WithoutCancel(ctx)

	// Slow path: build using singleflight to prevent stampedes
	ch := c.sf.DoChan(key, func() (interface{}, error) {
		c.mu.RLock()
		cached, exists := c.results[key]
		c.mu.RUnlock()

		if exists && !cached.IsExpired() {
			return cached.Result, nil
		}

		result, err := build(buildCtx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.results[key] = &CachedResult{Result: result, Built: time.Now(), TTL: c.ttl}
			c.mu.Unlock()
		}

		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.(*Result), res.Shared, nil
	}
}
