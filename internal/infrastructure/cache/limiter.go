package cache

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterItem is one client's token bucket and the last time it was used
type limiterItem struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterCache is a thread-safe per-key store of rate limiters. Entries idle
// for longer than the TTL are evicted.
type LimiterCache struct {
	data  map[string]*limiterItem
	mutex sync.Mutex
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

// NewLimiterCache creates a cache handing out limiters that allow perMinute
// requests per minute with an equal burst, and starts the eviction loop.
func NewLimiterCache(perMinute int, ttl time.Duration) *LimiterCache {
	cache := newLimiterCache(perMinute, ttl)

	// Start cleanup goroutine to remove idle entries every ttl
	go cache.cleanupLoop()

	return cache
}

func newLimiterCache(perMinute int, ttl time.Duration) *LimiterCache {
	return &LimiterCache{
		data:  make(map[string]*limiterItem),
		limit: rate.Limit(float64(perMinute) / 60),
		burst: perMinute,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Allow reports whether the client identified by key may make a request now
func (c *LimiterCache) Allow(key string) bool {
	return c.get(key).Allow()
}

// get returns the limiter for key, creating it on first use
func (c *LimiterCache) get(key string) *rate.Limiter {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	item, exists := c.data[key]
	if !exists {
		item = &limiterItem{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.data[key] = item
	}
	item.lastSeen = c.now()

	return item.limiter
}

// cleanupLoop evicts idle entries periodically
func (c *LimiterCache) cleanupLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		c.evictIdle()
	}
}

// evictIdle removes entries not used within the TTL
func (c *LimiterCache) evictIdle() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cutoff := c.now().Add(-c.ttl)
	for key, item := range c.data {
		if item.lastSeen.Before(cutoff) {
			delete(c.data, key)
		}
	}
}

// Size returns the current number of tracked clients (for debugging/monitoring)
func (c *LimiterCache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.data)
}
