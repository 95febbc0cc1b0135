package ephem

import (
	"sync"

	"github.com/litescript/ls-almanac/internal/astro"
)

// DefaultCacheSize bounds the number of memoized positions.
const DefaultCacheSize = 4096

type cacheKey struct {
	body Body
	geo  bool // geocentric Moon rather than a heliocentric position
	tt   float64
}

// Cache memoizes a Model's positions by body and exact TT instant.
// Safe for concurrent use.
type Cache struct {
	mu sync.RWMutex

	model   Model
	limit   int
	entries map[cacheKey]astro.Vec3

	hits, misses uint64
}

// NewCache wraps model. A non-positive size selects DefaultCacheSize.
func NewCache(model Model, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		model:   model,
		limit:   size,
		entries: make(map[cacheKey]astro.Vec3, size),
	}
}

// Name returns the wrapped model's name.
func (c *Cache) Name() string {
	return c.model.Name()
}

// Position implements Model.
func (c *Cache) Position(body Body, t astro.Time) (astro.Vec3, error) {
	return c.lookup(cacheKey{body: body, tt: t.TT}, func() (astro.Vec3, error) {
		return c.model.Position(body, t)
	})
}

// GeoMoon implements MoonModel.
func (c *Cache) GeoMoon(t astro.Time) (astro.Vec3, error) {
	return c.lookup(cacheKey{body: Moon, geo: true, tt: t.TT}, func() (astro.Vec3, error) {
		return GeoMoon(c.model, t)
	})
}

func (c *Cache) lookup(key cacheKey, compute func() (astro.Vec3, error)) (astro.Vec3, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return v, nil
	}

	v, err := compute()
	if err != nil {
		return astro.Vec3{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	// No recency tracking: a full table starts over.
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	c.entries[key] = v
	return v, nil
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of memoized positions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
