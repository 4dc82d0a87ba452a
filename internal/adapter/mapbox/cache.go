package mapbox

import (
	"context"
	"fmt"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedResolver wraps a StateResolver with an in-memory LRU cache.
type CachedResolver struct {
	inner   domain.StateResolver
	cache   *lru.Cache[string, string]
	metrics *observability.Metrics
}

// NewCachedResolver creates a cache decorator around a resolver.
func NewCachedResolver(inner domain.StateResolver, maxEntries int, metrics *observability.Metrics) (*CachedResolver, error) {
	cache, err := lru.New[string, string](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedResolver{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}, nil
}

// ResolveState serves repeated coordinates (rounded to ~100 m) from the cache.
func (c *CachedResolver) ResolveState(ctx context.Context, lat, lon float64) (string, error) {
	key := cacheKey(lat, lon)
	if state, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return state, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	state, err := c.inner.ResolveState(ctx, lat, lon)
	if err != nil {
		return state, err
	}
	// Only cache non-empty results so transient "not found" responses can be retried.
	if state != "" {
		c.cache.Add(key, state)
	}
	return state, nil
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.3f,%.3f", lat, lon)
}
