package catalog

import (
	"fmt"

	"topogen/internal/domain"
	"topogen/internal/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is used when a non-positive size is requested
const DefaultCacheSize = 64

// CachedCatalog serves repeated lookups from an LRU cache.
// Failed lookups are never cached.
type CachedCatalog struct {
	next  Catalog
	cache *lru.Cache[string, domain.DeviceSpec]
}

// NewCachedCatalog wraps next with an LRU cache of the given size
func NewCachedCatalog(next Catalog, size int) (*CachedCatalog, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, domain.DeviceSpec](size)
	if err != nil {
		return nil, fmt.Errorf("create spec cache: %w", err)
	}
	return &CachedCatalog{next: next, cache: cache}, nil
}

// Lookup returns the cached spec or delegates to the wrapped catalog
func (c *CachedCatalog) Lookup(model string) (domain.DeviceSpec, error) {
	if spec, ok := c.cache.Get(model); ok {
		metrics.CatalogLookups.WithLabelValues("hit").Inc()
		return spec, nil
	}

	spec, err := c.next.Lookup(model)
	if err != nil {
		metrics.CatalogLookups.WithLabelValues("error").Inc()
		return domain.DeviceSpec{}, err
	}
	metrics.CatalogLookups.WithLabelValues("miss").Inc()

	c.cache.Add(model, spec)
	return spec, nil
}

// Purge drops every cached spec
func (c *CachedCatalog) Purge() {
	c.cache.Purge()
}

// Len returns the number of cached specs
func (c *CachedCatalog) Len() int {
	return c.cache.Len()
}
