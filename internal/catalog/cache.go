package catalog

import (
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Observer receives lookup cache events. Implementations must be safe for
// concurrent use.
type Observer interface {
	// CacheHit is called when a search is answered from the cache.
	CacheHit(query string)
	// CacheMiss is called once per computed search result.
	CacheMiss(query string)
	// IndexScanned is called when a wildcard search walked the index.
	IndexScanned(query string, keys int)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)          {}
func (nopObserver) CacheMiss(string)         {}
func (nopObserver) IndexScanned(string, int) {}

// lookupCache memoizes search results per raw query string. Entries never
// expire: the registry they were computed from never changes.
type lookupCache struct {
	store    *gocache.Cache
	inflight singleflight.Group
	compute  func(query string) []Code
	observer Observer
}

func newLookupCache(compute func(string) []Code, observer Observer) *lookupCache {
	return &lookupCache{
		// A zero cleanup interval keeps go-cache from starting its janitor.
		store:    gocache.New(gocache.NoExpiration, 0),
		compute:  compute,
		observer: observer,
	}
}

// get returns the cached result for query, computing and installing it on
// the first request.
func (c *lookupCache) get(query string) []Code {
	if v, ok := c.store.Get(query); ok {
		c.observer.CacheHit(query)
		return v.([]Code)
	}

	v, _, _ := c.inflight.Do(query, func() (any, error) {
		// Another flight may have installed the entry since our miss.
		if v, ok := c.store.Get(query); ok {
			c.observer.CacheHit(query)
			return v, nil
		}

		c.observer.CacheMiss(query)
		result := c.compute(query)
		if err := c.store.Add(query, result, gocache.NoExpiration); err != nil {
			// Lost the race to install; the stored value is authoritative.
			if v, ok := c.store.Get(query); ok {
				return v, nil
			}
		}
		return result, nil
	})
	return v.([]Code)
}

// size returns the number of cached queries.
func (c *lookupCache) size() int {
	return c.store.ItemCount()
}
