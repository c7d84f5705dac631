package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phrazzld/lunchvote/internal/domain"
)

// DefaultMaxEntries bounds the number of cached list pages.
const DefaultMaxEntries = 100

// ListCache caches restaurant list pages by PageRequest.CacheKey.
//
// Writers bump the generation through InvalidateAll. A reader takes Generation()
// before loading from the store and hands it to Put, which drops the value when an
// invalidation happened in between.
type ListCache interface {
	Get(key string) ([]*domain.Restaurant, bool)
	Put(key string, value []*domain.Restaurant, generation uint64)
	Generation() uint64
	InvalidateAll()
}

// LRUListCache is a bounded ListCache. Values are deep-copied on the way in and
// out, so callers can never mutate a cached page.
type LRUListCache struct {
	mu         sync.Mutex
	entries    *lru.Cache[string, []*domain.Restaurant]
	generation uint64
	logger     *slog.Logger
}

var _ ListCache = (*LRUListCache)(nil)

// NewLRUListCache creates a cache holding at most maxEntries pages. A non-positive
// maxEntries means DefaultMaxEntries. If logger is nil, a default logger will be used.
func NewLRUListCache(maxEntries int, logger *slog.Logger) (*LRUListCache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &LRUListCache{
		logger: logger.With(slog.String("component", "list_cache")),
	}

	entries, err := lru.NewWithEvict(maxEntries, func(key string, _ []*domain.Restaurant) {
		c.logger.Debug("list cache entry removed", slog.String("key", key))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list cache: %w", err)
	}
	c.entries = entries

	return c, nil
}

// Get returns a copy of the cached page.
func (c *LRUListCache) Get(key string) ([]*domain.Restaurant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return domain.CloneRestaurants(v), true
}

// Put stores a copy of value unless the cache was invalidated after generation
// was read.
func (c *LRUListCache) Put(key string, value []*domain.Restaurant, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("discarding stale list page",
			slog.String("key", key),
			slog.Uint64("read_generation", generation),
			slog.Uint64("current_generation", c.generation))
		return
	}
	c.entries.Add(key, domain.CloneRestaurants(value))
}

// Generation returns the current invalidation generation.
func (c *LRUListCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// InvalidateAll drops every page and starts a new generation.
func (c *LRUListCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.entries.Purge()
}

// Len reports the number of cached pages.
func (c *LRUListCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// NoopCache never stores anything. It is used when caching is disabled.
type NoopCache struct{}

var _ ListCache = NoopCache{}

// Get always misses.
func (NoopCache) Get(string) ([]*domain.Restaurant, bool) { return nil, false }

// Put discards the value.
func (NoopCache) Put(string, []*domain.Restaurant, uint64) {}

// Generation is always zero.
func (NoopCache) Generation() uint64 { return 0 }

// InvalidateAll does nothing.
func (NoopCache) InvalidateAll() {}

// GetOrLoad serves key from c, falling back to load and caching its result.
func GetOrLoad(
	ctx context.Context,
	c ListCache,
	key string,
	load func(ctx context.Context) ([]*domain.Restaurant, error),
) ([]*domain.Restaurant, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	generation := c.Generation()
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.Put(key, v, generation)
	return v, nil
}
