package cache

import (
	"sync"
	"time"

	"github.com/damon-houk/treasury-yield-service/internal/domain/entity"
)

// CacheEntry represents a cached year of raw feed entries with expiration
type CacheEntry struct {
	Entries   []entity.RawEntry
	Timestamp time.Time
}

// FeedCache provides a thread-safe in-memory cache of raw feed entries,
// keyed by publication year. The Treasury feed republishes a full year per
// request, so caching avoids re-downloading an unchanged year on every
// refresh within the expiration window.
type FeedCache struct {
	cache      map[int]CacheEntry
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewFeedCache creates a new feed cache
func NewFeedCache() *FeedCache {
	return &FeedCache{
		cache:      make(map[int]CacheEntry),
		expiration: 1 * time.Hour, // Daily feed; one hour is fresh enough
	}
}

// Get retrieves a year's entries from the cache if available and not expired
func (c *FeedCache) Get(year int) []entity.RawEntry {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[year]
	if !exists || time.Since(entry.Timestamp) > c.expiration {
		return nil
	}

	return entry.Entries
}

// Put stores a year's entries in the cache
func (c *FeedCache) Put(year int, entries []entity.RawEntry) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[year] = CacheEntry{
		Entries:   entries,
		Timestamp: time.Now(),
	}
}

// Clear clears all entries from the cache
func (c *FeedCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[int]CacheEntry)
}

// SetExpiration sets the cache expiration duration
func (c *FeedCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}

// Size returns the number of cached years
func (c *FeedCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}
