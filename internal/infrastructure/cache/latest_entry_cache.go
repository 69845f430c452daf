package cache

import (
	"sync"
	"time"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
)

// LatestEntryCache provides a thread-safe in-memory cache for the most
// recent snapshot entry, so repeated rate queries between scrape runs do
// not have to re-read the persisted document. The scrape pipeline clears it
// after every successful write.
type LatestEntryCache struct {
	entry      *entity.LatestEntry
	storedAt   time.Time
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewLatestEntryCache creates a new latest-entry cache
func NewLatestEntryCache() *LatestEntryCache {
	return &LatestEntryCache{
		expiration: 5 * time.Minute, // Default 5m expiration
	}
}

// Get retrieves the cached entry if available and not expired
func (c *LatestEntryCache) Get() *entity.LatestEntry {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.entry == nil || time.Since(c.storedAt) > c.expiration {
		return nil
	}

	return c.entry
}

// Put stores the latest entry in the cache
func (c *LatestEntryCache) Put(entry *entity.LatestEntry) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entry = entry
	c.storedAt = time.Now()
}

// Clear drops the cached entry
func (c *LatestEntryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entry = nil
}

// SetExpiration sets the cache expiration duration
func (c *LatestEntryCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}
