package server

import (
	"sync"
	"time"

	"github.com/uitrack/uitrack/internal/query"
)

// matchEntry holds a cached pattern-match result with its timestamp.
type matchEntry struct {
	ids       []string
	timestamp time.Time
}

// matchCache provides a TTL-based cache for pattern-match results, so agents
// polling the same filter between registry changes do not rescan. Any
// registry mutation invalidates the whole cache.
type matchCache struct {
	mu      sync.Mutex
	entries map[string]matchEntry
	ttl     time.Duration
}

// newMatchCache creates a new cache. A ttl of 0 disables caching.
func newMatchCache(ttl time.Duration) *matchCache {
	return &matchCache{
		entries: make(map[string]matchEntry),
		ttl:     ttl,
	}
}

// Matching returns cached identifiers if within TTL, otherwise queries
// fresh. Pattern errors are never cached.
func (c *matchCache) Matching(engine *query.Engine, pattern string) ([]string, error) {
	if c.ttl == 0 {
		return engine.Matching(pattern)
	}

	c.mu.Lock()
	if entry, ok := c.entries[pattern]; ok && time.Since(entry.timestamp) < c.ttl {
		ids := entry.ids
		c.mu.Unlock()
		return ids, nil
	}
	c.mu.Unlock()

	ids, err := engine.Matching(pattern)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[pattern] = matchEntry{ids: ids, timestamp: time.Now()}
	c.mu.Unlock()

	return ids, nil
}

// InvalidateAll clears the entire cache.
func (c *matchCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]matchEntry)
}
