package blog

import (
	"sync"
	"time"
)

// Page is one cached rendered response.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

type pageEntry struct {
	page   Page
	stored time.Time
}

// PageCache holds rendered pages keyed by request path, with a TTL.
// This is the process-wide cache the revalidation coordinator targets.
// Entries expire on their own; invalidation just makes the next
// request recompute sooner.
type PageCache struct {
	mu      sync.RWMutex
	entries map[string]pageEntry
	ttl     time.Duration
}

// NewPageCache creates a PageCache with the given TTL. A zero TTL
// disables caching entirely, which tests use for determinism.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		entries: make(map[string]pageEntry),
		ttl:     ttl,
	}
}

// Get returns the cached page for a path if present and fresh.
func (c *PageCache) Get(path string) (Page, bool) {
	if c.ttl == 0 {
		return Page{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || time.Since(e.stored) >= c.ttl {
		return Page{}, false
	}
	return e.page, true
}

// Set stores a rendered page for a path.
func (c *PageCache) Set(path string, page Page) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	c.entries[path] = pageEntry{page: page, stored: time.Now()}
	c.mu.Unlock()
}

// Invalidate marks the given paths stale. Invalidating an absent or
// already-fresh path is a no-op, so the operation is idempotent and
// safe to call repeatedly and concurrently.
func (c *PageCache) Invalidate(paths ...string) {
	c.mu.Lock()
	for _, p := range paths {
		delete(c.entries, p)
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, fresh or not.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
