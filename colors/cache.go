package colors

import (
	"sync"
	"sync/atomic"
)

type cacheKey struct {
	target, background RGB
}

// Cache memoizes a Matcher. Entries are never evicted; since the wrapped
// matcher is pure a cached answer is always the computed one.
type Cache struct {
	next    Matcher
	mu      sync.RWMutex
	entries map[cacheKey]Match
	hits    atomic.Uint64
	misses  atomic.Uint64
}

func NewCache(next Matcher) *Cache {
	if next == nil {
		next = Exact
	}
	return &Cache{
		next:    next,
		entries: make(map[cacheKey]Match),
	}
}

func (c *Cache) FindBestMatch(target, background RGB) Match {
	key := cacheKey{target, background}

	c.mu.RLock()
	m, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return m
	}

	c.misses.Add(1)
	m = c.next.FindBestMatch(target, background)

	c.mu.Lock()
	c.entries[key] = m
	c.mu.Unlock()

	return m
}

// Stats returns the number of lookups answered from and missing the cache
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
