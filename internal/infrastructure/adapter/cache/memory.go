package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rakapradana/member-gateway/internal/domain/port/core"
)

// MemoryCache is a process-local TTL cache. Expired entries are dropped
// lazily on read; when the map grows past maxSize, a sweep evicts expired
// entries before new ones are admitted.
type MemoryCache struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	maxSize int
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache holding at most maxSize entries
func NewMemoryCache(maxSize int) core.Cache {
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &MemoryCache{
		items:   make(map[string]memoryItem),
		maxSize: maxSize,
	}
}

// Get returns the value for key when present and not expired
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return "", false
	}

	return item.value, true
}

// Set stores the value under key for the given ttl
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(context.Background(), key)
		return
	}

	now := time.Now()

	c.mu.Lock()
	if len(c.items) >= c.maxSize {
		c.sweepLocked(now)
	}
	if len(c.items) >= c.maxSize {
		// still full after the sweep; refuse the entry rather than grow
		if _, exists := c.items[key]; !exists {
			c.mu.Unlock()
			return
		}
	}
	c.items[key] = memoryItem{
		value:     value,
		expiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes the entry for key, if any
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear drops every entry
func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	c.items = make(map[string]memoryItem)
	c.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryCache) sweepLocked(now time.Time) {
	for k, item := range c.items {
		if !item.expiresAt.After(now) {
			delete(c.items, k)
		}
	}
}
