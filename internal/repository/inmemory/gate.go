package inmemory

import (
	"sync"
	"time"
)

// InMemoryGateCache memoizes per-center gate authorizations with a TTL. Used
// on the status read path only; expired entries are evicted on read.
type InMemoryGateCache struct {
	mu    sync.RWMutex
	items map[string]gateItem
}

type gateItem struct {
	allowed   bool
	expiresAt time.Time
}

func NewInMemoryGateCache() *InMemoryGateCache {
	return &InMemoryGateCache{
		items: make(map[string]gateItem),
	}
}

func (c *InMemoryGateCache) Get(centerID string) (bool, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[centerID]
	c.mu.RUnlock()
	if !ok {
		return false, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[centerID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, centerID)
		}
		c.mu.Unlock()
		return false, false
	}

	return item.allowed, true
}

func (c *InMemoryGateCache) Set(centerID string, allowed bool, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(centerID)
		return
	}

	c.mu.Lock()
	c.items[centerID] = gateItem{
		allowed:   allowed,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryGateCache) Delete(centerID string) {
	c.mu.Lock()
	delete(c.items, centerID)
	c.mu.Unlock()
}
