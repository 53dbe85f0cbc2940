package cache

import (
	"context"
	"sync"
	"time"
)

// sweepInterval - как часто Set вычищает просроченные записи
const sweepInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache - кэш в памяти процесса, используется без Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries   map[string]entry
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false
	}

	return e.value, true
}

// Set с ttl <= 0 хранит значение бессрочно. Раз в sweepInterval заодно
// удаляет просроченные записи, к которым больше никто не обращался.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	now := c.now()
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !now.Before(c.nextSweep) {
		c.sweep(now)
		c.nextSweep = now.Add(sweepInterval)
	}
	c.entries[key] = e

	return nil
}

// sweep вызывается под c.mu.
func (c *MemoryCache) sweep(now time.Time) {
	for key, e := range c.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
