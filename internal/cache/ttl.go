// Package cache is a small in-memory TTL cache for hot GET payloads
// (settings, working hours). Keys are strings, values are encoded JSON.
package cache

import (
	"sync"
	"time"
)

type TTL struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

type item struct {
	data []byte
	exp  time.Time
}

// New returns a TTL cache whose entries expire after ttl. A background
// sweep removes stale entries so the map does not grow unbounded.
func New(ttl time.Duration) *TTL {
	c := &TTL{items: make(map[string]item), ttl: ttl}
	go c.sweep()
	return c
}

func (c *TTL) sweep() {
	tick := time.NewTicker(c.ttl / 2)
	defer tick.Stop()
	for range tick.C {
		c.mu.Lock()
		now := time.Now()
		for k, v := range c.items {
			if v.exp.Before(now) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}

// Get returns the value for key if present and not expired, otherwise nil.
func (c *TTL) Get(key string) []byte {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || it.exp.Before(time.Now()) {
		return nil
	}
	return it.data
}

func (c *TTL) Set(key string, value []byte) {
	exp := time.Now().Add(c.ttl)
	c.mu.Lock()
	c.items[key] = item{data: value, exp: exp}
	c.mu.Unlock()
}

func (c *TTL) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// DeletePrefix removes every key starting with prefix (e.g. "wh:" to drop
// all cached working-hours payloads).
func (c *TTL) DeletePrefix(prefix string) {
	c.mu.Lock()
	for k := range c.items {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}
