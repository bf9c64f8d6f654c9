package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type localItem struct {
	value     interface{}
	expiresAt time.Time
}

// LocalCache is a size bounded in-process cache with per-entry TTL.
type LocalCache struct {
	mu  sync.Mutex
	lru *lru.Cache[string, localItem]
	now func() time.Time
}

// NewLocalCache creates a cache holding at most size entries.
func NewLocalCache(size int) (*LocalCache, error) {
	if size <= 0 {
		size = 128
	}
	l, err := lru.New[string, localItem](size)
	if err != nil {
		return nil, err
	}
	return &LocalCache{lru: l, now: time.Now}, nil
}

// Set stores value under key until ttl elapses.
func (c *LocalCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, localItem{value: value, expiresAt: c.now().Add(ttl)})
}

// Get returns the live value for key, evicting it when expired.
func (c *LocalCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().After(item.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return item.value, true
}

// Purge drops every entry.
func (c *LocalCache) Purge() {
	c.lru.Purge()
}
