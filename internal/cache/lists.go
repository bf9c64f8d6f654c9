package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache holds JSON encoded listings. With a shared Service every replica
// reads and invalidates the same entries; without one entries stay in process.
type ListCache struct {
	local  *LocalCache
	shared Service
	logger Logger
}

// NewListCache creates a list cache. shared may be nil.
func NewListCache(size int, shared Service, logger Logger) (*ListCache, error) {
	local, err := NewLocalCache(size)
	if err != nil {
		return nil, err
	}
	return &ListCache{local: local, shared: shared, logger: logger}, nil
}

// Get decodes the entry under key into dest and reports whether it was found.
// Shared cache failures count as a miss.
func (c *ListCache) Get(ctx context.Context, key string, dest interface{}) bool {
	var data []byte
	if c.shared != nil {
		raw, err := c.shared.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				c.warn("Failed to read cached list", key, err)
			}
			return false
		}
		data = []byte(raw)
	} else {
		cached, ok := c.local.Get(key)
		if !ok {
			return false
		}
		data = cached.([]byte)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.warn("Failed to decode cached list", key, err)
		return false
	}
	return true
}

// Set stores value under key for ttl.
func (c *ListCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.warn("Failed to encode list", key, err)
		return
	}
	if c.shared != nil {
		if err := c.shared.Set(ctx, key, data, ttl); err != nil {
			c.warn("Failed to cache list", key, err)
		}
		return
	}
	c.local.Set(key, data, ttl)
}

// Invalidate drops keys from the shared cache and purges the local one.
func (c *ListCache) Invalidate(ctx context.Context, keys ...string) {
	c.local.Purge()
	if c.shared == nil {
		return
	}
	for _, key := range keys {
		if err := c.shared.Delete(ctx, key); err != nil {
			c.warn("Failed to invalidate cached list", key, err)
		}
	}
}

func (c *ListCache) warn(msg, key string, err error) {
	c.logger.LogWarn(msg, map[string]interface{}{"key": key, "error": err.Error()})
}
