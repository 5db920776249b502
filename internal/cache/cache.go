// Package cache provides a small JSON snapshot cache backed by Redis when
// available, with a transparent in-process fallback so the service runs
// without any Redis deployment.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Cache stores JSON-encoded values under string keys with a shared TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration

	mu  sync.RWMutex
	mem map[string]memEntry
}

type memEntry struct {
	data      []byte
	expiresAt time.Time
}

// New connects to Redis at addr. If addr is empty or the server is
// unreachable the cache degrades to in-process memory.
func New(ctx context.Context, addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return NewMemory(ttl)
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zap.L().Warn("cache: redis unreachable, using in-memory fallback",
			zap.String("addr", addr),
			zap.Error(err),
		)
		rdb.Close()
		return NewMemory(ttl)
	}

	zap.L().Info("cache: connected to redis", zap.String("addr", addr))
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewMemory returns a cache that never leaves the process.
func NewMemory(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, mem: make(map[string]memEntry)}
}

// Get unmarshals the cached value for key into dest. The bool reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return false, nil
		}
		if err != nil {
			// Treat a flaky backend as a miss.
			zap.L().Warn("cache: redis get failed", zap.String("key", key), zap.Error(err))
			return false, nil
		}
		raw = data
	} else {
		c.mu.RLock()
		entry, ok := c.mem[key]
		c.mu.RUnlock()
		if !ok || time.Now().After(entry.expiresAt) {
			return false, nil
		}
		raw = entry.data
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, eris.Wrapf(err, "cache: unmarshal %s", key)
	}
	return true, nil
}

// Set stores v under key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "cache: marshal %s", key)
	}

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			zap.L().Warn("cache: redis set failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	c.mu.Lock()
	c.mem[key] = memEntry{data: raw, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Delete drops the cached value for key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			return eris.Wrapf(err, "cache: delete %s", key)
		}
		return nil
	}

	c.mu.Lock()
	delete(c.mem, key)
	c.mu.Unlock()
	return nil
}

func (c *Cache) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
