package rentals

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheVersionKey = "rentals:list:version"

// ListCache wraps Redis based caching of the rentals listing with versioning
// controls. Redis failures degrade to the loader and are only logged; a cache
// outage must never fail a listing request.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewListCache instantiates the cache helper. A nil client disables caching.
func NewListCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListCache {
	return &ListCache{client: client, ttl: ttl, logger: logger}
}

// Fetch returns the cached listing, filling it from loader on a miss.
// Concurrent misses share one loader call.
func (c *ListCache) Fetch(ctx context.Context, loader func(context.Context) ([]Rental, error)) ([]Rental, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	key, err := c.buildKey(ctx)
	if err != nil {
		c.warn("cache key", err)
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var rentals []Rental
		if err := json.Unmarshal(payload, &rentals); err == nil {
			return rentals, nil
		}
		c.warn("cache decode", err)
	} else if err != redis.Nil {
		c.warn("cache get", err)
		return loader(ctx)
	}

	result := c.group.DoChan(key, func() (any, error) {
		rentals, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(rentals); err == nil {
			if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.warn("cache set", err)
			}
		}
		return rentals, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Rental), nil
	}
}

// Bump invalidates the cached listing by advancing the version.
func (c *ListCache) Bump(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, cacheVersionKey).Err(); err != nil {
		c.warn("cache bump", err)
	}
}

func (c *ListCache) buildKey(ctx context.Context) (string, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return "", err
		}
		ver = 1
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("rentals:list:%d", ver), nil
}

func (c *ListCache) warn(op string, err error) {
	if c.logger != nil {
		c.logger.Warn("rentals cache degraded", slog.String("op", op), slog.Any("error", err))
	}
}
