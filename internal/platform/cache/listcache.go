package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ListCache wraps Redis based caching for public read endpoints with a
// version counter for invalidation. Concurrent loads for the same key are
// collapsed so a cold cache does not stampede the database.
type ListCache struct {
	client  *redis.Client
	ttl     time.Duration
	version string
	group   singleflight.Group
}

// NewListCache instantiates the cache helper. versionKey namespaces the
// invalidation counter per resource family (e.g. "catalog:version").
func NewListCache(client *redis.Client, versionKey string, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl, version: versionKey}
}

// BuildKey composes the cache key with the current version.
func (c *ListCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.client.Get(ctx, c.version).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return "", err
		}
		ver = 1
		if err := c.client.Set(ctx, c.version, ver, 0).Err(); err != nil {
			return "", err
		}
	}
	return joined + ":v" + strconv.FormatInt(ver, 10), nil
}

// FetchJSON loads a cached value or populates it using the loader. Only one
// loader per key runs at a time.
func (c *ListCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return reencode(value, dest)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}

	raw, err, _ := c.group.Do(key, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.([]byte), dest)
}

// Bump invalidates all keys built against the current version.
func (c *ListCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, c.version).Err()
}

func reencode(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

