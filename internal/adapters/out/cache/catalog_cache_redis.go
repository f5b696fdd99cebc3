// internal/adapters/out/cache/catalog_cache_redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	productdom "storefront/internal/domain/product"
)

// pageTTL keeps stale catalog pages short-lived even if an
// invalidation is missed.
const pageTTL = 5 * time.Minute

// keyPrefix scopes the SCAN used by Invalidate; every cache key the
// catalog usecase builds starts with it.
const keyPrefix = "catalog:"

// CatalogCacheRedis implements usecase.CatalogCache with JSON-encoded
// pages in Redis.
type CatalogCacheRedis struct {
	client *redis.Client
}

func NewCatalogCacheRedis(client *redis.Client) *CatalogCacheRedis {
	return &CatalogCacheRedis{client: client}
}

// GetPage returns (nil, nil) on a cache miss.
func (c *CatalogCacheRedis) GetPage(ctx context.Context, key string) (*productdom.PageResult, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("catalog_cache_redis: redis client is nil")
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page productdom.PageResult
	if err := json.Unmarshal(raw, &page); err != nil {
		// A corrupt entry behaves like a miss; the next SetPage fixes it.
		return nil, nil
	}
	return &page, nil
}

func (c *CatalogCacheRedis) SetPage(ctx context.Context, key string, page productdom.PageResult) error {
	if c == nil || c.client == nil {
		return errors.New("catalog_cache_redis: redis client is nil")
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, pageTTL).Err()
}

// Invalidate drops every cached catalog page.
func (c *CatalogCacheRedis) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("catalog_cache_redis: redis client is nil")
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
