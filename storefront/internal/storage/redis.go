package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	model "overcooked-storefront/ordering/domain"

	"github.com/redis/go-redis/v9"
)

const catalogKey = "storefront:catalog"

// RedisCache keeps the last fetched restaurant catalog so that a restart or a
// second storefront does not refetch every menu.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

// GetCatalog reports a miss with ok=false and a nil error.
func (c *RedisCache) GetCatalog(ctx context.Context) ([]model.Restaurant, bool, error) {
	raw, err := c.Client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var restaurants []model.Restaurant
	if err := json.Unmarshal(raw, &restaurants); err != nil {
		return nil, false, fmt.Errorf("decode cached catalog: %w", err)
	}
	return restaurants, true, nil
}

func (c *RedisCache) SetCatalog(ctx context.Context, restaurants []model.Restaurant) error {
	payload, err := json.Marshal(restaurants)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, catalogKey, payload, c.TTL).Err()
}

func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.Client.Del(ctx, catalogKey).Err()
}
