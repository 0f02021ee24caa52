package cache

import (
	"context"
	"time"

	"vidhub/internal/domain/repositories"

	"github.com/go-redis/redis/v8"
)

const sentinel = "1"

type redisDedupCache struct {
	rdb *redis.Client
}

func NewRedisDedupCache(rdb *redis.Client) repositories.DedupCache {
	return &redisDedupCache{rdb: rdb}
}

func (c *redisDedupCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (c *redisDedupCache) Mark(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, sentinel, ttl).Err()
}
