package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"eventhub/internal/domain"
)

const pingTimeout = 2 * time.Second

// NewRedisClient parses url and returns a client. An unreachable server is
// logged, not returned: callers degrade to cache misses until it recovers.
func NewRedisClient(url string, logger *slog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, search cache will miss until it recovers", "addr", opts.Addr, "err", err)
	}
	return rdb, nil
}

type redisCache struct {
	rdb *redis.Client
}

// NewRedisCache returns a domain.ResultCache backed by Redis string keys with expiry.
func NewRedisCache(rdb *redis.Client) domain.ResultCache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
