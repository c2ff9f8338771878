// Package redis implements the cache on go-redis.
package redis

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

type Cache struct {
	client *rdb.Client
	prefix string
}

func New(client *rdb.Client, prefix string) *Cache {
	if prefix == "" {
		prefix = "safara:"
	}
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) Get(k string) ([]byte, bool) {
	b, err := c.client.Get(context.Background(), c.prefix+k).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(k string, v []byte, ttl time.Duration) {
	_ = c.client.Set(context.Background(), c.prefix+k, v, ttl).Err()
}

func (c *Cache) Delete(k string) {
	_ = c.client.Del(context.Background(), c.prefix+k).Err()
}

// Increment bumps a counter key atomically, setting the ttl on first hit.
func (c *Cache) Increment(k string, ttl time.Duration) (int64, error) {
	ctx := context.Background()
	key := c.prefix + k
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		_ = c.client.Expire(ctx, key, ttl).Err()
	}
	return n, nil
}
