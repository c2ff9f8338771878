// Package cache defines the byte cache used by rate limiting and lookups.
package cache

import "time"

type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Increment(key string, ttl time.Duration) (int64, error)
	Delete(key string)
}
