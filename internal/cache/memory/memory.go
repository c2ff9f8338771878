// Package memory implements the cache on patrickmn/go-cache.
package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Cache struct{ c *gocache.Cache }

func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Cache) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

func (m *Cache) Set(k string, v []byte, ttl time.Duration) { m.c.Set(k, v, ttl) }
func (m *Cache) Delete(k string)                           { m.c.Delete(k) }

// Increment bumps a counter key, creating it with ttl on first hit.
func (m *Cache) Increment(k string, ttl time.Duration) (int64, error) {
	// Add is a no-op when the key already exists, so this seeds a fresh
	// window without racing an existing one.
	_ = m.c.Add(k, int64(0), ttl)
	n, err := m.c.IncrementInt64(k, 1)
	if err != nil {
		// Entry expired between Add and Increment; restart the window.
		m.c.Set(k, int64(1), ttl)
		return 1, nil
	}
	return n, nil
}
