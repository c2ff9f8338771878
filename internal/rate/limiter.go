// Package rate implements a fixed-window request limiter over the cache.
// Document uploads and verification runs are OCR-backed and expensive, so
// they get per-client windows.
package rate

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zee-2005/safara-sub000/internal/cache"
)

type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(key string) (Result, error)
}

// WindowLimiter counts hits per key per fixed window on any cache backend.
type WindowLimiter struct {
	Cache  cache.Cache
	Prefix string
	Max    int64
	Window time.Duration
}

func NewWindowLimiter(c cache.Cache, prefix string, max int, window time.Duration) *WindowLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &WindowLimiter{Cache: c, Prefix: prefix, Max: int64(max), Window: window}
}

func (l *WindowLimiter) Allow(key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.Window)
	k := fmt.Sprintf("%s%s:%d", l.Prefix, strings.ReplaceAll(key, " ", "_"), winStart.Unix())

	hits, err := l.Cache.Increment(k, l.Window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.Max - hits
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:    hits <= l.Max,
		Remaining:  remaining,
		RetryAfter: winStart.Add(l.Window).Sub(now),
	}
	return res, nil
}
