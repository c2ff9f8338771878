package rate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	memcache "github.com/Zee-2005/safara-sub000/internal/cache/memory"
)

func TestWindowLimiter(t *testing.T) {
	l := NewWindowLimiter(memcache.New(time.Minute), "t:", 3, time.Minute)

	for i := 0; i < 3; i++ {
		res, err := l.Allow("1.2.3.4")
		require.NoError(t, err)
		require.True(t, res.Allowed, "hit %d should pass", i+1)
	}

	res, err := l.Allow("1.2.3.4")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Zero(t, res.Remaining)
	require.Greater(t, res.RetryAfter, time.Duration(0))

	// Other clients keep their own window.
	res, err = l.Allow("5.6.7.8")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}
