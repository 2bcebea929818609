package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 0)
	defer c.Stop()
	ctx := context.Background()

	type item struct {
		IRN string `json:"irn"`
	}

	require.NoError(t, c.Set(ctx, "k", item{IRN: "IRN1"}, 0))

	var got item
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "IRN1", got.IRN)

	require.NoError(t, c.Delete(ctx, "k"))
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 0)
	defer c.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", "v", 10))

	now = now.Add(11 * time.Second)
	var v string
	hit, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)

	c.evictExpired()
	assert.Empty(t, c.store)
}

func TestInMemoryCache_IncrWindow(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 0)
	defer c.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Incr(ctx, "ip", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	now = now.Add(61 * time.Second)
	n, err := c.Incr(ctx, "ip", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "ventana nueva")
}

func TestHelpers_NilCache(t *testing.T) {
	var mu sync.Mutex
	assert.NotPanics(t, func() {
		AsyncCacheSetIf(nil, &mu, "k", "v", 1, nil, func() bool { return true })
		assert.NoError(t, CacheDelete(context.Background(), nil, &mu, "k"))
	})
}

func TestAsyncCacheSetIf(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 0)
	defer c.Stop()
	var mu sync.Mutex
	log := zap.NewNop()

	AsyncCacheSetIf(c, &mu, "ok", "v", 60, log, func() bool { return true })
	AsyncCacheSetIf(c, &mu, "stale", "v", 60, log, func() bool { return false })

	var got string
	assert.Eventually(t, func() bool {
		hit, _ := c.Get(context.Background(), "ok", &got)
		return hit
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "v", got)

	hit, err := c.Get(context.Background(), "stale", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheDelete_IgnoresCancelledContext(t *testing.T) {
	c := NewInMemoryCache(time.Minute, 0)
	defer c.Stop()
	var mu sync.Mutex

	require.NoError(t, c.Set(context.Background(), "k", "v", 60))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, CacheDelete(ctx, c, &mu, "k"))

	var got string
	hit, _ := c.Get(context.Background(), "k", &got)
	assert.False(t, hit)
}
