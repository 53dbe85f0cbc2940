package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	val, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	require.NoError(t, c.Set(ctx, "k", "v2", time.Minute))
	val, _ = c.Get(ctx, "k")
	assert.Equal(t, "v2", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", "v", time.Second))
	require.NoError(t, c.Set(ctx, "forever", "v", 0))

	now = now.Add(2 * time.Second)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = c.Set(ctx, key, "v", time.Minute)
			_, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, c.Len())
}

func TestMemoryCache_SetSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("link%d", i), "v", time.Second))
	}
	require.NoError(t, c.Set(ctx, "forever", "v", 0))
	assert.Equal(t, 11, c.Len())

	// просроченные, но до следующей очистки еще не дошло
	now = now.Add(2 * time.Second)
	require.NoError(t, c.Set(ctx, "fresh", "v", time.Hour))
	assert.Equal(t, 12, c.Len())

	now = now.Add(sweepInterval)
	require.NoError(t, c.Set(ctx, "another", "v", time.Hour))
	assert.Equal(t, 3, c.Len())

	_, ok := c.Get(ctx, "forever")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "fresh")
	assert.True(t, ok)
}
