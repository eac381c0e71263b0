package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cached struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	cache := NewJSONCache[cached](rdb, "test:", time.Minute)

	_, found, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "a", cached{Name: "a", Count: 2}))
	assert.True(t, mr.Exists("test:a"))

	got, found, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cached{Name: "a", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	_, found, err = cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mr.Set("test:bad", "{"))
	_, _, err = cache.Get(ctx, "bad")
	assert.Error(t, err)
}
