package cache_test

import (
	"testing"
	"time"

	"github.com/shuaibahmad12/mirai/internal/cache"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := cache.NewTTLCache[string, int](20 * time.Millisecond)

	c.Set("a", 1)
	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, got)

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("a")
	require.False(t, ok)
}

func TestTTLCacheDeleteAndPurge(t *testing.T) {
	c := cache.NewTTLCache[string, string](time.Minute)

	c.Set("a", "x")
	c.Set("b", "y")

	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)

	c.Purge()
	_, ok = c.Get("b")
	require.False(t, ok)
}
