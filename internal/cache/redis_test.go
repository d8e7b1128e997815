package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-discovery/internal/cache"
)

func newCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestSAddSlidesTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	key := c.KeyForSeen(7, "s1")
	assert.Equal(t, "seen:7:s1", key)

	require.NoError(t, c.SAdd(ctx, key, time.Hour, "1", "2"))
	mr.FastForward(50 * time.Minute)
	require.NoError(t, c.SAdd(ctx, key, time.Hour, "2", "3"))
	mr.FastForward(50 * time.Minute)

	members, err := c.SMembers(ctx, key)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, members)

	mr.FastForward(11 * time.Minute)
	assert.False(t, mr.Exists(key))
}

func TestSClaimReturnsOnlyNewMembers(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	key := c.KeyForSeen(1, "s")

	added, err := c.SClaim(ctx, key, time.Minute, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, added)

	added, err = c.SClaim(ctx, key, time.Minute, "b", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, added)

	added, err = c.SClaim(ctx, key, time.Minute, "a")
	require.NoError(t, err)
	assert.Empty(t, added)

	assert.Greater(t, mr.TTL(key), time.Duration(0))

	in, err := c.SMIsMember(ctx, key, "a", "z", "c")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, in)
}

func TestMatchCountCache(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t)

	_, ok, err := c.GetMatchCount(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetMatchCount(ctx, 5, 3, time.Hour))
	n, ok, err := c.GetMatchCount(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	require.NoError(t, c.InvalidateMatchCounts(ctx, 5, 6))
	_, ok, err = c.GetMatchCount(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}
