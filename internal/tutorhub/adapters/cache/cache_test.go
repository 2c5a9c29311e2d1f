package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorhub/internal/tutorhub/adapters/cache"
	cachePorts "tutorhub/internal/tutorhub/ports/cache"
	redisclient "tutorhub/pkg/db/redis"
)

const testPrefix = "tutorhub:"

func newTestCache(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()

	srv := miniredis.RunT(t)

	host, portStr, _ := strings.Cut(srv.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := redisclient.NewClient(context.Background(), &redisclient.Config{Host: host, Port: port})
	require.NoError(t, err)

	return srv, cache.NewRedisCache(client, testPrefix, time.Minute)
}

func TestRedisCacheImplementsPort(t *testing.T) {
	assert.Implements(t, (*cachePorts.Cache)(nil), &cache.RedisCache{})
	assert.Implements(t, (*cachePorts.Cache)(nil), cache.NewNoopCache())
}

func TestRedisCacheSetGet(t *testing.T) {
	srv, redisCache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Set(ctx, "courses", `[{"id":"c1"}]`, 0))

	raw, err := srv.Get(testPrefix + "courses")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"c1"}]`, raw)
	assert.Equal(t, time.Minute, srv.TTL(testPrefix+"courses"), "zero ttl should use default")

	value, ok, err := redisCache.Get(ctx, "courses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"c1"}]`, value)
}

func TestRedisCacheMiss(t *testing.T) {
	_, redisCache := newTestCache(t)

	value, ok, err := redisCache.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRedisCacheExpiry(t *testing.T) {
	srv, redisCache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Set(ctx, "tutors", "[]", 10*time.Second))
	srv.FastForward(11 * time.Second)

	_, ok, err := redisCache.Get(ctx, "tutors")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheDelete(t *testing.T) {
	srv, redisCache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Set(ctx, "courses", "[]", 0))
	require.NoError(t, redisCache.Delete(ctx, "courses"))

	assert.False(t, srv.Exists(testPrefix+"courses"))
}

func TestRedisCacheServerDown(t *testing.T) {
	srv, redisCache := newTestCache(t)
	ctx := context.Background()

	srv.Close()

	_, ok, err := redisCache.Get(ctx, "courses")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), cache.ErrorFailedToGet)

	err = redisCache.Set(ctx, "courses", "[]", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), cache.ErrorFailedToSet)
}

func TestRedisCacheClose(t *testing.T) {
	_, redisCache := newTestCache(t)

	assert.NoError(t, redisCache.Close())
}

func TestNoopCache(t *testing.T) {
	noop := cache.NewNoopCache()
	ctx := context.Background()

	require.NoError(t, noop.Set(ctx, "k", "v", time.Minute))

	value, ok, err := noop.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.NoError(t, noop.Delete(ctx, "k"))
	assert.NoError(t, noop.Close())
}
