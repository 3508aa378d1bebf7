package fiberstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Redis {
	t.Helper()
	u := os.Getenv("FORECAST_TEST_REDIS_URL")
	if u == "" {
		t.Skip("FORECAST_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(u)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	s := NewRedis(client, "forecast:test:fiberstore:")
	t.Cleanup(func() { _ = s.Reset() })
	return s
}

func TestRedisStorage(t *testing.T) {
	s := newTestStore(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set("hits", []byte("3"), time.Minute))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	ttl, err := s.Client.TTL(context.Background(), "forecast:test:fiberstore:hits").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete("hits"))
	val, err = s.Get("hits")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageReset(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))
	require.NoError(t, s.Reset())

	for _, k := range []string{"a", "b"} {
		val, err := s.Get(k)
		require.NoError(t, err)
		assert.Nil(t, val, k)
	}
}
