package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/broki/marketplace-api/internal/domain/providers"
	redisclient "github.com/broki/marketplace-api/internal/infrastructure/clients/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisAdapter(redisclient.NewClientFromRedis(rdb)), mr
}

func TestRedisAdapter_SetGet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "otp:a@b.in", []byte("123456"), 300))

	value, err := adapter.Get(ctx, "otp:a@b.in")
	require.NoError(t, err)
	assert.Equal(t, "123456", string(value))

	exists, err := adapter.Exists(ctx, "otp:a@b.in")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisAdapter_Miss(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, providers.ErrCacheMiss))
}

func TestRedisAdapter_Expiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "otp_cooldown:a@b.in", []byte("1"), 60))
	mr.FastForward(61 * time.Second)

	exists, err := adapter.Exists(ctx, "otp_cooldown:a@b.in")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, adapter.Delete(ctx, "k"))

	_, err := adapter.Get(ctx, "k")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapter_IncrKeepsFirstExpiry(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	count, ttl, err := adapter.Incr(ctx, "forms:rate:contact:1.2.3.4", 3600)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Hour, ttl)

	mr.FastForward(10 * time.Minute)

	count, ttl, err = adapter.Incr(ctx, "forms:rate:contact:1.2.3.4", 3600)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 50*time.Minute, ttl)
}

func TestRedisAdapter_IncrUnavailable(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	mr.Close()

	_, _, err := adapter.Incr(context.Background(), "k", 60)
	assert.Error(t, err)
}
