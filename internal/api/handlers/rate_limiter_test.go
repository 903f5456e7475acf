package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/broki/marketplace-api/internal/adapters/cache"
	redisclient "github.com/broki/marketplace-api/internal/infrastructure/clients/redis"
)

func newRedisLimiter(t *testing.T, limit int) (*submissionLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	return newSubmissionLimiter(cache.NewRedisAdapter(redisclient.NewClientFromRedis(rdb)), limit, time.Hour), mr
}

func TestSubmissionLimiter_ConcurrentRequests(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 20)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.allow(context.Background(), "forms:rate:contact:10.0.0.1"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), allowed.Load())
}

func TestSubmissionLimiter_FixedWindow(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 2)
	ctx := context.Background()
	key := "forms:rate:outlet:10.0.0.2"

	ok, _ := limiter.allow(ctx, key)
	assert.True(t, ok)

	mr.FastForward(40 * time.Minute)
	ok, retryAfter := limiter.allow(ctx, key)
	assert.True(t, ok)
	assert.LessOrEqual(t, retryAfter, 20*time.Minute)

	ok, _ = limiter.allow(ctx, key)
	assert.False(t, ok)

	mr.FastForward(21 * time.Minute)
	ok, _ = limiter.allow(ctx, key)
	assert.True(t, ok, "counter resets when the window ends")
}

func TestSubmissionLimiter_FallsBackWhenCacheDown(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 20)
	mr.Close()

	allowed := 0
	for i := 0; i < 50; i++ {
		if ok, _ := limiter.allow(context.Background(), "forms:rate:contact:10.0.0.3"); ok {
			allowed++
		}
	}

	assert.Equal(t, 20, allowed)
}

func TestSubmissionLimiter_WithoutCache(t *testing.T) {
	limiter := newSubmissionLimiter(nil, 1, time.Hour)

	ok, _ := limiter.allow(context.Background(), "k")
	assert.True(t, ok)
	ok, retryAfter := limiter.allow(context.Background(), "k")
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
}
