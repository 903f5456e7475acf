package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/broki/marketplace-api/internal/domain/providers"
)

// submissionLimiter counts submissions per key in a fixed window. Counts
// live in the cache when one is configured and reachable, otherwise in
// process.
type submissionLimiter struct {
	cache  providers.CacheProvider
	local  *localRateLimiter
	limit  int
	window time.Duration
}

func newSubmissionLimiter(cache providers.CacheProvider, limit int, window time.Duration) *submissionLimiter {
	return &submissionLimiter{
		cache:  cache,
		local:  newLocalRateLimiter(),
		limit:  limit,
		window: window,
	}
}

// allow records one submission for key and reports whether it is within
// the limit. When the cache is unavailable the count falls back to the
// in-process limiter.
func (l *submissionLimiter) allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.limit <= 0 {
		return true, 0
	}
	if l.cache == nil {
		return l.local.allow(key, l.limit, l.window)
	}

	count, ttl, err := l.cache.Incr(ctx, key, int(l.window.Seconds()))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Rate limit cache unavailable, using local limiter")
		return l.local.allow(key, l.limit, l.window)
	}
	if ttl <= 0 {
		ttl = l.window
	}
	return count <= int64(l.limit), ttl
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
