package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/broki/marketplace-api/internal/adapters/cache"
	"github.com/broki/marketplace-api/internal/domain/providers"
	redisclient "github.com/broki/marketplace-api/internal/infrastructure/clients/redis"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*JWTAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	adapter := NewJWTAdapter("test-secret", 5*time.Minute, 24*time.Hour,
		cache.NewRedisAdapter(redisclient.NewClientFromRedis(rdb)))
	return adapter, mr
}

func TestJWTAdapter_IssueAndParse(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	pair, err := adapter.Issue(ctx, 42)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := adapter.ParseAccess(ctx, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, providers.TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, claims.IssuedAt.Add(5*time.Minute), claims.ExpiresAt, time.Second)
}

func TestJWTAdapter_ParseAccess_RejectsRefresh(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	pair, err := adapter.Issue(context.Background(), 1)
	require.NoError(t, err)

	_, err = adapter.ParseAccess(context.Background(), pair.Refresh)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgTokenWrongType, appErr.Message)
}

func TestJWTAdapter_ParseAccess_Expired(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	issued := time.Now().Add(-10 * time.Minute)
	adapter.now = func() time.Time { return issued }

	pair, err := adapter.Issue(context.Background(), 1)
	require.NoError(t, err)

	adapter.now = time.Now
	_, err = adapter.ParseAccess(context.Background(), pair.Access)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestJWTAdapter_ParseAccess_WrongSecret(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		TokenType: providers.TokenTypeAccess,
		UserID:    1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = adapter.ParseAccess(context.Background(), signed)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestJWTAdapter_Blacklist(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	pair, err := adapter.Issue(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, adapter.Blacklist(ctx, pair.Refresh))

	claims, err := adapter.parse(pair.Refresh, providers.TokenTypeRefresh)
	require.NoError(t, err)
	revoked, err := adapter.IsBlacklisted(ctx, claims.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL(blacklistKeyPrefix + claims.JTI)
	assert.InDelta(t, (24 * time.Hour).Seconds(), ttl.Seconds(), 5)

	err = adapter.Blacklist(ctx, pair.Refresh)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgTokenBlacklisted, appErr.Message)
}

func TestJWTAdapter_Blacklist_RejectsAccessToken(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	pair, err := adapter.Issue(context.Background(), 7)
	require.NoError(t, err)

	err = adapter.Blacklist(context.Background(), pair.Access)
	assert.Error(t, err)
}
