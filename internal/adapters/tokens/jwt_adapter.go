package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/broki/marketplace-api/internal/domain/providers"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const blacklistKeyPrefix = "token_blacklist:"

// Messages reported for rejected tokens.
const (
	MsgTokenInvalid     = "Token is invalid or expired"
	MsgTokenWrongType   = "Token has wrong type"
	MsgTokenBlacklisted = "Token is blacklisted"
)

type tokenClaims struct {
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAdapter issues HS256 signed access and refresh tokens and keeps the
// refresh token blacklist in the cache.
type JWTAdapter struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	cache      providers.CacheProvider
	now        func() time.Time
}

var _ providers.TokenProvider = (*JWTAdapter)(nil)

// NewJWTAdapter creates a token provider.
func NewJWTAdapter(secret string, accessTTL, refreshTTL time.Duration, cache providers.CacheProvider) *JWTAdapter {
	return &JWTAdapter{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		cache:      cache,
		now:        time.Now,
	}
}

// Issue creates a refresh token and a matching access token for a user.
func (a *JWTAdapter) Issue(ctx context.Context, userID int64) (providers.TokenPair, error) {
	now := a.now()

	refresh, err := a.sign(providers.TokenTypeRefresh, userID, now, a.refreshTTL)
	if err != nil {
		return providers.TokenPair{}, err
	}
	access, err := a.sign(providers.TokenTypeAccess, userID, now, a.accessTTL)
	if err != nil {
		return providers.TokenPair{}, err
	}

	return providers.TokenPair{Refresh: refresh, Access: access}, nil
}

func (a *JWTAdapter) sign(tokenType string, userID int64, now time.Time, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		TokenType: tokenType,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// ParseAccess verifies an access token.
func (a *JWTAdapter) ParseAccess(ctx context.Context, token string) (*providers.TokenClaims, error) {
	return a.parse(token, providers.TokenTypeAccess)
}

// Blacklist verifies a refresh token and revokes it for the rest of its
// lifetime. Revoking an already revoked token is an error.
func (a *JWTAdapter) Blacklist(ctx context.Context, refresh string) error {
	claims, err := a.parse(refresh, providers.TokenTypeRefresh)
	if err != nil {
		return err
	}

	key := blacklistKeyPrefix + claims.JTI
	revoked, err := a.cache.Exists(ctx, key)
	if err != nil {
		return apperrors.NewInternalError("failed to check token blacklist", err)
	}
	if revoked {
		return apperrors.NewValidationError(MsgTokenBlacklisted)
	}

	ttl := int(claims.ExpiresAt.Sub(a.now()).Seconds())
	if ttl < 1 {
		ttl = 1
	}
	if err := a.cache.Set(ctx, key, []byte(fmt.Sprint(claims.UserID)), ttl); err != nil {
		return apperrors.NewInternalError("failed to blacklist token", err)
	}
	return nil
}

// IsBlacklisted reports whether the refresh token with jti was revoked.
func (a *JWTAdapter) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	return a.cache.Exists(ctx, blacklistKeyPrefix+jti)
}

func (a *JWTAdapter) parse(token, wantType string) (*providers.TokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, &apperrors.AppError{Type: apperrors.ErrorTypeUnauthorized, Message: MsgTokenInvalid, Err: err}
	}
	if claims.TokenType != wantType {
		return nil, apperrors.NewUnauthorizedError(MsgTokenWrongType)
	}

	out := &providers.TokenClaims{
		TokenType: claims.TokenType,
		UserID:    claims.UserID,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
