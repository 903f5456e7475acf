package providers

import (
	"context"
	"time"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair is a freshly issued refresh token and its access token.
type TokenPair struct {
	Refresh string
	Access  string
}

// TokenClaims are the verified claims of a token.
type TokenClaims struct {
	TokenType string
	UserID    int64
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenProvider issues and verifies bearer tokens.
type TokenProvider interface {
	// Issue creates a refresh token and a matching access token for a user
	Issue(ctx context.Context, userID int64) (TokenPair, error)

	// ParseAccess verifies an access token
	ParseAccess(ctx context.Context, token string) (*TokenClaims, error)

	// Blacklist verifies a refresh token and revokes it until it expires
	Blacklist(ctx context.Context, refresh string) error
}
