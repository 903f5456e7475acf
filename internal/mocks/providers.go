package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
)

type Mailer struct{ mock.Mock }

func (m *Mailer) Send(ctx context.Context, to []string, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type PropertySearchIndex struct{ mock.Mock }

func (m *PropertySearchIndex) Index(ctx context.Context, property *entities.Property) error {
	return m.Called(ctx, property).Error(0)
}

func (m *PropertySearchIndex) Search(ctx context.Context, query string) ([]int64, error) {
	args := m.Called(ctx, query)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

var (
	_ providers.Mailer              = (*Mailer)(nil)
	_ providers.PropertySearchIndex = (*PropertySearchIndex)(nil)
)

type TokenProvider struct{ mock.Mock }

func (m *TokenProvider) Issue(ctx context.Context, userID int64) (providers.TokenPair, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(providers.TokenPair), args.Error(1)
}

func (m *TokenProvider) ParseAccess(ctx context.Context, token string) (*providers.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*providers.TokenClaims)
	return claims, args.Error(1)
}

func (m *TokenProvider) Blacklist(ctx context.Context, refresh string) error {
	return m.Called(ctx, refresh).Error(0)
}

var _ providers.TokenProvider = (*TokenProvider)(nil)
