package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/mocks"
)

func TestCacheWarmingService_WarmCache(t *testing.T) {
	cities := new(mocks.CityRepository)
	categories := new(mocks.CategoryRepository)
	cities.On("List", mock.Anything).Return([]*entities.City{{ID: 1}}, nil)
	categories.On("List", mock.Anything).Return([]*entities.Category{{ID: 1}}, nil)

	err := NewCacheWarmingService(cities, categories).WarmCache(context.Background())

	assert.NoError(t, err)
	cities.AssertExpectations(t)
	categories.AssertExpectations(t)
}

func TestCacheWarmingService_WarmCache_StopsOnError(t *testing.T) {
	cities := new(mocks.CityRepository)
	categories := new(mocks.CategoryRepository)
	cities.On("List", mock.Anything).Return(nil, errors.New("db down"))

	err := NewCacheWarmingService(cities, categories).WarmCache(context.Background())

	assert.EqualError(t, err, "db down")
	categories.AssertNotCalled(t, "List", mock.Anything)
}

func TestCacheWarmingService_StartPeriodicWarming_StopsWithContext(t *testing.T) {
	cities := new(mocks.CityRepository)
	categories := new(mocks.CategoryRepository)
	cities.On("List", mock.Anything).Return([]*entities.City{}, nil)
	categories.On("List", mock.Anything).Return([]*entities.Category{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	NewCacheWarmingService(cities, categories).StartPeriodicWarming(ctx, time.Hour)
	cancel()

	cities.AssertNumberOfCalls(t, "List", 1)
}
