package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/internal/domain/repositories"
)

// Cache TTLs (in seconds)
const (
	referenceListTTL = 600
	referenceByIDTTL = 600
)

func cityCacheKey(id int64) string {
	return fmt.Sprintf("city:%d", id)
}

func categoryCacheKey(id int64) string {
	return fmt.Sprintf("category:%d", id)
}

const (
	citiesListCacheKey     = "cities:list"
	categoriesListCacheKey = "categories:list"
)

// CachedCityAdapter wraps a CityRepository with caching. Name lookups
// are not cached.
type CachedCityAdapter struct {
	adapter repositories.CityRepository
	cache   providers.CacheProvider
}

// NewCachedCityAdapter creates a new cached city adapter
func NewCachedCityAdapter(adapter repositories.CityRepository, cache providers.CacheProvider) repositories.CityRepository {
	return &CachedCityAdapter{adapter: adapter, cache: cache}
}

// List returns all cities, from cache when possible
func (a *CachedCityAdapter) List(ctx context.Context) ([]*entities.City, error) {
	var cities []*entities.City
	if cacheLoad(ctx, a.cache, citiesListCacheKey, &cities) {
		return cities, nil
	}

	cities, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, a.cache, citiesListCacheKey, cities, referenceListTTL)
	return cities, nil
}

// GetByID retrieves a city by ID, from cache when possible
func (a *CachedCityAdapter) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	key := cityCacheKey(id)

	var city entities.City
	if cacheLoad(ctx, a.cache, key, &city) {
		return &city, nil
	}

	found, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, a.cache, key, found, referenceByIDTTL)
	return found, nil
}

// GetByName retrieves a city by name
func (a *CachedCityAdapter) GetByName(ctx context.Context, name string) (*entities.City, error) {
	return a.adapter.GetByName(ctx, name)
}

// CachedCategoryAdapter wraps a CategoryRepository with caching
type CachedCategoryAdapter struct {
	adapter repositories.CategoryRepository
	cache   providers.CacheProvider
}

// NewCachedCategoryAdapter creates a new cached category adapter
func NewCachedCategoryAdapter(adapter repositories.CategoryRepository, cache providers.CacheProvider) repositories.CategoryRepository {
	return &CachedCategoryAdapter{adapter: adapter, cache: cache}
}

// List returns all categories, from cache when possible
func (a *CachedCategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if cacheLoad(ctx, a.cache, categoriesListCacheKey, &categories) {
		return categories, nil
	}

	categories, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, a.cache, categoriesListCacheKey, categories, referenceListTTL)
	return categories, nil
}

// GetByID retrieves a category by ID, from cache when possible
func (a *CachedCategoryAdapter) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	key := categoryCacheKey(id)

	var category entities.Category
	if cacheLoad(ctx, a.cache, key, &category) {
		return &category, nil
	}

	found, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheStore(ctx, a.cache, key, found, referenceByIDTTL)
	return found, nil
}

func cacheLoad(ctx context.Context, cache providers.CacheProvider, key string, dest interface{}) bool {
	cached, err := cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached value")
		return false
	}
	return true
}

func cacheStore(ctx context.Context, cache providers.CacheProvider, key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache value")
	}
}
