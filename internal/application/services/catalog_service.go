package services

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
)

// CatalogService serves reference lists
type CatalogService struct {
	cities     repositories.CityRepository
	categories repositories.CategoryRepository
	tags       repositories.TagRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cities repositories.CityRepository, categories repositories.CategoryRepository, tags repositories.TagRepository) *CatalogService {
	return &CatalogService{cities: cities, categories: categories, tags: tags}
}

func (s *CatalogService) Cities(ctx context.Context) ([]*entities.City, error) {
	return s.cities.List(ctx)
}

func (s *CatalogService) Categories(ctx context.Context) ([]*entities.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) Tags(ctx context.Context, limit, offset int) ([]*entities.Tag, int, error) {
	return s.tags.List(ctx, limit, offset)
}
