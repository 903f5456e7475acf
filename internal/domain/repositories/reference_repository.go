package repositories

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

// CityRepository defines read access to cities
type CityRepository interface {
	// List returns all cities ordered by id
	List(ctx context.Context) ([]*entities.City, error)

	// GetByID retrieves a city by ID
	GetByID(ctx context.Context, id int64) (*entities.City, error)

	// GetByName retrieves a city by name, ignoring case
	GetByName(ctx context.Context, name string) (*entities.City, error)
}

// CategoryRepository defines read access to property categories
type CategoryRepository interface {
	// List returns all categories ordered by id
	List(ctx context.Context) ([]*entities.Category, error)

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id int64) (*entities.Category, error)
}

// TagRepository defines read access to blog tags
type TagRepository interface {
	// List returns one page of tags ordered by id and the total count
	List(ctx context.Context, limit, offset int) ([]*entities.Tag, int, error)
}
