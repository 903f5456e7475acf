package repositories

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	// Create inserts a property and sets its ID
	Create(ctx context.Context, property *entities.Property) error

	// GetByID retrieves a property with its gallery, amenities and customer
	GetByID(ctx context.Context, id int64) (*entities.Property, error)

	// List returns one page of properties matching filter and the total count
	List(ctx context.Context, filter PropertyFilter) ([]*entities.Property, int, error)

	// ListNearby returns one page of properties in a city and the total count
	ListNearby(ctx context.Context, filter NearbyFilter) ([]*entities.Property, int, error)
}

// PropertyOrder is one ordering term of a property listing
type PropertyOrder struct {
	Field string // price, sqft or premium_property
	Desc  bool
}

// PropertyFilter defines filters for listing active properties
type PropertyFilter struct {
	CityID      *int64
	CategoryID  *int64
	PriceMin    *int64
	PriceMax    *int64
	SqftMin     *int64
	SqftMax     *int64
	PropertyFor *int64

	// Search matches name, address and city name. IDs, when non-nil,
	// restricts the result to those properties instead.
	Search string
	IDs    []int64

	// OnlyActive restricts the result to properties with status set
	OnlyActive bool

	OrderBy []PropertyOrder
	Limit   int
	Offset  int
}

// NearbyFilter defines filters for properties in the same city
type NearbyFilter struct {
	CityName  string
	ExcludeID *int64
	Limit     int
	Offset    int
}
