package repositories

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

// ServiceRepository defines read access to bookable services
type ServiceRepository interface {
	// List returns one page of services with the given status, ordered by id,
	// and the total count
	List(ctx context.Context, filter ServiceFilter) ([]*entities.Service, int, error)

	// PriceRange returns the highest and lowest price over all services.
	// ok is false when there are no services.
	PriceRange(ctx context.Context) (max, min entities.Amount, ok bool, err error)

	// GetByID retrieves a service with its attachments and slots
	GetByID(ctx context.Context, id int64) (*entities.Service, error)

	// ListRelated returns up to limit other services of the same category
	ListRelated(ctx context.Context, categoryID *int64, excludeID int64, limit int) ([]*entities.Service, error)

	// ListAddressMappings returns the provider addresses each service is offered at
	ListAddressMappings(ctx context.Context, serviceIDs []int64) (map[int64][]entities.ServiceAddressMapping, error)

	// ListFAQs returns the questions of a service
	ListFAQs(ctx context.Context, serviceID int64) ([]*entities.ServiceFAQ, error)

	// ListAddons returns the add-ons of a service
	ListAddons(ctx context.Context, serviceID int64) ([]*entities.ServiceAddon, error)
}

// ServiceFilter defines filters for listing services
type ServiceFilter struct {
	Status int
	Limit  int
	Offset int
}

// ProviderRepository defines read access to providers
type ProviderRepository interface {
	// GetByID retrieves a provider by ID
	GetByID(ctx context.Context, id int64) (*entities.Provider, error)

	// ListTaxes returns the taxes a provider charges
	ListTaxes(ctx context.Context, providerID int64) ([]*entities.Tax, error)
}

// ReviewRepository defines read access to service reviews
type ReviewRepository interface {
	// ListByService returns the reviews of a service with their reviewer
	ListByService(ctx context.Context, serviceID int64) ([]*entities.ServiceReview, error)
}

// CouponRepository defines the interface for coupon operations
type CouponRepository interface {
	// Create inserts a coupon. A code already in use is a conflict.
	Create(ctx context.Context, coupon *entities.Coupon) error

	// ListByService returns the coupons of a service
	ListByService(ctx context.Context, serviceID int64) ([]*entities.Coupon, error)
}
