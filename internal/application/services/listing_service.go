package services

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

const relatedServiceLimit = 4

// ServiceListing is one page of services with the overall price range.
type ServiceListing struct {
	Services []*entities.Service
	Total    int
	Max      entities.Amount
	Min      entities.Amount
}

// ServiceDetail is a service with everything its detail page shows.
type ServiceDetail struct {
	Service         *entities.Service
	Provider        *entities.Provider
	AddressMappings []entities.ServiceAddressMapping
	Reviews         []*entities.ServiceReview
	Coupons         []*entities.Coupon
	Taxes           []*entities.Tax
	Related         []*entities.Service
	FAQs            []*entities.ServiceFAQ
	Addons          []*entities.ServiceAddon
}

// ListingService handles bookable service listing logic
type ListingService struct {
	services  repositories.ServiceRepository
	providers repositories.ProviderRepository
	reviews   repositories.ReviewRepository
	coupons   repositories.CouponRepository
}

// NewListingService creates a new listing service
func NewListingService(
	services repositories.ServiceRepository,
	providers repositories.ProviderRepository,
	reviews repositories.ReviewRepository,
	coupons repositories.CouponRepository,
) *ListingService {
	return &ListingService{
		services:  services,
		providers: providers,
		reviews:   reviews,
		coupons:   coupons,
	}
}

// List returns one page of services with the given status. Max and Min
// span every service regardless of status and are zero when none exist.
func (s *ListingService) List(ctx context.Context, status, limit, offset int) (*ServiceListing, error) {
	services, total, err := s.services.List(ctx, repositories.ServiceFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	max, min, ok, err := s.services.PriceRange(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		max, min = entities.Amount{}, entities.Amount{}
	}

	return &ServiceListing{Services: services, Total: total, Max: max, Min: min}, nil
}

// Detail loads a service with its provider, reviews, coupons, taxes,
// related services, questions and add-ons
func (s *ListingService) Detail(ctx context.Context, id int64) (*ServiceDetail, error) {
	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ServiceDetail{Service: service, Taxes: []*entities.Tax{}}

	if service.ProviderID != nil {
		provider, err := s.providers.GetByID(ctx, *service.ProviderID)
		switch {
		case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		case err != nil:
			return nil, err
		default:
			detail.Provider = provider
			if detail.Taxes, err = s.providers.ListTaxes(ctx, provider.ID); err != nil {
				return nil, err
			}
		}
	}

	if detail.Related, err = s.services.ListRelated(ctx, service.CategoryID, service.ID, relatedServiceLimit); err != nil {
		return nil, err
	}

	ids := []int64{service.ID}
	for _, r := range detail.Related {
		ids = append(ids, r.ID)
	}
	mappings, err := s.services.ListAddressMappings(ctx, ids)
	if err != nil {
		return nil, err
	}
	detail.AddressMappings = orEmpty(mappings[service.ID])
	for _, r := range detail.Related {
		r.AddressMappings = orEmpty(mappings[r.ID])
	}
	service.AddressMappings = detail.AddressMappings

	if detail.Reviews, err = s.reviews.ListByService(ctx, id); err != nil {
		return nil, err
	}
	if detail.Coupons, err = s.coupons.ListByService(ctx, id); err != nil {
		return nil, err
	}
	if detail.FAQs, err = s.services.ListFAQs(ctx, id); err != nil {
		return nil, err
	}
	if detail.Addons, err = s.services.ListAddons(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func orEmpty(m []entities.ServiceAddressMapping) []entities.ServiceAddressMapping {
	if m == nil {
		return []entities.ServiceAddressMapping{}
	}
	return m
}
