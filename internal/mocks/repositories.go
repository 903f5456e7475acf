// Package mocks provides testify mocks of the repository and provider
// interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
)

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type LeadRepository struct{ mock.Mock }

func (m *LeadRepository) CreateOutletForm(ctx context.Context, form *entities.OutletForm) error {
	return m.Called(ctx, form).Error(0)
}

func (m *LeadRepository) CreateContactForm(ctx context.Context, form *entities.ContactForm) error {
	return m.Called(ctx, form).Error(0)
}

type CityRepository struct{ mock.Mock }

func (m *CityRepository) List(ctx context.Context) ([]*entities.City, error) {
	args := m.Called(ctx)
	cities, _ := args.Get(0).([]*entities.City)
	return cities, args.Error(1)
}

func (m *CityRepository) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	args := m.Called(ctx, id)
	city, _ := args.Get(0).(*entities.City)
	return city, args.Error(1)
}

func (m *CityRepository) GetByName(ctx context.Context, name string) (*entities.City, error) {
	args := m.Called(ctx, name)
	city, _ := args.Get(0).(*entities.City)
	return city, args.Error(1)
}

type CategoryRepository struct{ mock.Mock }

func (m *CategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*entities.Category)
	return categories, args.Error(1)
}

func (m *CategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entities.Category)
	return category, args.Error(1)
}

type TagRepository struct{ mock.Mock }

func (m *TagRepository) List(ctx context.Context, limit, offset int) ([]*entities.Tag, int, error) {
	args := m.Called(ctx, limit, offset)
	tags, _ := args.Get(0).([]*entities.Tag)
	return tags, args.Int(1), args.Error(2)
}

type PropertyRepository struct{ mock.Mock }

func (m *PropertyRepository) Create(ctx context.Context, property *entities.Property) error {
	return m.Called(ctx, property).Error(0)
}

func (m *PropertyRepository) GetByID(ctx context.Context, id int64) (*entities.Property, error) {
	args := m.Called(ctx, id)
	property, _ := args.Get(0).(*entities.Property)
	return property, args.Error(1)
}

func (m *PropertyRepository) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, int, error) {
	args := m.Called(ctx, filter)
	properties, _ := args.Get(0).([]*entities.Property)
	return properties, args.Int(1), args.Error(2)
}

func (m *PropertyRepository) ListNearby(ctx context.Context, filter repositories.NearbyFilter) ([]*entities.Property, int, error) {
	args := m.Called(ctx, filter)
	properties, _ := args.Get(0).([]*entities.Property)
	return properties, args.Int(1), args.Error(2)
}

type ServiceRepository struct{ mock.Mock }

func (m *ServiceRepository) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.Service, int, error) {
	args := m.Called(ctx, filter)
	services, _ := args.Get(0).([]*entities.Service)
	return services, args.Int(1), args.Error(2)
}

func (m *ServiceRepository) PriceRange(ctx context.Context) (entities.Amount, entities.Amount, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.Amount), args.Get(1).(entities.Amount), args.Bool(2), args.Error(3)
}

func (m *ServiceRepository) GetByID(ctx context.Context, id int64) (*entities.Service, error) {
	args := m.Called(ctx, id)
	service, _ := args.Get(0).(*entities.Service)
	return service, args.Error(1)
}

func (m *ServiceRepository) ListRelated(ctx context.Context, categoryID *int64, excludeID int64, limit int) ([]*entities.Service, error) {
	args := m.Called(ctx, categoryID, excludeID, limit)
	services, _ := args.Get(0).([]*entities.Service)
	return services, args.Error(1)
}

func (m *ServiceRepository) ListAddressMappings(ctx context.Context, serviceIDs []int64) (map[int64][]entities.ServiceAddressMapping, error) {
	args := m.Called(ctx, serviceIDs)
	mappings, _ := args.Get(0).(map[int64][]entities.ServiceAddressMapping)
	return mappings, args.Error(1)
}

func (m *ServiceRepository) ListFAQs(ctx context.Context, serviceID int64) ([]*entities.ServiceFAQ, error) {
	args := m.Called(ctx, serviceID)
	faqs, _ := args.Get(0).([]*entities.ServiceFAQ)
	return faqs, args.Error(1)
}

func (m *ServiceRepository) ListAddons(ctx context.Context, serviceID int64) ([]*entities.ServiceAddon, error) {
	args := m.Called(ctx, serviceID)
	addons, _ := args.Get(0).([]*entities.ServiceAddon)
	return addons, args.Error(1)
}

type ProviderRepository struct{ mock.Mock }

func (m *ProviderRepository) GetByID(ctx context.Context, id int64) (*entities.Provider, error) {
	args := m.Called(ctx, id)
	provider, _ := args.Get(0).(*entities.Provider)
	return provider, args.Error(1)
}

func (m *ProviderRepository) ListTaxes(ctx context.Context, providerID int64) ([]*entities.Tax, error) {
	args := m.Called(ctx, providerID)
	taxes, _ := args.Get(0).([]*entities.Tax)
	return taxes, args.Error(1)
}

type ReviewRepository struct{ mock.Mock }

func (m *ReviewRepository) ListByService(ctx context.Context, serviceID int64) ([]*entities.ServiceReview, error) {
	args := m.Called(ctx, serviceID)
	reviews, _ := args.Get(0).([]*entities.ServiceReview)
	return reviews, args.Error(1)
}

type CouponRepository struct{ mock.Mock }

func (m *CouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *CouponRepository) ListByService(ctx context.Context, serviceID int64) ([]*entities.Coupon, error) {
	args := m.Called(ctx, serviceID)
	coupons, _ := args.Get(0).([]*entities.Coupon)
	return coupons, args.Error(1)
}

type BlogRepository struct{ mock.Mock }

func (m *BlogRepository) ListPublished(ctx context.Context, limit, offset int) ([]*entities.Blog, int, error) {
	args := m.Called(ctx, limit, offset)
	blogs, _ := args.Get(0).([]*entities.Blog)
	return blogs, args.Int(1), args.Error(2)
}

func (m *BlogRepository) GetByID(ctx context.Context, id int64) (*entities.Blog, error) {
	args := m.Called(ctx, id)
	blog, _ := args.Get(0).(*entities.Blog)
	return blog, args.Error(1)
}

var (
	_ repositories.UserRepository     = (*UserRepository)(nil)
	_ repositories.LeadRepository     = (*LeadRepository)(nil)
	_ repositories.CityRepository     = (*CityRepository)(nil)
	_ repositories.CategoryRepository = (*CategoryRepository)(nil)
	_ repositories.TagRepository      = (*TagRepository)(nil)
	_ repositories.PropertyRepository = (*PropertyRepository)(nil)
	_ repositories.ServiceRepository  = (*ServiceRepository)(nil)
	_ repositories.ProviderRepository = (*ProviderRepository)(nil)
	_ repositories.ReviewRepository   = (*ReviewRepository)(nil)
	_ repositories.CouponRepository   = (*CouponRepository)(nil)
	_ repositories.BlogRepository     = (*BlogRepository)(nil)
)
