package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/broki/marketplace-api/pkg/validation"
)

const defaultCountry = "India"

// ErrInvalidCityRef is returned when decoding a city that is neither an id
// nor an object.
var ErrInvalidCityRef = errors.New("City must be an id or an object with id or name.")

// CityRef references a city by id or by name. It decodes from a bare id,
// {"id": n} or {"name": "..."}.
type CityRef struct {
	ID   *int64
	Name string
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		c.ID = &id
		return nil
	}

	var obj struct {
		ID   *int64 `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return ErrInvalidCityRef
	}
	c.ID = obj.ID
	c.Name = strings.TrimSpace(obj.Name)
	return nil
}

// PropertyInput is one item of a bulk property upload.
type PropertyInput struct {
	Name                      string     `json:"name" validate:"required,max=255"`
	Category                  *int64     `json:"category" validate:"required"`
	Price                     *int64     `json:"price" validate:"required"`
	PriceFormat               string     `json:"price_format" validate:"required,max=50"`
	Address                   string     `json:"address" validate:"required"`
	Description               *string    `json:"description"`
	Status                    *bool      `json:"status"`
	PremiumProperty           bool       `json:"premium_property"`
	PriceDuration             *string    `json:"price_duration" validate:"omitempty,max=50"`
	PropertyImage             string     `json:"property_image" validate:"required,url"`
	PropertyFor               *int       `json:"property_for" validate:"omitempty,oneof=0 1"`
	AdvertisementProperty     *bool      `json:"advertisement_property"`
	AdvertisementPropertyDate *time.Time `json:"advertisement_property_date"`
	City                      *CityRef   `json:"city" validate:"required"`
	Sqft                      *int       `json:"sqft" validate:"required"`
}

// IndexedPropertyInput is an upload item with its position in the request.
type IndexedPropertyInput struct {
	Index int
	Input PropertyInput
}

// UploadFailure describes why one upload item was rejected.
type UploadFailure struct {
	Index  int                   `json:"index"`
	Errors apperrors.FieldErrors `json:"errors"`
}

// PropertyService handles property listing and upload logic
type PropertyService struct {
	properties repositories.PropertyRepository
	cities     repositories.CityRepository
	categories repositories.CategoryRepository
	index      providers.PropertySearchIndex
	validator  *validation.Validator
}

// NewPropertyService creates a new property service. index may be nil,
// in which case search runs in the database.
func NewPropertyService(
	properties repositories.PropertyRepository,
	cities repositories.CityRepository,
	categories repositories.CategoryRepository,
	index providers.PropertySearchIndex,
	validator *validation.Validator,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		cities:     cities,
		categories: categories,
		index:      index,
		validator:  validator,
	}
}

// List returns one page of active properties
func (s *PropertyService) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, int, error) {
	filter.OnlyActive = true
	if len(filter.OrderBy) == 0 {
		filter.OrderBy = []repositories.PropertyOrder{{Field: "premium_property", Desc: true}}
	}

	if filter.Search != "" && s.index != nil {
		ids, err := s.index.Search(ctx, filter.Search)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Property index search failed, falling back to database")
		} else {
			filter.IDs = ids
			filter.Search = ""
		}
	}

	return s.properties.List(ctx, filter)
}

// Get returns a property with its gallery, amenities and customer
func (s *PropertyService) Get(ctx context.Context, id int64) (*entities.Property, error) {
	return s.properties.GetByID(ctx, id)
}

// Nearby returns one page of properties in the same city
func (s *PropertyService) Nearby(ctx context.Context, filter repositories.NearbyFilter) ([]*entities.Property, int, error) {
	return s.properties.ListNearby(ctx, filter)
}

// BulkUpload validates and stores each item on its own. Items that fail
// validation are reported and do not stop the others.
func (s *PropertyService) BulkUpload(ctx context.Context, items []IndexedPropertyInput) ([]*entities.Property, []UploadFailure, error) {
	saved := []*entities.Property{}
	failures := []UploadFailure{}

	for _, item := range items {
		property, fields, err := s.buildProperty(ctx, item.Input)
		if err != nil {
			return nil, nil, err
		}
		if len(fields) > 0 {
			failures = append(failures, UploadFailure{Index: item.Index, Errors: fields})
			continue
		}

		if err := s.properties.Create(ctx, property); err != nil {
			if appErr, ok := apperrors.As(err); ok && appErr.Type == apperrors.ErrorTypeValidation {
				fields := apperrors.FieldErrors{}
				fields.Add("non_field_errors", appErr.Message)
				failures = append(failures, UploadFailure{Index: item.Index, Errors: fields})
				continue
			}
			return nil, nil, err
		}

		if s.index != nil {
			if err := s.index.Index(ctx, property); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Int64("property_id", property.ID).Msg("Failed to index property")
			}
		}

		saved = append(saved, property)
	}

	return saved, failures, nil
}

// buildProperty validates input and resolves its category and city. It
// returns field errors for invalid input and an error only on storage
// failures.
func (s *PropertyService) buildProperty(ctx context.Context, in PropertyInput) (*entities.Property, apperrors.FieldErrors, error) {
	fields := s.validator.Fields(in)

	var category *entities.Category
	if in.Category != nil {
		found, err := s.categories.GetByID(ctx, *in.Category)
		switch {
		case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
			fields.Add("category", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *in.Category))
		case err != nil:
			return nil, nil, err
		default:
			category = found
		}
	}

	var city *entities.City
	if in.City != nil {
		found, err := s.resolveCity(ctx, *in.City)
		switch {
		case apperrors.IsType(err, apperrors.ErrorTypeNotFound), apperrors.IsType(err, apperrors.ErrorTypeValidation):
			appErr, _ := apperrors.As(err)
			fields.Add("city", appErr.Message)
		case err != nil:
			return nil, nil, err
		default:
			city = found
		}
	}

	if len(fields) > 0 {
		return nil, fields, nil
	}

	property := &entities.Property{
		Name:                      in.Name,
		CategoryID:                category.ID,
		CategoryName:              category.Name,
		Price:                     *in.Price,
		PriceFormat:               in.PriceFormat,
		Address:                   in.Address,
		Description:               in.Description,
		Status:                    true,
		PremiumProperty:           in.PremiumProperty,
		PriceDuration:             in.PriceDuration,
		PropertyImage:             in.PropertyImage,
		PropertyFor:               entities.PropertyForSale,
		AdvertisementProperty:     in.AdvertisementProperty,
		AdvertisementPropertyDate: in.AdvertisementPropertyDate,
		CityID:                    city.ID,
		CityName:                  city.Name,
		Sqft:                      *in.Sqft,
		Country:                   defaultCountry,
	}
	if in.Status != nil {
		property.Status = *in.Status
	}
	if in.PropertyFor != nil {
		property.PropertyFor = *in.PropertyFor
	}

	return property, nil, nil
}

func (s *PropertyService) resolveCity(ctx context.Context, ref CityRef) (*entities.City, error) {
	switch {
	case ref.ID != nil:
		city, err := s.cities.GetByID(ctx, *ref.ID)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *ref.ID))
		}
		return city, err
	case ref.Name != "":
		city, err := s.cities.GetByName(ctx, ref.Name)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("City %q does not exist.", ref.Name))
		}
		return city, err
	default:
		return nil, apperrors.NewValidationError("City id or name is required.")
	}
}
