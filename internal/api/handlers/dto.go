package handlers

import (
	"time"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

type cityDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// propertyListItem is a property as it appears in list responses.
type propertyListItem struct {
	ID                        int64      `json:"id"`
	Name                      string     `json:"name"`
	Category                  int64      `json:"category"`
	Price                     int64      `json:"price"`
	PriceFormat               string     `json:"price_format"`
	Address                   string     `json:"address"`
	Status                    bool       `json:"status"`
	PremiumProperty           bool       `json:"premium_property"`
	PriceDuration             *string    `json:"price_duration"`
	PropertyImage             string     `json:"property_image"`
	PropertyFor               int        `json:"property_for"`
	AdvertisementProperty     *bool      `json:"advertisement_property"`
	AdvertisementPropertyDate *time.Time `json:"advertisement_property_date"`
	City                      cityDTO    `json:"city"`
	Sqft                      int        `json:"sqft"`
}

func newPropertyListItem(p *entities.Property) propertyListItem {
	return propertyListItem{
		ID:                        p.ID,
		Name:                      p.Name,
		Category:                  p.CategoryID,
		Price:                     p.Price,
		PriceFormat:               p.PriceFormat,
		Address:                   p.Address,
		Status:                    p.Status,
		PremiumProperty:           p.PremiumProperty,
		PriceDuration:             p.PriceDuration,
		PropertyImage:             p.PropertyImage,
		PropertyFor:               p.PropertyFor,
		AdvertisementProperty:     p.AdvertisementProperty,
		AdvertisementPropertyDate: p.AdvertisementPropertyDate,
		City:                      cityDTO{ID: p.CityID, Name: p.CityName},
		Sqft:                      p.Sqft,
	}
}

func newPropertyListItems(properties []*entities.Property) []propertyListItem {
	items := make([]propertyListItem, 0, len(properties))
	for _, p := range properties {
		items = append(items, newPropertyListItem(p))
	}
	return items
}

// propertyDetail is the full property record with category and city
// rendered by name.
type propertyDetail struct {
	ID                        int64                      `json:"id"`
	Gallery                   []entities.PropertyGallery `json:"gallery"`
	Amenities                 []entities.PropertyAmenity `json:"amenities"`
	Customer                  *entities.Customer         `json:"customer"`
	Category                  string                     `json:"category"`
	City                      string                     `json:"city"`
	Name                      string                     `json:"name"`
	Price                     int64                      `json:"price"`
	PriceFormat               string                     `json:"price_format"`
	Address                   string                     `json:"address"`
	Description               *string                    `json:"description"`
	Status                    bool                       `json:"status"`
	PremiumProperty           bool                       `json:"premium_property"`
	PriceDuration             *string                    `json:"price_duration"`
	PropertyImage             string                     `json:"property_image"`
	PropertyFor               int                        `json:"property_for"`
	AdvertisementProperty     *bool                      `json:"advertisement_property"`
	AdvertisementPropertyDate *time.Time                 `json:"advertisement_property_date"`
	Sqft                      int                        `json:"sqft"`
	BrandName                 *string                    `json:"brand_name"`
	CurrentRental             *int64                     `json:"current_rental"`
	MonthlySale               *int64                     `json:"monthly_sale"`
	AgeOfProperty             *int                       `json:"age_of_property"`
	Latitude                  *string                    `json:"latitude"`
	Longitude                 *string                    `json:"longitude"`
	Country                   string                     `json:"country"`
	State                     *string                    `json:"state"`
}

func newPropertyDetail(p *entities.Property) propertyDetail {
	d := propertyDetail{
		ID:                        p.ID,
		Gallery:                   p.Gallery,
		Amenities:                 p.Amenities,
		Customer:                  p.Customer,
		Category:                  p.CategoryName,
		City:                      p.CityName,
		Name:                      p.Name,
		Price:                     p.Price,
		PriceFormat:               p.PriceFormat,
		Address:                   p.Address,
		Description:               p.Description,
		Status:                    p.Status,
		PremiumProperty:           p.PremiumProperty,
		PriceDuration:             p.PriceDuration,
		PropertyImage:             p.PropertyImage,
		PropertyFor:               p.PropertyFor,
		AdvertisementProperty:     p.AdvertisementProperty,
		AdvertisementPropertyDate: p.AdvertisementPropertyDate,
		Sqft:                      p.Sqft,
		BrandName:                 p.BrandName,
		CurrentRental:             p.CurrentRental,
		MonthlySale:               p.MonthlySale,
		AgeOfProperty:             p.AgeOfProperty,
		Latitude:                  p.Latitude,
		Longitude:                 p.Longitude,
		Country:                   p.Country,
		State:                     p.State,
	}
	if d.Gallery == nil {
		d.Gallery = []entities.PropertyGallery{}
	}
	if d.Amenities == nil {
		d.Amenities = []entities.PropertyAmenity{}
	}
	return d
}

// serviceItem is a service as it appears in list responses.
type serviceItem struct {
	*entities.Service
	PriceFormat     string                `json:"price_format"`
	Attchments      []string              `json:"attchments"`
	AttchmentsArray []entities.Attachment `json:"attchments_array"`
	Slots           []entities.Slot       `json:"slots"`
}

func newServiceItem(s *entities.Service) serviceItem {
	item := serviceItem{
		Service:         s,
		PriceFormat:     "₹" + s.Price.StringFixed(2),
		Attchments:      make([]string, 0, len(s.Attachments)),
		AttchmentsArray: s.Attachments,
		Slots:           s.Slots,
	}
	for _, a := range s.Attachments {
		item.Attchments = append(item.Attchments, a.URL)
	}
	if item.AttchmentsArray == nil {
		item.AttchmentsArray = []entities.Attachment{}
	}
	if item.Slots == nil {
		item.Slots = []entities.Slot{}
	}
	return item
}

func newServiceItems(services []*entities.Service) []serviceItem {
	items := make([]serviceItem, 0, len(services))
	for _, s := range services {
		items = append(items, newServiceItem(s))
	}
	return items
}

// relatedServiceItem is a list item with its address mappings.
type relatedServiceItem struct {
	serviceItem
	ServiceAddressMapping []entities.ServiceAddressMapping `json:"service_address_mapping"`
}

// serviceDetailItem is a list item with its provider and address mappings.
type serviceDetailItem struct {
	serviceItem
	Provider              *entities.Provider               `json:"provider"`
	ServiceAddressMapping []entities.ServiceAddressMapping `json:"service_address_mapping"`
}

func newRelatedServiceItems(services []*entities.Service) []relatedServiceItem {
	items := make([]relatedServiceItem, 0, len(services))
	for _, s := range services {
		items = append(items, relatedServiceItem{
			serviceItem:           newServiceItem(s),
			ServiceAddressMapping: emptyIfNil(s.AddressMappings),
		})
	}
	return items
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func newBlogItems(blogs []*entities.Blog) []*entities.Blog {
	for _, b := range blogs {
		b.Tags = emptyIfNil(b.Tags)
	}
	return emptyIfNil(blogs)
}
