package entities

import (
	"time"
)

// Property listing purposes.
const (
	PropertyForRent = 0
	PropertyForSale = 1
)

// Category classifies properties (retail, office, warehouse...).
type Category struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Image *string `json:"image" db:"image"`
}

// City is a city that properties and providers belong to.
type City struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Customer is the owner or agent attached to a property.
type Customer struct {
	ID            int64  `json:"id" db:"id"`
	FirstName     string `json:"first_name" db:"first_name"`
	LastName      string `json:"last_name" db:"last_name"`
	Email         string `json:"email" db:"email"`
	ContactNumber string `json:"contact_number" db:"contact_number"`
	ProfileImage  string `json:"profile_image" db:"profile_image"`
	DisplayName   string `json:"display_name" db:"display_name"`
}

// Property is a commercial listing.
type Property struct {
	ID                        int64      `json:"id" db:"id"`
	Name                      string     `json:"name" db:"name"`
	CategoryID                int64      `json:"category_id" db:"category_id"`
	Price                     int64      `json:"price" db:"price"`
	PriceFormat               string     `json:"price_format" db:"price_format"`
	Address                   string     `json:"address" db:"address"`
	Description               *string    `json:"description" db:"description"`
	Status                    bool       `json:"status" db:"status"`
	PremiumProperty           bool       `json:"premium_property" db:"premium_property"`
	PriceDuration             *string    `json:"price_duration" db:"price_duration"`
	PropertyImage             string     `json:"property_image" db:"property_image"`
	PropertyFor               int        `json:"property_for" db:"property_for"`
	AdvertisementProperty     *bool      `json:"advertisement_property" db:"advertisement_property"`
	AdvertisementPropertyDate *time.Time `json:"advertisement_property_date" db:"advertisement_property_date"`
	CityID                    int64      `json:"city_id" db:"city_id"`
	Sqft                      int        `json:"sqft" db:"sqft"`
	BrandName                 *string    `json:"brand_name" db:"brand_name"`
	CurrentRental             *int64     `json:"current_rental" db:"current_rental"`
	MonthlySale               *int64     `json:"monthly_sale" db:"monthly_sale"`
	AgeOfProperty             *int       `json:"age_of_property" db:"age_of_property"`
	Latitude                  *string    `json:"latitude" db:"latitude"`
	Longitude                 *string    `json:"longitude" db:"longitude"`
	Country                   string     `json:"country" db:"country"`
	State                     *string    `json:"state" db:"state"`
	CustomerID                *int64     `json:"customer_id" db:"customer_id"`

	// Joined columns.
	CityName     string `json:"city_name" db:"city_name"`
	CategoryName string `json:"category_name" db:"category_name"`

	// Loaded for the detail view only.
	Gallery   []PropertyGallery `json:"gallery,omitempty" db:"-"`
	Amenities []PropertyAmenity `json:"amenities,omitempty" db:"-"`
	Customer  *Customer         `json:"customer,omitempty" db:"-"`
}

// PropertyGallery is an extra image of a property.
type PropertyGallery struct {
	ID         int64  `json:"id" db:"id"`
	PropertyID int64  `json:"-" db:"property_id"`
	ImageURL   string `json:"image_url" db:"image_url"`
}

// PropertyAmenity is a named feature of a property. Value holds arbitrary
// JSON, typically a list of selected options.
type PropertyAmenity struct {
	ID           int64   `json:"id" db:"id"`
	PropertyID   int64   `json:"-" db:"property_id"`
	Name         string  `json:"name" db:"name"`
	Type         string  `json:"type" db:"type"`
	Value        JSON    `json:"value" db:"value"`
	AmenityImage *string `json:"amenity_image" db:"amenity_image"`
}
