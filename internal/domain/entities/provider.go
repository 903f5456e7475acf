package entities

import (
	"time"
)

// Provider is a business or handyman offering services.
type Provider struct {
	ID                     int64      `json:"id" db:"id"`
	FirstName              *string    `json:"first_name" db:"first_name"`
	LastName               *string    `json:"last_name" db:"last_name"`
	Username               *string    `json:"username" db:"username"`
	ProviderID             *int64     `json:"provider_id" db:"provider_id"`
	Status                 int        `json:"status" db:"status"`
	Description            *string    `json:"description" db:"description"`
	UserType               *string    `json:"user_type" db:"user_type"`
	Email                  string     `json:"email" db:"email"`
	ContactNumber          *string    `json:"contact_number" db:"contact_number"`
	CountryID              *int64     `json:"country_id" db:"country_id"`
	StateID                *int64     `json:"state_id" db:"state_id"`
	CityID                 *int64     `json:"city_id" db:"city_id"`
	CityName               *string    `json:"city_name" db:"city_name"`
	Address                *string    `json:"address" db:"address"`
	ProvidertypeID         *int64     `json:"providertype_id" db:"providertype_id"`
	Providertype           *string    `json:"providertype" db:"providertype"`
	IsFeatured             bool       `json:"is_featured" db:"is_featured"`
	DisplayName            *string    `json:"display_name" db:"display_name"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt              *time.Time `json:"deleted_at" db:"deleted_at"`
	ProfileImage           *string    `json:"profile_image" db:"profile_image"`
	TimeZone               *string    `json:"time_zone" db:"time_zone"`
	UID                    *string    `json:"uid" db:"uid"`
	LoginType              *string    `json:"login_type" db:"login_type"`
	ServiceAddressID       *int64     `json:"service_address_id" db:"service_address_id"`
	LastNotificationSeen   *time.Time `json:"last_notification_seen" db:"last_notification_seen"`
	ProvidersServiceRating Amount     `json:"providers_service_rating" db:"providers_service_rating"`
	TotalServiceRating     int        `json:"total_service_rating" db:"total_service_rating"`
	HandymanRating         Amount     `json:"handyman_rating" db:"handyman_rating"`
	IsVerifyProvider       bool       `json:"is_verify_provider" db:"is_verify_provider"`
	IsHandymanAvailable    bool       `json:"isHandymanAvailable" db:"is_handyman_available"`
	Designation            *string    `json:"designation" db:"designation"`
	HandymantypeID         *int64     `json:"handymantype_id" db:"handymantype_id"`
	HandymanType           *string    `json:"handyman_type" db:"handyman_type"`
	HandymanCommission     *Amount    `json:"handyman_commission" db:"handyman_commission"`
	KnownLanguages         *string    `json:"known_languages" db:"known_languages"`
	Skills                 *string    `json:"skills" db:"skills"`
	IsFavourite            bool       `json:"is_favourite" db:"is_favourite"`
	TotalServicesBooked    int        `json:"total_services_booked" db:"total_services_booked"`
	WhyChooseMe            *string    `json:"why_choose_me" db:"why_choose_me"`
	IsSubscribe            bool       `json:"is_subscribe" db:"is_subscribe"`
	IsEmailVerified        bool       `json:"is_email_verified" db:"is_email_verified"`
}

// ProviderAddress is a location a provider operates from.
type ProviderAddress struct {
	ID         int64      `json:"id" db:"id"`
	ProviderID int64      `json:"provider_id" db:"provider_id"`
	Address    string     `json:"address" db:"address"`
	Latitude   string     `json:"latitude" db:"latitude"`
	Longitude  string     `json:"longitude" db:"longitude"`
	Status     bool       `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at" db:"deleted_at"`
}

// Tax is a charge a provider applies to bookings.
type Tax struct {
	ID         int64  `json:"id" db:"id"`
	ProviderID int64  `json:"provider_id" db:"provider_id"`
	Title      string `json:"title" db:"title"`
	Type       string `json:"type" db:"type"`
	Value      Amount `json:"value" db:"value"`
}
