package entities

import (
	"time"
)

// ServiceCategory groups bookable services.
type ServiceCategory struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Image *string `json:"image" db:"image"`
}

// ServiceSubCategory refines a ServiceCategory.
type ServiceSubCategory struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	CategoryID int64   `json:"category_id" db:"category_id"`
	Image      *string `json:"image" db:"image"`
}

// Attachment is an image attached to one or more services.
type Attachment struct {
	ID  int64  `json:"id" db:"id"`
	URL string `json:"url" db:"url"`
}

// Service is a bookable offering of a provider.
type Service struct {
	ID                     int64   `json:"id" db:"id"`
	Name                   string  `json:"name" db:"name"`
	CategoryID             *int64  `json:"category_id" db:"category_id"`
	SubcategoryID          *int64  `json:"subcategory_id" db:"subcategory_id"`
	ProviderID             *int64  `json:"provider_id" db:"provider_id"`
	Price                  Amount  `json:"price" db:"price"`
	Type                   string  `json:"type" db:"type"`
	Discount               Amount  `json:"discount" db:"discount"`
	Duration               string  `json:"duration" db:"duration"`
	Status                 int     `json:"status" db:"status"`
	Description            string  `json:"description" db:"description"`
	IsFeatured             bool    `json:"is_featured" db:"is_featured"`
	TotalReview            int     `json:"total_review" db:"total_review"`
	TotalRating            Amount  `json:"total_rating" db:"total_rating"`
	IsFavourite            bool    `json:"is_favourite" db:"is_favourite"`
	AttchmentExtension     bool    `json:"attchment_extension" db:"attchment_extension"`
	IsSlot                 bool    `json:"is_slot" db:"is_slot"`
	VisitType              string  `json:"visit_type" db:"visit_type"`
	IsEnableAdvancePayment bool    `json:"is_enable_advance_payment" db:"is_enable_advance_payment"`
	AdvancePaymentAmount   Amount  `json:"advance_payment_amount" db:"advance_payment_amount"`
	MOQ                    int     `json:"moq" db:"moq"`
	CategoryName           *string `json:"category_name" db:"category_name"`
	SubcategoryName        *string `json:"subcategory_name" db:"subcategory_name"`
	ProviderName           *string `json:"provider_name" db:"provider_name"`
	ProviderImage          *string `json:"provider_image" db:"provider_image"`

	Attachments     []Attachment            `json:"-" db:"-"`
	Slots           []Slot                  `json:"-" db:"-"`
	AddressMappings []ServiceAddressMapping `json:"-" db:"-"`
}

// Slot lists the bookable time slots of a service on one weekday.
type Slot struct {
	ID        int64  `json:"-" db:"id"`
	ServiceID int64  `json:"-" db:"service_id"`
	Day       string `json:"day" db:"day"`
	Slot      JSON   `json:"slot" db:"slot"`
}

// ServiceFAQ is a question and answer shown on a service page.
type ServiceFAQ struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      bool      `json:"status" db:"status"`
	ServiceID   int64     `json:"service_id" db:"service_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ServiceAddon is an optional extra that can be booked with a service.
type ServiceAddon struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	ServiceID         int64   `json:"service_id" db:"service_id"`
	ServiceName       string  `json:"service_name" db:"service_name"`
	Price             Amount  `json:"price" db:"price"`
	Status            bool    `json:"status" db:"status"`
	ServiceaddonImage *string `json:"serviceaddon_image" db:"serviceaddon_image"`
}

// ServiceAddressMapping links a service to a provider address it is
// offered at.
type ServiceAddressMapping struct {
	ID                     int64            `json:"id" db:"id"`
	ServiceID              int64            `json:"service_id" db:"service_id"`
	ProviderAddressID      int64            `json:"provider_address_id" db:"provider_address_id"`
	CreatedAt              time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at" db:"updated_at"`
	ProviderAddressMapping *ProviderAddress `json:"provider_address_mapping" db:"-"`
}
