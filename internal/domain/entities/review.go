package entities

import (
	"time"
)

// Discount types of a coupon.
const (
	DiscountFixed   = "fixed"
	DiscountPercent = "percent"
)

// Reviewer is a customer who left a service review.
type Reviewer struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	Contact      *string `json:"contact" db:"contact"`
	ProfileImage *string `json:"profile_image" db:"profile_image"`
}

// ServiceReview is a rating left on a service. Customer is nil for
// anonymous reviews.
type ServiceReview struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"-"`
	Customer  *Reviewer `json:"customer"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Coupon is a discount code for a service. Codes are unique.
type Coupon struct {
	ID             int64  `json:"-" db:"id"`
	ServiceID      int64  `json:"-" db:"service_id"`
	Code           string `json:"code" db:"code"`
	DiscountType   string `json:"discount_type" db:"discount_type"`
	DiscountValue  Amount `json:"discount_value" db:"discount_value"`
	MinOrderAmount Amount `json:"min_order_amount" db:"min_order_amount"`
	ExpiryDate     Date   `json:"expiry_date" db:"expiry_date"`
	IsActive       bool   `json:"is_active" db:"is_active"`
}

// Tag labels blog articles.
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Blog is an article. Only articles with Status set are listed.
type Blog struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Tags         []Tag     `json:"tags" db:"-"`
	Description  string    `json:"description" db:"description"`
	Status       bool      `json:"status" db:"status"`
	ArticleImage string    `json:"article_image" db:"article_image"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
