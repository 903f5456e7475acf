package entities

import (
	"time"
)

// User is an account that signs in with an emailed one-time password.
// Username is set to the email address on creation.
type User struct {
	ID         int64     `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	DateJoined time.Time `json:"date_joined" db:"date_joined"`
}

// OutletForm is a lead submitted by a brand looking for retail space.
type OutletForm struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Phone      string `json:"phone" db:"phone"`
	Email      string `json:"email" db:"email"`
	OutletType string `json:"outlet_type" db:"outlet_type"`
	Location   string `json:"location" db:"location"`
	Brand      string `json:"brand" db:"brand"`
	MaxBudget  int64  `json:"max_budget" db:"max_budget"`
	MinSize    int    `json:"min_size" db:"min_size"`
}

// ContactForm is a contact-us submission.
type ContactForm struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Phone      string    `json:"phone" db:"phone"`
	Email      string    `json:"email" db:"email"`
	OutletType string    `json:"outlet_type" db:"outlet_type"`
	Location   string    `json:"location" db:"location"`
	BrandName  string    `json:"brand_name" db:"brand_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
