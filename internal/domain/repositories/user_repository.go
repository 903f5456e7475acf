package repositories

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user and sets its ID and DateJoined
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByEmail retrieves a user by email, ignoring case
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// ExistsByEmail reports whether an account uses email, ignoring case
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LeadRepository stores inbound lead and contact forms
type LeadRepository interface {
	CreateOutletForm(ctx context.Context, form *entities.OutletForm) error
	CreateContactForm(ctx context.Context, form *entities.ContactForm) error
}
