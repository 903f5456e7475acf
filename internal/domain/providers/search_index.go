package providers

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

// PropertySearchIndex is a full-text index over property listings.
type PropertySearchIndex interface {
	// Index adds or replaces a property document
	Index(ctx context.Context, property *entities.Property) error

	// Search returns the ids of all active properties matching query
	Search(ctx context.Context, query string) ([]int64, error)
}
