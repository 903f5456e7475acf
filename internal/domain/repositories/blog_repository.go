package repositories

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
)

// BlogRepository defines read access to blog articles
type BlogRepository interface {
	// ListPublished returns one page of published articles, newest first,
	// with their tags, and the total count
	ListPublished(ctx context.Context, limit, offset int) ([]*entities.Blog, int, error)

	// GetByID retrieves an article with its tags regardless of status
	GetByID(ctx context.Context, id int64) (*entities.Blog, error)
}
