package services

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
)

// BlogService serves published articles
type BlogService struct {
	blogs repositories.BlogRepository
}

// NewBlogService creates a new blog service
func NewBlogService(blogs repositories.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs}
}

// ListPublished returns one page of published articles, newest first
func (s *BlogService) ListPublished(ctx context.Context, limit, offset int) ([]*entities.Blog, int, error) {
	return s.blogs.ListPublished(ctx, limit, offset)
}

// Get returns an article by id, published or not
func (s *BlogService) Get(ctx context.Context, id int64) (*entities.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}
