package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/broki/marketplace-api/internal/domain/entities"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/broki/marketplace-api/pkg/pagination"
)

const articlePageSize = 10

// BlogService defines the article operations used by the handler.
type BlogService interface {
	ListPublished(ctx context.Context, limit, offset int) ([]*entities.Blog, int, error)
	Get(ctx context.Context, id int64) (*entities.Blog, error)
}

// BlogHandler serves articles.
type BlogHandler struct {
	service BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(service BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// ListArticles handles GET /api/article-list/. Pages past either end are
// served as the last page, and a non-integer page as the first.
func (h *BlogHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	p := pagination.Params{Page: 1, PageSize: articlePageSize}
	if page, err := strconv.Atoi(r.URL.Query().Get(pagination.PageParam)); err == nil {
		p.Page = page
	}

	query := p
	if query.Page < 1 {
		query.Page = 1
	}
	blogs, total, err := h.service.ListPublished(r.Context(), query.Limit(), query.Offset())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	p = p.Clamp(total)
	if p.Page != query.Page {
		if blogs, total, err = h.service.ListPublished(r.Context(), p.Limit(), p.Offset()); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	respondWithJSON(w, http.StatusOK, pagination.NewArticlePage(p, total, newBlogItems(blogs)))
}

// GetArticle handles GET /api/article-detail/{id}/
func (h *BlogHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusNotFound, "Blog not found")
		return
	}

	blog, err := h.service.Get(r.Context(), id)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		respondWithError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	blog.Tags = emptyIfNil(blog.Tags)
	respondWithJSON(w, http.StatusOK, blog)
}
