package handlers

import (
	"context"
	"net/http"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/pkg/pagination"
)

const tagPageSize = 20

// CatalogService defines the reference list operations used by the handler.
type CatalogService interface {
	Cities(ctx context.Context) ([]*entities.City, error)
	Categories(ctx context.Context) ([]*entities.Category, error)
	Tags(ctx context.Context, limit, offset int) ([]*entities.Tag, int, error)
}

// CatalogHandler serves cities, categories and tags.
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListCities handles GET /api/cities/
func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, emptyIfNil(cities))
}

// ListCategories handles GET /api/categories/
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, emptyIfNil(categories))
}

// ListTags handles GET /api/tags-list/
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.Parse(r.URL.Query(), "", tagPageSize, 0)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	tags, total, err := h.service.Tags(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := p.Validate(total); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pagination.NewPage(r, p, total, tags))
}
