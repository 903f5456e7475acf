package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/domain/entities"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Cities(ctx context.Context) ([]*entities.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.City), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCatalogService) Tags(ctx context.Context, limit, offset int) ([]*entities.Tag, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Tag), args.Int(1), args.Error(2)
}

func TestCatalogHandler_ListCities(t *testing.T) {
	svc := new(MockCatalogService)
	h := handlers.NewCatalogHandler(svc)
	svc.On("Cities", mock.Anything).Return([]*entities.City{{ID: 1, Name: "Pune"}, {ID: 2, Name: "Mumbai"}}, nil)

	rr := httptest.NewRecorder()
	h.ListCities(rr, httptest.NewRequest(http.MethodGet, "/api/cities/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Pune"},{"id":2,"name":"Mumbai"}]`, rr.Body.String())
}

func TestCatalogHandler_ListCategories_Empty(t *testing.T) {
	svc := new(MockCatalogService)
	h := handlers.NewCatalogHandler(svc)
	svc.On("Categories", mock.Anything).Return(nil, nil)

	rr := httptest.NewRecorder()
	h.ListCategories(rr, httptest.NewRequest(http.MethodGet, "/api/categories/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCatalogHandler_ListCategories_StorageError(t *testing.T) {
	svc := new(MockCatalogService)
	h := handlers.NewCatalogHandler(svc)
	svc.On("Categories", mock.Anything).Return(nil, errors.New("connection refused"))

	rr := httptest.NewRecorder()
	h.ListCategories(rr, httptest.NewRequest(http.MethodGet, "/api/categories/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"detail":"Internal server error."}`, rr.Body.String())
}

func TestCatalogHandler_ListTags(t *testing.T) {
	svc := new(MockCatalogService)
	h := handlers.NewCatalogHandler(svc)
	svc.On("Tags", mock.Anything, 20, 20).Return([]*entities.Tag{{ID: 21, Name: "retail"}}, 21, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tags-list/?page=2", nil)
	rr := httptest.NewRecorder()
	h.ListTags(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"count": 21,
		"next": null,
		"previous": "http://example.com/api/tags-list/",
		"results": [{"id":21,"name":"retail"}]
	}`, rr.Body.String())
}

func TestCatalogHandler_ListTags_InvalidPage(t *testing.T) {
	h := handlers.NewCatalogHandler(new(MockCatalogService))

	rr := httptest.NewRecorder()
	h.ListTags(rr, httptest.NewRequest(http.MethodGet, "/api/tags-list/?page=abc", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Invalid page."}`, rr.Body.String())
}
