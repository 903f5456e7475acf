package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/domain/entities"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListPublished(ctx context.Context, limit, offset int) ([]*entities.Blog, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Blog), args.Int(1), args.Error(2)
}

func (m *MockBlogService) Get(ctx context.Context, id int64) (*entities.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blog), args.Error(1)
}

func TestBlogHandler_ListArticles(t *testing.T) {
	svc := new(MockBlogService)
	h := handlers.NewBlogHandler(svc)
	svc.On("ListPublished", mock.Anything, 10, 0).Return([]*entities.Blog{{ID: 1, Name: "Leasing 101", Status: true}}, 1, nil)

	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest(http.MethodGet, "/api/article-list/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "true", body["status"])
	assert.Equal(t, map[string]interface{}{
		"total_items": float64(1),
		"per_page":    "10",
		"currentPage": float64(1),
		"totalPages":  float64(1),
	}, body["pagination"])

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, []interface{}{}, data[0].(map[string]interface{})["tags"])
}

func TestBlogHandler_ListArticles_ClampsPage(t *testing.T) {
	svc := new(MockBlogService)
	h := handlers.NewBlogHandler(svc)
	svc.On("ListPublished", mock.Anything, 10, 80).Return([]*entities.Blog{}, 12, nil).Once()
	svc.On("ListPublished", mock.Anything, 10, 10).Return([]*entities.Blog{{ID: 11}, {ID: 12}}, 12, nil).Once()

	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest(http.MethodGet, "/api/article-list/?page=9", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	meta := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["currentPage"])
	assert.Len(t, body["data"], 2)
	svc.AssertExpectations(t)
}

func TestBlogHandler_ListArticles_PageBelowOneServesLastPage(t *testing.T) {
	svc := new(MockBlogService)
	h := handlers.NewBlogHandler(svc)
	svc.On("ListPublished", mock.Anything, 10, 0).Return([]*entities.Blog{{ID: 1}}, 25, nil).Once()
	svc.On("ListPublished", mock.Anything, 10, 20).Return([]*entities.Blog{{ID: 21}, {ID: 22}}, 25, nil).Once()

	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest(http.MethodGet, "/api/article-list/?page=0", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	meta := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["currentPage"])
	assert.Equal(t, float64(3), meta["totalPages"])
	assert.Len(t, body["data"], 2)
	svc.AssertExpectations(t)
}

func TestBlogHandler_ListArticles_NonIntegerPage(t *testing.T) {
	svc := new(MockBlogService)
	h := handlers.NewBlogHandler(svc)
	svc.On("ListPublished", mock.Anything, 10, 0).Return([]*entities.Blog{}, 0, nil)

	rr := httptest.NewRecorder()
	h.ListArticles(rr, httptest.NewRequest(http.MethodGet, "/api/article-list/?page=last", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["pagination"].(map[string]interface{})["currentPage"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestBlogHandler_GetArticle(t *testing.T) {
	svc := new(MockBlogService)
	h := handlers.NewBlogHandler(svc)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.On("Get", mock.Anything, int64(5)).Return(&entities.Blog{
		ID: 5, Name: "Leasing 101", Status: true,
		Tags:      []entities.Tag{{ID: 1, Name: "retail"}},
		CreatedAt: created, UpdatedAt: created,
	}, nil)
	svc.On("Get", mock.Anything, int64(6)).Return(nil, apperrors.NewNotFoundError("blog not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/article-detail/5/", nil)
	req.SetPathValue("id", "5")
	rr := httptest.NewRecorder()
	h.GetArticle(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Leasing 101", body["name"])
	assert.Len(t, body["tags"], 1)

	req = httptest.NewRequest(http.MethodGet, "/api/article-detail/6/", nil)
	req.SetPathValue("id", "6")
	rr = httptest.NewRecorder()
	h.GetArticle(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Blog not found"}`, rr.Body.String())
}
