package routes_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/api/routes"
	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/pkg/validation"
)

type stubCatalog struct{}

func (stubCatalog) Cities(context.Context) ([]*entities.City, error) {
	return []*entities.City{{ID: 1, Name: "Pune"}}, nil
}

func (stubCatalog) Categories(context.Context) ([]*entities.Category, error) {
	return nil, nil
}

func (stubCatalog) Tags(context.Context, int, int) ([]*entities.Tag, int, error) {
	return nil, 0, nil
}

type rejectAll struct{}

func (rejectAll) ParseAccess(context.Context, string) (*providers.TokenClaims, error) {
	return nil, errors.New("token is invalid or expired")
}

func newTestRouter() http.Handler {
	v := validation.New()
	r := routes.NewRouter(
		handlers.NewFormHandler(nil, v, nil),
		handlers.NewAuthHandler(nil, v),
		handlers.NewPropertyHandler(nil),
		handlers.NewCatalogHandler(stubCatalog{}),
		handlers.NewServiceHandler(nil),
		handlers.NewBlogHandler(nil),
		rejectAll{},
		nil,
		[]string{"https://app.example.com"},
		nil,
	)
	return r.SetupRoutes()
}

func TestRouter(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, "OK"},
		{"cities", http.MethodGet, "/api/cities/", http.StatusOK, `[{"id":1,"name":"Pune"}]`},
		{"missing trailing slash", http.MethodGet, "/api/cities", http.StatusNotFound, `{"detail":"Not found."}`},
		{"missing trailing slash on post", http.MethodPost, "/api/send-otp", http.StatusNotFound, `{"detail":"Not found."}`},
		{"detail without trailing slash", http.MethodGet, "/api/article-detail/3", http.StatusNotFound, `{"detail":"Not found."}`},
		{"unknown path", http.MethodGet, "/api/nope/", http.StatusNotFound, `{"detail":"Not found."}`},
		{"wrong method", http.MethodPost, "/api/cities/", http.StatusNotFound, `{"detail":"Not found."}`},
		{"logout without token", http.MethodPost, "/api/logout/", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`},
		{"auth status without token", http.MethodGet, "/api/auth-status/", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody == "OK" {
				assert.Equal(t, "OK", rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/send-otp/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}
