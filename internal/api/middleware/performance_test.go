package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broki/marketplace-api/internal/api/middleware"
)

func jsonHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestCacheControl(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/cities/", "public, max-age=600, must-revalidate"},
		{http.MethodGet, "/api/article-detail/3/", "public, max-age=300, must-revalidate"},
		{http.MethodGet, "/api/service-list/", "public, max-age=120, must-revalidate"},
		{http.MethodGet, "/api/filter-property-list/", "private, no-cache, must-revalidate"},
		{http.MethodPost, "/api/property-detail/", "no-store"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			middleware.CacheControl(jsonHandler(`{}`)).ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rr.Header().Get("Cache-Control"))
		})
	}
}

func TestETag_NotModified(t *testing.T) {
	handler := middleware.ETag(jsonHandler(`[{"id":1}]`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cities/", nil))
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/cities/", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.String())
}
