package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broki/marketplace-api/internal/api/middleware"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
)

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var seen string
	handler := middleware.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/register/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rr.Header().Get(middleware.RequestIDHeader))
}

func TestLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	var seen string
	handler := middleware.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rr.Header().Get(middleware.RequestIDHeader))
}
