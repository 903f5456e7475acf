package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broki/marketplace-api/internal/api/middleware"
	"github.com/broki/marketplace-api/internal/domain/providers"
)

type stubTokens struct {
	valid map[string]int64
}

func (s stubTokens) ParseAccess(_ context.Context, token string) (*providers.TokenClaims, error) {
	id, ok := s.valid[token]
	if !ok {
		return nil, errors.New("token is invalid or expired")
	}
	return &providers.TokenClaims{TokenType: "access", UserID: id}, nil
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Write([]byte(strconv.FormatInt(id, 10)))
	})
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(stubTokens{valid: map[string]int64{"good": 42}})(echoUserID())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid bearer", "Bearer good", http.StatusOK, "42"},
		{"lowercase scheme", "bearer good", http.StatusOK, "42"},
		{"missing header", "", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`},
		{"wrong scheme", "Basic Z29vZA==", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, `{"detail":"Given token not valid for any token type"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/logout/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
		})
	}
}
