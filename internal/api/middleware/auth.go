package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
)

// Messages returned for rejected credentials.
const (
	MsgAuthNotProvided = "Authentication credentials were not provided."
	MsgTokenNotValid   = "Given token not valid for any token type"
)

type userIDKey struct{}

// AccessTokenParser verifies access tokens.
type AccessTokenParser interface {
	ParseAccess(ctx context.Context, token string) (*providers.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer access token and
// stores the token's user id in the request context.
func RequireAuth(tokens AccessTokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, MsgAuthNotProvided)
				return
			}

			claims, err := tokens.ParseAccess(r.Context(), strings.TrimSpace(token))
			if err != nil {
				observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("Rejected access token")
				unauthorized(w, MsgTokenNotValid)
				return
			}

			ctx := ContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// ContextWithUserID returns a copy of ctx carrying an authenticated user id.
func ContextWithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
