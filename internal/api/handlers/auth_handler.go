package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/broki/marketplace-api/internal/api/middleware"
	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/broki/marketplace-api/pkg/validation"
)

// AuthService defines the account operations used by the handler.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email string) (*entities.User, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (*entities.User, providers.TokenPair, error)
	Logout(ctx context.Context, refresh string) error
	CurrentUser(ctx context.Context, userID int64) (*entities.User, error)
}

// AuthHandler handles registration, OTP login and session endpoints.
type AuthHandler struct {
	service   AuthService
	validator *validation.Validator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{service: service, validator: validator}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

type userSummary struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles POST /api/register/. camelCase keys are accepted.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		respondWithDetail(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}

	var raw map[string]json.RawMessage
	if !decodeBytes(w, body, &raw) {
		return
	}
	normalized := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		normalized[camelToSnake(key)] = value
	}
	body, _ = json.Marshal(normalized)

	var req registerRequest
	if !decodeBytes(w, body, &req) {
		return
	}
	trimAll(&req.FirstName, &req.LastName, &req.Email)

	if fields := h.validator.Fields(req); len(fields) > 0 {
		respondWithFields(w, fields)
		return
	}

	if _, err := h.service.Register(r.Context(), req.FirstName, req.LastName, req.Email); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithDetail(w, http.StatusCreated, "User registered successfully. Please verify OTP to login.")
}

// SendOTP handles POST /api/send-otp/
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if fields := h.validator.Fields(req); len(fields) > 0 {
		respondWithFields(w, fields)
		return
	}

	if err := h.service.SendOTP(r.Context(), req.Email); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithDetail(w, http.StatusOK, "OTP sent to your email")
}

// VerifyOTP handles POST /api/verify-otp/
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.OTP == "" {
		respondWithDetail(w, http.StatusBadRequest, "Email and OTP required.")
		return
	}

	user, tokens, err := h.service.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"detail":  "Logged in as " + strings.TrimSpace(req.Email),
		"refresh": tokens.Refresh,
		"access":  tokens.Access,
		"user": userSummary{
			Email:     user.Email,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}

// Logout handles POST /api/logout/. Requires an access token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Logout(r.Context(), req.Refresh); err != nil {
		if appErr, ok := apperrors.As(err); ok && appErr.Type != apperrors.ErrorTypeInternal {
			respondWithDetail(w, http.StatusBadRequest, appErr.Message)
			return
		}
		respondWithAppError(w, r, err)
		return
	}

	respondWithDetail(w, http.StatusOK, "Logged out successfully")
}

// AuthStatus handles GET /api/auth-status/. Requires an access token.
func (h *AuthHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithDetail(w, http.StatusUnauthorized, middleware.MsgAuthNotProvided)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		respondWithDetail(w, http.StatusUnauthorized, "User not found")
		return
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"is_authenticated": true,
		"email":            user.Email,
		"username":         user.Username,
		"first_name":       user.FirstName,
	})
}

// camelToSnake converts firstName to first_name. snake_case keys are
// returned unchanged.
func camelToSnake(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
