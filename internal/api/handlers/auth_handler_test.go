package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/api/middleware"
	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/broki/marketplace-api/pkg/validation"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, firstName, lastName, email string) (*entities.User, error) {
	args := m.Called(ctx, firstName, lastName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAuthService) SendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (*entities.User, providers.TokenPair, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, providers.TokenPair{}, args.Error(2)
	}
	return args.Get(0).(*entities.User), args.Get(1).(providers.TokenPair), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, refresh string) error {
	return m.Called(ctx, refresh).Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func post(path, body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
}

func TestAuthHandler_Register_CamelCase(t *testing.T) {
	svc := new(MockAuthService)
	h := handlers.NewAuthHandler(svc, validation.New())
	svc.On("Register", mock.Anything, "Asha", "Rao", "asha@example.com").Return(&entities.User{ID: 1}, nil)

	rr := httptest.NewRecorder()
	h.Register(rr, post("/api/register/", `{"firstName":"Asha","lastName":"Rao","email":"asha@example.com"}`))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"detail":"User registered successfully. Please verify OTP to login."}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := new(MockAuthService)
	h := handlers.NewAuthHandler(svc, validation.New())
	fields := apperrors.FieldErrors{}
	fields.Add("email", "Email already registered.")
	svc.On("Register", mock.Anything, "Asha", "Rao", "asha@example.com").Return(nil, apperrors.NewFieldValidationError(fields))

	rr := httptest.NewRecorder()
	h.Register(rr, post("/api/register/", `{"first_name":"Asha","last_name":"Rao","email":"asha@example.com"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"email":["Email already registered."]}`, rr.Body.String())
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := handlers.NewAuthHandler(new(MockAuthService), validation.New())

	rr := httptest.NewRecorder()
	h.Register(rr, post("/api/register/", `{"email":"nope"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"first_name":["This field is required."],"last_name":["This field is required."],"email":["Enter a valid email address."]}`, rr.Body.String())
}

func TestAuthHandler_SendOTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "sent",
			wantStatus: http.StatusOK,
			wantBody:   `{"detail":"OTP sent to your email"}`,
		},
		{
			name:       "cooldown",
			err:        apperrors.NewRateLimitedError("Please wait before requesting another OTP."),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"detail":"Please wait before requesting another OTP."}`,
		},
		{
			name:       "mail failure",
			err:        apperrors.NewExternalError("Failed to send OTP: dial tcp: refused", errors.New("dial tcp: refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"Failed to send OTP: dial tcp: refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			h := handlers.NewAuthHandler(svc, validation.New())
			svc.On("SendOTP", mock.Anything, "asha@example.com").Return(tt.err)

			rr := httptest.NewRecorder()
			h.SendOTP(rr, post("/api/send-otp/", `{"email":" asha@example.com "}`))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestAuthHandler_VerifyOTP_Missing(t *testing.T) {
	h := handlers.NewAuthHandler(new(MockAuthService), validation.New())

	rr := httptest.NewRecorder()
	h.VerifyOTP(rr, post("/api/verify-otp/", `{"email":"asha@example.com"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"detail":"Email and OTP required."}`, rr.Body.String())
}

func TestAuthHandler_VerifyOTP_Invalid(t *testing.T) {
	svc := new(MockAuthService)
	h := handlers.NewAuthHandler(svc, validation.New())
	svc.On("VerifyOTP", mock.Anything, "asha@example.com", "000000").Return(nil, nil, apperrors.NewValidationError("Invalid or expired OTP."))

	rr := httptest.NewRecorder()
	h.VerifyOTP(rr, post("/api/verify-otp/", `{"email":"asha@example.com","otp":"000000"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"detail":"Invalid or expired OTP."}`, rr.Body.String())
}

func TestAuthHandler_VerifyOTP_Success(t *testing.T) {
	svc := new(MockAuthService)
	h := handlers.NewAuthHandler(svc, validation.New())
	user := &entities.User{ID: 1, Email: "asha@example.com", Username: "asha@example.com", FirstName: "Asha", LastName: "Rao"}
	svc.On("VerifyOTP", mock.Anything, "asha@example.com", "123456").Return(user, providers.TokenPair{Refresh: "r.t", Access: "a.t"}, nil)

	rr := httptest.NewRecorder()
	h.VerifyOTP(rr, post("/api/verify-otp/", `{"email":"asha@example.com","otp":"123456"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"detail": "Logged in as asha@example.com",
		"refresh": "r.t",
		"access": "a.t",
		"user": {"email":"asha@example.com","username":"asha@example.com","first_name":"Asha","last_name":"Rao"}
	}`, rr.Body.String())
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	h := handlers.NewAuthHandler(svc, validation.New())
	svc.On("Logout", mock.Anything, "good").Return(nil)
	svc.On("Logout", mock.Anything, "revoked").Return(apperrors.NewValidationError("Token is blacklisted"))
	svc.On("Logout", mock.Anything, "broken").Return(apperrors.NewUnauthorizedError("Token is invalid or expired"))

	rr := httptest.NewRecorder()
	h.Logout(rr, post("/api/logout/", `{"refresh":"good"}`))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"detail":"Logged out successfully"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Logout(rr, post("/api/logout/", `{"refresh":"revoked"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"detail":"Token is blacklisted"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Logout(rr, post("/api/logout/", `{"refresh":"broken"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"detail":"Token is invalid or expired"}`, rr.Body.String())
}

func TestAuthHandler_AuthStatus(t *testing.T) {
	svc := new(MockAuthService)
	h := handlers.NewAuthHandler(svc, validation.New())
	svc.On("CurrentUser", mock.Anything, int64(5)).Return(&entities.User{ID: 5, Email: "asha@example.com", Username: "asha@example.com", FirstName: "Asha"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth-status/", nil)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), 5))
	rr := httptest.NewRecorder()
	h.AuthStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"is_authenticated":true,"email":"asha@example.com","username":"asha@example.com","first_name":"Asha"}`, rr.Body.String())
}

func TestAuthHandler_AuthStatus_Unauthenticated(t *testing.T) {
	h := handlers.NewAuthHandler(new(MockAuthService), validation.New())

	rr := httptest.NewRecorder()
	h.AuthStatus(rr, httptest.NewRequest(http.MethodGet, "/api/auth-status/", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, rr.Body.String())
}
