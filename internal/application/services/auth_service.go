package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// Messages returned by the OTP flow.
const (
	MsgEmailRegistered    = "Email already registered."
	MsgEmailNotRegistered = "Email not registered. Please register first."
	MsgOTPCooldown        = "Please wait before requesting another OTP."
	MsgOTPInvalid         = "Invalid or expired OTP."

	otpSubject = "Your OTP Code"
)

func otpKey(email string) string         { return "otp:" + email }
func otpCooldownKey(email string) string { return "otp_cooldown:" + email }

// AuthService implements registration and email one-time-password login
type AuthService struct {
	users    repositories.UserRepository
	cache    providers.CacheProvider
	mailer   providers.Mailer
	tokens   providers.TokenProvider
	otpTTL   time.Duration
	cooldown time.Duration
	metrics  *observability.Metrics

	generateOTP func() (string, error)
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	cache providers.CacheProvider,
	mailer providers.Mailer,
	tokens providers.TokenProvider,
	otpTTL, cooldown time.Duration,
	metrics *observability.Metrics,
) *AuthService {
	return &AuthService{
		users:       users,
		cache:       cache,
		mailer:      mailer,
		tokens:      tokens,
		otpTTL:      otpTTL,
		cooldown:    cooldown,
		metrics:     metrics,
		generateOTP: randomOTP,
	}
}

// Register creates an account whose username is its email
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email string) (*entities.User, error) {
	email = strings.TrimSpace(email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, emailFieldError(MsgEmailRegistered)
	}

	user := &entities.User{
		Username:  email,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			return nil, emailFieldError(MsgEmailRegistered)
		}
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().Int64("user_id", user.ID).Msg("User registered")
	return user, nil
}

// SendOTP emails a fresh code to a registered address. A second request
// inside the cooldown window is rejected.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return emailFieldError(MsgEmailNotRegistered)
	}

	cooling, err := s.cache.Exists(ctx, otpCooldownKey(email))
	if err != nil {
		return apperrors.NewInternalError("failed to read otp cooldown", err)
	}
	if cooling {
		return apperrors.NewRateLimitedError(MsgOTPCooldown)
	}

	code, err := s.generateOTP()
	if err != nil {
		return apperrors.NewInternalError("failed to generate otp", err)
	}

	if err := s.cache.Set(ctx, otpKey(email), []byte(code), seconds(s.otpTTL)); err != nil {
		return apperrors.NewInternalError("failed to store otp", err)
	}
	if err := s.cache.Set(ctx, otpCooldownKey(email), []byte("1"), seconds(s.cooldown)); err != nil {
		return apperrors.NewInternalError("failed to store otp cooldown", err)
	}

	body := fmt.Sprintf("Your OTP is %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.mailer.Send(ctx, []string{email}, otpSubject, body); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).Str("email", email).Msg("Failed to send OTP email")
		return apperrors.NewExternalError("Failed to send OTP: "+err.Error(), err)
	}

	observability.RecordOTPSent(ctx, s.metrics)
	return nil
}

// VerifyOTP checks code against the stored one. On success the user is
// fetched or created, the code is consumed and a token pair is issued.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*entities.User, providers.TokenPair, error) {
	email = strings.TrimSpace(email)

	stored, err := s.cache.Get(ctx, otpKey(email))
	if err != nil && !errors.Is(err, providers.ErrCacheMiss) {
		return nil, providers.TokenPair{}, apperrors.NewInternalError("failed to read otp", err)
	}
	if err != nil || subtle.ConstantTimeCompare(stored, []byte(code)) != 1 {
		return nil, providers.TokenPair{}, apperrors.NewValidationError(MsgOTPInvalid)
	}

	user, err := s.getOrCreate(ctx, email)
	if err != nil {
		return nil, providers.TokenPair{}, err
	}

	if err := s.cache.Delete(ctx, otpKey(email)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("email", email).Msg("Failed to delete used OTP")
	}

	pair, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, providers.TokenPair{}, apperrors.NewInternalError("failed to issue tokens", err)
	}

	return user, pair, nil
}

func (s *AuthService) getOrCreate(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	user = &entities.User{Username: email, Email: email, IsActive: true}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			return s.users.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	return s.tokens.Blacklist(ctx, refresh)
}

// CurrentUser loads the account an access token was issued to
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*entities.User, error) {
	return s.users.GetByID(ctx, userID)
}

func emailFieldError(message string) error {
	fields := apperrors.FieldErrors{}
	fields.Add("email", message)
	return apperrors.NewFieldValidationError(fields)
}

func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func seconds(d time.Duration) int {
	s := int(d / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
