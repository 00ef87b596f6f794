package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/pricetrack/internal/domain"
)

// minPasswordLength matches the backend's reset-password validation
const minPasswordLength = 6

// AccountService handles the unauthenticated account endpoints
type AccountService struct {
	api    domain.TrackingAPI
	logger *slog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(api domain.TrackingAPI, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{api: api, logger: logger}
}

// Register creates an account. It never logs the user in.
func (s *AccountService) Register(ctx context.Context, creds domain.Credentials) error {
	if err := s.api.Register(ctx, creds); err != nil {
		return err
	}
	s.logger.Info("registered account", "email", creds.Email)
	return nil
}

// NormalizeEmail trims email and rejects it when nothing is left
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &domain.ValidationError{Reason: "Please enter your email address."}
	}
	return email, nil
}

// ValidateReset checks a reset token and new password before submitting
func ValidateReset(token, newPassword string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", &domain.ValidationError{Reason: "Please enter the reset token from your email."}
	}
	if len(newPassword) < minPasswordLength {
		return "", &domain.ValidationError{
			Reason: fmt.Sprintf("New password must be at least %d characters long.", minPasswordLength),
		}
	}
	return token, nil
}

// ForgotPassword requests a reset link. The email is trimmed and must be
// non-empty; otherwise nothing is sent.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	err = s.api.ForgotPassword(ctx, email)
	if se, ok := domain.AsStatusError(err); ok {
		s.logger.Error("forgot password error", "status", se.Code, "body", se.Body)
	}
	return err
}

// ResetPassword sets a new password with a token from the reset email
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token, err := ValidateReset(token, newPassword)
	if err != nil {
		return err
	}

	if err := s.api.ResetPassword(ctx, domain.PasswordReset{Token: token, NewPassword: newPassword}); err != nil {
		return err
	}
	s.logger.Info("password reset")
	return nil
}
