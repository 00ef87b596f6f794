package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmcdole/pricetrack/internal/domain"
)

// SessionService owns the persisted session: the two bearer tokens and the
// email the user logged in with.
type SessionService struct {
	store  domain.KeyValueStore
	api    domain.TrackingAPI
	logger *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(store domain.KeyValueStore, api domain.TrackingAPI, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  store,
		api:    api,
		logger: logger,
	}
}

// IsAuthenticated returns true iff both tokens are stored and non-empty.
// Tokens are not validated or checked for expiry.
func (s *SessionService) IsAuthenticated() bool {
	return s.Session().Valid()
}

// Session returns whatever is currently stored
func (s *SessionService) Session() domain.Session {
	access, _ := s.store.Get(domain.KeyAccessToken)
	refresh, _ := s.store.Get(domain.KeyRefreshToken)
	email, _ := s.store.Get(domain.KeyUserEmail)
	return domain.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		UserEmail:    email,
	}
}

// AccessToken returns the stored access token, if any
func (s *SessionService) AccessToken() (string, bool) {
	token, ok := s.store.Get(domain.KeyAccessToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// UserEmail returns the stored email, if any
func (s *SessionService) UserEmail() string {
	email, _ := s.store.Get(domain.KeyUserEmail)
	return email
}

// Login authenticates and persists the token pair plus the email.
// Nothing is stored when the backend rejects the credentials.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}

	values := []struct{ key, value string }{
		{domain.KeyAccessToken, result.AccessToken},
		{domain.KeyRefreshToken, result.RefreshToken},
		{domain.KeyUserEmail, creds.Email},
	}
	for _, v := range values {
		if err := s.store.Set(v.key, v.value); err != nil {
			// Never leave half a session behind
			if clearErr := s.Logout(); clearErr != nil {
				s.logger.Error("failed to clear partial session", "error", clearErr)
			}
			return fmt.Errorf("failed to store %s: %w", v.key, err)
		}
	}

	s.logger.Info("login successful", "email", creds.Email)
	return nil
}

// Logout removes both tokens and the stored email. No request is sent.
func (s *SessionService) Logout() error {
	var errs []error
	for _, key := range []string{domain.KeyAccessToken, domain.KeyRefreshToken, domain.KeyUserEmail} {
		if err := s.store.Remove(key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	s.logger.Info("logged out")
	return errors.Join(errs...)
}

// TokenExpiry reads the exp claim of the access token without verifying
// its signature. Display only.
func (s *SessionService) TokenExpiry() (time.Time, bool) {
	token, ok := s.AccessToken()
	if !ok {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
