package domain

import "context"

// TrackingAPI is the subset of the backend used by the dashboard.
// Implementations map transport failures to ErrServerOffline and non-ok
// responses to *StatusError (or ErrUnauthorized where noted).
type TrackingAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, creds Credentials) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, reset PasswordReset) error

	// MyRequests returns the user's tracked products. A 204 yields (nil, true, nil).
	MyRequests(ctx context.Context, accessToken string) (products []TrackedProduct, empty bool, err error)

	// DeleteRequest returns ErrUnauthorized for 401/403.
	DeleteRequest(ctx context.Context, accessToken string, id int64) error
}
