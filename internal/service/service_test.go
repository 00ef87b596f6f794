package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmcdole/pricetrack/internal/adapter/backend"
	"github.com/mmcdole/pricetrack/internal/adapter/backend/fakeserver"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/mmcdole/pricetrack/internal/service"
	"github.com/mmcdole/pricetrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFixture holds a fake backend plus services wired against it
type testFixture struct {
	srv      *fakeserver.Server
	store    *store.SessionStore
	session  *service.SessionService
	tracking *service.TrackingService
	account  *service.AccountService
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	srv := fakeserver.New()
	t.Cleanup(srv.Close)

	st, err := store.NewSessionStore("")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := backend.NewClient(srv.URL, 5*time.Second, logger)
	session := service.NewSessionService(st, client, logger)

	return &testFixture{
		srv:      srv,
		store:    st,
		session:  session,
		tracking: service.NewTrackingService(client, session, logger),
		account:  service.NewAccountService(client, logger),
	}
}

func ptr[T any](v T) *T { return &v }

func TestIsAuthenticatedRequiresBothTokens(t *testing.T) {
	f := setupTestFixture(t)

	assert.False(t, f.session.IsAuthenticated())

	require.NoError(t, f.store.Set(domain.KeyAccessToken, "T1"))
	assert.False(t, f.session.IsAuthenticated())

	require.NoError(t, f.store.Set(domain.KeyRefreshToken, "T2"))
	assert.True(t, f.session.IsAuthenticated())

	require.NoError(t, f.store.Remove(domain.KeyAccessToken))
	assert.False(t, f.session.IsAuthenticated())

	// An empty token is no token
	require.NoError(t, f.store.Set(domain.KeyAccessToken, ""))
	assert.False(t, f.session.IsAuthenticated())
	_, ok := f.session.AccessToken()
	assert.False(t, ok)
}

func TestLoginStoresSession(t *testing.T) {
	f := setupTestFixture(t)
	f.srv.AddUser("a@b.com", "x", "T1")

	require.NoError(t, f.session.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}))

	sess := f.session.Session()
	assert.Equal(t, "T1", sess.AccessToken)
	assert.Equal(t, "refresh-T1", sess.RefreshToken)
	assert.Equal(t, "a@b.com", sess.UserEmail)
	assert.True(t, f.session.IsAuthenticated())
}

func TestFailedLoginStoresNothing(t *testing.T) {
	f := setupTestFixture(t)
	f.srv.AddUser("a@b.com", "x", "T1")

	err := f.session.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "nope"})
	require.Error(t, err)

	assert.False(t, f.session.IsAuthenticated())
	assert.Empty(t, f.store.Keys())
}

func TestLoginWithoutTokensStoresNothing(t *testing.T) {
	f := setupTestFixture(t)
	f.srv.Force(fakeserver.RouteLogin, fakeserver.Reply{Status: http.StatusOK, Body: `{"accessToken":"T1"}`})

	err := f.session.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidData)
	assert.False(t, f.session.IsAuthenticated())
	assert.Empty(t, f.store.Keys())
}

// failingStore rejects writes to one key
type failingStore struct {
	*store.SessionStore
	failKey string
}

func (s failingStore) Set(key, value string) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.SessionStore.Set(key, value)
}

func TestLoginStoreFailureLeavesNoPartialSession(t *testing.T) {
	f := setupTestFixture(t)
	f.srv.AddUser("a@b.com", "x", "T1")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := backend.NewClient(f.srv.URL, 5*time.Second, logger)
	session := service.NewSessionService(failingStore{SessionStore: f.store, failKey: domain.KeyRefreshToken}, client, logger)

	err := session.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, f.store.Keys(), "access token written before the failure is cleared")
}

func TestLogoutClearsEverything(t *testing.T) {
	f := setupTestFixture(t)
	f.srv.AddUser("a@b.com", "x", "T1")
	require.NoError(t, f.session.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}))

	require.NoError(t, f.session.Logout())

	for _, key := range []string{domain.KeyAccessToken, domain.KeyRefreshToken, domain.KeyUserEmail} {
		_, ok := f.store.Get(key)
		assert.False(t, ok, key)
	}
	// Logout never talks to the backend
	assert.Len(t, f.srv.Requests(), 1)
}

func TestTokenExpiry(t *testing.T) {
	f := setupTestFixture(t)

	_, ok := f.session.TokenExpiry()
	assert.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@b.com",
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	require.NoError(t, f.store.Set(domain.KeyAccessToken, signed))
	got, ok := f.session.TokenExpiry()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	// Opaque tokens have no expiry
	require.NoError(t, f.store.Set(domain.KeyAccessToken, "opaque"))
	_, ok = f.session.TokenExpiry()
	assert.False(t, ok)
}

func TestFetchProductsWithoutSession(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.tracking.FetchProducts(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Empty(t, f.srv.Requests())
}

func TestFetchProducts(t *testing.T) {
	f := setupTestFixture(t)
	f.srv.AddUser("a@b.com", "x", "T1",
		domain.TrackedProduct{PriceTrackingRequestID: 1, ProductNumber: "P1", ProductName: ptr("Kettle")},
	)
	require.NoError(t, f.session.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}))

	result, err := f.tracking.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Empty)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Kettle", result.Products[0].DisplayName())
}

func TestDeleteWithoutTokenSendsNothing(t *testing.T) {
	f := setupTestFixture(t)

	err := f.tracking.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Empty(t, f.srv.Requests())
}

func TestForgotPasswordValidation(t *testing.T) {
	f := setupTestFixture(t)

	err := f.account.ForgotPassword(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.srv.Requests())

	require.NoError(t, f.account.ForgotPassword(context.Background(), "  a@b.com "))
	reqs := f.srv.RequestsTo("/api/auth/forgot-password")
	require.Len(t, reqs, 1)
	assert.Equal(t, "a@b.com", reqs[0].Body["email"])
}

func TestResetPasswordValidation(t *testing.T) {
	f := setupTestFixture(t)

	assert.ErrorIs(t, f.account.ResetPassword(context.Background(), "", "longenough"), domain.ErrValidation)
	assert.ErrorIs(t, f.account.ResetPassword(context.Background(), "tok", "short"), domain.ErrValidation)
	assert.Empty(t, f.srv.Requests())

	require.NoError(t, f.account.ResetPassword(context.Background(), "tok", "longenough"))
}

func TestMatchRanksByNameAndNumber(t *testing.T) {
	products := []domain.TrackedProduct{
		{PriceTrackingRequestID: 1, ProductNumber: "X-100", ProductName: ptr("Electric Kettle")},
		{PriceTrackingRequestID: 2, ProductNumber: "T-200", ProductName: ptr("Toaster")},
		{PriceTrackingRequestID: 3, ProductNumber: "K-300"},
	}

	got := service.Match("kettle", products)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].PriceTrackingRequestID)

	got = service.Match("k-3", products)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].PriceTrackingRequestID)

	assert.Len(t, service.Match("", products), 3)
	assert.Empty(t, service.Match("zzz", products))
}

func TestValidationReasons(t *testing.T) {
	email, err := service.NormalizeEmail("  a@b.com ")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	_, err = service.NormalizeEmail("   ")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please enter your email address.", ve.Reason)

	_, err = service.ValidateReset("tok", "12345")
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, "at least 6 characters")

	token, err := service.ValidateReset(" tok ", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}
