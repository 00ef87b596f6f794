package backend_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/mmcdole/pricetrack/internal/adapter/backend"
	"github.com/mmcdole/pricetrack/internal/adapter/backend/fakeserver"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newClient(t *testing.T, srv *fakeserver.Server) *backend.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return backend.NewClient(srv.URL+"/", 5*time.Second, logger)
}

func TestLoginSuccess(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.AddUser("a@b.com", "x", "T1")

	c := newClient(t, srv)
	result, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "T1", result.AccessToken)
	assert.Equal(t, "refresh-T1", result.RefreshToken)

	reqs := srv.RequestsTo("/api/auth/login")
	require.Len(t, reqs, 1)
	assert.Equal(t, "a@b.com", reqs[0].Body["email"])
	assert.Empty(t, reqs[0].Authorization)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestLoginMissingTokensIsInvalidData(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()

	for _, body := range []string{`{}`, `{"accessToken":"T1"}`, `{"accessToken":"","refreshToken":"R1"}`} {
		srv.Force(fakeserver.RouteLogin, fakeserver.Reply{Status: http.StatusOK, Body: body})
		_, err := newClient(t, srv).Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidData, body)
	}
}

func TestLoginBadCredentialsCarriesMessage(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.AddUser("a@b.com", "x", "T1")

	_, err := newClient(t, srv).Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "wrong"})
	se, ok := domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "Bad credentials", se.Message)
}

func TestLoginErrorMessageFallbacks(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	c := newClient(t, srv)

	srv.Force(fakeserver.RouteLogin, fakeserver.Reply{Status: 500, Body: "<html>oops</html>"})
	_, err := c.Login(context.Background(), domain.Credentials{})
	se, ok := domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, "Unknown error", se.Message)

	srv.Force(fakeserver.RouteLogin, fakeserver.Reply{Status: 401, Body: `{"message":""}`})
	_, err = c.Login(context.Background(), domain.Credentials{})
	se, ok = domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, "Login failed. Invalid credentials.", se.Message)
}

func TestRegisterSurfacesRawBody(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	c := newClient(t, srv)

	require.NoError(t, c.Register(context.Background(), domain.Credentials{Email: "new@b.com", Password: "pw"}))

	err := c.Register(context.Background(), domain.Credentials{Email: "new@b.com", Password: "pw"})
	se, ok := domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Email already registered", se.Body)
}

func TestMyRequestsSendsBearerToken(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.AddUser("a@b.com", "x", "T1",
		domain.TrackedProduct{PriceTrackingRequestID: 7, ProductNumber: "P-7", ProductName: ptr("Kettle"), MaxPrice: ptr(19.5)},
	)

	products, empty, err := newClient(t, srv).MyRequests(context.Background(), "T1")
	require.NoError(t, err)
	assert.False(t, empty)
	require.Len(t, products, 1)
	assert.Equal(t, int64(7), products[0].PriceTrackingRequestID)
	assert.Equal(t, "Kettle", *products[0].ProductName)

	reqs := srv.RequestsTo("/app/myRequests")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer T1", reqs[0].Authorization)
}

func TestMyRequestsNoContent(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.AddUser("a@b.com", "x", "T1")

	products, empty, err := newClient(t, srv).MyRequests(context.Background(), "T1")
	require.NoError(t, err)
	assert.True(t, empty)
	assert.Empty(t, products)
}

func TestMyRequestsInvalidJSON(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.Force(fakeserver.RouteMyRequests, fakeserver.Reply{Status: 200, Body: "not json"})

	_, _, err := newClient(t, srv).MyRequests(context.Background(), "T1")
	assert.ErrorIs(t, err, domain.ErrInvalidData)
}

func TestMyRequestsErrorStatus(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.Force(fakeserver.RouteMyRequests, fakeserver.Reply{Status: 500, Body: "boom"})

	_, _, err := newClient(t, srv).MyRequests(context.Background(), "T1")
	se, ok := domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, 500, se.Code)
	assert.Equal(t, "boom", se.Body)
}

func TestDeleteRequest(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	srv.AddUser("a@b.com", "x", "T1",
		domain.TrackedProduct{PriceTrackingRequestID: 1, ProductNumber: "A"},
		domain.TrackedProduct{PriceTrackingRequestID: 2, ProductNumber: "B"},
	)
	c := newClient(t, srv)

	require.NoError(t, c.DeleteRequest(context.Background(), "T1", 1))
	remaining := srv.Products("T1")
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(2), remaining[0].PriceTrackingRequestID)

	err := c.DeleteRequest(context.Background(), "T1", 99)
	se, ok := domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestDeleteRequestUnauthorized(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	c := newClient(t, srv)

	// Unknown token -> 403
	err := c.DeleteRequest(context.Background(), "stale", 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	srv.Force(fakeserver.RouteDelete, fakeserver.Reply{Status: 401})
	err = c.DeleteRequest(context.Background(), "stale", 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestServerOffline(t *testing.T) {
	srv := fakeserver.New()
	c := newClient(t, srv)
	srv.Close()

	_, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.com"})
	assert.True(t, errors.Is(err, domain.ErrServerOffline))

	err = c.ForgotPassword(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestForgotAndResetPassword(t *testing.T) {
	srv := fakeserver.New()
	defer srv.Close()
	c := newClient(t, srv)

	require.NoError(t, c.ForgotPassword(context.Background(), "a@b.com"))
	require.NoError(t, c.ResetPassword(context.Background(), domain.PasswordReset{Token: "tok", NewPassword: "secret1"}))

	reqs := srv.RequestsTo("/api/auth/reset-password")
	require.Len(t, reqs, 1)
	assert.Equal(t, "tok", reqs[0].Body["token"])
	assert.Equal(t, "secret1", reqs[0].Body["newPassword"])

	srv.Force(fakeserver.RouteForgotPassword, fakeserver.Reply{Status: 500, Body: "smtp down"})
	err := c.ForgotPassword(context.Background(), "a@b.com")
	se, ok := domain.AsStatusError(err)
	require.True(t, ok)
	assert.Equal(t, "smtp down", se.Body)
}
