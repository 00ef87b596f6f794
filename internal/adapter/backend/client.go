package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/pricetrack/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
)

// API paths
const (
	pathLogin          = "/api/auth/login"
	pathRegister       = "/api/auth/register"
	pathForgotPassword = "/api/auth/forgot-password"
	pathResetPassword  = "/api/auth/reset-password"
	pathMyRequests     = "/app/myRequests"
	pathDeleteRequest  = "/app/delete/%d"
)

// Client implements domain.TrackingAPI over the backend's JSON REST API.
// No call is retried; every failure is returned to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new backend API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// response is a fully-read HTTP response
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// doRequest performs one HTTP request. A non-empty token is sent as a bearer
// credential; a non-nil payload is sent as JSON. Transport failures map to
// domain.ErrServerOffline; HTTP status handling is left to the caller.
func (c *Client) doRequest(ctx context.Context, method, path, token string, payload any) (response, error) {
	reqURL := c.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("backend request", "method", method, "url", reqURL, "requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "method", method, "url", reqURL, "error", err)
		return response{}, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("%w: failed to read response: %v", domain.ErrServerOffline, err)
	}

	c.logger.Debug("backend response", "method", method, "url", reqURL, "status", resp.StatusCode, "requestID", requestID)

	return response{status: resp.StatusCode, body: data}, nil
}

func statusError(r response) *domain.StatusError {
	return &domain.StatusError{Code: r.status, Body: string(r.body)}
}

// Login exchanges credentials for an access/refresh token pair
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, pathLogin, "", creds)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		c.logger.Error("login rejected", "status", resp.status, "body", string(resp.body))
		se := statusError(resp)
		se.Message = loginFailureMessage(resp.body)
		return nil, se
	}

	var result domain.AuthResult
	if err := json.Unmarshal(resp.body, &result); err != nil {
		c.logger.Error("failed to parse login response", "body", string(resp.body), "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidData, err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		c.logger.Error("login response is missing tokens", "body", string(resp.body))
		return nil, fmt.Errorf("%w: login response is missing tokens", domain.ErrInvalidData)
	}

	return &result, nil
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, creds domain.Credentials) error {
	resp, err := c.doRequest(ctx, http.MethodPost, pathRegister, "", creds)
	if err != nil {
		return err
	}
	if !resp.ok() {
		c.logger.Error("registration rejected", "status", resp.status, "body", string(resp.body))
		return statusError(resp)
	}
	return nil
}

// ForgotPassword asks the backend to email a reset link
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, pathForgotPassword, "", forgotPasswordRequest{Email: email})
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp)
	}
	return nil
}

// ResetPassword sets a new password using the token from the reset email
func (c *Client) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	resp, err := c.doRequest(ctx, http.MethodPost, pathResetPassword, "", reset)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp)
	}
	return nil
}

// MyRequests fetches the user's price tracking requests.
// 204 No Content is a valid empty list and is reported through empty.
func (c *Client) MyRequests(ctx context.Context, accessToken string) ([]domain.TrackedProduct, bool, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, pathMyRequests, accessToken, nil)
	if err != nil {
		return nil, false, err
	}

	if resp.status == http.StatusNoContent {
		return nil, true, nil
	}

	if !resp.ok() {
		c.logger.Error("error fetching products", "status", resp.status, "body", string(resp.body))
		return nil, false, statusError(resp)
	}

	var products []domain.TrackedProduct
	if err := json.Unmarshal(resp.body, &products); err != nil {
		c.logger.Error("JSON parsing failed", "body", string(resp.body), "error", err)
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidData, err)
	}

	return products, false, nil
}

// DeleteRequest removes one price tracking request.
// 401 and 403 are reported as domain.ErrUnauthorized.
func (c *Client) DeleteRequest(ctx context.Context, accessToken string, id int64) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf(pathDeleteRequest, id), accessToken, nil)
	if err != nil {
		return err
	}

	switch {
	case resp.ok():
		return nil
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return domain.ErrUnauthorized
	default:
		c.logger.Error("delete error", "status", resp.status, "body", string(resp.body))
		return statusError(resp)
	}
}

var _ domain.TrackingAPI = (*Client)(nil)
