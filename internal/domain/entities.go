package domain

import "fmt"

// Session is the pair of bearer tokens proving an authenticated user,
// plus the email they logged in with (display only).
type Session struct {
	AccessToken  string
	RefreshToken string
	UserEmail    string
}

// Valid reports whether both tokens are present. An empty token counts as absent.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// Credentials is the email/password pair submitted by the login and register forms
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful login
type AuthResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message,omitempty"`
}

// PasswordReset carries a reset token and the replacement password
type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// TrackedProduct is one price tracking request as returned by the dashboard endpoint.
// Optional fields are pointers because the backend sends null for them.
type TrackedProduct struct {
	PriceTrackingRequestID int64    `json:"priceTrackingRequestId"`
	ProductNumber          string   `json:"productNumber"`
	ProductName            *string  `json:"productName"`
	ProductImageURL        *string  `json:"productImageUrl,omitempty"`
	MaxPrice               *float64 `json:"maxPrice"`
	CurrentPrice           *float64 `json:"currentPrice,omitempty"`
}

// DisplayName returns the product name, or "N/A" when the backend sent none
func (p TrackedProduct) DisplayName() string {
	if p.ProductName == nil || *p.ProductName == "" {
		return "N/A"
	}
	return *p.ProductName
}

// DisplayMaxPrice formats the max price with two decimals. A missing or zero price renders as "$N/A".
func (p TrackedProduct) DisplayMaxPrice() string {
	return formatPrice(p.MaxPrice)
}

// DisplayCurrentPrice formats the last observed price the same way as the max price
func (p TrackedProduct) DisplayCurrentPrice() string {
	return formatPrice(p.CurrentPrice)
}

func formatPrice(v *float64) string {
	if v == nil || *v == 0 {
		return "$N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}
