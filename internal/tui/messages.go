package tui

import (
	"github.com/mmcdole/pricetrack/internal/service"
)

// Message types for the TUI

// LoginResultMsg reports the outcome of a login submit
type LoginResultMsg struct {
	Email string
	Err   error
}

// RegisterResultMsg reports the outcome of a register submit
type RegisterResultMsg struct {
	Email string
	Err   error
}

// ForgotPasswordResultMsg reports the outcome of a reset-link request
type ForgotPasswordResultMsg struct {
	Err error
}

// ResetPasswordResultMsg reports the outcome of a password reset
type ResetPasswordResultMsg struct {
	Err error
}

// ProductsLoadedMsg carries the result of a products fetch
type ProductsLoadedMsg struct {
	Result service.FetchResult
	Err    error
}

// DeleteResultMsg reports the outcome of a delete for one request id
type DeleteResultMsg struct {
	ID  int64
	Err error
}

// OpenImageResultMsg reports whether a product image was handed to the viewer
type OpenImageResultMsg struct {
	URL string
	Err error
}

// ClearStatusMsg hides the banner if Seq is still the latest message
type ClearStatusMsg struct {
	Seq int
}
