package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/mmcdole/pricetrack/internal/service"
)

// Command factories for async operations. Each runs one request; none retry.

// LoginCmd authenticates and persists the session
func LoginCmd(svc *service.SessionService, creds domain.Credentials, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := svc.Login(ctx, creds)
		return LoginResultMsg{Email: creds.Email, Err: err}
	}
}

// RegisterCmd creates an account
func RegisterCmd(svc *service.AccountService, creds domain.Credentials, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := svc.Register(ctx, creds)
		return RegisterResultMsg{Email: creds.Email, Err: err}
	}
}

// ForgotPasswordCmd requests a password reset link
func ForgotPasswordCmd(svc *service.AccountService, email string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ForgotPasswordResultMsg{Err: svc.ForgotPassword(ctx, email)}
	}
}

// ResetPasswordCmd sets a new password using a reset token
func ResetPasswordCmd(svc *service.AccountService, token, newPassword string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ResetPasswordResultMsg{Err: svc.ResetPassword(ctx, token, newPassword)}
	}
}

// FetchProductsCmd loads the user's tracked products
func FetchProductsCmd(svc *service.TrackingService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := svc.FetchProducts(ctx)
		return ProductsLoadedMsg{Result: result, Err: err}
	}
}

// DeleteRequestCmd deletes one price tracking request
func DeleteRequestCmd(svc *service.TrackingService, id int64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return DeleteResultMsg{ID: id, Err: svc.Delete(ctx, id)}
	}
}

// OpenImageCmd opens a product image with the external viewer
func OpenImageCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		return OpenImageResultMsg{URL: url, Err: opener.Open(url)}
	}
}

// ClearStatusCmd returns a command that hides message seq after a delay
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
