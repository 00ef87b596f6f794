package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pricetrack/internal/tui/components"
)

// Intent is a user action, independent of the key that triggered it
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentToggleHelp

	// Auth view
	IntentSwitchAuthTab
	IntentNextField
	IntentPrevField
	IntentSubmitLogin
	IntentSubmitRegister
	IntentOpenForgotPassword
	IntentSubmitForgotPassword
	IntentCloseForgotPassword
	IntentOpenResetPassword
	IntentSubmitResetPassword
	IntentCloseResetPassword

	// App view
	IntentRequestDelete
	IntentConfirmDelete
	IntentCancelDelete
	IntentOpenImage
	IntentLogout
	IntentRefresh
	IntentStartFilter
	IntentAcceptFilter
	IntentCancelFilter
)

var intentNames = map[Intent]string{
	IntentNone:                 "none",
	IntentQuit:                 "quit",
	IntentToggleHelp:           "toggle-help",
	IntentSwitchAuthTab:        "switch-auth-tab",
	IntentNextField:            "next-field",
	IntentPrevField:            "prev-field",
	IntentSubmitLogin:          "submit-login",
	IntentSubmitRegister:       "submit-register",
	IntentOpenForgotPassword:   "open-forgot-password",
	IntentSubmitForgotPassword: "submit-forgot-password",
	IntentCloseForgotPassword:  "close-forgot-password",
	IntentOpenResetPassword:    "open-reset-password",
	IntentSubmitResetPassword:  "submit-reset-password",
	IntentCloseResetPassword:   "close-reset-password",
	IntentRequestDelete:        "request-delete",
	IntentConfirmDelete:        "confirm-delete",
	IntentCancelDelete:         "cancel-delete",
	IntentOpenImage:            "open-image",
	IntentLogout:               "logout",
	IntentRefresh:              "refresh",
	IntentStartFilter:          "start-filter",
	IntentAcceptFilter:         "accept-filter",
	IntentCancelFilter:         "cancel-filter",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// resolveIntent maps a key press to an intent for the current screen.
// The second return is false when the key belongs to the focused widget
// (typing into a field, moving the table cursor).
// Precedence: confirm modal, input modals, help, then the active view.
func (m Model) resolveIntent(msg tea.KeyMsg) (Intent, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return IntentQuit, true
	}

	switch {
	case m.confirm.IsVisible():
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return IntentConfirmDelete, true
		case key.Matches(msg, m.keys.Deny):
			return IntentCancelDelete, true
		}
		// The modal swallows everything else
		return IntentNone, true

	case m.forgot.IsVisible():
		switch {
		case key.Matches(msg, m.keys.Escape):
			return IntentCloseForgotPassword, true
		case key.Matches(msg, m.keys.Submit):
			return IntentSubmitForgotPassword, true
		}
		return IntentNone, false

	case m.reset.IsVisible():
		switch {
		case key.Matches(msg, m.keys.Escape):
			return IntentCloseResetPassword, true
		case key.Matches(msg, m.keys.Submit):
			return IntentSubmitResetPassword, true
		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Down):
			return IntentNextField, true
		case key.Matches(msg, m.keys.Up):
			return IntentPrevField, true
		}
		return IntentNone, false

	case m.showHelp:
		// Any key closes help
		return IntentToggleHelp, true
	}

	if m.view == ViewAuth {
		return m.resolveAuthIntent(msg)
	}
	return m.resolveAppIntent(msg)
}

func (m Model) resolveAuthIntent(msg tea.KeyMsg) (Intent, bool) {
	switch {
	case key.Matches(msg, m.keys.NextTab):
		return IntentSwitchAuthTab, true
	case key.Matches(msg, m.keys.Down):
		return IntentNextField, true
	case key.Matches(msg, m.keys.Up):
		return IntentPrevField, true
	case key.Matches(msg, m.keys.ForgotPassword):
		return IntentOpenForgotPassword, true
	case key.Matches(msg, m.keys.ResetPassword):
		return IntentOpenResetPassword, true
	case key.Matches(msg, m.keys.Submit):
		// Enter on the email field moves to the password field
		if !m.authForm.OnLastField() {
			return IntentNextField, true
		}
		if m.authForm.Tab() == components.TabRegister {
			return IntentSubmitRegister, true
		}
		return IntentSubmitLogin, true
	}
	return IntentNone, false
}

func (m Model) resolveAppIntent(msg tea.KeyMsg) (Intent, bool) {
	if m.products.IsFiltering() {
		switch {
		case key.Matches(msg, m.keys.Escape):
			return IntentCancelFilter, true
		case key.Matches(msg, m.keys.Submit):
			return IntentAcceptFilter, true
		}
		return IntentNone, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return IntentQuit, true
	case key.Matches(msg, m.keys.Help):
		return IntentToggleHelp, true
	case key.Matches(msg, m.keys.Delete):
		return IntentRequestDelete, true
	case key.Matches(msg, m.keys.OpenImage):
		return IntentOpenImage, true
	case key.Matches(msg, m.keys.Refresh):
		return IntentRefresh, true
	case key.Matches(msg, m.keys.Filter):
		return IntentStartFilter, true
	case key.Matches(msg, m.keys.Logout):
		return IntentLogout, true
	case key.Matches(msg, m.keys.Escape):
		if m.products.FilterQuery() != "" {
			return IntentCancelFilter, true
		}
	}
	return IntentNone, false
}

// dispatch executes an intent. It is the only place user actions mutate state.
func (m *Model) dispatch(intent Intent) tea.Cmd {
	m.logger.Debug("dispatch", "intent", intent.String())

	switch intent {
	case IntentQuit:
		return tea.Quit

	case IntentToggleHelp:
		m.showHelp = !m.showHelp
		return nil

	case IntentSwitchAuthTab:
		m.banner.Hide()
		return m.authForm.ToggleTab()

	case IntentNextField:
		if m.reset.IsVisible() {
			return m.reset.NextField()
		}
		return m.authForm.NextField()

	case IntentPrevField:
		if m.reset.IsVisible() {
			return m.reset.PrevField()
		}
		// Two fields, so previous and next coincide
		return m.authForm.NextField()

	case IntentSubmitLogin:
		return m.submitLogin()

	case IntentSubmitRegister:
		return m.submitRegister()

	case IntentOpenForgotPassword:
		return m.forgot.Show()

	case IntentCloseForgotPassword:
		m.forgot.Hide()
		return nil

	case IntentSubmitForgotPassword:
		return m.submitForgotPassword()

	case IntentOpenResetPassword:
		return m.reset.Show()

	case IntentCloseResetPassword:
		m.reset.Hide()
		return nil

	case IntentSubmitResetPassword:
		return m.submitResetPassword()

	case IntentRequestDelete:
		id, ok := m.products.SelectedID()
		if !ok {
			return nil
		}
		m.confirm.Show(id, m.products.SelectedName())
		return nil

	case IntentConfirmDelete:
		return m.confirmDeleteRequest()

	case IntentCancelDelete:
		m.confirm.Hide()
		return nil

	case IntentOpenImage:
		return m.openSelectedImage()

	case IntentLogout:
		return m.logout()

	case IntentRefresh:
		return m.fetchUserProducts()

	case IntentStartFilter:
		return m.products.StartFilter()

	case IntentAcceptFilter:
		m.products.AcceptFilter()
		return nil

	case IntentCancelFilter:
		m.products.CancelFilter()
		return nil
	}

	return nil
}
