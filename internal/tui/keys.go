package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Submit  key.Binding
	Escape  key.Binding

	// Auth view
	ForgotPassword key.Binding
	ResetPassword  key.Binding

	// App view
	Delete    key.Binding
	OpenImage key.Binding
	Refresh   key.Binding
	Filter    key.Binding
	Logout    key.Binding

	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next field"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "login/register"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		ForgotPassword: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "forgot password"),
		),
		ResetPassword: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reset password"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "d", "delete"),
			key.WithHelp("x", "delete"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// AuthHelp returns the bindings shown in the auth view footer
func (k KeyMap) AuthHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Down, k.Submit, k.ForgotPassword, k.ResetPassword, k.ForceQuit}
}

// AppHelp returns the bindings shown in the app view footer
func (k KeyMap) AppHelp() []key.Binding {
	return []key.Binding{k.Delete, k.OpenImage, k.Filter, k.Refresh, k.Logout, k.Help, k.Quit}
}
