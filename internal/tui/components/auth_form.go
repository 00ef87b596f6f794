package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pricetrack/internal/domain"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
)

// AuthTab identifies which authentication form is visible
type AuthTab int

const (
	TabLogin AuthTab = iota
	TabRegister
)

func (t AuthTab) String() string {
	if t == TabRegister {
		return "Register"
	}
	return "Login"
}

const (
	fieldEmail = iota
	fieldPassword
)

// authPane is one email/password form
type authPane struct {
	inputs    [2]textinput.Model
	busy      bool
	idleLabel string
	busyLabel string
}

func newAuthPane(idleLabel, busyLabel string) authPane {
	email := textinput.New()
	email.Cursor.SetMode(cursor.CursorStatic)
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 32
	email.Prompt = ""
	email.PlaceholderStyle = styles.DimStyle

	password := textinput.New()
	password.Cursor.SetMode(cursor.CursorStatic)
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.PlaceholderStyle = styles.DimStyle

	return authPane{
		inputs:    [2]textinput.Model{email, password},
		idleLabel: idleLabel,
		busyLabel: busyLabel,
	}
}

func (p authPane) label() string {
	if p.busy {
		return p.busyLabel
	}
	return p.idleLabel
}

func (p authPane) credentials() domain.Credentials {
	return domain.Credentials{
		Email:    strings.TrimSpace(p.inputs[fieldEmail].Value()),
		Password: strings.TrimSpace(p.inputs[fieldPassword].Value()),
	}
}

// AuthForm holds the login and register forms behind two tabs
type AuthForm struct {
	tab      AuthTab
	focus    int
	login    authPane
	register authPane
	width    int
}

// NewAuthForm creates the form with the login tab active
func NewAuthForm() AuthForm {
	f := AuthForm{
		tab:      TabLogin,
		login:    newAuthPane("Login", "Logging in..."),
		register: newAuthPane("Register", "Registering..."),
	}
	f.login.inputs[fieldEmail].Focus()
	return f
}

func (f *AuthForm) pane(tab AuthTab) *authPane {
	if tab == TabRegister {
		return &f.register
	}
	return &f.login
}

// Tab returns the active tab
func (f AuthForm) Tab() AuthTab {
	return f.tab
}

// SetTab activates a tab and focuses its email field
func (f *AuthForm) SetTab(tab AuthTab) tea.Cmd {
	f.tab = tab
	return f.focusField(fieldEmail)
}

// ToggleTab switches between login and register
func (f *AuthForm) ToggleTab() tea.Cmd {
	if f.tab == TabLogin {
		return f.SetTab(TabRegister)
	}
	return f.SetTab(TabLogin)
}

// NextField cycles focus between email and password
func (f *AuthForm) NextField() tea.Cmd {
	return f.focusField((f.focus + 1) % 2)
}

// OnLastField reports whether the password field has focus
func (f AuthForm) OnLastField() bool {
	return f.focus == fieldPassword
}

func (f *AuthForm) focusField(i int) tea.Cmd {
	for _, p := range []*authPane{&f.login, &f.register} {
		for j := range p.inputs {
			p.inputs[j].Blur()
		}
	}
	f.focus = i
	return f.pane(f.tab).inputs[i].Focus()
}

// SetBusy disables or re-enables one tab's submit button
func (f *AuthForm) SetBusy(tab AuthTab, busy bool) {
	f.pane(tab).busy = busy
}

// Busy reports whether a tab has a request in flight
func (f AuthForm) Busy(tab AuthTab) bool {
	if tab == TabRegister {
		return f.register.busy
	}
	return f.login.busy
}

// ButtonLabel returns the submit label for a tab
func (f AuthForm) ButtonLabel(tab AuthTab) string {
	if tab == TabRegister {
		return f.register.label()
	}
	return f.login.label()
}

// LoginCredentials returns the trimmed login field values
func (f AuthForm) LoginCredentials() domain.Credentials {
	return f.login.credentials()
}

// RegisterCredentials returns the trimmed register field values
func (f AuthForm) RegisterCredentials() domain.Credentials {
	return f.register.credentials()
}

// SetValues fills a tab's fields
func (f *AuthForm) SetValues(tab AuthTab, email, password string) {
	p := f.pane(tab)
	p.inputs[fieldEmail].SetValue(email)
	p.inputs[fieldPassword].SetValue(password)
}

// Reset clears a tab's fields
func (f *AuthForm) Reset(tab AuthTab) {
	p := f.pane(tab)
	for i := range p.inputs {
		p.inputs[i].SetValue("")
	}
}

// SetWidth sets the rendering width
func (f *AuthForm) SetWidth(w int) {
	f.width = w
}

// Update forwards key input to the focused field of the active tab.
// Input is ignored while that tab is busy.
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd) {
	p := f.pane(f.tab)
	if p.busy {
		return f, nil
	}
	var cmd tea.Cmd
	p.inputs[f.focus], cmd = p.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the tabs and the active form
func (f AuthForm) View() string {
	tabs := make([]string, 0, 2)
	for _, t := range []AuthTab{TabLogin, TabRegister} {
		if t == f.tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(t.String()))
		}
	}

	p := f.pane(f.tab)
	labels := [2]string{"Email", "Password"}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...), ""}
	for i, in := range p.inputs {
		label := styles.LabelStyle.Render(labels[i])
		if i == f.focus {
			label = styles.FocusedLabelStyle.Render(labels[i])
		}
		rows = append(rows, label+" "+in.View())
	}

	button := styles.ButtonStyle.Render(p.label())
	if p.busy {
		button = styles.DisabledButtonStyle.Render(p.label())
	}
	rows = append(rows, "", button)

	if f.tab == TabLogin {
		rows = append(rows, "", styles.DimStyle.Render("ctrl+f forgot password · ctrl+r reset with token"))
	}

	return styles.PanelStyle.Render(strings.Join(rows, "\n"))
}
