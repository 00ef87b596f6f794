package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
)

// ChromeHeight is the rows used by header, banner and footer
const ChromeHeight = 4

// TickMsg advances the spinner
type TickMsg struct{}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	if m.view == ViewApp {
		content = m.renderApp()
	} else {
		content = m.renderAuth()
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.banner.View(m.Width),
		content,
		m.renderFooter(),
	)

	// Overlay modals. The banner stays on top so messages raised while
	// a modal is open are seen.
	if modal, ok := m.activeModal(); ok {
		banner := m.banner.View(m.Width)
		view = lipgloss.JoinVertical(lipgloss.Left,
			banner,
			lipgloss.Place(m.Width, max(m.Height-lipgloss.Height(banner), 1),
				lipgloss.Center, lipgloss.Center,
				modal))
	}

	return view
}

// activeModal returns the rendered modal with the highest precedence, if any
func (m Model) activeModal() (string, bool) {
	switch {
	case m.confirm.IsVisible():
		return m.confirm.View(), true
	case m.forgot.IsVisible():
		return m.forgot.View(), true
	case m.reset.IsVisible():
		return m.reset.View(), true
	}
	return "", false
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("pricetrack")

	right := styles.DimStyle.Render(m.serverURL)
	if m.view == ViewApp {
		right = styles.AccentStyle.Render(m.welcome)
	}

	gap := m.Width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderAuth() string {
	height := m.Height - ChromeHeight
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(m.Width, height,
		lipgloss.Center, lipgloss.Center,
		m.authForm.View())
}

func (m Model) renderApp() string {
	return m.products.View()
}

// renderFooter renders a single-line footer: spinner and token expiry on the
// left, key hints on the right
func (m Model) renderFooter() string {
	var left []string
	if m.loading {
		frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
		left = append(left, styles.AccentStyle.Render(frame))
	}
	if m.view == ViewApp {
		if exp, ok := m.session.TokenExpiry(); ok {
			label := "token expires " + exp.Local().Format("Jan 2 15:04")
			if time.Now().After(exp) {
				label = "token expired " + exp.Local().Format("Jan 2 15:04")
			}
			left = append(left, styles.DimStyle.Render(label))
		}
	}

	bindings := m.keys.AuthHelp()
	if m.view == ViewApp {
		bindings = m.keys.AppHelp()
	}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, renderBinding(b))
	}

	leftStr := strings.Join(left, " ")
	rightStr := strings.Join(hints, "  ")
	gap := m.Width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr)
	if gap < 1 {
		gap = 1
	}
	return leftStr + strings.Repeat(" ", gap) + rightStr
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
}

func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Sign in", []key.Binding{m.keys.NextTab, m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.ForgotPassword, m.keys.ResetPassword}},
		{"Tracked products", []key.Binding{m.keys.Delete, m.keys.OpenImage, m.keys.Filter, m.keys.Escape, m.keys.Refresh, m.keys.Logout}},
		{"Confirm", []key.Binding{m.keys.Confirm, m.keys.Deny}},
		{"General", []key.Binding{m.keys.Help, m.keys.Quit, m.keys.ForceQuit}},
	}

	var rows []string
	rows = append(rows, styles.ModalTitleStyle.Render("Keyboard shortcuts"))
	for _, s := range sections {
		rows = append(rows, "", styles.AccentStyle.Render(s.title))
		for _, b := range s.bindings {
			h := b.Help()
			rows = append(rows, styles.HelpKeyStyle.Width(8).Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
		}
	}
	rows = append(rows, "", styles.DimStyle.Render("press any key to close"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(strings.Join(rows, "\n")))
}
