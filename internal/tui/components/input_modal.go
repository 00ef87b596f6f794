package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
)

// InputField describes one text field of an InputModal
type InputField struct {
	Label       string
	Placeholder string
	Secret      bool
}

// InputModal is a small form in a modal: one or more text fields plus a
// submit button whose label changes while a request is in flight.
type InputModal struct {
	visible   bool
	title     string
	hint      string
	inputs    []textinput.Model
	labels    []string
	focus     int
	busy      bool
	idleLabel string
	busyLabel string
}

// NewInputModal creates a new input modal
func NewInputModal(title, hint, idleLabel, busyLabel string, fields ...InputField) InputModal {
	inputs := make([]textinput.Model, len(fields))
	labels := make([]string, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Cursor.SetMode(cursor.CursorStatic)
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 254
		ti.Width = 30
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
		labels[i] = f.Label
	}

	return InputModal{
		title:     title,
		hint:      hint,
		inputs:    inputs,
		labels:    labels,
		idleLabel: idleLabel,
		busyLabel: busyLabel,
	}
}

// Show displays the modal with every field cleared and the first focused
func (m *InputModal) Show() tea.Cmd {
	m.visible = true
	m.busy = false
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	return m.focusField(0)
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the raw value of field i
func (m InputModal) Value(i int) string {
	if i < 0 || i >= len(m.inputs) {
		return ""
	}
	return m.inputs[i].Value()
}

// SetValue sets field i (used by tests and prefilled flows)
func (m *InputModal) SetValue(i int, v string) {
	if i >= 0 && i < len(m.inputs) {
		m.inputs[i].SetValue(v)
	}
}

// SetBusy toggles the in-flight state of the submit button
func (m *InputModal) SetBusy(busy bool) {
	m.busy = busy
}

// Busy returns whether a submit is in flight
func (m InputModal) Busy() bool {
	return m.busy
}

// ButtonLabel returns the submit button text for the current state
func (m InputModal) ButtonLabel() string {
	if m.busy {
		return m.busyLabel
	}
	return m.idleLabel
}

// NextField moves focus down, wrapping around
func (m *InputModal) NextField() tea.Cmd {
	return m.focusField((m.focus + 1) % len(m.inputs))
}

// PrevField moves focus up, wrapping around
func (m *InputModal) PrevField() tea.Cmd {
	return m.focusField((m.focus - 1 + len(m.inputs)) % len(m.inputs))
}

func (m *InputModal) focusField(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	return m.inputs[i].Focus()
}

// Update forwards input to the focused field. Keys are ignored while busy.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd) {
	if !m.visible || m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	rows := []string{styles.ModalTitleStyle.Render(m.title)}
	if m.hint != "" {
		rows = append(rows, styles.SubtitleStyle.Width(modalWidth).Render(m.hint), "")
	}
	for i, in := range m.inputs {
		label := styles.LabelStyle.Render(m.labels[i])
		if i == m.focus {
			label = styles.FocusedLabelStyle.Render(m.labels[i])
		}
		rows = append(rows, label+" "+in.View())
	}

	button := styles.ButtonStyle.Render(m.ButtonLabel())
	if m.busy {
		button = styles.DisabledButtonStyle.Render(m.ButtonLabel())
	}
	rows = append(rows, "", button+"  "+styles.DimStyle.Render("esc cancel"))

	return styles.ModalStyle.Render(strings.Join(rows, "\n"))
}
