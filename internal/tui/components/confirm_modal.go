package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
)

// ConfirmModal gates a delete behind an explicit confirmation.
// It holds at most one pending request id: Idle -> PendingConfirmation -> Idle.
type ConfirmModal struct {
	visible   bool
	pendingID int64
	hasID     bool
	label     string
}

// NewConfirmModal creates a hidden modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show records id as the pending target and reveals the modal.
// A second Show replaces the previous target.
func (m *ConfirmModal) Show(id int64, label string) {
	m.pendingID = id
	m.hasID = true
	m.label = label
	m.visible = true
}

// Hide clears the pending target and dismisses the modal
func (m *ConfirmModal) Hide() {
	m.visible = false
	m.hasID = false
	m.pendingID = 0
	m.label = ""
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Pending returns the id awaiting confirmation
func (m ConfirmModal) Pending() (int64, bool) {
	return m.pendingID, m.hasID
}

// View renders the confirmation modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	target := m.label
	if target == "" {
		target = fmt.Sprintf("request #%d", m.pendingID)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete tracking request?"),
		styles.SubtitleStyle.Width(modalWidth).Render("Stop tracking "+target+"? This cannot be undone."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			styles.DangerButtonStyle.Render("[Y] Delete"),
			"  ",
			styles.DisabledButtonStyle.Render("[N] Cancel"),
		),
	)

	return styles.DangerModalStyle.Render(body)
}
