package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pricetrack/internal/tui/styles"
)

// MessageKind selects the banner colors
type MessageKind int

const (
	MessageInfo MessageKind = iota // default
	MessageSuccess
	MessageError
)

// String returns the kind name used in logs
func (k MessageKind) String() string {
	switch k {
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	default:
		return "info"
	}
}

// Banner is the single transient notification line.
// Every Show bumps the sequence number; Expire only hides the banner when
// called with the latest one, so the newest message owns the auto-hide.
type Banner struct {
	text    string
	kind    MessageKind
	visible bool
	seq     int
}

// Show replaces the current message and returns its sequence number
func (b *Banner) Show(text string, kind MessageKind) int {
	b.text = text
	b.kind = kind
	b.visible = true
	b.seq++
	return b.seq
}

// Expire hides the banner if seq is still the latest message
func (b *Banner) Expire(seq int) bool {
	if seq != b.seq || !b.visible {
		return false
	}
	b.visible = false
	return true
}

// Hide hides the banner immediately
func (b *Banner) Hide() {
	b.visible = false
}

// IsVisible returns whether a message is shown
func (b Banner) IsVisible() bool {
	return b.visible
}

// Text returns the current message text
func (b Banner) Text() string {
	return b.text
}

// Kind returns the current message kind
func (b Banner) Kind() MessageKind {
	return b.kind
}

// Seq returns the latest sequence number
func (b Banner) Seq() int {
	return b.seq
}

// View renders the banner at the given width. Hidden banners render as a blank line
// so the layout does not jump.
func (b Banner) View(width int) string {
	if !b.visible {
		return lipgloss.NewStyle().Width(width).Render("")
	}

	style := styles.BannerInfoStyle
	switch b.kind {
	case MessageSuccess:
		style = styles.BannerSuccessStyle
	case MessageError:
		style = styles.BannerErrorStyle
	}
	return style.Width(width).Render(styles.Truncate(b.text, width-4))
}
