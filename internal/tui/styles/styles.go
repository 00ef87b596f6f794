package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")

	// Banner pairs: background / foreground
	GreenBg = lipgloss.Color("#D1FAE5")
	GreenFg = lipgloss.Color("#065F46")
	RedBg   = lipgloss.Color("#FEE2E2")
	RedFg   = lipgloss.Color("#991B1B")
	BlueBg  = lipgloss.Color("#DBEAFE")
	BlueFg  = lipgloss.Color("#1E40AF")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Banner styles, one per message kind
var (
	BannerBase = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true)

	BannerSuccessStyle = BannerBase.
				Background(GreenBg).
				Foreground(GreenFg)

	BannerErrorStyle = BannerBase.
				Background(RedBg).
				Foreground(RedFg)

	BannerInfoStyle = BannerBase.
			Background(BlueBg).
			Foreground(BlueFg)
)

// Tab styles for the login/register switcher
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Accent).
			Bold(true).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Background(SlateLight).
				Padding(0, 2)
)

// Form styles
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Width(10)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Width(10)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Blue).
			Padding(0, 2)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Background(SlateLight).
				Padding(0, 2)

	DangerButtonStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(Red).
				Padding(0, 2)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray).
		Padding(1, 2)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2).
			Background(SlateDark)

	DangerModalStyle = ModalStyle.
				BorderForeground(Red)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// TableStyles returns the product table styling
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(DimGray).
		BorderBottom(true).
		Foreground(White).
		Bold(true)
	s.Cell = s.Cell.Foreground(LightGray)
	s.Selected = s.Selected.
		Foreground(White).
		Background(SlateLight).
		Bold(false)
	return s
}

// SpinnerFrames for the busy indicator
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	return string(runes[:min(width-3, len(runes))]) + "..."
}
