package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nicobailon/tsm/internal/session"
)

var (
	BaseBg       = lipgloss.Color("#11111b")
	Accent       = lipgloss.Color("#cba6f7")
	Accent2      = lipgloss.Color("#89b4fa")
	Teal         = lipgloss.Color("#94e2d5")
	SuccessColor = lipgloss.Color("#a6e3a1")
	WarnColor    = lipgloss.Color("#f9e2af")
	ErrorColor   = lipgloss.Color("#f38ba8")
	TextColor    = lipgloss.Color("#cdd6f4")
	SubTextColor = lipgloss.Color("#a6adc8")
	DimColor     = lipgloss.Color("#6c7086")
	OverlayColor = lipgloss.Color("#45475a")
	Flamingo     = lipgloss.Color("#f5c2e7")
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)
	SectionStyle = lipgloss.NewStyle().
			Foreground(Accent2).
			Bold(true)
	TextStyle = lipgloss.NewStyle().
			Foreground(TextColor)
	SubTextStyle = lipgloss.NewStyle().
			Foreground(SubTextColor)
	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)
	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)
	ModalStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Accent)
	DangerModalStyle = ModalStyle.
				BorderForeground(ErrorColor)
	KeyStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true)
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(OverlayColor)
	CurrentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
	ActionStyle = lipgloss.NewStyle().
			Foreground(TextColor)
	ActiveActionStyle = lipgloss.NewStyle().
				Foreground(WarnColor).
				Bold(true)
	GhostStyle = lipgloss.NewStyle().
			Foreground(OverlayColor)
	ActiveFieldStyle = lipgloss.NewStyle().
				Foreground(Teal).
				Bold(true)
)

// StatusStyle colors a status symbol and label; idle and unknown sessions
// brighten when selected.
func StatusStyle(s session.Status, selected bool) lipgloss.Style {
	switch s {
	case session.StatusWorking:
		return lipgloss.NewStyle().Foreground(SuccessColor)
	case session.StatusWaitingInput:
		return lipgloss.NewStyle().Foreground(WarnColor)
	case session.StatusIdle:
		if selected {
			return lipgloss.NewStyle().Foreground(TextColor)
		}
		return lipgloss.NewStyle().Foreground(DimColor)
	default:
		if selected {
			return lipgloss.NewStyle().Foreground(SubTextColor)
		}
		return lipgloss.NewStyle().Foreground(DimColor)
	}
}

var Logo = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true).Render("▲ ") +
	lipgloss.NewStyle().Foreground(Flamingo).Bold(true).Render("t") +
	lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("s") +
	lipgloss.NewStyle().Foreground(Accent2).Bold(true).Render("m")
