package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status colors.
var (
	ColorOK     = lipgloss.Color("#00CC00")
	ColorWarn   = lipgloss.Color("#FFCC00")
	ColorFailed = lipgloss.Color("#FF0000")
	ColorMuted  = lipgloss.Color("#666666")
	ColorAccent = lipgloss.Color("#7D56F4")
)

// Styles used across TUI views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorAccent).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginBottom(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorFailed).
			Bold(true)

	StatusOKStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorOK)
	StatusWarnStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	StatusFailedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorFailed)
)

// StatusStyle returns the style for an invocation status as reported by
// types.Invocation.Status.
func StatusStyle(status string) lipgloss.Style {
	switch {
	case status == "ok":
		return StatusOKStyle
	case strings.HasPrefix(status, "exit "):
		return StatusWarnStyle
	case status == "aborted", status == "failed to launch":
		return StatusFailedStyle
	default:
		return lipgloss.NewStyle()
	}
}
