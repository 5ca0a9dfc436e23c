package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/internal/version"
)

// Application branding constants
const (
	AppName = "OPSDECK"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 110
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true)

	HeaderRuleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SectionStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(SecondaryColor).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	StatusFailStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	WaitingStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	PaletteBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)

// contentWidth clamps the usable width between the supported bounds.
func contentWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// headerRule renders a horizontal separator sized to the content width.
func headerRule(width int) string {
	return HeaderRuleStyle.Render(strings.Repeat("─", contentWidth(width)))
}
