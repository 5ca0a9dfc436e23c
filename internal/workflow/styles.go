package workflow

import "github.com/charmbracelet/lipgloss"

// Input rendering styles. Screen-level chrome lives in the tui package;
// these cover only what an individual step draws.
var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	suggestionStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#626262"))

	suggestionActiveStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("#43BF6D")).
				Bold(true)

	optionStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	optionActiveStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(lipgloss.Color("#43BF6D")).
				Bold(true)

	emptyListStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)
)
