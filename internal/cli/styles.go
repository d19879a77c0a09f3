package cli

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorSecondary = lipgloss.Color("245") // Gray
	colorSuccess   = lipgloss.Color("34")  // Green
	colorError     = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for human-readable command output.
var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	attrStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)
)
