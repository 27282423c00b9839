// Package console implements the blocking terminal prompter.
package console

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for console output.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Success: lipgloss.Color("#00B894"), // Green
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true)
	optionStyle = lipgloss.NewStyle().Foreground(Colors.Muted)
	errorStyle  = lipgloss.NewStyle().Foreground(Colors.Error)
)
