// Package ui holds the lipgloss styles shared by vendsync's terminal
// output.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors is the color theme for terminal output.
type Colors struct {
	Gray   lipgloss.Color
	Blue   lipgloss.Color
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	White  lipgloss.Color
}

// DefaultColors returns the default theme.
func DefaultColors() Colors {
	return Colors{
		Gray:   lipgloss.Color("245"),
		Blue:   lipgloss.Color("39"),
		Green:  lipgloss.Color("42"),
		Yellow: lipgloss.Color("220"),
		Red:    lipgloss.Color("196"),
		White:  lipgloss.Color("255"),
	}
}

// Styles is the style set used by the report renderer and the CLI.
type Styles struct {
	Colors  Colors
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	colors := DefaultColors()
	return Styles{
		Colors:  colors,
		Title:   lipgloss.NewStyle().Foreground(colors.White).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colors.Gray),
		Success: lipgloss.NewStyle().Foreground(colors.Green),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow),
		Error:   lipgloss.NewStyle().Foreground(colors.Red),
	}
}
