package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))

	// ProgressStyle for the Total | Streak label.
	ProgressStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))

	// LabelStyle for form labels.
	LabelStyle = lipgloss.NewStyle().Width(18)

	// FocusedLabelStyle for the label of the focused field.
	FocusedLabelStyle = LabelStyle.Foreground(lipgloss.Color("229")).Bold(true)
)

// FormatLogLine colors outcome lines.
func FormatLogLine(line string) string {
	switch {
	case containsAny(line, "✓"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(line)
	case containsAny(line, "X ", "ERROR", "CRITICAL"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(line)
	case containsAny(line, ">>>", "Rolling back"):
		return lipgloss.NewStyle().Bold(true).Render(line)
	default:
		return line
	}
}
