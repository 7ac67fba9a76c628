package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

	// CaretStyle marks the cursor cell and selected text inside the widget.
	CaretStyle = lipgloss.NewStyle().Reverse(true)
)
