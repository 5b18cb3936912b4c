package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	primaryColor = lipgloss.Color("#7D56F4")

	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)

// styled renders s with st when stdout is a colour terminal.
func styled(st lipgloss.Style, s string) string {
	if !shouldColorize(os.Stdout) {
		return s
	}
	return st.Render(s)
}
