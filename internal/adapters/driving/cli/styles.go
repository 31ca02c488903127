package cli

import "github.com/charmbracelet/lipgloss"

// Terminal styles for command output. lipgloss drops colours when stdout
// is not a terminal.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
