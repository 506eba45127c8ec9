package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

// Define styles using lipgloss.
var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6495ED")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)
