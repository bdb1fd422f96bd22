package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	behindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	onTrackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	messageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Padding(0, 1)
)
