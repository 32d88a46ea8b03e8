package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	idleColor    = lipgloss.Color("#10B981") // Green
	busyColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // Light text
	borderColor  = lipgloss.Color("#6B7280") // Gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(borderColor)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Padding(0, 1).
			MarginRight(1)

	badgeIdle  = badgeStyle.Background(idleColor)
	badgeBusy  = badgeStyle.Background(busyColor)
	badgeError = badgeStyle.Background(errorColor)
	badgeInit  = badgeStyle.Background(mutedColor)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	captureStyle = lipgloss.NewStyle().Foreground(idleColor)

	tableBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
