package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")

	// Accent colors
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header bar: document title + panel toggle button
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(1)

	HeaderButtonStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true).
				Padding(0, 1)

	// Outline panel styles
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	EntryStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	EntryActiveStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	EntryBulletStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusSectionStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)
)
