package tui

import "github.com/charmbracelet/lipgloss"

// AppTrial Color Palette
var (
	ColorAccent = lipgloss.Color("#A8D8EA") // Cyan/Blueish for accents
	ColorDeep   = lipgloss.Color("#596E79") // Muted Blue/Grey for secondary text
	ColorText   = lipgloss.Color("#E0E0E0") // Primary text
	ColorAlert  = lipgloss.Color("#FF6B6B") // Red for expired
	ColorGood   = lipgloss.Color("#4ECDC4") // Green for active
	ColorWarn   = lipgloss.Color("#FFE66D") // Yellow for the last day
	ColorMuted  = lipgloss.Color("#6c757d") // Muted text
)

// Styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Italic(true)

	// Status Indicators
	StyleStatusGood = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	StyleStatusBad  = lipgloss.NewStyle().Foreground(ColorAlert).Bold(true)
	StyleStatusWarn = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDeep).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Width(12)

	StyleValue = lipgloss.NewStyle().Foreground(ColorText)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true)

	// App container
	StyleApp = lipgloss.NewStyle().Margin(1, 2)
)
