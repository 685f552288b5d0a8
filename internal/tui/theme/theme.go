package theme

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorPrimary   = lipgloss.Color("63")  // Purple
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorBorder    = lipgloss.Color("238") // Dark gray
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("229") // Yellow
	ColorAccent    = lipgloss.Color("81")  // Cyan
)

// Shared styles used across TUI components.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StyleHeading = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleSelected = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	StyleItem = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// Apply switches the palette by name. Unknown names keep the default.
func Apply(name string) {
	if name != "mono" {
		return
	}
	plain := lipgloss.NewStyle()
	StyleTitle = plain.Bold(true)
	StyleHeading = plain.Bold(true)
	StyleSelected = plain.Reverse(true)
	StyleItem = plain
	StyleMuted = plain.Faint(true)
	StyleError = plain.Bold(true)
	StyleSuccess = plain
	StyleBorder = plain.BorderStyle(lipgloss.NormalBorder())
}
