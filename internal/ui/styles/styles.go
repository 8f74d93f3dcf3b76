// Package styles provides shared lipgloss styles for terminal output.
//
// Colors live in a Theme; Init picks the default palette or, when color is
// disabled, a palette that keeps formatting (bold) but drops all colors.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // headers
	Success color.Color // succeeded repositories
	Error   color.Color // failed repositories and steps
	Muted   color.Color // secondary text
	Warning color.Color // unknown filters, skipped repositories
}

var (
	// DefaultTheme is the default color scheme
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Success: lipgloss.Color("82"),  // green
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
		Warning: lipgloss.Color("214"), // orange
	}

	// NoneTheme renders without any colors (uses terminal defaults)
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

// Styles derived from the current theme.
var (
	HeaderStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

var current Theme

func init() {
	apply(DefaultTheme)
}

// Init selects the palette. noColor drops every color.
func Init(noColor bool) {
	if noColor {
		apply(NoneTheme)
		return
	}
	apply(DefaultTheme)
}

// Current returns the active theme.
func Current() Theme {
	return current
}

func apply(t Theme) {
	current = t
	HeaderStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
