// Package themes holds the color palettes for the terminal form.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Label       lipgloss.Style
	Focused     lipgloss.Style
	Option      lipgloss.Style
	Hint        lipgloss.Style
	BorderedBox lipgloss.Style
	LowRisk     lipgloss.Style
	HighRisk    lipgloss.Style
	StatusError lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Error       lipgloss.Color
	Warning     lipgloss.Color
	Success     lipgloss.Color
}

func build(primary, muted, border, success, warning, errColor, fg lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Success: success,
		Warning: warning,
		Error:   errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(46),
		Focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Option: lipgloss.NewStyle().
			Foreground(fg),
		Hint: lipgloss.NewStyle().
			Italic(true).
			Foreground(muted),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		LowRisk: lipgloss.NewStyle().
			Bold(true).
			Foreground(success),
		HighRisk: lipgloss.NewStyle().
			Bold(true).
			Foreground(warning),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#e63946"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#2a9d8f"),
	lipgloss.Color("#f4a261"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#fafafa"),
)

// CatppuccinMocha is a softer palette for dark terminals.
var CatppuccinMocha = build(
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#7f849c"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#fab387"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#cdd6f4"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
