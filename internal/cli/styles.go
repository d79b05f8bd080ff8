// Package cli provides the terminal form: prompts, styled output and the
// sign-in and assessment loop.
package cli

import (
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	HeartRed   = lipgloss.Color("#E63946")
	CalmTeal   = lipgloss.Color("#2A9D8F")
	AlertAmber = lipgloss.Color("#F4A261")
	PaleBlue   = lipgloss.Color("#A8DADC")
	Slate      = lipgloss.Color("#666666")
	Rule       = lipgloss.Color("#333333")
)

var (
	// TitleStyle renders the app title and box headings.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(HeartRed).MarginBottom(1)

	// SubtleStyle renders hints, the about text and the disclaimer.
	SubtleStyle = lipgloss.NewStyle().Foreground(Slate).Italic(true)

	// PromptStyle renders questions.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(HeartRed)

	// TableHeaderStyle underlines the history header.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(Rule)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Rule).
			Padding(1, 2)

	successStyle  = lipgloss.NewStyle().Foreground(CalmTeal)
	errorStyle    = lipgloss.NewStyle().Foreground(HeartRed)
	infoStyle     = lipgloss.NewStyle().Foreground(PaleBlue)
	lowRiskStyle  = lipgloss.NewStyle().Bold(true).Foreground(CalmTeal)
	highRiskStyle = lipgloss.NewStyle().Bold(true).Foreground(AlertAmber)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	HeartIcon   = "❤️"
)

func badge(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess formats a confirmation.
func FormatSuccess(message string) string { return badge(successStyle, SuccessIcon, message) }

// FormatError formats an inline error message.
func FormatError(message string) string { return badge(errorStyle, ErrorIcon, message) }

// FormatWarning formats something the user should notice.
func FormatWarning(message string) string { return badge(highRiskStyle, WarningIcon, message) }

// FormatInfo formats a neutral notice.
func FormatInfo(message string) string { return badge(infoStyle, InfoIcon, message) }

// FormatTitle formats a title with the heart icon.
func FormatTitle(title string) string { return TitleStyle.Render(HeartIcon + " " + title) }

// FormatRisk renders the outcome message for label: calm for low risk,
// alarmed for high.
func FormatRisk(label model.RiskLabel) string {
	if label == model.RiskLow {
		return badge(lowRiskStyle, HeartIcon, label.Message())
	}
	return badge(highRiskStyle, WarningIcon, label.Message())
}

// FormatPrompt formats an inline prompt.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a bordered box under title.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}

// BoldPrompt renders a question heading.
func BoldPrompt(text string) string {
	return PromptStyle.Render(text)
}
