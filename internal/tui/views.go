package tui

import (
	"strings"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("❤️  " + model.AppTitle))
	b.WriteString("\n")
	if m.session != nil && m.session.Username != "" {
		b.WriteString(m.theme.Subtitle.Render("Signed in as " + m.session.Username))
		b.WriteString("\n")
	}

	switch m.state {
	case StateResult:
		b.WriteString(m.renderResult())
	case StateSubmitting:
		b.WriteString(m.renderForm())
		b.WriteString("\n" + m.spinner.View() + " Checking your heart health...\n")
	default:
		b.WriteString(m.renderForm())
	}

	if m.lastError != nil {
		b.WriteString("\n" + m.theme.StatusError.Render("✗ "+common.UserMessage(m.lastError)) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderForm() string {
	rows := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		rows = append(rows, f.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m Model) renderResult() string {
	if m.assessment == nil {
		return ""
	}

	style := m.theme.LowRisk
	if m.assessment.Label == model.RiskHigh {
		style = m.theme.HighRisk
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		style.Render(m.assessment.Label.Message()),
		"",
		m.theme.Hint.Width(max(m.width-8, 20)).Render(model.Disclaimer),
		"",
		m.theme.Hint.Render("enter: check again · q: quit"),
	)
	return m.theme.BorderedBox.Render(content) + "\n"
}
