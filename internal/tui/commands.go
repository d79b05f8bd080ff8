package tui

import (
	"context"

	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// assess runs the prediction off the UI loop.
func assess(ctx context.Context, eng *engine.Engine, sess *engine.Session, raw model.RawInput) tea.Cmd {
	return func() tea.Msg {
		a, err := eng.Assess(ctx, sess, raw)
		return assessmentMsg{assessment: a, err: err}
	}
}
