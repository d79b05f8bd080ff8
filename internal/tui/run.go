package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// RunForm shows the form for a signed-in session until the user quits and
// returns the last completed assessment, if any.
func RunForm(ctx context.Context, eng *engine.Engine, sess *engine.Session, opts ...Option) (*engine.Assessment, error) {
	if sess == nil || !sess.SignedIn {
		return nil, common.ErrNotSignedIn
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(newModel(ctx, eng, sess, cfg), programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("form failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if m.lastError != nil && !common.IsRecoverable(m.lastError) && !errors.Is(m.lastError, common.ErrClassificationFailed) {
		return m.assessment, m.lastError
	}
	return m.assessment, nil
}
