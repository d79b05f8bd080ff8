package tui

import "github.com/Veraticus/healthy-heart/internal/engine"

// assessmentMsg carries the result of a submitted form.
type assessmentMsg struct {
	err        error
	assessment *engine.Assessment
}
