package engine

import (
	"context"
	"sync"

	"github.com/Veraticus/healthy-heart/internal/features"
	"github.com/Veraticus/healthy-heart/internal/model"
)

// MockClassifier is a test implementation of classifier.RiskClassifier.
// It returns a fixed label and records every vector it is given.
type MockClassifier struct {
	Err   error
	calls []features.Vector
	Label model.RiskLabel
	mu    sync.Mutex
}

// NewMockClassifier creates a mock that always answers label.
func NewMockClassifier(label model.RiskLabel) *MockClassifier {
	return &MockClassifier{Label: label}
}

// Predict records v and returns the configured label or error.
func (m *MockClassifier) Predict(_ context.Context, v features.Vector) (model.RiskLabel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, v)
	if m.Err != nil {
		return model.RiskLow, m.Err
	}
	return m.Label, nil
}

// Calls returns the vectors seen so far.
func (m *MockClassifier) Calls() []features.Vector {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]features.Vector, len(m.calls))
	copy(out, m.calls)
	return out
}
