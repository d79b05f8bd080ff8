package classifier

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/features"
	"github.com/Veraticus/healthy-heart/internal/model"
	"gopkg.in/yaml.v3"
)

const defaultThreshold = 0.5

// LinearModel is a logistic model over the feature schema.
type LinearModel struct {
	Columns   []string  `yaml:"columns"`
	Weights   []float64 `yaml:"weights"`
	Intercept float64   `yaml:"intercept"`
	Threshold float64   `yaml:"threshold"`
}

// LoadLinearModel reads a coefficient file and checks it against the schema.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read model file: %v", common.ErrMissingConfig, err)
	}
	return ParseLinearModel(data)
}

// ParseLinearModel decodes a YAML coefficient document.
func ParseLinearModel(data []byte) (*LinearModel, error) {
	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model file: %v", common.ErrInvalidConfig, err)
	}
	if m.Threshold == 0 {
		m.Threshold = defaultThreshold
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate ensures the model was fitted on the same column order.
func (m *LinearModel) Validate() error {
	if len(m.Columns) != features.Width {
		return fmt.Errorf("%w: model has %d columns, schema has %d", common.ErrInvalidConfig, len(m.Columns), features.Width)
	}
	for i, name := range m.Columns {
		if name != features.Schema[i] {
			return fmt.Errorf("%w: model column %d is %q, schema expects %q", common.ErrInvalidConfig, i, name, features.Schema[i])
		}
	}
	if len(m.Weights) != features.Width {
		return fmt.Errorf("%w: model has %d weights, schema has %d", common.ErrInvalidConfig, len(m.Weights), features.Width)
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("%w: threshold must be in (0, 1)", common.ErrInvalidConfig)
	}
	return nil
}

// Probability returns the modelled probability of high risk.
func (m *LinearModel) Probability(v features.Vector) float64 {
	z := m.Intercept
	for i, w := range m.Weights {
		z += w * v[i]
	}
	return 1 / (1 + math.Exp(-z))
}

// Predict implements RiskClassifier.
func (m *LinearModel) Predict(ctx context.Context, v features.Vector) (model.RiskLabel, error) {
	if err := ctx.Err(); err != nil {
		return model.RiskLow, err
	}
	if m.Probability(v) >= m.Threshold {
		return model.RiskHigh, nil
	}
	return model.RiskLow, nil
}
