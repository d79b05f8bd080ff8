package classifier

import (
	"context"
	"fmt"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/config"
	"github.com/Veraticus/healthy-heart/internal/features"
	"github.com/Veraticus/healthy-heart/internal/model"
)

// RiskClassifier predicts a risk label for one feature vector.
type RiskClassifier interface {
	Predict(ctx context.Context, v features.Vector) (model.RiskLabel, error)
}

// New creates the classifier selected by cfg.Provider.
func New(cfg config.ClassifierConfig) (RiskClassifier, error) {
	switch cfg.Provider {
	case config.ProviderLinear:
		return LoadLinearModel(cfg.ModelPath)
	case config.ProviderHTTP:
		return NewHTTPClassifier(cfg.URL, cfg.Timeout)
	default:
		return nil, fmt.Errorf("%w: unsupported classifier provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}
}
