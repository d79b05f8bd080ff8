package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/features"
	"github.com/Veraticus/healthy-heart/internal/model"
)

// HTTPClassifier asks a remote model server for predictions.
type HTTPClassifier struct {
	httpClient *http.Client
	baseURL    string
}

type predictRequest struct {
	Columns  []string  `json:"columns"`
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Label *int `json:"label"`
}

// NewHTTPClassifier creates a classifier posting to baseURL + "/predict".
func NewHTTPClassifier(baseURL string, timeout time.Duration) (*HTTPClassifier, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: model server URL is required", common.ErrMissingConfig)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPClassifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Predict implements RiskClassifier. Failures are not retried.
func (c *HTTPClassifier) Predict(ctx context.Context, v features.Vector) (model.RiskLabel, error) {
	body, err := json.Marshal(predictRequest{
		Columns:  features.Schema[:],
		Features: v.Slice(),
	})
	if err != nil {
		return model.RiskLow, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return model.RiskLow, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.RiskLow, fmt.Errorf("%w: request failed: %v", common.ErrClassificationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RiskLow, fmt.Errorf("%w: failed to read response: %v", common.ErrClassificationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return model.RiskLow, fmt.Errorf("%w: model server error (status %d): %s", common.ErrClassificationFailed, resp.StatusCode, string(respBody))
	}

	var parsed predictResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return model.RiskLow, fmt.Errorf("%w: failed to parse response: %v", common.ErrClassificationFailed, err)
	}
	if parsed.Label == nil {
		return model.RiskLow, fmt.Errorf("%w: response has no label", common.ErrClassificationFailed)
	}

	label := model.RiskLabel(*parsed.Label)
	if !label.Valid() {
		return model.RiskLow, fmt.Errorf("%w: unexpected label %d", common.ErrClassificationFailed, *parsed.Label)
	}
	return label, nil
}
