// Package model is the HTTP client for the trained classifier, which runs as
// a separate inference service exported by the offline training pipeline.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
)

// Client implements domain.Classifier against the inference service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an inference client. baseURL is the service root, without
// a trailing slash.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// predictResponse mirrors the inference service's /predict payload.
type predictResponse struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Predict sends the feature vector to the inference service and returns the
// predicted label with the highest class probability as confidence.
func (c *Client) Predict(ctx context.Context, f domain.FeatureVector) (domain.ModelPrediction, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return domain.ModelPrediction{}, fmt.Errorf("encode features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return domain.ModelPrediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ModelPrediction{}, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return domain.ModelPrediction{}, fmt.Errorf("inference service error: status %d: %s", resp.StatusCode, respBody)
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return domain.ModelPrediction{}, fmt.Errorf("decode response: %w", err)
	}

	if pr.Prediction == "" {
		return domain.ModelPrediction{}, fmt.Errorf("inference service returned no label")
	}

	return domain.ModelPrediction{
		Label:      pr.Prediction,
		Confidence: confidenceFrom(pr),
	}, nil
}

// confidenceFrom prefers the maximum class probability when the service
// reports the full distribution, and falls back to its summary confidence
// field otherwise. No renormalization.
func confidenceFrom(pr predictResponse) float64 {
	if len(pr.Probabilities) == 0 {
		return pr.Confidence
	}
	best := 0.0
	for _, p := range pr.Probabilities {
		if p > best {
			best = p
		}
	}
	return best
}
