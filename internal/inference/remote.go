package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/aquawatch/aquawatch/internal/resilience"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

type remoteRequest struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

type remoteResponse struct {
	Predictions []float64 `json:"predictions"`
	Model       string    `json:"model,omitempty"`
}

// RemoteModel delegates inference to a model server.
//
// It POSTs {"columns": [...], "values": [...]} to <base>/predict and expects
// {"predictions": [six floats]} back.
type RemoteModel struct {
	client  *resilience.Client
	url     string
	columns []string
}

// NewRemote creates a RemoteModel for the server at baseURL.
func NewRemote(baseURL string, columns []string, client *resilience.Client) (*RemoteModel, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: model server URL is required", ErrInvalidArtifact)
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &RemoteModel{
		client:  client,
		url:     strings.TrimRight(baseURL, "/") + "/predict",
		columns: cols,
	}, nil
}

// Predict implements Predictor.
func (m *RemoteModel) Predict(ctx context.Context, features waterquality.FeatureVector) (waterquality.PredictionResult, error) {
	var out waterquality.PredictionResult
	if !sameColumns(features.Columns, m.columns) {
		return out, ErrFeatureMismatch
	}

	var resp remoteResponse
	req := remoteRequest{Columns: features.Columns, Values: features.Values}
	if err := m.client.PostJSON(ctx, m.url, req, &resp); err != nil {
		return out, fmt.Errorf("remote inference: %w", err)
	}

	out, err := waterquality.NewPredictionResult(resp.Predictions)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
	}
	return out, nil
}

// ExpectedColumns implements Predictor.
func (m *RemoteModel) ExpectedColumns() []string {
	cols := make([]string, len(m.columns))
	copy(cols, m.columns)
	return cols
}

// ModelType implements Describer.
func (m *RemoteModel) ModelType() string {
	return "Remote"
}

// Health implements HealthReporter.
func (m *RemoteModel) Health() resilience.Health {
	return m.client.Health()
}
