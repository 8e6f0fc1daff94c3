// Package inference loads the trained pollutant model and exposes it as a
// Predictor. The model itself is opaque: callers only pass feature vectors
// in and read six predicted values out.
package inference

import (
	"context"
	"errors"

	"github.com/aquawatch/aquawatch/internal/resilience"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// Predefined errors.
var (
	ErrInvalidArtifact   = errors.New("invalid model artifact")
	ErrFeatureMismatch   = errors.New("feature vector does not match trained columns")
	ErrInvalidPrediction = errors.New("model returned an invalid prediction")
	ErrUnknownKind       = errors.New("unknown model kind")
)

// Kind selects the model implementation.
type Kind string

const (
	KindLinear Kind = "linear"
	KindRemote Kind = "remote"
)

// Predictor is a loaded model.
type Predictor interface {
	// Predict returns the six pollutant values for an encoded feature vector.
	Predict(ctx context.Context, features waterquality.FeatureVector) (waterquality.PredictionResult, error)

	// ExpectedColumns returns the ordered column names the model was trained on.
	ExpectedColumns() []string
}

// Describer is implemented by predictors that can name their model type.
type Describer interface {
	ModelType() string
}

// HealthReporter is implemented by predictors that depend on a remote.
type HealthReporter interface {
	Health() resilience.Health
}

// Info summarises a loaded predictor.
type Info struct {
	Type     string `json:"type"`
	Features int    `json:"features"`
}

// Describe returns Info for any predictor.
func Describe(p Predictor) Info {
	info := Info{Type: "unknown", Features: len(p.ExpectedColumns())}
	if d, ok := p.(Describer); ok {
		info.Type = d.ModelType()
	}
	return info
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
