package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// linearArtifact is the on-disk form of a LinearModel.
type linearArtifact struct {
	Type         string                                 `json:"type"`
	Targets      []string                               `json:"targets"`
	Columns      []string                               `json:"columns,omitempty"`
	Intercept    [waterquality.PredictedCount]float64   `json:"intercept"`
	Coefficients [][waterquality.PredictedCount]float64 `json:"coefficients"`
}

// LinearModel is a multi-output linear regression over the trained columns.
// Each output is intercept[k] + sum(coefficients[i][k] * feature[i]).
type LinearModel struct {
	columns      []string
	intercept    [waterquality.PredictedCount]float64
	coefficients [][waterquality.PredictedCount]float64
}

// LoadLinear reads a linear model artifact and binds it to columns.
func LoadLinear(path string, columns []string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	return ParseLinear(f, columns)
}

// ParseLinear decodes a linear model artifact.
//
// The artifact must have one coefficient row per column. When it also lists
// its own columns they must equal columns exactly, in order.
func ParseLinear(r io.Reader, columns []string) (*LinearModel, error) {
	var a linearArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decode model: %v", ErrInvalidArtifact, err)
	}
	if a.Type != "" && a.Type != string(KindLinear) {
		return nil, fmt.Errorf("%w: model type %q is not %q", ErrInvalidArtifact, a.Type, KindLinear)
	}
	if len(a.Targets) > 0 {
		want := waterquality.PredictedParameters()
		if len(a.Targets) != len(want) {
			return nil, fmt.Errorf("%w: expected %d targets, got %d", ErrInvalidArtifact, len(want), len(a.Targets))
		}
		for i, t := range a.Targets {
			if waterquality.Parameter(t) != want[i] {
				return nil, fmt.Errorf("%w: target %d is %q, want %q", ErrInvalidArtifact, i, t, want[i])
			}
		}
	}
	if len(a.Columns) > 0 && !sameColumns(a.Columns, columns) {
		return nil, fmt.Errorf("%w: model columns differ from column artifact", ErrInvalidArtifact)
	}
	if len(a.Coefficients) != len(columns) {
		return nil, fmt.Errorf("%w: %d coefficient rows for %d columns",
			ErrInvalidArtifact, len(a.Coefficients), len(columns))
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return &LinearModel{
		columns:      cols,
		intercept:    a.Intercept,
		coefficients: a.Coefficients,
	}, nil
}

// Predict implements Predictor.
func (m *LinearModel) Predict(ctx context.Context, features waterquality.FeatureVector) (waterquality.PredictionResult, error) {
	var out waterquality.PredictionResult
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if !sameColumns(features.Columns, m.columns) {
		return out, ErrFeatureMismatch
	}

	out = m.intercept
	for i, x := range features.Values {
		if x == 0 {
			continue
		}
		row := m.coefficients[i]
		for k := range out {
			out[k] += row[k] * x
		}
	}
	return out, nil
}

// ExpectedColumns implements Predictor.
func (m *LinearModel) ExpectedColumns() []string {
	cols := make([]string, len(m.columns))
	copy(cols, m.columns)
	return cols
}

// ModelType implements Describer.
func (m *LinearModel) ModelType() string {
	return "LinearRegression"
}
