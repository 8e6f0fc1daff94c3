// Package prediction runs the encode, infer, derive and assess pipeline for a
// station and year, validating requests before they reach the model.
package prediction

import (
	"errors"
	"time"

	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/resilience"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// Accepted prediction years.
const (
	MinYear = 2000
	MaxYear = 2030
)

// Predefined errors.
var (
	ErrUnknownStation      = errors.New("station not found in catalog")
	ErrYearOutOfRange      = errors.New("year out of range")
	ErrInference           = errors.New("inference failed")
	ErrInconsistentColumns = errors.New("model columns inconsistent with station catalog")
)

// Catalog is the station lookup the pipeline validates against.
type Catalog interface {
	Lookup(id int) (geography.Station, error)
	Contains(id int) bool
	IDs() []int
}

// Evaluation is the derived and scored form of six pollutant values.
type Evaluation struct {
	Values     waterquality.Values         `json:"values"`
	Extended   waterquality.ExtendedResult `json:"extended"`
	Assessment waterquality.Assessment     `json:"assessment"`
	TDSBand    waterquality.TDSBand        `json:"tdsBand"`
	Chart      ChartSeries                 `json:"chart"`
}

// Report is the outcome of one prediction.
type Report struct {
	ID          string                        `json:"id"`
	Station     geography.Station             `json:"station"`
	Year        int                           `json:"year"`
	Prediction  waterquality.PredictionResult `json:"prediction"`
	GeneratedAt time.Time                     `json:"generatedAt"`
	Evaluation
}

// ModelInfo describes the loaded model.
type ModelInfo struct {
	Type            string                   `json:"type"`
	Features        int                      `json:"features"`
	TrainedStations int                      `json:"trainedStations"`
	Parameters      []waterquality.Parameter `json:"parameters"`
	TDSFormula      string                   `json:"tdsFormula"`

	// Health is set for models served by a remote.
	Health *resilience.Health `json:"health,omitempty"`
}
