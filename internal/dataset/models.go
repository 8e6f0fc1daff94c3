// Package dataset loads the historical water quality measurements and
// computes the aggregate views used for exploration.
package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// Predefined errors.
var (
	ErrUnavailable      = errors.New("historical dataset unavailable")
	ErrMalformed        = errors.New("malformed dataset")
	ErrUnknownPollutant = errors.New("unknown pollutant")
)

// DateLayout is the date format used by the dataset.
const DateLayout = "02.01.2006"

// Record is one measurement row. Missing values are NaN.
type Record struct {
	Station geography.Station
	Date    time.Time
	Year    int
	Values  waterquality.PredictionResult
}

// Value returns the measurement for a pollutant.
func (r Record) Value(p waterquality.Parameter) float64 {
	return r.Values[p.Index()]
}

// ParsePollutant parses one of the six measured pollutants.
func ParsePollutant(s string) (waterquality.Parameter, error) {
	p, err := waterquality.ParseParameter(s)
	if err != nil || !p.Predicted() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPollutant, s)
	}
	return p, nil
}

// Overview summarises the loaded dataset.
type Overview struct {
	Records   int `json:"records"`
	Stations  int `json:"stations"`
	States    int `json:"states"`
	Cities    int `json:"cities"`
	FirstYear int `json:"firstYear"`
	LastYear  int `json:"lastYear"`
}

// GroupMean is the mean of a pollutant over a group of records.
type GroupMean struct {
	Rank    int     `json:"rank"`
	State   string  `json:"state"`
	City    string  `json:"city,omitempty"`
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// YearMean is the mean of a pollutant for one calendar year.
type YearMean struct {
	Year    int     `json:"year"`
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// StationMean holds per-pollutant means for one station.
// Pollutants with no samples are omitted from Means.
type StationMean struct {
	Station  geography.Station   `json:"station"`
	Means    waterquality.Values `json:"means"`
	Selected *float64            `json:"selected"`
	Records  int                 `json:"records"`
}

// TrendFilter restricts a trend to records in any of the listed states
// and any of the listed cities. Empty lists match everything.
type TrendFilter struct {
	States []string
	Cities []string
}
