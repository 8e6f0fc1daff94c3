package models

import (
	"github.com/aquawatch/aquawatch/internal/geography"
	"github.com/aquawatch/aquawatch/internal/prediction"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// PredictionRequest is the body of POST /v1/predictions.
// Fields are pointers so that a missing field can be told apart from zero.
type PredictionRequest struct {
	StationID *int `json:"stationId"`
	Year      *int `json:"year"`
}

// AssessmentRequest is the body of POST /v1/assessments.
type AssessmentRequest struct {
	O2  *float64 `json:"o2"`
	NO3 *float64 `json:"no3"`
	NO2 *float64 `json:"no2"`
	SO4 *float64 `json:"so4"`
	PO4 *float64 `json:"po4"`
	CL  *float64 `json:"cl"`
}

// Fields returns the request values keyed by JSON field name, in prediction order.
func (a AssessmentRequest) Fields() []AssessmentField {
	return []AssessmentField{
		{Name: "o2", Value: a.O2},
		{Name: "no3", Value: a.NO3},
		{Name: "no2", Value: a.NO2},
		{Name: "so4", Value: a.SO4},
		{Name: "po4", Value: a.PO4},
		{Name: "cl", Value: a.CL},
	}
}

// AssessmentField is one named value of an AssessmentRequest.
type AssessmentField struct {
	Name  string
	Value *float64
}

// Station is a monitoring station as returned by the API.
type Station struct {
	StationID int    `json:"stationId"`
	State     string `json:"state"`
	City      string `json:"city"`
	Location  string `json:"location"`
	Label     string `json:"label"`
}

// NewStation converts a catalog station.
func NewStation(s geography.Station) Station {
	return Station{
		StationID: s.ID,
		State:     s.State,
		City:      s.City,
		Location:  s.Location,
		Label:     s.Label(),
	}
}

// Evaluation is the scored form of a set of pollutant values.
type Evaluation struct {
	Values         waterquality.Values     `json:"values"`
	Unit           string                  `json:"unit"`
	Assessment     waterquality.Assessment `json:"assessment"`
	TDSBand        waterquality.TDSBand    `json:"tdsBand"`
	TDSBandLabel   string                  `json:"tdsBandLabel"`
	Summary        string                  `json:"summary"`
	Recommendation string                  `json:"recommendation"`
	Chart          prediction.ChartSeries  `json:"chart"`
}

// NewEvaluation converts a pipeline evaluation.
func NewEvaluation(e prediction.Evaluation) Evaluation {
	return Evaluation{
		Values:         e.Values,
		Unit:           waterquality.Unit,
		Assessment:     e.Assessment,
		TDSBand:        e.TDSBand,
		TDSBandLabel:   e.TDSBand.Label(),
		Summary:        e.Assessment.Summary(),
		Recommendation: e.Assessment.Recommendation(),
		Chart:          e.Chart,
	}
}

// Prediction is the response of POST /v1/predictions.
type Prediction struct {
	PredictionID string              `json:"predictionId"`
	Station      Station             `json:"station"`
	Year         int                 `json:"year"`
	GeneratedAt  Timestamp           `json:"generatedAt"`
	Raw          waterquality.Values `json:"raw"`
	Evaluation
}

// NewPrediction converts a pipeline report.
func NewPrediction(r *prediction.Report) Prediction {
	raw := make(waterquality.Values, waterquality.PredictedCount)
	for _, p := range waterquality.PredictedParameters() {
		v, _ := r.Prediction.Get(p)
		raw[p] = v
	}
	return Prediction{
		PredictionID: r.ID,
		Station:      NewStation(r.Station),
		Year:         r.Year,
		GeneratedAt:  Timestamp(r.GeneratedAt),
		Raw:          raw,
		Evaluation:   NewEvaluation(r.Evaluation),
	}
}

// ParameterInfo describes one water-quality parameter.
type ParameterInfo struct {
	Code        waterquality.Parameter `json:"code"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Unit        string                 `json:"unit"`
	Predicted   bool                   `json:"predicted"`
}

// TDSBandInfo pairs a TDS band with its display label.
type TDSBandInfo struct {
	Band  waterquality.TDSBand `json:"band"`
	Label string               `json:"label"`
}

// TierInfo pairs a tier with its summary and recommendation.
type TierInfo struct {
	Tier           waterquality.Tier `json:"tier"`
	Summary        string            `json:"summary"`
	Recommendation string            `json:"recommendation"`
}

// Enums represents the enum values used by the API.
type Enums struct {
	Parameters []ParameterInfo         `json:"parameters"`
	Tiers      []TierInfo              `json:"tiers"`
	Verdicts   []waterquality.Verdict  `json:"verdicts"`
	Severities []waterquality.Severity `json:"severities"`
	TDSBands   []TDSBandInfo           `json:"tdsBands"`
	Standards  []waterquality.Standard `json:"standards"`
	MaxScore   float64                 `json:"maxScore"`
}

// GroupAnalysis is the response of the state and city average analyses.
type GroupAnalysis struct {
	Pollutant waterquality.Parameter `json:"pollutant"`
	State     string                 `json:"state,omitempty"`
	Items     []GroupMean            `json:"items"`
}

// GroupMean is one ranked average.
type GroupMean struct {
	Rank    int     `json:"rank"`
	State   string  `json:"state"`
	City    string  `json:"city,omitempty"`
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// TrendAnalysis is the response of GET /v1/analysis/trends.
type TrendAnalysis struct {
	Pollutant waterquality.Parameter `json:"pollutant"`
	States    []string               `json:"states"`
	Cities    []string               `json:"cities"`
	Points    []TrendPoint           `json:"points"`
}

// TrendPoint is the mean of a pollutant for one year.
type TrendPoint struct {
	Year    int     `json:"year"`
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// StationAnalysis is the response of GET /v1/analysis/stations.
type StationAnalysis struct {
	Pollutant waterquality.Parameter `json:"pollutant"`
	Items     []StationMean          `json:"items"`
}

// StationMean holds the per-station averages of all predicted pollutants.
type StationMean struct {
	Station  Station             `json:"station"`
	Means    waterquality.Values `json:"means"`
	Selected *float64            `json:"selected"`
	Records  int                 `json:"records"`
}
