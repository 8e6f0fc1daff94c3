// Package waterquality implements the feature alignment, derived metric and
// scoring steps of the water quality prediction pipeline.
//
// Everything in this package is pure: the same inputs always produce the
// same outputs, so the functions are safe to call from concurrent requests.
package waterquality

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Predefined errors.
var (
	ErrUnknownParameter = errors.New("unknown water quality parameter")
	ErrNotFinite        = errors.New("value is not finite")
)

// Parameter identifies a water quality parameter.
type Parameter string

const (
	ParameterO2  Parameter = "O2"
	ParameterNO3 Parameter = "NO3"
	ParameterNO2 Parameter = "NO2"
	ParameterSO4 Parameter = "SO4"
	ParameterPO4 Parameter = "PO4"
	ParameterCL  Parameter = "CL"
	ParameterTDS Parameter = "TDS"
)

// Positions of each parameter in PredictionResult and ExtendedResult.
const (
	IndexO2 = iota
	IndexNO3
	IndexNO2
	IndexSO4
	IndexPO4
	IndexCL
	IndexTDS
)

// Unit is the concentration unit of every parameter.
const Unit = "mg/L"

// PredictedCount is the number of values the model predicts.
const PredictedCount = 6

var parameterOrder = [...]Parameter{
	ParameterO2, ParameterNO3, ParameterNO2, ParameterSO4, ParameterPO4, ParameterCL, ParameterTDS,
}

var parameterInfo = map[Parameter]struct {
	name        string
	description string
}{
	ParameterO2:  {"Dissolved Oxygen", "Essential for aquatic life"},
	ParameterNO3: {"Nitrate", "Agricultural runoff indicator"},
	ParameterNO2: {"Nitrite", "Industrial pollution marker"},
	ParameterSO4: {"Sulfate", "Natural minerals & acid rain"},
	ParameterPO4: {"Phosphate", "Detergents & fertilizers"},
	ParameterCL:  {"Chloride", "Salinity & taste indicator"},
	ParameterTDS: {"Total Dissolved Solids", "Overall mineralization"},
}

// PredictedParameters returns the six model outputs in their fixed order.
func PredictedParameters() []Parameter {
	params := make([]Parameter, PredictedCount)
	copy(params, parameterOrder[:PredictedCount])
	return params
}

// AllParameters returns the six predicted parameters followed by TDS.
func AllParameters() []Parameter {
	params := make([]Parameter, len(parameterOrder))
	copy(params, parameterOrder[:])
	return params
}

// ParseParameter parses a parameter name, ignoring case.
func ParseParameter(s string) (Parameter, error) {
	p := Parameter(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := parameterInfo[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownParameter, s)
	}
	return p, nil
}

// Name returns the human-readable parameter name.
func (p Parameter) Name() string {
	return parameterInfo[p].name
}

// Description returns a short explanation of what the parameter indicates.
func (p Parameter) Description() string {
	return parameterInfo[p].description
}

// Index returns the position of the parameter in an ExtendedResult.
func (p Parameter) Index() int {
	for i, q := range parameterOrder {
		if q == p {
			return i
		}
	}
	return -1
}

// Predicted reports whether the parameter is a direct model output.
func (p Parameter) Predicted() bool {
	i := p.Index()
	return i >= 0 && i < PredictedCount
}

// PredictionResult holds the six model outputs in the order
// O2, NO3, NO2, SO4, PO4, CL.
type PredictionResult [PredictedCount]float64

// NewPredictionResult converts a raw model output slice.
// It fails unless exactly six values are supplied.
func NewPredictionResult(values []float64) (PredictionResult, error) {
	var r PredictionResult
	if len(values) != PredictedCount {
		return r, fmt.Errorf("expected %d predicted values, got %d", PredictedCount, len(values))
	}
	copy(r[:], values)
	return r, nil
}

// Get returns the value for a predicted parameter.
func (r PredictionResult) Get(p Parameter) (float64, bool) {
	if !p.Predicted() {
		return 0, false
	}
	return r[p.Index()], true
}

// ExtendedResult is a PredictionResult with the derived TDS appended.
type ExtendedResult [PredictedCount + 1]float64

// Get returns the value for any parameter, including TDS.
func (e ExtendedResult) Get(p Parameter) (float64, bool) {
	i := p.Index()
	if i < 0 {
		return 0, false
	}
	return e[i], true
}

// TDS returns the derived total dissolved solids.
func (e ExtendedResult) TDS() float64 {
	return e[IndexTDS]
}

// Prediction returns the six predicted values without TDS.
func (e ExtendedResult) Prediction() PredictionResult {
	var r PredictionResult
	copy(r[:], e[:PredictedCount])
	return r
}

// Values returns the extended result keyed by parameter.
func (e ExtendedResult) Values() Values {
	m := make(Values, len(e))
	for i, p := range parameterOrder {
		m[p] = e[i]
	}
	return m
}

// CheckFinite returns an error wrapping ErrNotFinite for the first NaN or
// infinite value, in parameter order.
func (e ExtendedResult) CheckFinite() error {
	for i, v := range e {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrNotFinite, parameterOrder[i], v)
		}
	}
	return nil
}

// Values maps parameters to concentrations. It encodes as a JSON object
// whose keys follow parameter order rather than alphabetical order.
type Values map[Parameter]float64

// MarshalJSON implements json.Marshaler.
func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	for _, p := range parameterOrder {
		value, ok := v[p]
		if !ok {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", p, err)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(p)))
		buf.WriteByte(':')
		buf.Write(encoded)
		n++
	}
	if n != len(v) {
		return nil, fmt.Errorf("%w in values", ErrUnknownParameter)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Request is a prediction request for a station and year.
type Request struct {
	StationID int
	Year      int
}
