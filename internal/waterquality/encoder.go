package waterquality

import "strconv"

// Feature column naming used by the trained model.
const (
	YearColumn          = "year"
	StationColumnPrefix = "id_"
)

// StationColumn returns the one-hot indicator column for a station.
func StationColumn(stationID int) string {
	return StationColumnPrefix + strconv.Itoa(stationID)
}

// FeatureVector is an ordered set of named feature values.
// Columns and Values always have the same length.
type FeatureVector struct {
	Columns []string
	Values  []float64
}

// Len returns the number of features.
func (v FeatureVector) Len() int {
	return len(v.Columns)
}

// Value returns the value of a named column.
func (v FeatureVector) Value(column string) (float64, bool) {
	for i, c := range v.Columns {
		if c == column {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Map returns the vector keyed by column name.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.Columns))
	for i, c := range v.Columns {
		m[c] = v.Values[i]
	}
	return m
}

// Encode builds the feature vector the model was trained on.
//
// The request is expanded into a year field and a one-hot station indicator,
// then projected onto knownColumns: columns the request does not produce are
// zero, and anything not in knownColumns is dropped. The result always has
// exactly the names and order of knownColumns. A station without an indicator
// column encodes as all zeros.
func Encode(req Request, knownColumns []string) FeatureVector {
	raw := map[string]float64{
		YearColumn:                   float64(req.Year),
		StationColumn(req.StationID): 1,
	}

	v := FeatureVector{
		Columns: make([]string, len(knownColumns)),
		Values:  make([]float64, len(knownColumns)),
	}
	copy(v.Columns, knownColumns)
	for i, col := range knownColumns {
		v.Values[i] = raw[col]
	}
	return v
}
