package prediction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/prediction"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

func TestCheckColumns(t *testing.T) {
	catalog := testCatalog(t)

	untrained, err := prediction.CheckColumns([]string{"year", "id_1", "id_3"}, catalog)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, untrained)

	untrained, err = prediction.CheckColumns([]string{"id_2", "year", "id_1", "id_3"}, catalog)
	require.NoError(t, err)
	assert.Empty(t, untrained)
}

func TestCheckColumns_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"empty", nil},
		{"missing year", []string{"id_1", "id_2"}},
		{"duplicate", []string{"year", "id_1", "id_1"}},
		{"unexpected name", []string{"year", "station_1"}},
		{"non numeric id", []string{"year", "id_abc"}},
		{"padded id", []string{"year", "id_01"}},
		{"zero id", []string{"year", "id_0"}},
		{"station not in catalog", []string{"year", "id_1", "id_9999"}},
	}

	catalog := testCatalog(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prediction.CheckColumns(tt.columns, catalog)
			assert.ErrorIs(t, err, prediction.ErrInconsistentColumns)
		})
	}
}

func TestBarChart(t *testing.T) {
	c := prediction.BarChart(waterquality.ExtendedResult{1, 2, 3, 4, 5, 6, 7})

	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, c.Values)
	assert.Equal(t, []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#17becf"}, c.Colors)
	assert.Equal(t, "mg/L", c.Unit)
}
