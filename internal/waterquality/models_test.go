package waterquality_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/waterquality"
)

func TestValues_MarshalJSON_ParameterOrder(t *testing.T) {
	ext := waterquality.Extend(waterquality.PredictionResult{7, 10, 1, 50, 0.05, 100})

	b, err := json.Marshal(ext.Values())
	require.NoError(t, err)

	assert.Equal(t, `{"O2":7,"NO3":10,"NO2":1,"SO4":50,"PO4":0.05,"CL":100,"TDS":210}`, string(b))
}

func TestValues_MarshalJSON_Subset(t *testing.T) {
	v := waterquality.Values{waterquality.ParameterCL: 12.5, waterquality.ParameterO2: 6}

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"O2":6,"CL":12.5}`, string(b))

	var decoded waterquality.Values
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, v, decoded)
}

func TestValues_MarshalJSON_Errors(t *testing.T) {
	_, err := json.Marshal(waterquality.Values{"PH": 7})
	assert.ErrorIs(t, err, waterquality.ErrUnknownParameter)

	_, err = json.Marshal(waterquality.Values{waterquality.ParameterTDS: math.Inf(1)})
	assert.Error(t, err)
}

func TestExtendedResult_CheckFinite(t *testing.T) {
	tests := []struct {
		name    string
		result  waterquality.PredictionResult
		wantErr string
	}{
		{
			name:   "ordinary values",
			result: waterquality.PredictionResult{7, 10, 1, 50, 0.05, 100},
		},
		{
			name:    "TDS overflows from finite ions",
			result:  waterquality.PredictionResult{7, 1e308, 1, 1e308, 0.05, 1e308},
			wantErr: "TDS = +Inf",
		},
		{
			name:    "NaN input reported before TDS",
			result:  waterquality.PredictionResult{math.NaN(), 1, 1, 1, 1, 1},
			wantErr: "O2 = NaN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := waterquality.Extend(tt.result).CheckFinite()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, waterquality.ErrNotFinite)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
