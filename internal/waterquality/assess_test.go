package waterquality_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/waterquality"
)

func TestAssess_AllPass(t *testing.T) {
	a := waterquality.Assess(waterquality.ExtendedResult{7.0, 10, 1, 50, 0.05, 100, 210})

	assert.Equal(t, 7.0, a.TotalScore)
	assert.Equal(t, 7.0, a.MaxScore)
	assert.Equal(t, 100.0, a.Percentage)
	assert.Empty(t, a.Issues)
	assert.NotNil(t, a.Issues)
	assert.Equal(t, waterquality.TierSafe, a.Tier)
	assert.Equal(t, "SAFE TO DRINK - Water meets drinking standards", a.Summary())

	require.Len(t, a.Parameters, 7)
	for _, p := range a.Parameters {
		assert.Equal(t, waterquality.VerdictPass, p.Verdict, p.Parameter)
		assert.Equal(t, waterquality.SeverityNone, p.Severity)
	}
	assert.Equal(t, "Excellent oxygen levels - supports aquatic life", a.Parameters[0].Message)
}

func TestAssess_TwoFailuresConditional(t *testing.T) {
	a := waterquality.Assess(waterquality.ExtendedResult{3.0, 50, 1, 50, 0.05, 100, 210})

	assert.Equal(t, 5.0, a.TotalScore)
	assert.Equal(t, []string{"Insufficient dissolved oxygen", "Nitrate exceeds safe limits"}, a.Issues)
	assert.Equal(t, waterquality.TierConditional, a.Tier)
	assert.Equal(t, "Water is generally safe but may benefit from filtration", a.Recommendation())
	assert.InDelta(t, 71.43, a.Percentage, 0.01)
}

func TestAssess_FiveFailuresUnsafe(t *testing.T) {
	a := waterquality.Assess(waterquality.ExtendedResult{1.0, 100, 10, 300, 1.0, 100, 210})

	assert.Len(t, a.Issues, 5)
	assert.Equal(t, 2.0, a.TotalScore)
	assert.Equal(t, waterquality.TierUnsafe, a.Tier)
}

func TestAssess_Tiers(t *testing.T) {
	tests := []struct {
		name   string
		input  waterquality.ExtendedResult
		score  float64
		issues int
		want   waterquality.Tier
	}{
		{
			name:  "partials without issues stay safe",
			input: waterquality.ExtendedResult{5.0, 10, 1, 50, 0.05, 100, 700},
			score: 6.0,
			want:  waterquality.TierSafe,
		},
		{
			name:   "single issue with high score is conditional",
			input:  waterquality.ExtendedResult{7.0, 10, 1, 50, 0.5, 100, 210},
			score:  6.0,
			issues: 1,
			want:   waterquality.TierConditional,
		},
		{
			name:   "two issues below sixty percent is unsafe",
			input:  waterquality.ExtendedResult{5.0, 50, 5, 50, 0.05, 100, 700},
			score:  4.0,
			issues: 2,
			want:   waterquality.TierUnsafe,
		},
		{
			name:   "three issues is unsafe",
			input:  waterquality.ExtendedResult{7.0, 50, 5, 250, 0.05, 100, 210},
			score:  4.0,
			issues: 3,
			want:   waterquality.TierUnsafe,
		},
		{
			name:   "everything fails",
			input:  waterquality.ExtendedResult{0, 100, 10, 300, 1, 300, 2000},
			score:  0,
			issues: 7,
			want:   waterquality.TierUnsafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := waterquality.Assess(tt.input)
			assert.Equal(t, tt.score, a.TotalScore)
			assert.Len(t, a.Issues, tt.issues)
			assert.Equal(t, tt.want, a.Tier)
		})
	}
}

func TestAssess_PhosphateIsWarning(t *testing.T) {
	a := waterquality.Assess(waterquality.ExtendedResult{7.0, 10, 1, 50, 0.5, 100, 210})

	po4 := a.Parameters[waterquality.IndexPO4]
	assert.Equal(t, waterquality.VerdictFail, po4.Verdict)
	assert.Equal(t, waterquality.SeverityWarning, po4.Severity)
	assert.Equal(t, "Phosphate levels elevated", po4.Issue)
	assert.Contains(t, po4.Message, "Elevated")

	no3 := waterquality.Assess(waterquality.ExtendedResult{7.0, 50, 1, 50, 0.05, 100, 210}).Parameters[waterquality.IndexNO3]
	assert.Equal(t, waterquality.SeverityCritical, no3.Severity)
}

func TestStandard_Boundaries(t *testing.T) {
	std := waterquality.Standards()
	require.Len(t, std, 7)

	tests := []struct {
		param waterquality.Parameter
		value float64
		want  waterquality.Verdict
	}{
		{waterquality.ParameterO2, 6.0, waterquality.VerdictPass},
		{waterquality.ParameterO2, 5.99, waterquality.VerdictPartial},
		{waterquality.ParameterO2, 4.0, waterquality.VerdictPartial},
		{waterquality.ParameterO2, 3.99, waterquality.VerdictFail},
		{waterquality.ParameterNO3, 45.0, waterquality.VerdictPass},
		{waterquality.ParameterNO3, 45.01, waterquality.VerdictFail},
		{waterquality.ParameterNO2, 3.0, waterquality.VerdictPass},
		{waterquality.ParameterNO2, 3.01, waterquality.VerdictFail},
		{waterquality.ParameterSO4, 200.0, waterquality.VerdictPass},
		{waterquality.ParameterSO4, 200.5, waterquality.VerdictFail},
		{waterquality.ParameterPO4, 0.1, waterquality.VerdictPass},
		{waterquality.ParameterPO4, 0.11, waterquality.VerdictFail},
		{waterquality.ParameterCL, 250.0, waterquality.VerdictPass},
		{waterquality.ParameterCL, 250.1, waterquality.VerdictFail},
		{waterquality.ParameterTDS, 500.0, waterquality.VerdictPass},
		{waterquality.ParameterTDS, 1000.0, waterquality.VerdictPartial},
		{waterquality.ParameterTDS, 1000.1, waterquality.VerdictFail},
	}

	for _, tt := range tests {
		s := std[tt.param.Index()]
		require.Equal(t, tt.param, s.Parameter)
		assert.Equal(t, tt.want, s.Evaluate(tt.value), "%s=%v", tt.param, tt.value)
	}
}

func TestAssess_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		var e waterquality.ExtendedResult
		for j := range e {
			e[j] = rng.Float64()*1200 - 100
		}
		e[waterquality.IndexO2] = rng.Float64() * 10
		e[waterquality.IndexPO4] = rng.Float64() * 0.3

		a := waterquality.Assess(e)
		assert.Equal(t, a, waterquality.Assess(e))
		assert.GreaterOrEqual(t, a.TotalScore, 0.0)
		assert.LessOrEqual(t, a.TotalScore, 7.0)

		var sum float64
		fails := 0
		for _, p := range a.Parameters {
			sum += p.Contribution
			if p.Verdict == waterquality.VerdictFail {
				fails++
			}
		}
		assert.Equal(t, sum, a.TotalScore)
		assert.Len(t, a.Issues, fails)

		if a.Tier == waterquality.TierSafe {
			assert.Empty(t, a.Issues)
		}
		if len(a.Issues) > 2 {
			assert.Equal(t, waterquality.TierUnsafe, a.Tier)
		}
	}
}

func TestClassifyTDS(t *testing.T) {
	tests := []struct {
		tds   float64
		want  waterquality.TDSBand
		label string
	}{
		{-10, waterquality.TDSLowMineralization, "Low mineralization"},
		{149.9, waterquality.TDSLowMineralization, "Low mineralization"},
		{150, waterquality.TDSOptimal, "Optimal for drinking"},
		{300, waterquality.TDSAcceptable, "Acceptable"},
		{500, waterquality.TDSPoorTaste, "Poor taste"},
		{1000, waterquality.TDSUnacceptable, "Unacceptable for drinking"},
	}

	for _, tt := range tests {
		band := waterquality.ClassifyTDS(tt.tds)
		assert.Equal(t, tt.want, band, "tds=%v", tt.tds)
		assert.Equal(t, tt.label, band.Label())
	}
}
