package waterquality

// TDSBaseline is the mg/L of base minerals added to the major ions.
const TDSBaseline = 50.0

// DeriveTDS estimates total dissolved solids as NO3 + SO4 + CL + TDSBaseline.
// Negative predictions are passed through unchanged.
func DeriveTDS(r PredictionResult) float64 {
	return r[IndexNO3] + r[IndexSO4] + r[IndexCL] + TDSBaseline
}

// Extend appends the derived TDS to a prediction.
func Extend(r PredictionResult) ExtendedResult {
	var e ExtendedResult
	copy(e[:], r[:])
	e[IndexTDS] = DeriveTDS(r)
	return e
}
