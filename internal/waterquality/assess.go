package waterquality

// MaxScore is the highest achievable quality score.
const MaxScore = 7.0

// Tier thresholds as fractions of MaxScore.
const (
	safeRatio        = 0.85
	conditionalRatio = 0.60
	conditionalLimit = 2
)

// Verdict is the outcome of checking one parameter against its standard.
type Verdict string

const (
	VerdictPass    Verdict = "PASS"
	VerdictPartial Verdict = "PARTIAL"
	VerdictFail    Verdict = "FAIL"
)

// Contribution returns the score contributed by the verdict.
func (v Verdict) Contribution() float64 {
	switch v {
	case VerdictPass:
		return 1
	case VerdictPartial:
		return 0.5
	default:
		return 0
	}
}

// Severity grades how a parameter result should be presented.
type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityNotice   Severity = "NOTICE"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Tier is the overall drinking-safety classification.
type Tier string

const (
	TierSafe        Tier = "SAFE"
	TierConditional Tier = "CONDITIONAL"
	TierUnsafe      Tier = "UNSAFE"
)

// Summary returns a one-line verdict for the tier.
func (t Tier) Summary() string {
	switch t {
	case TierSafe:
		return "SAFE TO DRINK - Water meets drinking standards"
	case TierConditional:
		return "CONDITIONAL DRINKING - Minor treatment recommended"
	default:
		return "NOT SAFE TO DRINK - Treatment required"
	}
}

// Recommendation returns advice for consumers of water in the tier.
func (t Tier) Recommendation() string {
	switch t {
	case TierSafe:
		return "This water is suitable for human consumption"
	case TierConditional:
		return "Water is generally safe but may benefit from filtration"
	default:
		return "This water requires treatment before consumption"
	}
}

// Standard is the drinking-water rule applied to one parameter.
//
// For a HigherIsBetter standard the value passes when it is at least
// PassLimit; otherwise it passes when at most PassLimit. HasPartial enables
// a half-credit band bounded by PartialLimit.
type Standard struct {
	Parameter      Parameter `json:"parameter"`
	HigherIsBetter bool      `json:"higherIsBetter"`
	PassLimit      float64   `json:"passLimit"`
	HasPartial     bool      `json:"hasPartial"`
	PartialLimit   float64   `json:"partialLimit,omitempty"`
	Issue          string    `json:"issue"`
	FailSeverity   Severity  `json:"failSeverity"`

	passMessage    string
	partialMessage string
	failMessage    string
}

var standards = [...]Standard{
	{
		Parameter: ParameterO2, HigherIsBetter: true,
		PassLimit: 6.0, HasPartial: true, PartialLimit: 4.0,
		Issue: "Insufficient dissolved oxygen", FailSeverity: SeverityCritical,
		passMessage:    "Excellent oxygen levels - supports aquatic life",
		partialMessage: "Adequate oxygen levels",
		failMessage:    "Low oxygen levels - poor water quality",
	},
	{
		Parameter: ParameterNO3, PassLimit: 45.0,
		Issue: "Nitrate exceeds safe limits", FailSeverity: SeverityCritical,
		passMessage: "Safe nitrate levels",
		failMessage: "High nitrate levels - health risk",
	},
	{
		Parameter: ParameterNO2, PassLimit: 3.0,
		Issue: "Nitrite exceeds safe limits", FailSeverity: SeverityCritical,
		passMessage: "Safe nitrite levels",
		failMessage: "High nitrite levels - health risk",
	},
	{
		Parameter: ParameterSO4, PassLimit: 200.0,
		Issue: "Sulfate exceeds recommended limits", FailSeverity: SeverityCritical,
		passMessage: "Acceptable sulfate levels",
		failMessage: "High sulfate levels - may cause digestive issues",
	},
	{
		Parameter: ParameterPO4, PassLimit: 0.1,
		Issue: "Phosphate levels elevated", FailSeverity: SeverityWarning,
		passMessage: "Low phosphate levels",
		failMessage: "Elevated phosphate levels - may indicate pollution",
	},
	{
		Parameter: ParameterCL, PassLimit: 250.0,
		Issue: "Chloride exceeds taste threshold", FailSeverity: SeverityCritical,
		passMessage: "Acceptable chloride levels",
		failMessage: "High chloride levels - taste and corrosion issues",
	},
	{
		Parameter: ParameterTDS, PassLimit: 500.0, HasPartial: true, PartialLimit: 1000.0,
		Issue: "TDS exceeds acceptable limits", FailSeverity: SeverityCritical,
		passMessage:    "Excellent TDS levels - ideal for drinking",
		partialMessage: "Acceptable TDS levels - drinkable but not ideal",
		failMessage:    "High TDS levels - poor taste, may require treatment",
	},
}

// Standards returns the rules applied by Assess, in parameter order.
func Standards() []Standard {
	out := make([]Standard, len(standards))
	copy(out, standards[:])
	return out
}

// Evaluate grades a single value against the standard.
// A NaN value never satisfies a limit and therefore fails.
func (s Standard) Evaluate(value float64) Verdict {
	within := func(limit float64) bool {
		if s.HigherIsBetter {
			return value >= limit
		}
		return value <= limit
	}
	switch {
	case within(s.PassLimit):
		return VerdictPass
	case s.HasPartial && within(s.PartialLimit):
		return VerdictPartial
	default:
		return VerdictFail
	}
}

func (s Standard) result(value float64) ParameterAssessment {
	verdict := s.Evaluate(value)
	pa := ParameterAssessment{
		Parameter:    s.Parameter,
		Name:         s.Parameter.Name(),
		Value:        value,
		Verdict:      verdict,
		Contribution: verdict.Contribution(),
	}
	switch verdict {
	case VerdictPass:
		pa.Severity = SeverityNone
		pa.Message = s.passMessage
	case VerdictPartial:
		pa.Severity = SeverityNotice
		pa.Message = s.partialMessage
	default:
		pa.Severity = s.FailSeverity
		pa.Message = s.failMessage
		pa.Issue = s.Issue
	}
	return pa
}

// ParameterAssessment is the graded result for one parameter.
type ParameterAssessment struct {
	Parameter    Parameter `json:"parameter"`
	Name         string    `json:"name"`
	Value        float64   `json:"value"`
	Verdict      Verdict   `json:"verdict"`
	Contribution float64   `json:"contribution"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	Issue        string    `json:"issue,omitempty"`
}

// Assessment is the full quality verdict for an extended result.
type Assessment struct {
	Parameters []ParameterAssessment `json:"parameters"`
	TotalScore float64               `json:"totalScore"`
	MaxScore   float64               `json:"maxScore"`
	Percentage float64               `json:"percentage"`
	Issues     []string              `json:"issues"`
	Tier       Tier                  `json:"tier"`
}

// Summary returns the tier summary line.
func (a Assessment) Summary() string {
	return a.Tier.Summary()
}

// Recommendation returns the tier recommendation.
func (a Assessment) Recommendation() string {
	return a.Tier.Recommendation()
}

// Assess scores all seven parameters and assigns a tier.
//
// PASS earns 1 point, PARTIAL 0.5 and FAIL 0. Every FAIL records an issue in
// parameter order. The tier is SAFE when there are no issues and the score is
// at least 85% of MaxScore, CONDITIONAL when there are at most two issues and
// the score is at least 60%, and UNSAFE otherwise.
func Assess(e ExtendedResult) Assessment {
	a := Assessment{
		Parameters: make([]ParameterAssessment, 0, len(standards)),
		Issues:     make([]string, 0),
		MaxScore:   MaxScore,
	}
	for i, s := range standards {
		pa := s.result(e[i])
		a.Parameters = append(a.Parameters, pa)
		a.TotalScore += pa.Contribution
		if pa.Issue != "" {
			a.Issues = append(a.Issues, pa.Issue)
		}
	}

	ratio := a.TotalScore / MaxScore
	a.Percentage = ratio * 100

	switch {
	case len(a.Issues) == 0 && ratio >= safeRatio:
		a.Tier = TierSafe
	case len(a.Issues) <= conditionalLimit && ratio >= conditionalRatio:
		a.Tier = TierConditional
	default:
		a.Tier = TierUnsafe
	}
	return a
}

// TDSBand is an informational classification of a TDS value.
type TDSBand string

const (
	TDSLowMineralization TDSBand = "LOW_MINERALIZATION"
	TDSOptimal           TDSBand = "OPTIMAL"
	TDSAcceptable        TDSBand = "ACCEPTABLE"
	TDSPoorTaste         TDSBand = "POOR_TASTE"
	TDSUnacceptable      TDSBand = "UNACCEPTABLE"
)

// ClassifyTDS places a TDS value into its band.
func ClassifyTDS(tds float64) TDSBand {
	switch {
	case tds < 150:
		return TDSLowMineralization
	case tds < 300:
		return TDSOptimal
	case tds < 500:
		return TDSAcceptable
	case tds < 1000:
		return TDSPoorTaste
	default:
		return TDSUnacceptable
	}
}

// Label returns the display label of the band.
func (b TDSBand) Label() string {
	switch b {
	case TDSLowMineralization:
		return "Low mineralization"
	case TDSOptimal:
		return "Optimal for drinking"
	case TDSAcceptable:
		return "Acceptable"
	case TDSPoorTaste:
		return "Poor taste"
	default:
		return "Unacceptable for drinking"
	}
}
