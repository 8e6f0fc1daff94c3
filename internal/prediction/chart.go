package prediction

import "github.com/aquawatch/aquawatch/internal/waterquality"

// chartColors is the bar colour for each parameter, in parameter order.
var chartColors = [...]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#17becf",
}

// ChartSeries is the data behind a bar chart of the extended values.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
	Unit   string    `json:"unit"`
}

// BarChart builds the bar series for an extended result.
func BarChart(e waterquality.ExtendedResult) ChartSeries {
	params := waterquality.AllParameters()
	c := ChartSeries{
		Labels: make([]string, len(params)),
		Values: make([]float64, len(params)),
		Colors: make([]string, len(params)),
		Unit:   waterquality.Unit,
	}
	for i, p := range params {
		c.Labels[i] = string(p)
		c.Values[i] = e[i]
		c.Colors[i] = chartColors[i]
	}
	return c
}
