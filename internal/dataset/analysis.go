package dataset

import (
	"math"
	"sort"

	"github.com/aquawatch/aquawatch/internal/waterquality"
)

type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.sum += v
	a.n++
}

func (a accumulator) mean() float64 {
	return a.sum / float64(a.n)
}

// Overview returns record, station, state, city and year coverage.
func (d *Dataset) Overview() Overview {
	o := Overview{Records: len(d.records)}
	if len(d.records) == 0 {
		return o
	}

	stations := make(map[int]struct{})
	states := make(map[string]struct{})
	cities := make(map[string]struct{})
	o.FirstYear, o.LastYear = d.records[0].Year, d.records[0].Year
	for _, r := range d.records {
		stations[r.Station.ID] = struct{}{}
		states[r.Station.State] = struct{}{}
		cities[r.Station.City] = struct{}{}
		o.FirstYear = min(o.FirstYear, r.Year)
		o.LastYear = max(o.LastYear, r.Year)
	}
	o.Stations = len(stations)
	o.States = len(states)
	o.Cities = len(cities)
	return o
}

// StateMeans returns the mean of p per state, highest first, ranked from 1.
// States with no samples of p are omitted.
func (d *Dataset) StateMeans(p waterquality.Parameter) []GroupMean {
	type key struct{ state string }
	groups := make(map[key]*accumulator)
	for _, r := range d.records {
		k := key{r.Station.State}
		if groups[k] == nil {
			groups[k] = &accumulator{}
		}
		groups[k].add(r.Value(p))
	}

	out := make([]GroupMean, 0, len(groups))
	for k, acc := range groups {
		if acc.n == 0 {
			continue
		}
		out = append(out, GroupMean{State: k.state, Mean: acc.mean(), Samples: acc.n})
	}
	return rank(out)
}

// CityMeans returns the mean of p per (city, state), highest first. A
// non-empty state restricts the result to that state.
func (d *Dataset) CityMeans(p waterquality.Parameter, state string) []GroupMean {
	type key struct{ city, state string }
	groups := make(map[key]*accumulator)
	for _, r := range d.records {
		if state != "" && r.Station.State != state {
			continue
		}
		k := key{r.Station.City, r.Station.State}
		if groups[k] == nil {
			groups[k] = &accumulator{}
		}
		groups[k].add(r.Value(p))
	}

	out := make([]GroupMean, 0, len(groups))
	for k, acc := range groups {
		if acc.n == 0 {
			continue
		}
		out = append(out, GroupMean{State: k.state, City: k.city, Mean: acc.mean(), Samples: acc.n})
	}
	return rank(out)
}

func rank(groups []GroupMean) []GroupMean {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Mean != groups[j].Mean {
			return groups[i].Mean > groups[j].Mean
		}
		if groups[i].State != groups[j].State {
			return groups[i].State < groups[j].State
		}
		return groups[i].City < groups[j].City
	})
	for i := range groups {
		groups[i].Rank = i + 1
	}
	return groups
}

// YearlyTrend returns the mean of p per year in ascending year order.
func (d *Dataset) YearlyTrend(p waterquality.Parameter, f TrendFilter) []YearMean {
	states := toSet(f.States)
	cities := toSet(f.Cities)

	years := make(map[int]*accumulator)
	for _, r := range d.records {
		if len(states) > 0 && !states[r.Station.State] {
			continue
		}
		if len(cities) > 0 && !cities[r.Station.City] {
			continue
		}
		if years[r.Year] == nil {
			years[r.Year] = &accumulator{}
		}
		years[r.Year].add(r.Value(p))
	}

	out := make([]YearMean, 0, len(years))
	for y, acc := range years {
		if acc.n == 0 {
			continue
		}
		out = append(out, YearMean{Year: y, Mean: acc.mean(), Samples: acc.n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// StationMeans returns every station's mean of all six pollutants ordered
// by station id. Selected carries the mean of p, or nil without samples.
func (d *Dataset) StationMeans(p waterquality.Parameter) []StationMean {
	type group struct {
		mean StationMean
		accs [waterquality.PredictedCount]accumulator
	}
	groups := make(map[int]*group)
	for _, r := range d.records {
		g := groups[r.Station.ID]
		if g == nil {
			g = &group{mean: StationMean{Station: r.Station}}
			groups[r.Station.ID] = g
		}
		g.mean.Records++
		for i, v := range r.Values {
			g.accs[i].add(v)
		}
	}

	params := waterquality.PredictedParameters()
	out := make([]StationMean, 0, len(groups))
	for _, g := range groups {
		g.mean.Means = make(waterquality.Values, len(params))
		for i, param := range params {
			if g.accs[i].n > 0 {
				g.mean.Means[param] = g.accs[i].mean()
			}
		}
		if v, ok := g.mean.Means[p]; ok {
			g.mean.Selected = &v
		}
		out = append(out, g.mean)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Station.ID < out[j].Station.ID })
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
