package handler

import (
	"net/http"

	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/api/response"
	"github.com/aquawatch/aquawatch/internal/dataset"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// AnalysisHandler handles the historical dataset endpoints.
type AnalysisHandler struct {
	source DatasetSource
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(source DatasetSource) *AnalysisHandler {
	return &AnalysisHandler{source: source}
}

// Overview handles GET /v1/analysis/overview.
func (h *AnalysisHandler) Overview(w http.ResponseWriter, r *http.Request) {
	data, ok := h.loaded(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, data.Overview())
}

// StateAverages handles GET /v1/analysis/states?pollutant=.
func (h *AnalysisHandler) StateAverages(w http.ResponseWriter, r *http.Request) {
	data, p, ok := h.prepare(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, models.GroupAnalysis{
		Pollutant: p,
		Items:     groupMeans(data.StateMeans(p)),
	})
}

// CityAverages handles GET /v1/analysis/cities?pollutant=&state=.
func (h *AnalysisHandler) CityAverages(w http.ResponseWriter, r *http.Request) {
	data, p, ok := h.prepare(w, r)
	if !ok {
		return
	}
	state := r.URL.Query().Get("state")
	response.JSON(w, r, http.StatusOK, models.GroupAnalysis{
		Pollutant: p,
		State:     state,
		Items:     groupMeans(data.CityMeans(p, state)),
	})
}

// Trends handles GET /v1/analysis/trends?pollutant=&state=...&city=...
// Both state and city may repeat.
func (h *AnalysisHandler) Trends(w http.ResponseWriter, r *http.Request) {
	data, p, ok := h.prepare(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := dataset.TrendFilter{States: q["state"], Cities: q["city"]}
	years := data.YearlyTrend(p, filter)

	points := make([]models.TrendPoint, 0, len(years))
	for _, y := range years {
		points = append(points, models.TrendPoint{Year: y.Year, Mean: y.Mean, Samples: y.Samples})
	}
	response.JSON(w, r, http.StatusOK, models.TrendAnalysis{
		Pollutant: p,
		States:    nonNil(filter.States),
		Cities:    nonNil(filter.Cities),
		Points:    points,
	})
}

// StationComparison handles GET /v1/analysis/stations?pollutant=.
func (h *AnalysisHandler) StationComparison(w http.ResponseWriter, r *http.Request) {
	data, p, ok := h.prepare(w, r)
	if !ok {
		return
	}

	means := data.StationMeans(p)
	items := make([]models.StationMean, 0, len(means))
	for _, m := range means {
		items = append(items, models.StationMean{
			Station:  models.NewStation(m.Station),
			Means:    m.Means,
			Selected: m.Selected,
			Records:  m.Records,
		})
	}
	response.JSON(w, r, http.StatusOK, models.StationAnalysis{Pollutant: p, Items: items})
}

// loaded writes a 503 and reports false when the dataset did not load.
func (h *AnalysisHandler) loaded(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, bool) {
	data, err := h.source.Dataset()
	if err != nil {
		response.ServiceUnavailable(w, r, "historical dataset is unavailable")
		return nil, false
	}
	return data, true
}

// prepare resolves the dataset and the pollutant query parameter.
func (h *AnalysisHandler) prepare(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, waterquality.Parameter, bool) {
	data, ok := h.loaded(w, r)
	if !ok {
		return nil, "", false
	}

	raw := r.URL.Query().Get("pollutant")
	if raw == "" {
		response.BadRequest(w, r, "pollutant is required", []models.FieldError{
			{Field: "pollutant", Message: "is required", Code: "REQUIRED"},
		})
		return nil, "", false
	}
	p, err := dataset.ParsePollutant(raw)
	if err != nil {
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "pollutant", Message: "must be one of O2, NO3, NO2, SO4, PO4, CL", Code: "INVALID"},
		})
		return nil, "", false
	}
	return data, p, true
}

func groupMeans(groups []dataset.GroupMean) []models.GroupMean {
	out := make([]models.GroupMean, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.GroupMean{
			Rank:    g.Rank,
			State:   g.State,
			City:    g.City,
			Mean:    g.Mean,
			Samples: g.Samples,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
