package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/api/response"
	"github.com/aquawatch/aquawatch/internal/geography"
)

// StationHandler handles the station catalog endpoints.
type StationHandler struct {
	catalog StationCatalog
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(catalog StationCatalog) *StationHandler {
	return &StationHandler{catalog: catalog}
}

// ListStations handles GET /v1/stations?state=&city=.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stations := h.catalog.Stations(geography.Filter{
		State: q.Get("state"),
		City:  q.Get("city"),
	})

	items := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		items = append(items, models.NewStation(s))
	}
	response.JSON(w, r, http.StatusOK, models.NewList(items))
}

// GetStation handles GET /v1/stations/{stationId}.
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "stationId")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		response.BadRequest(w, r, "invalid station id", []models.FieldError{
			{Field: "stationId", Message: "must be a positive integer", Code: "INVALID"},
		})
		return
	}

	station, err := h.catalog.Lookup(id)
	if errors.Is(err, geography.ErrStationNotFound) {
		response.NotFound(w, r, fmt.Sprintf("station %d not found", id))
		return
	}
	if err != nil {
		response.InternalError(w, r, "failed to look up station")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewStation(station))
}
