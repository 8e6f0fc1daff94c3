package handler

import (
	"net/http"

	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/api/response"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	catalog StationCatalog
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(catalog StationCatalog) *MetadataHandler {
	return &MetadataHandler{catalog: catalog}
}

// ListStates handles GET /v1/metadata/states.
func (h *MetadataHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.NewList(h.catalog.States()))
}

// ListCities handles GET /v1/metadata/cities?state=.
func (h *MetadataHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	response.JSON(w, r, http.StatusOK, models.NewList(h.catalog.Cities(state)))
}

// GetEnums handles GET /v1/metadata/enums - get enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, enums())
}

func enums() models.Enums {
	params := waterquality.AllParameters()
	e := models.Enums{
		Parameters: make([]models.ParameterInfo, 0, len(params)),
		Verdicts: []waterquality.Verdict{
			waterquality.VerdictPass,
			waterquality.VerdictPartial,
			waterquality.VerdictFail,
		},
		Severities: []waterquality.Severity{
			waterquality.SeverityNone,
			waterquality.SeverityNotice,
			waterquality.SeverityWarning,
			waterquality.SeverityCritical,
		},
		Standards: waterquality.Standards(),
		MaxScore:  waterquality.MaxScore,
	}

	for _, p := range params {
		e.Parameters = append(e.Parameters, models.ParameterInfo{
			Code:        p,
			Name:        p.Name(),
			Description: p.Description(),
			Unit:        waterquality.Unit,
			Predicted:   p.Predicted(),
		})
	}

	for _, t := range []waterquality.Tier{waterquality.TierSafe, waterquality.TierConditional, waterquality.TierUnsafe} {
		e.Tiers = append(e.Tiers, models.TierInfo{
			Tier:           t,
			Summary:        t.Summary(),
			Recommendation: t.Recommendation(),
		})
	}

	for _, b := range []waterquality.TDSBand{
		waterquality.TDSLowMineralization,
		waterquality.TDSOptimal,
		waterquality.TDSAcceptable,
		waterquality.TDSPoorTaste,
		waterquality.TDSUnacceptable,
	} {
		e.TDSBands = append(e.TDSBands, models.TDSBandInfo{Band: b, Label: b.Label()})
	}
	return e
}
