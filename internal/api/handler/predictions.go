package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aquawatch/aquawatch/internal/api/middleware"
	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/api/response"
	"github.com/aquawatch/aquawatch/internal/prediction"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// PredictionHandler handles model-backed endpoints.
type PredictionHandler struct {
	pipeline Pipeline
	logger   zerolog.Logger
}

// NewPredictionHandler creates a new PredictionHandler.
func NewPredictionHandler(pipeline Pipeline, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{pipeline: pipeline, logger: logger}
}

// CreatePrediction handles POST /v1/predictions.
func (h *PredictionHandler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	var input models.PredictionRequest
	if err := decodeJSON(w, r, &input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var fieldErrors []models.FieldError
	if input.StationID == nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "stationId", Message: "is required", Code: "REQUIRED"})
	}
	if input.Year == nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "year", Message: "is required", Code: "REQUIRED"})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "missing required fields", fieldErrors)
		return
	}

	req := waterquality.Request{StationID: *input.StationID, Year: *input.Year}
	report, err := h.pipeline.Predict(r.Context(), req)
	switch {
	case err == nil:
		response.JSON(w, r, http.StatusOK, models.NewPrediction(report))
	case errors.Is(err, prediction.ErrYearOutOfRange):
		response.BadRequest(w, r, err.Error(), []models.FieldError{{
			Field:   "year",
			Message: fmt.Sprintf("must be between %d and %d", prediction.MinYear, prediction.MaxYear),
			Code:    "OUT_OF_RANGE",
		}})
	case errors.Is(err, prediction.ErrUnknownStation):
		response.NotFound(w, r, fmt.Sprintf("station %d not found", req.StationID))
	case errors.Is(err, prediction.ErrInference):
		h.logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Int("station_id", req.StationID).
			Int("year", req.Year).
			Msg("prediction failed")
		response.InferenceFailed(w, r, "the model could not produce a prediction")
	default:
		h.logger.Error().Err(err).Msg("unexpected prediction error")
		response.InternalError(w, r, "an unexpected error occurred")
	}
}

// CreateAssessment handles POST /v1/assessments - scores measured values without the model.
func (h *PredictionHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var input models.AssessmentRequest
	if err := decodeJSON(w, r, &input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	var (
		values      waterquality.PredictionResult
		fieldErrors []models.FieldError
	)
	for i, f := range input.Fields() {
		switch {
		case f.Value == nil:
			fieldErrors = append(fieldErrors, models.FieldError{Field: f.Name, Message: "is required", Code: "REQUIRED"})
		case math.IsNaN(*f.Value) || math.IsInf(*f.Value, 0):
			fieldErrors = append(fieldErrors, models.FieldError{Field: f.Name, Message: "must be a finite number", Code: "NOT_FINITE"})
		default:
			values[i] = *f.Value
		}
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid measurements", fieldErrors)
		return
	}

	evaluation, err := h.pipeline.AssessMeasured(values)
	switch {
	case errors.Is(err, waterquality.ErrNotFinite):
		// Finite inputs can still overflow the derived TDS sum.
		msg := "no3 + so4 + cl must stay within the range of a finite number"
		response.BadRequest(w, r, "invalid measurements", []models.FieldError{
			{Field: "no3", Message: msg, Code: "OUT_OF_RANGE"},
			{Field: "so4", Message: msg, Code: "OUT_OF_RANGE"},
			{Field: "cl", Message: msg, Code: "OUT_OF_RANGE"},
		})
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("unexpected assessment error")
		response.InternalError(w, r, "an unexpected error occurred")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewEvaluation(evaluation))
}

// GetModel handles GET /v1/model.
func (h *PredictionHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.pipeline.ModelInfo())
}
