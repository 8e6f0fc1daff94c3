package response_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquawatch/aquawatch/internal/api/middleware"
	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/api/response"
	"github.com/aquawatch/aquawatch/internal/waterquality"
)

// serve runs write behind the RequestID middleware so responses carry an id.
func serve(method, target, requestID string, write func(w http.ResponseWriter, r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	if requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}
	rec := httptest.NewRecorder()
	middleware.RequestID(http.HandlerFunc(write)).ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) models.Problem {
	t.Helper()
	var p models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p), rec.Body.String())
	return p
}

func TestJSON_WritesStationList(t *testing.T) {
	stations := models.NewList([]models.Station{
		{StationID: 12, State: "Kerala", City: "Kochi", Location: "Periyar River", Label: "Station 12 - Periyar River"},
	})

	rec := serve(http.MethodGet, "/v1/stations?state=Kerala", "req-stations-1", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, stations)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-stations-1", rec.Header().Get("X-Request-Id"))

	var got models.ListResponse[models.Station]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stations, got)
	assert.Equal(t, byte('\n'), rec.Body.Bytes()[rec.Body.Len()-1])
}

func TestJSON_NoRequestIDOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()

	response.JSON(rec, req, http.StatusOK, models.Health{Status: models.HealthStatusOK})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{"status":"OK","time":"0001-01-01T00:00:00Z"}`, rec.Body.String())
}

func TestJSON_NilDataWritesNoBody(t *testing.T) {
	rec := serve(http.MethodGet, "/v1/ops/ready", "", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, nil)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestJSON_UnencodableValueBecomesInternalError(t *testing.T) {
	values := waterquality.Values{waterquality.ParameterTDS: math.Inf(1)}

	rec := serve(http.MethodPost, "/v1/assessments", "req-overflow", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]any{"values": values})
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	p := decodeProblem(t, rec)
	assert.Equal(t, models.ProblemTypeInternal, p.Type)
	assert.Equal(t, "req-overflow", p.TraceID)
	assert.Equal(t, "/v1/assessments", p.Instance)
}

func TestProblemWriters(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		write      func(w http.ResponseWriter, r *http.Request)
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:   "bad request",
			method: http.MethodPost,
			target: "/v1/predictions",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.BadRequest(w, r, "invalid prediction request", []models.FieldError{
					{Field: "year", Message: "must be between 2000 and 2030", Code: "OUT_OF_RANGE"},
				})
			},
			wantStatus: http.StatusBadRequest,
			wantType:   models.ProblemTypeValidation,
			wantDetail: "invalid prediction request",
		},
		{
			name:   "not found",
			method: http.MethodGet,
			target: "/v1/stations/999",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.NotFound(w, r, "station 999 not found")
			},
			wantStatus: http.StatusNotFound,
			wantType:   models.ProblemTypeNotFound,
			wantDetail: "station 999 not found",
		},
		{
			name:   "method not allowed",
			method: http.MethodDelete,
			target: "/v1/stations",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.MethodNotAllowed(w, r, "DELETE is not supported on /v1/stations")
			},
			wantStatus: http.StatusMethodNotAllowed,
			wantType:   models.ProblemTypeMethodNotAllowed,
			wantDetail: "DELETE is not supported on /v1/stations",
		},
		{
			name:   "internal error",
			method: http.MethodGet,
			target: "/v1/model",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.InternalError(w, r, "an unexpected error occurred")
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   models.ProblemTypeInternal,
			wantDetail: "an unexpected error occurred",
		},
		{
			name:   "dataset unavailable",
			method: http.MethodGet,
			target: "/v1/analysis/states?pollutant=o2",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.ServiceUnavailable(w, r, "historical dataset unavailable")
			},
			wantStatus: http.StatusServiceUnavailable,
			wantType:   models.ProblemTypeUnavailable,
			wantDetail: "historical dataset unavailable",
		},
		{
			name:   "inference failed",
			method: http.MethodPost,
			target: "/v1/predictions",
			write: func(w http.ResponseWriter, r *http.Request) {
				response.InferenceFailed(w, r, "the model could not produce a prediction")
			},
			wantStatus: http.StatusServiceUnavailable,
			wantType:   models.ProblemTypeInference,
			wantDetail: "the model could not produce a prediction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.method, tt.target, "req-"+tt.method, tt.write)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "req-"+tt.method, rec.Header().Get("X-Request-Id"))

			p := decodeProblem(t, rec)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, tt.wantDetail, p.Detail)
			assert.Equal(t, "req-"+tt.method, p.TraceID)
			assert.Equal(t, httptest.NewRequest(tt.method, tt.target, http.NoBody).URL.Path, p.Instance)
		})
	}
}

func TestBadRequest_CarriesFieldErrors(t *testing.T) {
	rec := serve(http.MethodPost, "/v1/assessments", "", func(w http.ResponseWriter, r *http.Request) {
		response.BadRequest(w, r, "invalid measurements", []models.FieldError{
			{Field: "no3", Message: "is required", Code: "REQUIRED"},
			{Field: "cl", Message: "must be a finite number", Code: "NOT_FINITE"},
		})
	})

	p := decodeProblem(t, rec)
	require.Len(t, p.Errors, 2)
	assert.Equal(t, "no3", p.Errors[0].Field)
	assert.Equal(t, "NOT_FINITE", p.Errors[1].Code)
	assert.NotEmpty(t, p.TraceID, "generated request id")
}
