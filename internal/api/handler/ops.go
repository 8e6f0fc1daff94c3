package handler

import (
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/aquawatch/aquawatch/internal/api/models"
	"github.com/aquawatch/aquawatch/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	clock     clockwork.Clock
	catalog   StationCatalog
	pipeline  Pipeline
	data      DatasetSource
}

// OpsConfig holds the dependencies of OpsHandler.
type OpsConfig struct {
	Version   string
	BuildTime string
	Clock     clockwork.Clock
	Catalog   StationCatalog
	Pipeline  Pipeline
	Dataset   DatasetSource
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		clock:     clock,
		catalog:   cfg.Catalog,
		pipeline:  cfg.Pipeline,
		data:      cfg.Dataset,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// The service is ready once the model is loaded; a missing dataset only degrades it.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock.Now()),
	}

	if h.pipeline == nil || h.catalog == nil {
		health.Status = models.HealthStatusFail
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}

	if st := h.datasetStatus(); st.Status != models.HealthStatusOK {
		health.Status = models.HealthStatusDegraded
		health.Details = map[string]any{"dataset": st.Detail}
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	subsystems := []models.SubsystemStatus{
		h.catalogStatus(),
		h.modelStatus(),
		h.datasetStatus(),
	}

	overall := models.HealthStatusOK
	for _, s := range subsystems {
		switch {
		case s.Status == models.HealthStatusFail:
			overall = models.HealthStatusFail
		case s.Status == models.HealthStatusDegraded && overall == models.HealthStatusOK:
			overall = models.HealthStatusDegraded
		}
	}

	response.JSON(w, r, http.StatusOK, models.SystemStatus{
		Status:     overall,
		Time:       models.Timestamp(h.clock.Now()),
		Subsystems: subsystems,
	})
}

func (h *OpsHandler) catalogStatus() models.SubsystemStatus {
	if h.catalog == nil {
		return failed("catalog", "station catalog not loaded")
	}
	return ok("catalog", fmt.Sprintf("%d stations", h.catalog.Len()))
}

func (h *OpsHandler) modelStatus() models.SubsystemStatus {
	if h.pipeline == nil {
		return failed("model", "model not loaded")
	}
	info := h.pipeline.ModelInfo()
	detail := fmt.Sprintf("%s, %d features, %d trained stations", info.Type, info.Features, info.TrainedStations)
	if hl := info.Health; hl != nil {
		detail += fmt.Sprintf(", circuit %s", hl.CircuitState)
		switch {
		case hl.IsUnhealthy():
			return failed("model", detail+": "+hl.LastError)
		case hl.IsDegraded():
			return degraded("model", detail)
		}
	}
	return ok("model", detail)
}

func (h *OpsHandler) datasetStatus() models.SubsystemStatus {
	if h.data == nil {
		return degraded("dataset", "dataset not configured")
	}
	st := h.data.Status()
	if !st.Available {
		return degraded("dataset", st.Error)
	}
	return ok("dataset", fmt.Sprintf("%d records, %d skipped", st.Records, st.Skipped))
}

func ok(name, detail string) models.SubsystemStatus {
	return models.SubsystemStatus{Name: name, Status: models.HealthStatusOK, Detail: &detail}
}

func degraded(name, detail string) models.SubsystemStatus {
	return models.SubsystemStatus{Name: name, Status: models.HealthStatusDegraded, Detail: &detail}
}

func failed(name, detail string) models.SubsystemStatus {
	return models.SubsystemStatus{Name: name, Status: models.HealthStatusFail, Detail: &detail}
}
