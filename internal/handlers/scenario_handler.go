package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/aestimo/internal/services/scenario"
)

// ScenarioHandler handles stress scenario API requests, both synchronous
// runs and background jobs.
type ScenarioHandler struct {
	scenarioService interfaces.ScenarioService
	jobService      interfaces.ScenarioJobService
	logger          arbor.ILogger
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(scenarioService interfaces.ScenarioService, jobService interfaces.ScenarioJobService, logger arbor.ILogger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioService: scenarioService,
		jobService:      jobService,
		logger:          logger,
	}
}

// RunHandler runs a scenario synchronously and returns the full result
// POST /api/scenarios/run
func (h *ScenarioHandler) RunHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}

	result, err := h.scenarioService.Run(r.Context(), params)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// SubmitHandler starts a scenario as a background job
// POST /api/scenarios/jobs
func (h *ScenarioHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}

	job, err := h.jobService.Submit(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to submit scenario job")
		WriteError(w, http.StatusInternalServerError, "Failed to submit scenario job")
		return
	}

	WriteJSON(w, http.StatusAccepted, job)
}

// ListJobsHandler returns recent scenario jobs, newest first
// GET /api/scenarios/jobs?limit=20
func (h *ScenarioHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	jobs, err := h.jobService.List(r.Context(), QueryInt(r, "limit", 20))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list scenario jobs")
		WriteError(w, http.StatusInternalServerError, "Failed to list scenario jobs")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// StatusHandler returns one job's status and, once completed, its result
// GET /api/scenarios/jobs/{id}
func (h *ScenarioHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	jobID := strings.TrimPrefix(r.URL.Path, "/api/scenarios/jobs/")
	if jobID == "" || strings.Contains(jobID, "/") {
		WriteError(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	job, err := h.jobService.Status(r.Context(), jobID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// CancelHandler cancels a pending or running job
// POST /api/scenarios/jobs/{id}/cancel
func (h *ScenarioHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/scenarios/jobs/")
	jobID := strings.TrimSuffix(path, "/cancel")
	if jobID == "" || jobID == path {
		WriteError(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	if err := h.jobService.Cancel(r.Context(), jobID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
			return
		}
		WriteError(w, http.StatusConflict, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "cancelled",
		"job_id": jobID,
	})
}

// decodeParams reads and sanity-checks scenario parameters from the
// request body. Writes the error response itself when the body is bad.
func (h *ScenarioHandler) decodeParams(w http.ResponseWriter, r *http.Request) (models.ScenarioParams, bool) {
	var params models.ScenarioParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return params, false
	}
	if params.Type == "" {
		WriteError(w, http.StatusBadRequest, "Scenario type is required")
		return params, false
	}
	return params, true
}

func (h *ScenarioHandler) writeRunError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.Is(err, scenario.ErrUnknownScenario) || errors.As(err, &validationErrs) {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error().Err(err).Msg("Failed to run scenario")
	WriteError(w, http.StatusInternalServerError, "Failed to run scenario")
}
