package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// RiskHandler handles scoring API requests
type RiskHandler struct {
	riskService interfaces.RiskService
	logger      arbor.ILogger
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(riskService interfaces.RiskService, logger arbor.ILogger) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
		logger:      logger,
	}
}

// ScoreSMEHandler recomputes the risk record for one SME
// POST /api/risk/score/{id}
func (h *RiskHandler) ScoreSMEHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	smeID := strings.TrimPrefix(r.URL.Path, "/api/risk/score/")
	if smeID == "" || strings.Contains(smeID, "/") {
		WriteError(w, http.StatusBadRequest, "SME ID is required")
		return
	}

	record, err := h.riskService.Score(r.Context(), smeID)
	if err != nil {
		if errors.Is(err, models.ErrSMENotFound) {
			WriteError(w, http.StatusNotFound, "SME not found: "+smeID)
			return
		}
		h.logger.Error().Err(err).Str("sme_id", smeID).Msg("Failed to score SME")
		WriteError(w, http.StatusInternalServerError, "Failed to score SME")
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

// ScoreBatchHandler scores a list of SMEs in one pass. Failures are
// reported per item and never abort the batch.
// POST /api/risk/score  {"sme_ids": ["0001", "0002"]}
func (h *RiskHandler) ScoreBatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req struct {
		SMEIDs []string `json:"sme_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.SMEIDs) == 0 {
		WriteError(w, http.StatusBadRequest, "sme_ids is required")
		return
	}

	items, err := h.riskService.ScoreBatch(r.Context(), req.SMEIDs)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to score batch")
		WriteError(w, http.StatusInternalServerError, "Failed to score batch")
		return
	}

	writeBatchResult(w, items)
}

// ScoreAllHandler rescores the whole portfolio
// POST /api/risk/score-all
func (h *RiskHandler) ScoreAllHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	items, err := h.riskService.ScoreAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to score portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to score portfolio")
		return
	}

	writeBatchResult(w, items)
}

func writeBatchResult(w http.ResponseWriter, items []models.BatchScoreItem) {
	failed := 0
	for _, item := range items {
		if item.Error != "" {
			failed++
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":  len(items),
		"scored": len(items) - failed,
		"failed": failed,
		"items":  items,
	})
}
