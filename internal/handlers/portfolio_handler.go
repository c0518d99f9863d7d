package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// PortfolioHandler serves read queries over the scored book
type PortfolioHandler struct {
	portfolioService interfaces.PortfolioService
	logger           arbor.ILogger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService interfaces.PortfolioService, logger arbor.ILogger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		logger:           logger,
	}
}

// ListHandler returns a filtered, sorted page of risk records
// GET /api/portfolio?sector=Construction&category=critical&min_score=40&max_score=90&sort_by=score&sort_dir=desc&limit=50&offset=0
func (h *PortfolioHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	q := r.URL.Query()
	opts := interfaces.PortfolioListOptions{
		Sector:   models.Sector(q.Get("sector")),
		Category: models.RiskCategory(q.Get("category")),
		MinScore: QueryFloat(r, "min_score", 0),
		MaxScore: QueryFloat(r, "max_score", 0),
		SortBy:   q.Get("sort_by"),
		SortDir:  q.Get("sort_dir"),
		Limit:    QueryInt(r, "limit", 50),
		Offset:   QueryInt(r, "offset", 0),
	}

	records, total, err := h.portfolioService.List(r.Context(), opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to list portfolio")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records":     records,
		"total_count": total,
		"limit":       opts.Limit,
		"offset":      opts.Offset,
	})
}

// SummaryHandler returns portfolio-level aggregates
// GET /api/portfolio/summary
func (h *PortfolioHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	summary, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build portfolio summary")
		WriteError(w, http.StatusInternalServerError, "Failed to build portfolio summary")
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// SectorsHandler returns the per-sector breakdown sorted by average score
// GET /api/portfolio/sectors
func (h *PortfolioHandler) SectorsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	sectors, err := h.portfolioService.SectorBreakdown(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build sector breakdown")
		WriteError(w, http.StatusInternalServerError, "Failed to build sector breakdown")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": sectors,
	})
}

// CriticalHandler returns the critical watchlist, highest score first
// GET /api/portfolio/critical?limit=20
func (h *PortfolioHandler) CriticalHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := QueryInt(r, "limit", 20)
	records, err := h.portfolioService.CriticalSMEs(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list critical SMEs")
		WriteError(w, http.StatusInternalServerError, "Failed to list critical SMEs")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// SearchHandler finds SMEs by name or ID substring
// GET /api/portfolio/search?q=brickline&limit=20
func (h *PortfolioHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	records, err := h.portfolioService.Search(r.Context(), query, QueryInt(r, "limit", 20))
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("Failed to search portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to search portfolio")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// GetHandler returns the risk record for one SME
// GET /api/portfolio/{id}
func (h *PortfolioHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	smeID := strings.TrimPrefix(r.URL.Path, "/api/portfolio/")
	if smeID == "" || strings.Contains(smeID, "/") {
		WriteError(w, http.StatusBadRequest, "SME ID is required")
		return
	}

	record, err := h.portfolioService.Get(r.Context(), smeID)
	if err != nil {
		if errors.Is(err, models.ErrSMENotFound) {
			WriteError(w, http.StatusNotFound, "SME not found: "+smeID)
			return
		}
		h.logger.Error().Err(err).Str("sme_id", smeID).Msg("Failed to get risk record")
		WriteError(w, http.StatusInternalServerError, "Failed to get risk record")
		return
	}

	WriteJSON(w, http.StatusOK, record)
}
