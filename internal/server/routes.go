package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Scoring
	mux.HandleFunc("/api/risk/score-all", s.app.RiskHandler.ScoreAllHandler)
	mux.HandleFunc("/api/risk/score", s.app.RiskHandler.ScoreBatchHandler)
	mux.HandleFunc("/api/risk/score/", s.app.RiskHandler.ScoreSMEHandler) // POST /{id}

	// API routes - Stress scenarios
	mux.HandleFunc("/api/scenarios/run", s.app.ScenarioHandler.RunHandler)
	mux.HandleFunc("/api/scenarios/jobs", s.handleScenarioJobCollection)
	mux.HandleFunc("/api/scenarios/jobs/", s.handleScenarioJobRoutes) // GET /{id}, POST /{id}/cancel

	// API routes - Portfolio queries
	mux.HandleFunc("/api/portfolio", s.app.PortfolioHandler.ListHandler)
	mux.HandleFunc("/api/portfolio/summary", s.app.PortfolioHandler.SummaryHandler)
	mux.HandleFunc("/api/portfolio/sectors", s.app.PortfolioHandler.SectorsHandler)
	mux.HandleFunc("/api/portfolio/critical", s.app.PortfolioHandler.CriticalHandler)
	mux.HandleFunc("/api/portfolio/search", s.app.PortfolioHandler.SearchHandler)
	mux.HandleFunc("/api/portfolio/", s.app.PortfolioHandler.GetHandler) // GET /{id}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleScenarioJobCollection routes /api/scenarios/jobs by method
func (s *Server) handleScenarioJobCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.app.ScenarioHandler.ListJobsHandler(w, r)
	case "POST":
		s.app.ScenarioHandler.SubmitHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleScenarioJobRoutes routes /api/scenarios/jobs/{id} and subpaths
func (s *Server) handleScenarioJobRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/cancel") {
		s.app.ScenarioHandler.CancelHandler(w, r)
		return
	}
	s.app.ScenarioHandler.StatusHandler(w, r)
}
