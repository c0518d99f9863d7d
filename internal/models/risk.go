package models

import "time"

// RiskCategory buckets a composite score into portfolio triage bands.
type RiskCategory string

const (
	RiskCategoryStable   RiskCategory = "stable"
	RiskCategoryMedium   RiskCategory = "medium"
	RiskCategoryCritical RiskCategory = "critical"
)

// ComponentScores holds the four pillar scores that roll up into the
// composite. Each is 0-100 where higher means riskier.
type ComponentScores struct {
	Financial   float64 `json:"financial"`
	Operational float64 `json:"operational"`
	Market      float64 `json:"market"`
	AltData     float64 `json:"alt_data"`
}

// ActiveSignal is one named driver behind a score, carrying its weighted
// impact so callers can rank drivers by contribution.
type ActiveSignal struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Impact      float64 `json:"impact"`
	Component   string  `json:"component"`
}

// RiskRecord is the full output of scoring one SME at a point in time.
type RiskRecord struct {
	SMEID            string          `json:"sme_id" badgerhold:"key"`
	Name             string          `json:"name"`
	Sector           Sector          `json:"sector"`
	Geography        Geography       `json:"geography"`
	CompositeScore   float64         `json:"composite_score"`
	Category         RiskCategory    `json:"category"`
	Components       ComponentScores `json:"components"`
	Grade            string          `json:"grade"`
	BankRating       string          `json:"bank_rating"`
	RatingGapNotches int             `json:"rating_gap_notches"`
	RatingStale      bool            `json:"rating_stale"`
	DefaultProb      float64         `json:"default_probability"`
	CreditExposure   float64         `json:"credit_exposure"`
	ActiveSignals    []ActiveSignal  `json:"active_signals,omitempty"`
	Narrative        string          `json:"narrative,omitempty"`
	ScoredAt         time.Time       `json:"scored_at"`
}

// BatchScoreItem is one entry in a batch scoring response. Exactly one of
// Record or Error is populated; a failed SME never aborts the batch.
type BatchScoreItem struct {
	SMEID  string      `json:"sme_id"`
	Record *RiskRecord `json:"record,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// PortfolioSummary aggregates the scored book for dashboard views.
type PortfolioSummary struct {
	TotalSMEs        int     `json:"total_smes"`
	TotalExposure    float64 `json:"total_exposure"`
	AverageScore     float64 `json:"average_score"`
	StableCount      int     `json:"stable_count"`
	MediumCount      int     `json:"medium_count"`
	CriticalCount    int     `json:"critical_count"`
	CriticalExposure float64 `json:"critical_exposure"`
}

// SectorBreakdown summarises scored risk for a single sector.
type SectorBreakdown struct {
	Sector        Sector  `json:"sector"`
	Count         int     `json:"count"`
	TotalExposure float64 `json:"total_exposure"`
	AverageScore  float64 `json:"average_score"`
	CriticalCount int     `json:"critical_count"`
}
