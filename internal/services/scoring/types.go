// Package scoring provides pure calculation functions for SME credit risk
// scores. All functions are stateless and perform no I/O.
package scoring

import "github.com/ternarybob/aestimo/internal/models"

// Component sub-weights
const (
	// Financial sub-components
	SubWeightDSCR         = 0.30
	SubWeightCurrentRatio = 0.25
	SubWeightDebtToEquity = 0.20
	SubWeightCashRunway   = 0.15
	SubWeightEBITDAMargin = 0.10

	// Operational sub-components
	SubWeightRevenueGrowth = 0.40
	SubWeightRevenueTrend  = 0.30
	SubWeightPaymentDays   = 0.30

	// Market sub-components
	SubWeightSectorRisk  = 0.40
	SubWeightCompetitive = 0.30
	SubWeightGeographic  = 0.30

	// Alternative data sub-components
	SubWeightEmployee   = 0.35
	SubWeightTraffic    = 0.30
	SubWeightNews       = 0.20
	SubWeightCompliance = 0.15
)

// FinancialComponents breaks out the financial sub-scores and the derived
// ratios they were scored from.
type FinancialComponents struct {
	DSCR             float64 `json:"dscr"`
	DSCRScore        float64 `json:"dscr_score"`
	CurrentRatio     float64 `json:"current_ratio"`
	CurrentScore     float64 `json:"current_ratio_score"`
	DebtToEquity     float64 `json:"debt_to_equity"`
	DebtScore        float64 `json:"debt_to_equity_score"`
	CashRunwayMonths float64 `json:"cash_runway_months"`
	RunwayScore      float64 `json:"cash_runway_score"`
	EBITDAMargin     float64 `json:"ebitda_margin"`
	MarginScore      float64 `json:"ebitda_margin_score"`
}

// FinancialResult is the output of CalculateFinancial.
type FinancialResult struct {
	Score      float64             `json:"score"`
	Components FinancialComponents `json:"components"`
	Degraded   bool                `json:"degraded"`
	Reasoning  string              `json:"reasoning"`
}

// OperationalComponents breaks out the operational sub-scores.
type OperationalComponents struct {
	RevenueGrowthYoY float64 `json:"revenue_growth_yoy"`
	GrowthScore      float64 `json:"growth_score"`
	RevenueTrendQoQ  float64 `json:"revenue_trend_qoq"`
	TrendScore       float64 `json:"trend_score"`
	PaymentDays      float64 `json:"payment_days"`
	PaymentScore     float64 `json:"payment_score"`
}

// OperationalResult is the output of CalculateOperational.
type OperationalResult struct {
	Score      float64               `json:"score"`
	Components OperationalComponents `json:"components"`
	Degraded   bool                  `json:"degraded"`
	Reasoning  string                `json:"reasoning"`
}

// MarketComponents breaks out the market sub-scores.
type MarketComponents struct {
	SectorScore      float64 `json:"sector_score"`
	CompetitiveScore float64 `json:"competitive_score"`
	GeographicScore  float64 `json:"geographic_score"`
}

// MarketResult is the output of CalculateMarket.
type MarketResult struct {
	Score      float64          `json:"score"`
	Components MarketComponents `json:"components"`
	Reasoning  string           `json:"reasoning"`
}

// AltDataComponents breaks out the alternative-data sub-scores.
type AltDataComponents struct {
	EmployeeScore   float64 `json:"employee_score"`
	TrafficScore    float64 `json:"traffic_score"`
	NewsScore       float64 `json:"news_score"`
	ComplianceScore float64 `json:"compliance_score"`
}

// AltDataResult is the output of CalculateAltData. Degraded lists the
// sub-signals that fell back to neutral defaults because data was
// missing; callers log these, never fail on them.
type AltDataResult struct {
	Score      float64           `json:"score"`
	Components AltDataComponents `json:"components"`
	Degraded   []string          `json:"degraded,omitempty"`
	Reasoning  string            `json:"reasoning"`
}

// CompositeResult combines all component scores into the final rating.
type CompositeResult struct {
	Score            float64                `json:"score"`
	Category         models.RiskCategory    `json:"category"`
	Components       models.ComponentScores `json:"components"`
	Grade            string                 `json:"grade"`
	RatingGapNotches int                    `json:"rating_gap_notches"`
	RatingStale      bool                   `json:"rating_stale"`
	DefaultProb      float64                `json:"default_probability"`
	ActiveSignals    []models.ActiveSignal  `json:"active_signals"`
	Narrative        string                 `json:"narrative"`
}
