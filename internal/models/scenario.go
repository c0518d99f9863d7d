package models

import "time"

// JobStatus is the lifecycle state of an asynchronous scenario job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// ScenarioType names the supported stress scenarios.
type ScenarioType string

const (
	ScenarioInterestRateShock ScenarioType = "interest_rate_shock"
	ScenarioRecession         ScenarioType = "recession"
	ScenarioSectorShock       ScenarioType = "sector_shock"
	ScenarioAdverse           ScenarioType = "adverse"
	ScenarioMacroShock        ScenarioType = "macro_shock"
)

// RecessionSeverity selects a pre-calibrated recession vector when no
// explicit GDP or unemployment figures are supplied.
type RecessionSeverity string

const (
	RecessionMild     RecessionSeverity = "mild"
	RecessionModerate RecessionSeverity = "moderate"
	RecessionSevere   RecessionSeverity = "severe"
)

// ScenarioParams carries the shock inputs. Which fields apply depends
// on the scenario type. Optional numeric fields are pointers so an
// explicit zero is distinguishable from an absent field: only absent
// fields fall back to documented defaults, a supplied zero means a
// zero-magnitude shock.
type ScenarioParams struct {
	Type ScenarioType `json:"type" validate:"required,oneof=interest_rate_shock recession sector_shock adverse macro_shock"`

	// interest_rate_shock and adverse
	RateIncreaseBps *float64 `json:"rate_increase_bps,omitempty" validate:"omitempty,gte=0,lte=1000"`

	// recession, adverse and macro_shock. Decline and rise magnitudes
	// are positive numbers.
	GDPDeclinePct       *float64          `json:"gdp_decline_pct,omitempty" validate:"omitempty,gte=0,lte=20"`
	UnemploymentRisePct *float64          `json:"unemployment_rise_pct,omitempty" validate:"omitempty,gte=0,lte=20"`
	RecessionSeverity   RecessionSeverity `json:"recession_severity,omitempty" validate:"omitempty,oneof=mild moderate severe"`

	// sector_shock and macro_shock. Severity is a fraction, typically
	// 0.0-1.0.
	Sector   Sector   `json:"sector,omitempty"`
	Severity *float64 `json:"severity,omitempty" validate:"omitempty,gte=0,lte=3"`

	// adverse
	RealEstateShockPct *float64 `json:"real_estate_shock_pct,omitempty" validate:"omitempty,gte=0,lte=100"`

	// macro_shock display name, e.g. "Geopolitical Shock"
	Name string `json:"name,omitempty"`
}

// SMEImpact is the per-SME delta a scenario produces.
type SMEImpact struct {
	SMEID          string    `json:"sme_id"`
	Name           string    `json:"name"`
	Sector         Sector    `json:"sector"`
	Geography      Geography `json:"geography"`
	ScoreBefore    float64   `json:"score_before"`
	ScoreAfter     float64   `json:"score_after"`
	ScoreIncrease  float64   `json:"score_increase"`
	NewlyCritical  bool      `json:"newly_critical"`
	CreditExposure float64   `json:"credit_exposure"`
	Reason         string    `json:"reason"`
}

// SectorImpact aggregates scenario impact across one sector.
type SectorImpact struct {
	Sector        Sector  `json:"sector"`
	Count         int     `json:"count"`
	AvgIncrease   float64 `json:"avg_increase"`
	NewlyCritical int     `json:"newly_critical"`
	TotalExposure float64 `json:"total_exposure"`
	EstimatedLoss float64 `json:"estimated_loss"`
}

// LossProjection is the additional expected-loss curve over the
// projection horizon. Year0 is the immediate estimate; later years apply
// fixed deterioration multipliers.
type LossProjection struct {
	Year0         float64 `json:"year_0"`
	Year1         float64 `json:"year_1"`
	Year2         float64 `json:"year_2"`
	Year3         float64 `json:"year_3"`
	LGDAssumption float64 `json:"lgd_assumption"`
}

// RecommendationTier classifies scenario severity for the response plan.
type RecommendationTier string

const (
	TierUltraConservative RecommendationTier = "ultra_conservative"
	TierConservative      RecommendationTier = "conservative"
	TierModerate          RecommendationTier = "moderate"
)

// Recommendation is the engine's suggested portfolio response.
type Recommendation struct {
	Tier             RecommendationTier `json:"tier"`
	ReviewWindowDays int                `json:"review_window_days"`
	ReserveIncrease  float64            `json:"reserve_increase"`
	Actions          []string           `json:"actions"`
}

// PortfolioShift captures before/after portfolio aggregates.
type PortfolioShift struct {
	CriticalBefore      int     `json:"critical_before"`
	CriticalAfter       int     `json:"critical_after"`
	AvgScoreBefore      float64 `json:"avg_score_before"`
	AvgScoreAfter       float64 `json:"avg_score_after"`
	DefaultProbBefore   float64 `json:"default_prob_before"`
	DefaultProbAfter    float64 `json:"default_prob_after"`
	TotalExposure       float64 `json:"total_exposure"`
	NewCriticalExposure float64 `json:"new_critical_exposure"`
}

// ScenarioResult is the complete output of one scenario run.
type ScenarioResult struct {
	Name            string         `json:"name"`
	Params          ScenarioParams `json:"params"`
	Methodology     string         `json:"methodology"`
	TotalSMEs       int            `json:"total_smes"`
	ImpactedCount   int            `json:"impacted_count"`
	NewlyCritical   int            `json:"newly_critical"`
	Portfolio       PortfolioShift `json:"portfolio"`
	LossProjection  LossProjection `json:"loss_projection"`
	SectorImpacts   []SectorImpact `json:"sector_impacts"`
	TopImpacted     []SMEImpact    `json:"top_impacted"`
	NewCriticalSMEs []SMEImpact    `json:"new_critical_smes"`
	Recommendation  Recommendation `json:"recommendation"`
	RunAt           time.Time      `json:"run_at"`
}

// ScenarioJob tracks an asynchronous scenario run from submission to
// completion. Params are snapshot at submission so the job is
// self-contained and re-inspectable after the fact.
type ScenarioJob struct {
	ID          string          `json:"id" badgerhold:"key"`
	Status      JobStatus       `json:"status"`
	Params      ScenarioParams  `json:"params"`
	Result      *ScenarioResult `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// IsTerminal reports whether the job has reached a final state.
func (j *ScenarioJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed || j.Status == JobStatusCancelled
}
