package scoring

import (
	"math"

	"github.com/ternarybob/aestimo/internal/models"
)

// Composite formula weights
const (
	WeightFinancial   = 0.40
	WeightOperational = 0.25
	WeightMarket      = 0.20
	WeightAltData     = 0.15
)

// Category thresholds
const (
	MediumThreshold   = 35.0
	CriticalThreshold = 60.0
)

// A positive rating gap at or beyond this many notches flags the bank
// rating as potentially stale. Negative gaps (engine more optimistic
// than the bank) are not flagged.
const StaleRatingNotches = 2

// gradeLadder maps composite score ceilings to indicative grades, best
// first.
var gradeLadder = []struct {
	MaxScore float64
	Grade    string
}{
	{20, "AAA"},
	{28, "AA"},
	{36, "A"},
	{45, "BBB"},
	{55, "BB"},
	{65, "B"},
	{75, "CCC"},
	{88, "CC"},
}

// ratingScale orders bank grades from strongest to weakest for notch
// comparison.
var ratingScale = []string{"AAA", "AA", "A", "BBB", "BB", "B", "CCC", "CC", "C", "D"}

// CalculateComposite combines the four component scores into the final
// risk assessment.
//
// Composite Formula:
// score = financial*0.40 + operational*0.25 + market*0.20 + altData*0.15
// Rounded to the nearest integer and clamped to [0,100].
//
// Categories:
// - stable:   score < 35
// - medium:   35 <= score < 60
// - critical: score >= 60
func CalculateComposite(sme *models.SME, fin FinancialResult, op OperationalResult, mkt MarketResult, alt AltDataResult, signals []models.ActiveSignal) CompositeResult {
	raw := fin.Score*WeightFinancial +
		op.Score*WeightOperational +
		mkt.Score*WeightMarket +
		alt.Score*WeightAltData

	score := clamp(math.Round(raw), 0, 100)
	category := CategoryForScore(score)
	grade := GradeForScore(score)
	gap := RatingGapNotches(grade, sme.BankRating)

	return CompositeResult{
		Score:    score,
		Category: category,
		Components: models.ComponentScores{
			Financial:   fin.Score,
			Operational: op.Score,
			Market:      mkt.Score,
			AltData:     alt.Score,
		},
		Grade:            grade,
		RatingGapNotches: gap,
		RatingStale:      gap >= StaleRatingNotches,
		DefaultProb:      DefaultProbability(score, sme.Sector, sme.AnnualRevenue, category),
		ActiveSignals:    signals,
		Narrative:        BuildNarrative(sme.PreviousScore, score, signals),
	}
}

// CategoryForScore buckets a composite score into its triage band.
func CategoryForScore(score float64) models.RiskCategory {
	switch {
	case score < MediumThreshold:
		return models.RiskCategoryStable
	case score < CriticalThreshold:
		return models.RiskCategoryMedium
	default:
		return models.RiskCategoryCritical
	}
}

// GradeForScore maps a composite score onto the indicative grade ladder.
func GradeForScore(score float64) string {
	for _, rung := range gradeLadder {
		if score <= rung.MaxScore {
			return rung.Grade
		}
	}
	return "C"
}

// RatingGapNotches returns how many notches the engine grade sits below
// the bank's assigned rating. Positive means the engine sees more risk
// than the bank does. Unknown ratings yield zero.
func RatingGapNotches(engineGrade, bankRating string) int {
	engineIdx, bankIdx := -1, -1
	for i, g := range ratingScale {
		if g == engineGrade {
			engineIdx = i
		}
		if g == bankRating {
			bankIdx = i
		}
	}
	if engineIdx < 0 || bankIdx < 0 {
		return 0
	}
	return engineIdx - bankIdx
}

// DefaultProbability estimates the 12-month PD via a logistic link:
//
//	z  = -5.2 + 0.12*score + sectorBeta + sizeBeta
//	PD = 1 / (1 + e^-z), scaled by category and capped at 0.95
func DefaultProbability(score float64, sector models.Sector, revenue float64, category models.RiskCategory) float64 {
	var sizeBeta float64
	switch {
	case revenue < 1_000_000:
		sizeBeta = -1.0
	case revenue < 3_000_000:
		sizeBeta = -0.5
	case revenue < 5_000_000:
		sizeBeta = 0
	default:
		sizeBeta = 0.5
	}

	z := -5.2 + 0.12*score + sectorBeta[sector] + sizeBeta
	pd := logistic(z)

	switch category {
	case models.RiskCategoryCritical:
		pd *= 1.4
	case models.RiskCategoryMedium:
		pd *= 1.1
	default:
		pd *= 0.9
	}

	return math.Round(math.Min(pd, 0.95)*1000) / 1000
}
