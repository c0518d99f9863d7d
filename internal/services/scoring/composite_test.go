package scoring

import (
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
)

func TestCalculateComposite(t *testing.T) {
	sme := &models.SME{
		ID:            "0001",
		Sector:        models.SectorConstruction,
		Geography:     models.GeographyOther,
		AnnualRevenue: 1_000_000,
		BankRating:    "BBB",
		PreviousScore: 55,
	}

	fin := FinancialResult{Score: 93.3}
	op := OperationalResult{Score: 87.5}
	mkt := MarketResult{Score: 58.5}
	alt := AltDataResult{Score: 76.8}

	got := CalculateComposite(sme, fin, op, mkt, alt, nil)

	// 93.3*0.40 + 87.5*0.25 + 58.5*0.20 + 76.8*0.15 = 82.4 -> 82
	if got.Score != 82 {
		t.Errorf("Score = %.0f, want 82", got.Score)
	}
	if got.Category != models.RiskCategoryCritical {
		t.Errorf("Category = %s, want critical", got.Category)
	}
	if got.Grade != "CC" {
		t.Errorf("Grade = %s, want CC", got.Grade)
	}
	// Engine grade CC sits 4 notches below the bank's BBB.
	if got.RatingGapNotches != 4 {
		t.Errorf("RatingGapNotches = %d, want 4", got.RatingGapNotches)
	}
	if !got.RatingStale {
		t.Error("RatingStale = false, want true")
	}
	// Deep critical construction book pins the PD at the cap.
	if got.DefaultProb != 0.95 {
		t.Errorf("DefaultProb = %.3f, want 0.95 cap", got.DefaultProb)
	}
}

func TestCalculateCompositeStable(t *testing.T) {
	sme := &models.SME{
		ID:            "0002",
		Sector:        models.SectorSoftwareTechnology,
		Geography:     models.GeographyUK,
		AnnualRevenue: 6_000_000,
		BankRating:    "AA",
		PreviousScore: 11,
	}

	got := CalculateComposite(sme,
		FinancialResult{Score: 10},
		OperationalResult{Score: 10},
		MarketResult{Score: 10},
		AltDataResult{Score: 10},
		nil)

	if got.Score != 10 {
		t.Errorf("Score = %.0f, want 10", got.Score)
	}
	if got.Category != models.RiskCategoryStable {
		t.Errorf("Category = %s, want stable", got.Category)
	}
	if got.Grade != "AAA" {
		t.Errorf("Grade = %s, want AAA", got.Grade)
	}
	if got.RatingStale {
		t.Error("RatingStale = true, want false")
	}
	// z = -5.2 + 1.2 - 0.3 + 0.5 = -3.8 -> pd 0.0219 * 0.9 = 0.020
	if got.DefaultProb != 0.02 {
		t.Errorf("DefaultProb = %.3f, want 0.020", got.DefaultProb)
	}
}

func TestRatingStaleOnlyWhenEngineSeesMoreRisk(t *testing.T) {
	// Engine grade AAA against a bank rating of BB is a -4 notch gap;
	// the engine being more optimistic does not make the rating stale.
	sme := &models.SME{
		ID:            "0003",
		Sector:        models.SectorSoftwareTechnology,
		Geography:     models.GeographyUK,
		AnnualRevenue: 2_000_000,
		BankRating:    "BB",
		PreviousScore: 12,
	}

	got := CalculateComposite(sme,
		FinancialResult{Score: 10},
		OperationalResult{Score: 10},
		MarketResult{Score: 10},
		AltDataResult{Score: 10},
		nil)

	if got.RatingGapNotches != -4 {
		t.Fatalf("RatingGapNotches = %d, want -4", got.RatingGapNotches)
	}
	if got.RatingStale {
		t.Error("RatingStale = true, want false for a negative gap")
	}
}

func TestCategoryForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  models.RiskCategory
	}{
		{0, models.RiskCategoryStable},
		{34, models.RiskCategoryStable},
		{35, models.RiskCategoryMedium},
		{59, models.RiskCategoryMedium},
		{60, models.RiskCategoryCritical},
		{100, models.RiskCategoryCritical},
	}

	for _, tt := range tests {
		if got := CategoryForScore(tt.score); got != tt.want {
			t.Errorf("CategoryForScore(%.0f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "AAA"},
		{20, "AAA"},
		{21, "AA"},
		{36, "A"},
		{45, "BBB"},
		{55, "BB"},
		{65, "B"},
		{75, "CCC"},
		{88, "CC"},
		{89, "C"},
		{100, "C"},
	}

	for _, tt := range tests {
		if got := GradeForScore(tt.score); got != tt.want {
			t.Errorf("GradeForScore(%.0f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRatingGapNotches(t *testing.T) {
	tests := []struct {
		engine string
		bank   string
		want   int
	}{
		{"CCC", "BBB", 3},
		{"A", "BB", -2},
		{"BBB", "BBB", 0},
		{"BBB", "unrated", 0},
		{"", "BBB", 0},
	}

	for _, tt := range tests {
		if got := RatingGapNotches(tt.engine, tt.bank); got != tt.want {
			t.Errorf("RatingGapNotches(%s, %s) = %d, want %d", tt.engine, tt.bank, got, tt.want)
		}
	}
}

func TestDefaultProbabilityCapped(t *testing.T) {
	pd := DefaultProbability(100, models.SectorConstruction, 10_000_000, models.RiskCategoryCritical)
	if pd > 0.95 {
		t.Errorf("DefaultProb = %.3f, want <= 0.95", pd)
	}
}
