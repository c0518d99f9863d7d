package scoring

import (
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
)

func TestCalculateOperational(t *testing.T) {
	tests := []struct {
		name      string
		latest    *models.FinancialPeriod
		previous  *models.FinancialPeriod
		wantScore float64
	}{
		{
			name: "growing book with prompt payers",
			latest: &models.FinancialPeriod{
				Revenue:       1_200_000,
				RevenueGrowth: 25,
				PaymentDays:   25,
				PaymentTrend:  models.TrendStable,
			},
			previous: &models.FinancialPeriod{Revenue: 1_100_000},
			// growth 25% -> 10, qoq +9.1% -> 10, payment 25 days -> 25
			wantScore: 14.5,
		},
		{
			name: "contracting book with slipping payments",
			latest: &models.FinancialPeriod{
				Revenue:       940_000,
				RevenueGrowth: -10,
				PaymentDays:   50,
				PaymentTrend:  models.TrendUp,
			},
			previous: &models.FinancialPeriod{Revenue: 1_000_000},
			// growth -10% -> 95, qoq -6% -> 90, payment lengthening -> 75
			wantScore: 87.5,
		},
		{
			name: "single period, no payment feed",
			latest: &models.FinancialPeriod{
				Revenue:       800_000,
				RevenueGrowth: 3,
			},
			previous: nil,
			// growth 3% -> 30, qoq falls back to growth -> 25, payment default 35 days -> 50
			wantScore: 34.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOperational(tt.latest, tt.previous)

			if !approxEqual(got.Score, tt.wantScore, 0.05) {
				t.Errorf("Score = %.2f, want %.2f", got.Score, tt.wantScore)
			}
		})
	}
}

func TestCalculateOperationalMissingData(t *testing.T) {
	got := CalculateOperational(nil, nil)

	if got.Score != 50 {
		t.Errorf("Score = %.2f, want neutral 50", got.Score)
	}
	if !got.Degraded {
		t.Error("Degraded = false, want true")
	}
}

func TestScorePaymentDays(t *testing.T) {
	tests := []struct {
		name  string
		days  float64
		trend models.Trend
		want  float64
	}{
		{"shortening cycle", 40, models.TrendDown, 10},
		{"prompt payer", 25, models.TrendStable, 25},
		{"moderate", 40, models.TrendStable, 50},
		{"long and lengthening", 55, models.TrendUp, 75},
		{"long and stable", 55, models.TrendStable, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorePaymentDays(tt.days, tt.trend); got != tt.want {
				t.Errorf("scorePaymentDays(%.0f, %s) = %.0f, want %.0f", tt.days, tt.trend, got, tt.want)
			}
		})
	}
}
