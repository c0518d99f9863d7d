package scoring

import (
	"fmt"

	"github.com/ternarybob/aestimo/internal/models"
)

// CalculateOperational scores trading momentum and payment behaviour.
// Score: 0-100, higher is riskier.
//
// Sub-components:
// - Revenue Growth YoY  (40%)
// - Revenue Trend QoQ   (30%)
// - Payment Days Trend  (30%)
//
// QoQ trend is computed from consecutive periods when two exist, and
// falls back to the YoY figure otherwise.
func CalculateOperational(latest, previous *models.FinancialPeriod) OperationalResult {
	if latest == nil {
		return OperationalResult{
			Score:     50,
			Degraded:  true,
			Reasoning: "no financial data, neutral default applied",
		}
	}

	growth := latest.RevenueGrowth

	qoq := growth
	if previous != nil && previous.Revenue > 0 {
		qoq = (latest.Revenue - previous.Revenue) / previous.Revenue * 100
	}

	paymentDays, paymentTrend := latest.PaymentDays, latest.PaymentTrend
	if paymentDays == 0 {
		// No payment feed for this SME. Stable books settle around 35
		// days; anything in motion is assumed slower.
		if paymentTrend == models.TrendStable || paymentTrend == "" {
			paymentDays = 35
		} else {
			paymentDays = 47
		}
	}

	components := OperationalComponents{
		RevenueGrowthYoY: growth,
		GrowthScore:      scoreAbove(revenueGrowthBands, growth, 95),
		RevenueTrendQoQ:  qoq,
		TrendScore:       scoreAbove(revenueTrendBands, qoq, 90),
		PaymentDays:      paymentDays,
		PaymentScore:     scorePaymentDays(paymentDays, paymentTrend),
	}

	score := components.GrowthScore*SubWeightRevenueGrowth +
		components.TrendScore*SubWeightRevenueTrend +
		components.PaymentScore*SubWeightPaymentDays

	return OperationalResult{
		Score:      round1(clamp(score, 0, 100)),
		Components: components,
		Reasoning: fmt.Sprintf("growth %.1f%% YoY, trend %.1f%% QoQ, payment days %.0f (%s)",
			growth, qoq, paymentDays, trendLabel(paymentTrend)),
	}
}

// scorePaymentDays rewards shortening payment cycles and penalises long
// or lengthening ones.
func scorePaymentDays(days float64, trend models.Trend) float64 {
	switch {
	case trend == models.TrendDown:
		return 10
	case days < 30:
		return 25
	case days < 45:
		return 50
	case trend == models.TrendUp && days > 45:
		return 75
	default:
		return 95
	}
}

func trendLabel(t models.Trend) string {
	switch t {
	case models.TrendUp:
		return "increasing"
	case models.TrendDown:
		return "decreasing"
	default:
		return "stable"
	}
}
