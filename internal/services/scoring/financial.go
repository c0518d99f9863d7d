package scoring

import (
	"fmt"
	"math"

	"github.com/ternarybob/aestimo/internal/models"
)

// CalculateFinancial scores balance-sheet strength from the latest
// reporting period. Score: 0-100, higher is riskier.
//
// Sub-components:
// - DSCR          (30%)
// - Current Ratio (25%)
// - Debt/Equity   (20%)
// - Cash Runway   (15%)
// - EBITDA Margin (10%)
//
// A nil period degrades to a neutral 50 rather than failing.
func CalculateFinancial(p *models.FinancialPeriod) FinancialResult {
	if p == nil {
		return FinancialResult{
			Score:     50,
			Degraded:  true,
			Reasoning: "no financial data, neutral default applied",
		}
	}

	debtToEquity := p.TotalDebt / math.Max(p.Revenue-p.TotalDebt, 1)

	// Monthly burn proxy: expenses assumed at 85% of monthly revenue.
	monthlyExpenses := p.Revenue / 12 * 0.85
	cashRunway := 12.0
	if monthlyExpenses > 0 {
		cashRunway = p.CashBalance / monthlyExpenses
	}

	ebitdaMargin := 0.0
	if p.Revenue > 0 {
		ebitdaMargin = p.EBITDA / p.Revenue * 100
	}

	components := FinancialComponents{
		DSCR:             p.DSCR,
		DSCRScore:        scoreAbove(dscrBands, p.DSCR, 95),
		CurrentRatio:     p.CurrentRatio,
		CurrentScore:     scoreAbove(currentRatioBands, p.CurrentRatio, 90),
		DebtToEquity:     debtToEquity,
		DebtScore:        scoreBelow(debtToEquityBands, debtToEquity, 95),
		CashRunwayMonths: cashRunway,
		RunwayScore:      scoreAbove(cashRunwayBands, cashRunway, 95),
		EBITDAMargin:     ebitdaMargin,
		MarginScore:      scoreAbove(ebitdaMarginBands, ebitdaMargin, 90),
	}

	score := components.DSCRScore*SubWeightDSCR +
		components.CurrentScore*SubWeightCurrentRatio +
		components.DebtScore*SubWeightDebtToEquity +
		components.RunwayScore*SubWeightCashRunway +
		components.MarginScore*SubWeightEBITDAMargin

	return FinancialResult{
		Score:      round1(clamp(score, 0, 100)),
		Components: components,
		Reasoning: fmt.Sprintf("DSCR %.2f, current ratio %.2f, D/E %.2f, runway %.1f months, margin %.1f%%",
			p.DSCR, p.CurrentRatio, debtToEquity, cashRunway, ebitdaMargin),
	}
}
