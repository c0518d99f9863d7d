package scoring

import "github.com/ternarybob/aestimo/internal/models"

// ScoreBundle runs the full scoring pipeline over one SME's signal
// bundle: the four component scorers, active-signal detection, and the
// composite rollup. Component results are returned alongside the
// composite so callers can inspect or log degradations.
func ScoreBundle(b *models.SignalBundle) (CompositeResult, FinancialResult, OperationalResult, MarketResult, AltDataResult) {
	latest := b.LatestFinancial()
	previous := b.PreviousFinancial()

	fin := CalculateFinancial(latest)
	op := CalculateOperational(latest, previous)

	growth := 0.0
	if latest != nil {
		growth = latest.RevenueGrowth
	}
	mkt := CalculateMarket(b.SME, growth)
	alt := CalculateAltData(b.Employees, b.Traffic, b.News, b.Compliance)

	signals := DetectActiveSignals(b)
	composite := CalculateComposite(b.SME, fin, op, mkt, alt, signals)

	return composite, fin, op, mkt, alt
}
