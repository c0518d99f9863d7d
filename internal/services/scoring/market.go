package scoring

import (
	"fmt"

	"github.com/ternarybob/aestimo/internal/models"
)

// CalculateMarket scores the structural environment an SME trades in.
// Score: 0-100, higher is riskier. revenueGrowth feeds the geographic
// adjustment for domestic books.
//
// Sub-components:
// - Sector Risk          (40%)
// - Competitive Position (30%)
// - Geographic Risk      (30%)
func CalculateMarket(sme *models.SME, revenueGrowth float64) MarketResult {
	sectorScore, ok := sectorBaseRisk[sme.Sector]
	if !ok {
		sectorScore = sectorRiskDefault
	}

	// Scale is the competitive proxy: larger books hold pricing power.
	var competitiveScore float64
	switch {
	case sme.AnnualRevenue > 5_000_000:
		competitiveScore = 15
	case sme.AnnualRevenue > 3_000_000:
		competitiveScore = 30
	case sme.AnnualRevenue > 1_500_000:
		competitiveScore = 50
	default:
		competitiveScore = 75
	}

	var geoScore float64
	switch sme.Geography {
	case models.GeographyUK:
		geoScore = 20
		if revenueGrowth > 0 {
			geoScore = 15
		}
	case models.GeographyEU:
		geoScore = 30
	default:
		geoScore = 40
	}

	components := MarketComponents{
		SectorScore:      sectorScore,
		CompetitiveScore: competitiveScore,
		GeographicScore:  geoScore,
	}

	score := sectorScore*SubWeightSectorRisk +
		competitiveScore*SubWeightCompetitive +
		geoScore*SubWeightGeographic

	return MarketResult{
		Score:      round1(clamp(score, 0, 100)),
		Components: components,
		Reasoning: fmt.Sprintf("sector %s (%.0f), revenue scale %.0f, geography %s (%.0f)",
			sme.Sector, sectorScore, competitiveScore, sme.Geography, geoScore),
	}
}
