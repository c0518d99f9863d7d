package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/aestimo/internal/models"
)

// Tier thresholds on newly-critical count and year-0 estimated loss.
const (
	ultraCriticalCount = 20
	ultraLossGBP       = 10_000_000
	conservativeCount  = 10
	conservativeLoss   = 5_000_000
)

// Reserve increase as a multiple of the year-0 additional expected loss.
var reserveMultipliers = map[models.RecommendationTier]float64{
	models.TierUltraConservative: 1.5,
	models.TierConservative:      1.0,
	models.TierModerate:          0.5,
}

var reviewWindows = map[models.RecommendationTier]int{
	models.TierUltraConservative: 30,
	models.TierConservative:      60,
	models.TierModerate:          90,
}

// buildRecommendation tiers the response plan by impact severity and
// substitutes the most impacted sectors into the action text.
func buildRecommendation(newCriticalCount int, lossYear0 float64, sectors []models.SectorImpact) models.Recommendation {
	tier := models.TierModerate
	switch {
	case newCriticalCount > ultraCriticalCount || lossYear0 > ultraLossGBP:
		tier = models.TierUltraConservative
	case newCriticalCount > conservativeCount || lossYear0 > conservativeLoss:
		tier = models.TierConservative
	}

	topSectors := topImpactedSectors(sectors, 2)

	var actions []string
	switch tier {
	case models.TierUltraConservative:
		actions = []string{
			fmt.Sprintf("Stop new originations in %s immediately", topSectors),
			fmt.Sprintf("Initiate full credit review across all %d newly critical SMEs", newCriticalCount),
			"Reduce maximum exposure per SME by 30% for the critical category",
			"Notify board risk committee: portfolio stress threshold breached",
		}
	case models.TierConservative:
		flagged := newCriticalCount
		if flagged > 15 {
			flagged = 15
		}
		actions = []string{
			fmt.Sprintf("Reduce new lending in %s by 20%%", topSectors),
			fmt.Sprintf("Flag top %d newly critical SMEs for priority review", flagged),
			"Tighten covenant monitoring to monthly for critical SMEs",
			"Prepare contingency plan for further deterioration",
		}
	default:
		actions = []string{
			fmt.Sprintf("Monitor %s SMEs closely with quarterly review", topSectors),
			"No immediate restriction on new lending",
			"Update portfolio watch list with newly impacted SMEs",
		}
	}

	return models.Recommendation{
		Tier:             tier,
		ReviewWindowDays: reviewWindows[tier],
		ReserveIncrease:  math.Round(lossYear0 * reserveMultipliers[tier]),
		Actions:          actions,
	}
}

// topImpactedSectors names up to n sectors that produced newly critical
// SMEs, in impact order.
func topImpactedSectors(sectors []models.SectorImpact, n int) string {
	var names []string
	for _, s := range sectors {
		if s.NewlyCritical > 0 {
			names = append(names, string(s.Sector))
			if len(names) == n {
				break
			}
		}
	}
	if len(names) == 0 {
		return "most exposed sectors"
	}
	return strings.Join(names, " and ")
}
