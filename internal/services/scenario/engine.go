package scenario

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/aestimo/internal/services/scoring"
)

// ErrUnknownScenario indicates an unrecognised scenario type. Handlers
// map it to a 400.
var ErrUnknownScenario = errors.New("unknown scenario type")

// Loss deterioration multipliers for projection years 1-3.
var lossDrift = [3]float64{1.15, 1.25, 1.30}

// How many entries the top-impacted and newly-critical lists carry.
const (
	topImpactedLimit = 10
	newCriticalLimit = 20
)

// Apply runs the resolved scenario over the scored portfolio. Pure: the
// caller supplies current risk records, the function folds the deltas
// into the full result.
func Apply(params models.ScenarioParams, records []*models.RiskRecord) (*models.ScenarioResult, error) {
	sh, err := resolveShock(params)
	if err != nil {
		return nil, err
	}

	total := len(records)
	var (
		impacted       []models.SMEImpact
		newCritical    []models.SMEImpact
		sectorAgg      = map[models.Sector]*models.SectorImpact{}
		scoreSum       float64
		pdSum          float64
		totalExposure  float64
		increaseSum    float64
		criticalBefore int
	)

	for _, r := range records {
		mult := sh.multiplierFor(r.Sector)
		increase := sh.BaseIncrease * mult
		newScore := math.Min(r.CompositeScore+increase, 100)

		scoreSum += r.CompositeScore
		pdSum += r.DefaultProb
		totalExposure += r.CreditExposure
		if r.CompositeScore >= scoring.CriticalThreshold {
			criticalBefore++
		}

		impact := models.SMEImpact{
			SMEID:          r.SMEID,
			Name:           r.Name,
			Sector:         r.Sector,
			Geography:      r.Geography,
			ScoreBefore:    r.CompositeScore,
			ScoreAfter:     round1(newScore),
			ScoreIncrease:  round1(increase),
			CreditExposure: r.CreditExposure,
			Reason:         reasonText(r.Sector, sh.BaseIncrease, mult),
		}

		wentCritical := r.CompositeScore < scoring.CriticalThreshold && newScore >= scoring.CriticalThreshold
		impact.NewlyCritical = wentCritical

		if increase >= ImpactThreshold {
			impacted = append(impacted, impact)
			increaseSum += increase
		}
		if wentCritical {
			newCritical = append(newCritical, impact)
		}

		agg, ok := sectorAgg[r.Sector]
		if !ok {
			agg = &models.SectorImpact{Sector: r.Sector}
			sectorAgg[r.Sector] = agg
		}
		agg.Count++
		agg.TotalExposure += r.CreditExposure
		agg.AvgIncrease += increase // running sum, averaged below
		if wentCritical {
			agg.NewlyCritical++
		}
	}

	// Portfolio aggregates only make sense once every delta is known.
	criticalFraction := 0.0
	if total > 0 {
		criticalFraction = float64(len(newCritical)) / float64(total)
	}

	var newCriticalExposure float64
	for _, s := range newCritical {
		newCriticalExposure += s.CreditExposure
	}

	loss := buildLossProjection(newCriticalExposure, criticalFraction)

	sectors := make([]models.SectorImpact, 0, len(sectorAgg))
	for _, agg := range sectorAgg {
		if agg.Count > 0 {
			agg.AvgIncrease = round1(agg.AvgIncrease / float64(agg.Count))
			agg.EstimatedLoss = math.Round(agg.TotalExposure * float64(agg.NewlyCritical) / float64(agg.Count) * criticalFraction * LGD)
		}
		sectors = append(sectors, *agg)
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i].AvgIncrease > sectors[j].AvgIncrease
	})

	sort.Slice(impacted, func(i, j int) bool {
		return impacted[i].ScoreIncrease > impacted[j].ScoreIncrease
	})

	avgBefore, avgAfter, pdBefore := 0.0, 0.0, 0.0
	if total > 0 {
		avgBefore = round1(scoreSum / float64(total))
		avgAfter = round1(avgBefore + increaseSum/float64(total))
		pdBefore = math.Round(pdSum/float64(total)*1000) / 1000
	}
	pdAfter := math.Round(pdBefore*(1+criticalFraction)*1000) / 1000

	result := &models.ScenarioResult{
		Name:          sh.Name,
		Params:        params,
		Methodology:   sh.Methodology,
		TotalSMEs:     total,
		ImpactedCount: len(impacted),
		NewlyCritical: len(newCritical),
		RunAt:         time.Now().UTC(),
		Portfolio: models.PortfolioShift{
			CriticalBefore:      criticalBefore,
			CriticalAfter:       criticalBefore + len(newCritical),
			AvgScoreBefore:      avgBefore,
			AvgScoreAfter:       avgAfter,
			DefaultProbBefore:   pdBefore,
			DefaultProbAfter:    pdAfter,
			TotalExposure:       math.Round(totalExposure),
			NewCriticalExposure: math.Round(newCriticalExposure),
		},
		LossProjection:  loss,
		SectorImpacts:   sectors,
		TopImpacted:     limit(impacted, topImpactedLimit),
		NewCriticalSMEs: limit(newCritical, newCriticalLimit),
		Recommendation:  buildRecommendation(len(newCritical), loss.Year0, sectors),
	}
	return result, nil
}

// buildLossProjection estimates additional expected loss as newly
// critical exposure x newly-critical portfolio fraction x LGD, with
// fixed deterioration drift over years 1-3.
func buildLossProjection(newCriticalExposure, criticalFraction float64) models.LossProjection {
	year0 := newCriticalExposure * criticalFraction * LGD
	return models.LossProjection{
		Year0:         math.Round(year0),
		Year1:         math.Round(year0 * lossDrift[0]),
		Year2:         math.Round(year0 * lossDrift[1]),
		Year3:         math.Round(year0 * lossDrift[2]),
		LGDAssumption: LGD,
	}
}

func reasonText(sector models.Sector, base, multiplier float64) string {
	sensitivity := "low sensitivity"
	switch {
	case multiplier >= 1.3:
		sensitivity = "high sensitivity"
	case multiplier >= 1.0:
		sensitivity = "moderate sensitivity"
	}
	return string(sector) + " - " + sensitivity + " to macro shock"
}

func limit(s []models.SMEImpact, n int) []models.SMEImpact {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
