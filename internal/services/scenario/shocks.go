// Package scenario applies portfolio-wide macro shocks to the scored
// book and produces aggregated impact reports. The shock math is pure;
// the Service wraps it with storage access.
package scenario

import (
	"fmt"

	"github.com/ternarybob/aestimo/internal/models"
)

// Loss given default assumption for unsecured SME lending.
const LGD = 0.45

// Conversion factors from macro movements to score points.
const (
	GDPFactor          = 2.0  // score points per 1% GDP contraction
	UnemploymentFactor = 1.5  // score points per 1pp unemployment rise
	RealEstateFactor   = 0.15 // price drop fraction per 1pp PD for exposed sectors
)

// Impact below this many score points does not count an SME as impacted.
const ImpactThreshold = 2.0

// Parameter defaults applied when the caller omits optional fields.
const (
	DefaultRateIncreaseBps     = 200.0
	DefaultSectorSeverity      = 0.7
	DefaultSectorGDPDrag       = 2.0
	DefaultAdverseGDPDecline   = 6.0
	DefaultAdverseUnemployment = 5.0
	DefaultAdverseRealEstate   = 35.0
	DefaultMacroGDPDecline     = 2.0
	DefaultMacroUnemployment   = 1.0
	DefaultMacroSeverity       = 0.5
)

// sectorMultipliers holds the per-sector sensitivity applied on top of
// the base score increase. Above 1 means more sensitive than average.
var sectorMultipliers = map[models.Sector]float64{
	models.SectorConstruction:         1.5,
	models.SectorRetailFashion:        1.3,
	models.SectorFoodHospitality:      1.25,
	models.SectorManufacturing:        1.1,
	models.SectorMarketingServices:    1.0,
	models.SectorLogistics:            1.0,
	models.SectorSoftwareTechnology:   0.8,
	models.SectorProfessionalServices: 0.7,
	models.SectorEnergyUtilities:      0.85,
	models.SectorHealthcare:           0.6,
}

// realEstateSectors take additional stress under the adverse scenario's
// property shock.
var realEstateSectors = map[models.Sector]bool{
	models.SectorConstruction:    true,
	models.SectorFoodHospitality: true,
}

// recessionVectors are the pre-calibrated base increases used when a
// recession scenario names only a severity label.
var recessionVectors = map[models.RecessionSeverity]float64{
	models.RecessionMild:     3.0,
	models.RecessionModerate: 7.0,
	models.RecessionSevere:   12.0,
}

// shock is a resolved scenario: a base portfolio-wide score increase and
// the per-sector multipliers to apply it through.
type shock struct {
	Name         string
	BaseIncrease float64
	Multipliers  map[models.Sector]float64
	Methodology  string
}

// rateIncrease converts a rate rise in basis points to score points
// using the tiered vector.
func rateIncrease(bps float64) float64 {
	switch {
	case bps <= 100:
		return 2.5 * (bps / 100)
	case bps <= 200:
		return 2.5 + 2.5*((bps-100)/100)
	default:
		return 5.0 + 3.0*((bps-200)/100)
	}
}

// floatOr dereferences an optional parameter, substituting the default
// only when the field was absent. An explicit zero stays zero.
func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// resolveShock turns scenario parameters into a concrete shock,
// applying documented defaults for absent optional fields. Unknown
// scenario types return ErrUnknownScenario.
func resolveShock(p models.ScenarioParams) (shock, error) {
	switch p.Type {
	case models.ScenarioInterestRateShock:
		bps := floatOr(p.RateIncreaseBps, DefaultRateIncreaseBps)
		base := rateIncrease(bps)
		return shock{
			Name:         fmt.Sprintf("Interest Rate Shock +%.0fbps", bps),
			BaseIncrease: base,
			Multipliers:  sectorMultipliers,
			Methodology:  fmt.Sprintf("+%.0fbps sustained, estimated base increase %.1f points with sector sensitivity multipliers", bps, base),
		}, nil

	case models.ScenarioRecession:
		gdp := floatOr(p.GDPDeclinePct, 0)
		unemp := floatOr(p.UnemploymentRisePct, 0)
		severity := p.RecessionSeverity
		if severity == "" {
			severity = models.RecessionModerate
		}
		var base float64
		if p.GDPDeclinePct != nil || p.UnemploymentRisePct != nil {
			base = gdp*GDPFactor + unemp*UnemploymentFactor
		} else {
			base = recessionVectors[severity]
		}
		return shock{
			Name:         fmt.Sprintf("Recession / GDP Contraction (%s)", severity),
			BaseIncrease: base,
			Multipliers:  sectorMultipliers,
			Methodology:  fmt.Sprintf("GDP -%.1f%% and unemployment +%.1fpp, combined base increase %.1f points", gdp, unemp, base),
		}, nil

	case models.ScenarioSectorShock:
		sector := p.Sector
		if sector == "" {
			sector = models.SectorRetailFashion
		}
		severity := floatOr(p.Severity, DefaultSectorSeverity)
		gdpDrag := floatOr(p.GDPDeclinePct, DefaultSectorGDPDrag)

		// Concentrate the shock on the named sector, damp the rest.
		targeted := make(map[models.Sector]float64, len(sectorMultipliers))
		for s := range sectorMultipliers {
			targeted[s] = 0.3
		}
		targeted[sector] = 3.0 * severity

		base := gdpDrag*GDPFactor + severity*5
		return shock{
			Name:         fmt.Sprintf("Sector Shock: %s", sector),
			BaseIncrease: base,
			Multipliers:  targeted,
			Methodology:  fmt.Sprintf("targeted shock on %s (severity %.1f, direct multiplier %.1fx) with %.1f%% GDP drag at reduced weight elsewhere", sector, severity, 3.0*severity, gdpDrag),
		}, nil

	case models.ScenarioAdverse:
		bps := floatOr(p.RateIncreaseBps, DefaultRateIncreaseBps)
		gdp := floatOr(p.GDPDeclinePct, DefaultAdverseGDPDecline)
		unemp := floatOr(p.UnemploymentRisePct, DefaultAdverseUnemployment)
		reShock := floatOr(p.RealEstateShockPct, DefaultAdverseRealEstate)

		base := 5.0*(bps/200) + gdp*GDPFactor + unemp*UnemploymentFactor

		// Property shock adds sensitivity to exposed sectors.
		adjusted := make(map[models.Sector]float64, len(sectorMultipliers))
		extra := reShock / 100 / RealEstateFactor * 0.1
		for s, m := range sectorMultipliers {
			if realEstateSectors[s] {
				m += extra
			}
			adjusted[s] = m
		}

		return shock{
			Name:         "Adverse Macro Scenario",
			BaseIncrease: base,
			Multipliers:  adjusted,
			Methodology:  fmt.Sprintf("combined +%.0fbps rates, -%.1f%% GDP, +%.1fpp unemployment, -%.0f%% property; base increase %.1f points", bps, gdp, unemp, reShock, base),
		}, nil

	case models.ScenarioMacroShock:
		gdp := floatOr(p.GDPDeclinePct, DefaultMacroGDPDecline)
		unemp := floatOr(p.UnemploymentRisePct, DefaultMacroUnemployment)
		severity := floatOr(p.Severity, DefaultMacroSeverity)
		name := p.Name
		if name == "" {
			name = "Macro Shock"
		}

		base := gdp*GDPFactor + unemp*UnemploymentFactor + severity*3
		return shock{
			Name:         name,
			BaseIncrease: base,
			Multipliers:  sectorMultipliers,
			Methodology:  fmt.Sprintf("generic macro shock, estimated combined base increase %.1f points", base),
		}, nil

	default:
		return shock{}, fmt.Errorf("%w: %s", ErrUnknownScenario, p.Type)
	}
}

// multiplierFor returns the sector's sensitivity, defaulting to 1.0 for
// unmapped sectors.
func (s shock) multiplierFor(sector models.Sector) float64 {
	if m, ok := s.Multipliers[sector]; ok {
		return m
	}
	return 1.0
}
