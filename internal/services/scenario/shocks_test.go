package scenario

import (
	"errors"
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
)

func f64(v float64) *float64 {
	return &v
}

func TestRateIncrease(t *testing.T) {
	tests := []struct {
		bps  float64
		want float64
	}{
		{100, 2.5},
		{150, 3.75},
		{200, 5.0},
		{300, 8.0},
		{50, 1.25},
	}

	for _, tt := range tests {
		if got := rateIncrease(tt.bps); got != tt.want {
			t.Errorf("rateIncrease(%.0f) = %.2f, want %.2f", tt.bps, got, tt.want)
		}
	}
}

func TestResolveShockDefaults(t *testing.T) {
	// Bare interest rate shock defaults to +200bps.
	sh, err := resolveShock(models.ScenarioParams{Type: models.ScenarioInterestRateShock})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}
	if sh.BaseIncrease != 5.0 {
		t.Errorf("BaseIncrease = %.2f, want 5.0 for default 200bps", sh.BaseIncrease)
	}

	// Bare recession falls back to the moderate vector.
	sh, err = resolveShock(models.ScenarioParams{Type: models.ScenarioRecession})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}
	if sh.BaseIncrease != 7.0 {
		t.Errorf("BaseIncrease = %.2f, want 7.0 for default moderate recession", sh.BaseIncrease)
	}
}

func TestResolveShockExplicitZeroRate(t *testing.T) {
	// A supplied 0bps rise is a zero-magnitude shock, not a request for
	// the 200bps default.
	sh, err := resolveShock(models.ScenarioParams{
		Type:            models.ScenarioInterestRateShock,
		RateIncreaseBps: f64(0),
	})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}
	if sh.BaseIncrease != 0 {
		t.Errorf("BaseIncrease = %.2f, want 0 for explicit 0bps", sh.BaseIncrease)
	}
}

func TestResolveShockDegenerateRecession(t *testing.T) {
	// GDP 0 and unemployment 0 supplied explicitly must not fall back to
	// the moderate severity vector.
	sh, err := resolveShock(models.ScenarioParams{
		Type:                models.ScenarioRecession,
		GDPDeclinePct:       f64(0),
		UnemploymentRisePct: f64(0),
	})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}
	if sh.BaseIncrease != 0 {
		t.Errorf("BaseIncrease = %.2f, want 0 for 0%% GDP / 0pp unemployment", sh.BaseIncrease)
	}
}

func TestResolveShockRecessionExplicit(t *testing.T) {
	sh, err := resolveShock(models.ScenarioParams{
		Type:                models.ScenarioRecession,
		GDPDeclinePct:       f64(3.5),
		UnemploymentRisePct: f64(3.0),
	})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}
	// 3.5*2.0 + 3.0*1.5 = 11.5
	if sh.BaseIncrease != 11.5 {
		t.Errorf("BaseIncrease = %.2f, want 11.5", sh.BaseIncrease)
	}
}

func TestResolveShockSectorTargeting(t *testing.T) {
	sh, err := resolveShock(models.ScenarioParams{
		Type:     models.ScenarioSectorShock,
		Sector:   models.SectorConstruction,
		Severity: f64(1.0),
	})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}

	if got := sh.multiplierFor(models.SectorConstruction); got != 3.0 {
		t.Errorf("target multiplier = %.1f, want 3.0", got)
	}
	if got := sh.multiplierFor(models.SectorHealthcare); got != 0.3 {
		t.Errorf("off-target multiplier = %.1f, want 0.3", got)
	}
	// gdp drag default 2.0 -> 2*2.0 + 1.0*5 = 9.0
	if sh.BaseIncrease != 9.0 {
		t.Errorf("BaseIncrease = %.2f, want 9.0", sh.BaseIncrease)
	}
}

func TestResolveShockAdversePropertyStress(t *testing.T) {
	sh, err := resolveShock(models.ScenarioParams{Type: models.ScenarioAdverse})
	if err != nil {
		t.Fatalf("resolveShock error: %v", err)
	}

	// 5.0 (200bps) + 6*2.0 + 5*1.5 = 24.5
	if sh.BaseIncrease != 24.5 {
		t.Errorf("BaseIncrease = %.2f, want 24.5", sh.BaseIncrease)
	}
	// Property-exposed sectors pick up extra sensitivity.
	if sh.multiplierFor(models.SectorConstruction) <= sectorMultipliers[models.SectorConstruction] {
		t.Error("construction should gain sensitivity under the property shock")
	}
	if sh.multiplierFor(models.SectorSoftwareTechnology) != sectorMultipliers[models.SectorSoftwareTechnology] {
		t.Error("non-property sectors should keep their baseline multiplier")
	}
}

func TestResolveShockUnknownType(t *testing.T) {
	_, err := resolveShock(models.ScenarioParams{Type: "alien_invasion"})
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("err = %v, want ErrUnknownScenario", err)
	}
}
