package scoring

import (
	"strings"
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
)

func TestDetectActiveSignals(t *testing.T) {
	bundle := &models.SignalBundle{
		SME: &models.SME{ID: "0001"},
		Employees: &models.EmployeeProfile{
			Departures: []models.Departure{
				{Role: "CEO", CLevel: true},
				{Role: "CFO", CLevel: true},
			},
		},
		Traffic: &models.WebTraffic{QoQChange: -45},
		News: []models.NewsEvent{
			{Headline: "Regulator opens investigation", Sentiment: -0.8, Severity: models.NewsSeverityCritical},
		},
	}

	signals := DetectActiveSignals(bundle)

	if len(signals) < 4 {
		t.Fatalf("got %d signals, want at least 4", len(signals))
	}

	// Sorted by absolute impact: critical news (15) ahead of the two
	// C-level departures (12 each), traffic churn last.
	if signals[0].Name != "regulation_critical" {
		t.Errorf("signals[0] = %s, want regulation_critical", signals[0].Name)
	}
	if signals[1].Name != "ceo_departure" || signals[2].Name != "cfo_departure" {
		t.Errorf("signals[1:3] = %s, %s, want ceo_departure, cfo_departure", signals[1].Name, signals[2].Name)
	}

	top3 := map[string]bool{}
	for _, s := range signals[:3] {
		top3[s.Component] = true
	}
	if !top3["alt_data"] {
		t.Error("top signals should come from the alternative data cluster")
	}
}

func TestDetectActiveSignalsQuietBook(t *testing.T) {
	bundle := &models.SignalBundle{
		SME:        &models.SME{ID: "0002"},
		Employees:  &models.EmployeeProfile{HeadcountTrend: models.TrendStable},
		Compliance: &models.ComplianceRecord{},
	}

	if got := DetectActiveSignals(bundle); len(got) != 0 {
		t.Errorf("got %d signals, want none", len(got))
	}
}

func TestBuildNarrative(t *testing.T) {
	signals := []models.ActiveSignal{
		{Name: "regulation_critical", Description: "Regulator opens investigation", Impact: 15},
		{Name: "ceo_departure", Description: "CEO departure", Impact: 12},
		{Name: "client_churn", Description: "web traffic -45% QoQ", Impact: 6},
		{Name: "negative_news", Description: "supplier dispute", Impact: 4},
	}

	got := BuildNarrative(40, 55, signals)

	if !strings.Contains(got, "40→55") {
		t.Errorf("narrative missing score movement: %s", got)
	}
	if !strings.Contains(got, "(1) Regulator opens investigation") {
		t.Errorf("narrative missing top driver: %s", got)
	}
	if !strings.Contains(got, "(3) web traffic -45% QoQ") {
		t.Errorf("narrative missing third driver: %s", got)
	}
	if strings.Contains(got, "supplier dispute") {
		t.Errorf("narrative should cap at three drivers: %s", got)
	}
}

func TestBuildNarrativeStable(t *testing.T) {
	got := BuildNarrative(50, 50.5, []models.ActiveSignal{{Name: "expansion", Impact: -2}})
	if !strings.Contains(got, "stable") {
		t.Errorf("small delta should render stability statement: %s", got)
	}

	got = BuildNarrative(40, 55, nil)
	if !strings.Contains(got, "stable") {
		t.Errorf("no signals should render stability statement: %s", got)
	}
}

func TestDepartureEvent(t *testing.T) {
	tests := []struct {
		role   string
		cLevel bool
		want   string
	}{
		{"CEO", true, "ceo_departure"},
		{"CFO", true, "cfo_departure"},
		{"CTO", true, "cto_departure"},
		{"COO", true, "executive_departure"},
		{"VP Engineering", false, "vp_departure"},
		{"Analyst", false, ""},
	}

	for _, tt := range tests {
		got := departureEvent(models.Departure{Role: tt.role, CLevel: tt.cLevel})
		if got != tt.want {
			t.Errorf("departureEvent(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}
