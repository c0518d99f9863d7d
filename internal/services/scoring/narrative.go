package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/aestimo/internal/models"
)

// narrativeTopSignals is how many drivers the movement narrative names.
const narrativeTopSignals = 3

// stabilityDelta is the score movement below which the narrative reports
// stability instead of drivers.
const stabilityDelta = 2.0

// DetectActiveSignals scans the raw signal bundle for named risk events
// and weighs them with the fixed signal-weight table. Returned signals
// are sorted by absolute impact, largest first.
func DetectActiveSignals(b *models.SignalBundle) []models.ActiveSignal {
	var signals []models.ActiveSignal

	add := func(event, description, component string) {
		w := SignalWeight(event)
		if w == 0 {
			return
		}
		signals = append(signals, models.ActiveSignal{
			Name:        event,
			Description: description,
			Impact:      w,
			Component:   component,
		})
	}

	if b.Employees != nil {
		for _, d := range b.Employees.Departures {
			event := departureEvent(d)
			add(event, fmt.Sprintf("%s departure", d.Role), "alt_data")
		}
		if b.Employees.HeadcountTrend == models.TrendUp {
			add("expansion", "headcount growing", "alt_data")
		}
	}

	if b.Traffic != nil {
		switch {
		case b.Traffic.QoQChange < -25:
			add("client_churn", fmt.Sprintf("web traffic %.0f%% QoQ", b.Traffic.QoQChange), "alt_data")
		case b.Traffic.QoQChange < -10:
			add("negative_news", fmt.Sprintf("web traffic %.0f%% QoQ", b.Traffic.QoQChange), "alt_data")
		}
	}

	for _, e := range b.News {
		switch {
		case e.Severity == models.NewsSeverityCritical:
			add("regulation_critical", e.Headline, "alt_data")
		case e.Severity == models.NewsSeverityWarning:
			add("regulation_warning", e.Headline, "alt_data")
		case e.Sentiment < -0.4:
			add("negative_news", e.Headline, "alt_data")
		case e.Sentiment > 0.5:
			add("contract_win", e.Headline, "alt_data")
		}
	}

	if b.Compliance != nil {
		if b.Compliance.InsolvencyFilings > 0 {
			add("regulation_critical", "insolvency filing on record", "compliance")
		}
		if b.Compliance.CCJCount > 0 {
			add("litigation", fmt.Sprintf("%d CCJ(s) registered", b.Compliance.CCJCount), "compliance")
		}
		if b.Compliance.DirectorChanges >= 2 {
			add("compliance_issue", fmt.Sprintf("%d director changes in 12 months", b.Compliance.DirectorChanges), "compliance")
		}
	}

	if f := b.LatestFinancial(); f != nil {
		if f.PaymentTrend == models.TrendUp {
			add("payment_delay", fmt.Sprintf("payment days lengthening (%.0f)", f.PaymentDays), "operational")
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return absF(signals[i].Impact) > absF(signals[j].Impact)
	})
	return signals
}

// BuildNarrative renders the score movement explanation. With movement
// under stabilityDelta or no active signals it reports stability.
func BuildNarrative(previous, current float64, signals []models.ActiveSignal) string {
	delta := current - previous

	if absF(delta) < stabilityDelta || len(signals) == 0 {
		return fmt.Sprintf("Score stable at %.0f; no significant signal movement.", current)
	}

	top := signals
	if len(top) > narrativeTopSignals {
		top = top[:narrativeTopSignals]
	}

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = fmt.Sprintf("(%d) %s (%+.0f)", i+1, s.Description, s.Impact)
	}

	return fmt.Sprintf("Score moved %.0f→%.0f (%+.0f) because: %s",
		previous, current, delta, strings.Join(parts, ", "))
}

// departureEvent maps a departure record to its weighted event name.
func departureEvent(d models.Departure) string {
	role := strings.ToUpper(strings.TrimSpace(d.Role))
	switch {
	case strings.HasPrefix(role, "CEO"):
		return "ceo_departure"
	case strings.HasPrefix(role, "CFO"):
		return "cfo_departure"
	case strings.HasPrefix(role, "CTO"):
		return "cto_departure"
	case d.CLevel:
		return "executive_departure"
	case strings.HasPrefix(role, "VP"):
		return "vp_departure"
	default:
		return ""
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
