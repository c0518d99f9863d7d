package scoring

import (
	"fmt"

	"github.com/ternarybob/aestimo/internal/models"
)

// CalculateAltData scores non-traditional signals. Score: 0-100, higher
// is riskier. Every sub-signal tolerates missing data: the affected
// component takes its neutral default and is reported in Degraded.
//
// Sub-components:
// - Employee Signals   (35%)
// - Web Traffic        (30%)
// - News Sentiment     (20%)
// - Compliance Flags   (15%)
func CalculateAltData(
	employees *models.EmployeeProfile,
	traffic *models.WebTraffic,
	news []models.NewsEvent,
	compliance *models.ComplianceRecord,
) AltDataResult {
	var degraded []string

	employeeScore := float64(neutralEmployeeScore)
	if employees != nil {
		employeeScore = scoreEmployees(employees)
	} else {
		degraded = append(degraded, "employees")
	}

	trafficScore := float64(neutralTrafficScore)
	if traffic != nil {
		trafficScore = scoreTraffic(traffic.QoQChange)
	} else {
		degraded = append(degraded, "traffic")
	}

	newsScore := float64(neutralNewsScore)
	if len(news) > 0 {
		newsScore = scoreNews(news)
	} else {
		degraded = append(degraded, "news")
	}

	complianceScore := float64(neutralComplianceScore)
	if compliance != nil {
		complianceScore = scoreCompliance(compliance)
	} else {
		degraded = append(degraded, "compliance")
	}

	components := AltDataComponents{
		EmployeeScore:   employeeScore,
		TrafficScore:    trafficScore,
		NewsScore:       newsScore,
		ComplianceScore: complianceScore,
	}

	score := employeeScore*SubWeightEmployee +
		trafficScore*SubWeightTraffic +
		newsScore*SubWeightNews +
		complianceScore*SubWeightCompliance

	reasoning := fmt.Sprintf("employee %.0f, traffic %.0f, news %.0f, compliance %.0f",
		employeeScore, trafficScore, newsScore, complianceScore)
	if len(degraded) > 0 {
		reasoning += fmt.Sprintf(" (neutral defaults: %v)", degraded)
	}

	return AltDataResult{
		Score:      round1(clamp(score, 0, 100)),
		Components: components,
		Degraded:   degraded,
		Reasoning:  reasoning,
	}
}

// scoreEmployees weighs C-level departures above headcount direction.
func scoreEmployees(p *models.EmployeeProfile) float64 {
	cLevel := 0
	for _, d := range p.Departures {
		if d.CLevel {
			cLevel++
		}
	}

	switch {
	case cLevel >= 2:
		return 85
	case cLevel == 1:
		return 70
	case p.HeadcountTrend == models.TrendDown:
		return 55
	case p.HeadcountTrend == models.TrendUp:
		return 15
	default:
		return 30
	}
}

func scoreTraffic(qoqChange float64) float64 {
	if qoqChange > 10 {
		return 15
	}
	return scoreBelow(trafficBands, qoqChange, 30)
}

func scoreNews(events []models.NewsEvent) float64 {
	critical := 0
	sum := 0.0
	for _, e := range events {
		if e.Severity == models.NewsSeverityCritical {
			critical++
		}
		sum += e.Sentiment
	}
	avg := sum / float64(len(events))

	switch {
	case critical >= 2 || avg < -0.7:
		return 95
	case critical == 1 || avg < -0.4:
		return 70
	case avg > 0.5:
		return 15
	default:
		return 30
	}
}

func scoreCompliance(r *models.ComplianceRecord) float64 {
	switch {
	case r.InsolvencyFilings > 0:
		return 95
	case r.CCJCount >= 3 || r.DirectorChanges >= 3:
		return 80
	case r.CCJCount >= 1 || r.DirectorChanges >= 2:
		return 50
	default:
		return 20
	}
}
