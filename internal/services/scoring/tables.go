package scoring

import "github.com/ternarybob/aestimo/internal/models"

// band maps a threshold to the risk points assigned when the input clears
// it. Bands are evaluated in order; the fallback applies when none match.
type band struct {
	Threshold float64
	Points    float64
}

// scoreAbove returns the points of the first band whose threshold the
// value strictly exceeds. Bands must be sorted descending.
func scoreAbove(bands []band, value, fallback float64) float64 {
	for _, b := range bands {
		if value > b.Threshold {
			return b.Points
		}
	}
	return fallback
}

// scoreBelow returns the points of the first band the value falls
// strictly under. Bands must be sorted ascending.
func scoreBelow(bands []band, value, fallback float64) float64 {
	for _, b := range bands {
		if value < b.Threshold {
			return b.Points
		}
	}
	return fallback
}

// Financial ratio bands. Points rise as cover deteriorates.
var (
	dscrBands = []band{
		{2.5, 5}, {2.0, 15}, {1.5, 30}, {1.2, 50}, {1.0, 70},
	}
	currentRatioBands = []band{
		{2.0, 5}, {1.5, 15}, {1.2, 35}, {1.0, 60},
	}
	debtToEquityBands = []band{
		{0.5, 5}, {1.0, 15}, {1.5, 30}, {2.0, 50}, {3.0, 75},
	}
	cashRunwayBands = []band{
		{12, 5}, {9, 20}, {6, 40}, {3, 70},
	}
	ebitdaMarginBands = []band{
		{25, 5}, {20, 15}, {15, 25}, {10, 40}, {5, 65},
	}
)

// Operational bands.
var (
	revenueGrowthBands = []band{
		{20, 10}, {10, 20}, {5, 30}, {0, 45}, {-5, 70},
	}
	revenueTrendBands = []band{
		{5, 10}, {0, 25}, {-2, 40}, {-5, 65},
	}
)

// sectorBaseRisk holds the structural risk points per sector. Unmapped
// sectors take sectorRiskDefault.
var sectorBaseRisk = map[models.Sector]float64{
	models.SectorSoftwareTechnology:   25,
	models.SectorHealthcare:           20,
	models.SectorEnergyUtilities:      30,
	models.SectorManufacturing:        35,
	models.SectorRetailFashion:        55,
	models.SectorFoodHospitality:      50,
	models.SectorConstruction:         60,
	models.SectorMarketingServices:    45,
	models.SectorProfessionalServices: 30,
	models.SectorLogistics:            40,
}

const sectorRiskDefault = 40

// sectorBeta feeds the logistic default-probability link. Unmapped
// sectors contribute zero.
var sectorBeta = map[models.Sector]float64{
	models.SectorConstruction:         0.8,
	models.SectorRetailFashion:        0.6,
	models.SectorFoodHospitality:      0.5,
	models.SectorManufacturing:        0.2,
	models.SectorSoftwareTechnology:   -0.3,
	models.SectorHealthcare:           -0.4,
	models.SectorEnergyUtilities:      -0.2,
	models.SectorMarketingServices:    0.3,
	models.SectorProfessionalServices: -0.1,
	models.SectorLogistics:            0.1,
}

// Web traffic QoQ change bands, most severe first.
var trafficBands = []band{
	{-40, 95}, {-25, 75}, {-10, 50},
}

// Neutral defaults used when a sub-signal table is missing. Traffic is
// mid-range rather than mildly elevated because absence of traffic data
// says nothing either way about a web-facing business.
const (
	neutralEmployeeScore   = 30
	neutralTrafficScore    = 50
	neutralNewsScore       = 30
	neutralComplianceScore = 30
)

// signalWeights assigns signed risk points to named events for the score
// movement narrative. Positive raises risk, negative lowers it.
var signalWeights = map[string]float64{
	"ceo_departure":       12,
	"cfo_departure":       12,
	"cto_departure":       10,
	"executive_departure": 8,
	"vp_departure":        6,

	"payment_delay":   5,
	"client_churn":    6,
	"supplier_issues": 4,

	"regulation_critical": 15,
	"regulation_warning":  8,
	"compliance_issue":    10,

	"negative_news":     4,
	"litigation":        9,
	"reputation_damage": 7,

	"contract_win":  -3,
	"funding_round": -5,
	"expansion":     -2,
}

// SignalWeight returns the narrative weight for a named event, zero for
// unrecognised events.
func SignalWeight(event string) float64 {
	return signalWeights[event]
}
