package models

import "time"

// Sector identifies the industry classification of an SME. The set is
// closed: scoring tables and stress multipliers are keyed by these values
// and an unknown sector falls back to documented defaults.
type Sector string

const (
	SectorSoftwareTechnology   Sector = "Software/Technology"
	SectorHealthcare           Sector = "Healthcare"
	SectorEnergyUtilities      Sector = "Energy/Utilities"
	SectorManufacturing        Sector = "Manufacturing"
	SectorRetailFashion        Sector = "Retail/Fashion"
	SectorFoodHospitality      Sector = "Food/Hospitality"
	SectorConstruction         Sector = "Construction"
	SectorMarketingServices    Sector = "Marketing Services"
	SectorProfessionalServices Sector = "Professional Services"
	SectorLogistics            Sector = "Logistics"
)

// Sectors lists every recognised sector in display order.
var Sectors = []Sector{
	SectorSoftwareTechnology,
	SectorHealthcare,
	SectorEnergyUtilities,
	SectorManufacturing,
	SectorRetailFashion,
	SectorFoodHospitality,
	SectorConstruction,
	SectorMarketingServices,
	SectorProfessionalServices,
	SectorLogistics,
}

// Geography is the coarse operating region of an SME.
type Geography string

const (
	GeographyUK    Geography = "UK"
	GeographyEU    Geography = "EU"
	GeographyOther Geography = "Other"
)

// Trend is a qualitative direction indicator attached to several signals.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// SME is a portfolio member. Fields mirror what the lending book holds:
// identity, classification, exposure and the externally assigned bank
// rating the engine compares its own grade against.
type SME struct {
	ID              string    `json:"id" badgerhold:"key"`
	Name            string    `json:"name"`
	Sector          Sector    `json:"sector"`
	Geography       Geography `json:"geography"`
	AnnualRevenue   float64   `json:"annual_revenue"`
	EmployeeCount   int       `json:"employee_count"`
	CreditExposure  float64   `json:"credit_exposure"`
	BankRating      string    `json:"bank_rating"`
	RatingTimestamp time.Time `json:"rating_timestamp"`
	PreviousScore   float64   `json:"previous_score"`
	FoundedYear     int       `json:"founded_year,omitempty"`
	Website         string    `json:"website,omitempty"`
}
