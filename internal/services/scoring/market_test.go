package scoring

import (
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
)

func TestCalculateMarket(t *testing.T) {
	tests := []struct {
		name      string
		sme       *models.SME
		growth    float64
		wantScore float64
	}{
		{
			name: "small construction firm outside core regions",
			sme: &models.SME{
				Sector:        models.SectorConstruction,
				Geography:     models.GeographyOther,
				AnnualRevenue: 1_000_000,
			},
			growth: -5,
			// sector 60, competitive 75, geo 40
			wantScore: 58.5,
		},
		{
			name: "large domestic software firm",
			sme: &models.SME{
				Sector:        models.SectorSoftwareTechnology,
				Geography:     models.GeographyUK,
				AnnualRevenue: 6_000_000,
			},
			growth: 10,
			// sector 25, competitive 15, geo 15 (domestic, growing)
			wantScore: 19.0,
		},
		{
			name: "unmapped sector takes the default base risk",
			sme: &models.SME{
				Sector:        models.Sector("Mining"),
				Geography:     models.GeographyUK,
				AnnualRevenue: 2_000_000,
			},
			growth: 0,
			// sector 40, competitive 50, geo 20 (domestic, flat)
			wantScore: 37.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMarket(tt.sme, tt.growth)

			if !approxEqual(got.Score, tt.wantScore, 0.05) {
				t.Errorf("Score = %.2f, want %.2f", got.Score, tt.wantScore)
			}
		})
	}
}

func TestSectorBaseRiskOrdering(t *testing.T) {
	// Structural ordering the tables encode: construction carries the
	// most base risk, healthcare the least.
	if sectorBaseRisk[models.SectorConstruction] <= sectorBaseRisk[models.SectorSoftwareTechnology] {
		t.Error("construction should carry more base risk than software")
	}
	if sectorBaseRisk[models.SectorHealthcare] >= sectorBaseRisk[models.SectorRetailFashion] {
		t.Error("healthcare should carry less base risk than retail")
	}
}
