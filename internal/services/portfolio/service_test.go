package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// recordStorage stubs the risk-record reads; other storage methods are
// never hit by this service.
type recordStorage struct {
	interfaces.PortfolioStorage
	records []*models.RiskRecord
}

func (s *recordStorage) GetAllRiskRecords(ctx context.Context) ([]*models.RiskRecord, error) {
	return s.records, nil
}

func (s *recordStorage) GetRiskRecord(ctx context.Context, smeID string) (*models.RiskRecord, error) {
	for _, r := range s.records {
		if r.SMEID == smeID {
			return r, nil
		}
	}
	return nil, models.ErrSMENotFound
}

func testService() *Service {
	storage := &recordStorage{records: []*models.RiskRecord{
		{SMEID: "0001", Name: "Brickline Contractors", Sector: models.SectorConstruction, CompositeScore: 72, Category: models.RiskCategoryCritical, CreditExposure: 2_000_000},
		{SMEID: "0002", Name: "Nimbus Software", Sector: models.SectorSoftwareTechnology, CompositeScore: 18, Category: models.RiskCategoryStable, CreditExposure: 800_000},
		{SMEID: "0003", Name: "Harbour Logistics", Sector: models.SectorLogistics, CompositeScore: 45, Category: models.RiskCategoryMedium, CreditExposure: 1_200_000},
		{SMEID: "0004", Name: "Stonegate Builders", Sector: models.SectorConstruction, CompositeScore: 66, Category: models.RiskCategoryCritical, CreditExposure: 900_000},
	}}
	return NewService(storage, arbor.NewLogger())
}

func TestList(t *testing.T) {
	svc := testService()

	records, total, err := svc.List(context.Background(), interfaces.PortfolioListOptions{
		Sector:  models.SectorConstruction,
		SortBy:  "score",
		SortDir: "desc",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, records, 2)
	assert.Equal(t, "0001", records[0].SMEID)
	assert.Equal(t, "0004", records[1].SMEID)
}

func TestListScoreRangeAndPaging(t *testing.T) {
	svc := testService()

	records, total, err := svc.List(context.Background(), interfaces.PortfolioListOptions{
		MinScore: 40,
		SortBy:   "score",
		SortDir:  "asc",
		Limit:    2,
		Offset:   1,
	})
	require.NoError(t, err)

	// Matches 45, 66, 72; page skips the first.
	assert.Equal(t, 3, total)
	require.Len(t, records, 2)
	assert.Equal(t, 66.0, records[0].CompositeScore)
	assert.Equal(t, 72.0, records[1].CompositeScore)
}

func TestListOffsetPastEnd(t *testing.T) {
	svc := testService()

	records, total, err := svc.List(context.Background(), interfaces.PortfolioListOptions{Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, records)
}

func TestSummary(t *testing.T) {
	svc := testService()

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalSMEs)
	assert.Equal(t, 4_900_000.0, summary.TotalExposure)
	assert.Equal(t, 1, summary.StableCount)
	assert.Equal(t, 1, summary.MediumCount)
	assert.Equal(t, 2, summary.CriticalCount)
	assert.Equal(t, 2_900_000.0, summary.CriticalExposure)
	// (72+18+45+66)/4 = 50.25 -> 50.3
	assert.Equal(t, 50.3, summary.AverageScore)
}

func TestSectorBreakdown(t *testing.T) {
	svc := testService()

	breakdown, err := svc.SectorBreakdown(context.Background())
	require.NoError(t, err)
	require.Len(t, breakdown, 3)

	// Ordered by average score: construction (69) first.
	assert.Equal(t, models.SectorConstruction, breakdown[0].Sector)
	assert.Equal(t, 69.0, breakdown[0].AverageScore)
	assert.Equal(t, 2, breakdown[0].CriticalCount)
	assert.Equal(t, 2_900_000.0, breakdown[0].TotalExposure)
}

func TestCriticalSMEs(t *testing.T) {
	svc := testService()

	records, err := svc.CriticalSMEs(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0001", records[0].SMEID)
}

func TestSearch(t *testing.T) {
	svc := testService()

	records, err := svc.Search(context.Background(), "build", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Stonegate Builders", records[0].Name)

	records, err = svc.Search(context.Background(), "0002", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = svc.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGet(t *testing.T) {
	svc := testService()

	record, err := svc.Get(context.Background(), "0003")
	require.NoError(t, err)
	assert.Equal(t, "Harbour Logistics", record.Name)

	_, err = svc.Get(context.Background(), "9999")
	assert.ErrorIs(t, err, models.ErrSMENotFound)
}
