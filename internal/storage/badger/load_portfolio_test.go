package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/models"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadPortfolio(t *testing.T) {
	storage := NewPortfolioStorage(testDB(t), arbor.NewLogger())
	dataDir := t.TempDir()

	writeCSV(t, dataDir, smesFile,
		"id,name,sector,geography,revenue,employees,exposure,bank_rating,rating_date,previous_score,founded_year,website\n"+
			"0001,Brickline Contractors,Construction,UK,2400000,38,1500000,BBB,2025-11-14,48,2011,brickline.example\n"+
			"0002,Nimbus Analytics,Software/Technology,EU,\"1,200,000\",14,600000,A,2026-02-03,22,2018,nimbus.example\n")
	writeCSV(t, dataDir, financialsFile,
		"sme_id,period_end,revenue,ebitda,debt_service,total_debt,cash_balance,current_ratio,dscr,revenue_growth,payment_days,payment_trend\n"+
			"0001,2026-03-31,2300000,180000,160000,900000,120000,1.1,1.2,-4.5,52,increasing\n"+
			"0001,2026-06-30,2400000,200000,160000,880000,110000,1.2,1.3,4.3,49,stable\n")
	writeCSV(t, dataDir, employeesFile,
		"sme_id,headcount,delta_30d,delta_90d,trend,hiring_active,as_of\n"+
			"0001,38,-2,-5,down,false,2026-07-01\n")
	writeCSV(t, dataDir, departuresFile,
		"sme_id,role,c_level,tenure_years,replacement_hired,date\n"+
			"0001,CFO,true,6.5,false,2026-06-15\n")
	writeCSV(t, dataDir, trafficFile,
		"sme_id,monthly_visits,qoq_change,bounce_rate,session_duration_sec,conversion_rate,as_of\n"+
			"0001,5400,-28.0,61.5,94,1.8,2026-07-01\n")
	writeCSV(t, dataDir, newsFile,
		"sme_id,headline,event_type,sentiment,impact_score,severity,date\n"+
			"0001,Supplier dispute escalates,legal_dispute,-0.6,5.5,warning,2026-06-20\n")
	writeCSV(t, dataDir, complianceFile,
		"sme_id,company_status,accounts_overdue,days_overdue,ccj_count,director_changes_12m,insolvency_flag,as_of\n"+
			"0001,active,true,31,1,2,false,2026-07-01\n")

	ctx := context.Background()
	require.NoError(t, LoadPortfolio(ctx, storage, dataDir, arbor.NewLogger()))

	count, err := storage.CountSMEs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Quoted thousands separators parse as plain numbers.
	nimbus, err := storage.GetSME(ctx, "0002")
	require.NoError(t, err)
	assert.Equal(t, 1_200_000.0, nimbus.AnnualRevenue)
	assert.Equal(t, models.GeographyEU, nimbus.Geography)

	bundle, err := storage.GetSignalBundle(ctx, "0001")
	require.NoError(t, err)

	require.Len(t, bundle.Financials, 2)
	latest := bundle.LatestFinancial()
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), latest.PeriodEnd)
	assert.Equal(t, models.TrendStable, latest.PaymentTrend)
	assert.Equal(t, models.TrendUp, bundle.Financials[1].PaymentTrend)

	require.NotNil(t, bundle.Employees)
	assert.Equal(t, 38, bundle.Employees.Headcount)
	assert.Equal(t, -2, bundle.Employees.HeadcountDelta30)
	assert.Equal(t, -5, bundle.Employees.HeadcountDelta90)
	assert.Equal(t, models.TrendDown, bundle.Employees.HeadcountTrend)
	assert.False(t, bundle.Employees.HiringActive)
	require.Len(t, bundle.Employees.Departures, 1)
	assert.True(t, bundle.Employees.Departures[0].CLevel)
	assert.Equal(t, 6.5, bundle.Employees.Departures[0].TenureYears)
	assert.False(t, bundle.Employees.Departures[0].ReplacementHired)

	require.NotNil(t, bundle.Traffic)
	assert.Equal(t, -28.0, bundle.Traffic.QoQChange)
	assert.Equal(t, 61.5, bundle.Traffic.BounceRate)
	assert.Equal(t, 94.0, bundle.Traffic.SessionDuration)
	assert.Equal(t, 1.8, bundle.Traffic.ConversionRate)

	require.Len(t, bundle.News, 1)
	assert.Equal(t, models.NewsSeverityWarning, bundle.News[0].Severity)
	assert.Equal(t, "legal_dispute", bundle.News[0].EventType)
	assert.Equal(t, 5.5, bundle.News[0].ImpactScore)

	require.NotNil(t, bundle.Compliance)
	assert.Equal(t, "active", bundle.Compliance.CompanyStatus)
	assert.True(t, bundle.Compliance.AccountsOverdue)
	assert.Equal(t, 31, bundle.Compliance.DaysOverdue)
	assert.Equal(t, 1, bundle.Compliance.CCJCount)
	assert.Equal(t, 0, bundle.Compliance.InsolvencyFilings)
}

func TestLoadPortfolioMissingOptionalTables(t *testing.T) {
	storage := NewPortfolioStorage(testDB(t), arbor.NewLogger())
	dataDir := t.TempDir()

	writeCSV(t, dataDir, smesFile,
		"id,name,sector,geography,revenue,employees,exposure,bank_rating\n"+
			"0001,Solo Ltd,Retail/Fashion,UK,800000,6,250000,BB\n")

	ctx := context.Background()
	require.NoError(t, LoadPortfolio(ctx, storage, dataDir, arbor.NewLogger()))

	bundle, err := storage.GetSignalBundle(ctx, "0001")
	require.NoError(t, err)
	assert.Empty(t, bundle.Financials)
	assert.Nil(t, bundle.Employees)
	assert.Nil(t, bundle.Traffic)
	assert.Nil(t, bundle.Compliance)
}

func TestLoadPortfolioMissingMasterFile(t *testing.T) {
	storage := NewPortfolioStorage(testDB(t), arbor.NewLogger())

	err := LoadPortfolio(context.Background(), storage, t.TempDir(), arbor.NewLogger())
	assert.Error(t, err)
}
