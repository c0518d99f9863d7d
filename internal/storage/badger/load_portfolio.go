package badger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// Portfolio snapshot file names expected under the data directory.
// smes.csv is mandatory; every other table is optional and its absence
// only degrades the affected sub-scores.
const (
	smesFile       = "smes.csv"
	financialsFile = "financials.csv"
	employeesFile  = "employees.csv"
	departuresFile = "departures.csv"
	trafficFile    = "web_traffic.csv"
	newsFile       = "news_events.csv"
	complianceFile = "compliance.csv"
)

// LoadPortfolio imports the CSV snapshot into storage. Rows that fail to
// parse are skipped with a warning; a missing optional file is logged
// and ignored.
func LoadPortfolio(ctx context.Context, storage interfaces.PortfolioStorage, dataDir string, logger arbor.ILogger) error {
	smes, err := loadSMEs(ctx, storage, filepath.Join(dataDir, smesFile), logger)
	if err != nil {
		return err
	}

	loaders := []struct {
		file string
		load func(context.Context, interfaces.PortfolioStorage, string, arbor.ILogger) (int, error)
	}{
		{financialsFile, loadFinancials},
		{employeesFile, loadEmployees},
		{departuresFile, loadDepartures},
		{trafficFile, loadTraffic},
		{newsFile, loadNews},
		{complianceFile, loadCompliance},
	}

	for _, l := range loaders {
		path := filepath.Join(dataDir, l.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Warn().Str("file", l.file).Msg("Signal table missing, affected sub-scores will use neutral defaults")
			continue
		}
		count, err := l.load(ctx, storage, path, logger)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", l.file, err)
		}
		logger.Debug().Str("file", l.file).Int("rows", count).Msg("Signal table loaded")
	}

	logger.Info().Int("smes", smes).Str("dir", dataDir).Msg("Portfolio snapshot loaded")
	return nil
}

// readRows opens a CSV file and returns its header-keyed rows.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func loadSMEs(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", smesFile, err)
	}

	count := 0
	for _, row := range rows {
		if row["id"] == "" {
			logger.Warn().Msg("Skipping SME row without id")
			continue
		}
		sme := &models.SME{
			ID:              row["id"],
			Name:            row["name"],
			Sector:          models.Sector(row["sector"]),
			Geography:       parseGeography(row["geography"]),
			AnnualRevenue:   parseFloat(row["revenue"]),
			EmployeeCount:   int(parseFloat(row["employees"])),
			CreditExposure:  parseFloat(row["exposure"]),
			BankRating:      row["bank_rating"],
			RatingTimestamp: parseDate(row["rating_date"]),
			PreviousScore:   parseFloat(row["previous_score"]),
			FoundedYear:     int(parseFloat(row["founded_year"])),
			Website:         row["website"],
		}
		if err := storage.StoreSME(ctx, sme); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func loadFinancials(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	var periods []models.FinancialPeriod
	for _, row := range rows {
		if row["sme_id"] == "" {
			continue
		}
		periods = append(periods, models.FinancialPeriod{
			SMEID:         row["sme_id"],
			PeriodEnd:     parseDate(row["period_end"]),
			Revenue:       parseFloat(row["revenue"]),
			EBITDA:        parseFloat(row["ebitda"]),
			DebtService:   parseFloat(row["debt_service"]),
			TotalDebt:     parseFloat(row["total_debt"]),
			CashBalance:   parseFloat(row["cash_balance"]),
			CurrentRatio:  parseFloat(row["current_ratio"]),
			DSCR:          parseFloat(row["dscr"]),
			RevenueGrowth: parseFloat(row["revenue_growth"]),
			PaymentDays:   parseFloat(row["payment_days"]),
			PaymentTrend:  parseTrend(row["payment_trend"]),
		})
	}
	if err := storage.StoreFinancials(ctx, periods); err != nil {
		return 0, err
	}
	return len(periods), nil
}

func loadEmployees(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		if row["sme_id"] == "" {
			continue
		}
		profile := &models.EmployeeProfile{
			SMEID:            row["sme_id"],
			Headcount:        int(parseFloat(row["headcount"])),
			HeadcountDelta30: int(parseFloat(row["delta_30d"])),
			HeadcountDelta90: int(parseFloat(row["delta_90d"])),
			HeadcountTrend:   parseTrend(row["trend"]),
			HiringActive:     parseBool(row["hiring_active"]),
			AsOf:             parseDate(row["as_of"]),
		}
		if err := storage.StoreEmployeeProfile(ctx, profile); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func loadDepartures(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		smeID := row["sme_id"]
		if smeID == "" {
			continue
		}
		profile, err := storage.GetEmployeeProfile(ctx, smeID)
		if err != nil {
			return count, err
		}
		if profile == nil {
			profile = &models.EmployeeProfile{SMEID: smeID, HeadcountTrend: models.TrendStable}
		}
		profile.Departures = append(profile.Departures, models.Departure{
			Role:             row["role"],
			CLevel:           parseBool(row["c_level"]) || strings.EqualFold(row["seniority"], "c-level"),
			TenureYears:      parseFloat(row["tenure_years"]),
			ReplacementHired: parseBool(row["replacement_hired"]),
			Date:             parseDate(row["date"]),
		})
		if err := storage.StoreEmployeeProfile(ctx, profile); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func loadTraffic(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		if row["sme_id"] == "" {
			continue
		}
		traffic := &models.WebTraffic{
			SMEID:           row["sme_id"],
			MonthlyVisits:   int(parseFloat(row["monthly_visits"])),
			QoQChange:       parseFloat(row["qoq_change"]),
			BounceRate:      parseFloat(row["bounce_rate"]),
			SessionDuration: parseFloat(row["session_duration_sec"]),
			ConversionRate:  parseFloat(row["conversion_rate"]),
			AsOf:            parseDate(row["as_of"]),
		}
		if err := storage.StoreWebTraffic(ctx, traffic); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func loadNews(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	var events []models.NewsEvent
	for _, row := range rows {
		if row["sme_id"] == "" {
			continue
		}
		events = append(events, models.NewsEvent{
			SMEID:       row["sme_id"],
			Headline:    row["headline"],
			EventType:   row["event_type"],
			Sentiment:   parseFloat(row["sentiment"]),
			ImpactScore: parseFloat(row["impact_score"]),
			Severity:    models.NewsSeverity(strings.ToLower(row["severity"])),
			Date:        parseDate(row["date"]),
		})
	}
	if err := storage.StoreNewsEvents(ctx, events); err != nil {
		return 0, err
	}
	return len(events), nil
}

func loadCompliance(ctx context.Context, storage interfaces.PortfolioStorage, path string, logger arbor.ILogger) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		if row["sme_id"] == "" {
			continue
		}
		record := &models.ComplianceRecord{
			SMEID:             row["sme_id"],
			CompanyStatus:     row["company_status"],
			AccountsOverdue:   parseBool(row["accounts_overdue"]),
			DaysOverdue:       int(parseFloat(row["days_overdue"])),
			CCJCount:          int(parseFloat(row["ccj_count"])),
			DirectorChanges:   int(parseFloat(row["director_changes_12m"])),
			InsolvencyFilings: parseInsolvency(row["insolvency_flag"]),
			AsOf:              parseDate(row["as_of"]),
		}
		if err := storage.StoreCompliance(ctx, record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(strings.ToLower(s))
	return v
}

func parseInsolvency(s string) int {
	if parseBool(s) {
		return 1
	}
	return int(parseFloat(s))
}

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTrend(s string) models.Trend {
	switch strings.ToLower(s) {
	case "up", "increasing":
		return models.TrendUp
	case "down", "decreasing":
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

func parseGeography(s string) models.Geography {
	switch strings.ToUpper(s) {
	case "UK":
		return models.GeographyUK
	case "EU":
		return models.GeographyEU
	default:
		return models.GeographyOther
	}
}
