package models

import "time"

// FinancialPeriod is one reporting period of fundamentals for an SME.
// Amounts are in GBP; margins and growth are percentages.
type FinancialPeriod struct {
	ID            uint64    `json:"-" badgerhold:"key"`
	SMEID         string    `json:"sme_id" badgerhold:"index"`
	PeriodEnd     time.Time `json:"period_end"`
	Revenue       float64   `json:"revenue"`
	EBITDA        float64   `json:"ebitda"`
	DebtService   float64   `json:"debt_service"`
	TotalDebt     float64   `json:"total_debt"`
	CashBalance   float64   `json:"cash_balance"`
	CurrentRatio  float64   `json:"current_ratio"`
	DSCR          float64   `json:"dscr"`
	RevenueGrowth float64   `json:"revenue_growth"`
	PaymentDays   float64   `json:"payment_days"`
	PaymentTrend  Trend     `json:"payment_trend"`
}

// Departure records a single employee exit, used by the workforce signal.
type Departure struct {
	Role             string    `json:"role"`
	CLevel           bool      `json:"c_level"`
	TenureYears      float64   `json:"tenure_years,omitempty"`
	ReplacementHired bool      `json:"replacement_hired"`
	Date             time.Time `json:"date"`
}

// EmployeeProfile summarises headcount movement over the lookback window.
// One profile per SME, keyed by SME ID.
type EmployeeProfile struct {
	SMEID            string      `json:"sme_id" badgerhold:"key"`
	Headcount        int         `json:"headcount"`
	HeadcountDelta30 int         `json:"headcount_delta_30d"`
	HeadcountDelta90 int         `json:"headcount_delta_90d"`
	HeadcountTrend   Trend       `json:"headcount_trend"`
	HiringActive     bool        `json:"hiring_active"`
	Departures       []Departure `json:"departures,omitempty"`
	AsOf             time.Time   `json:"as_of"`
}

// WebTraffic is a quarterly web activity observation. QoQChange is the
// quarter on quarter percentage change in visits.
type WebTraffic struct {
	SMEID           string    `json:"sme_id" badgerhold:"key"`
	MonthlyVisits   int       `json:"monthly_visits"`
	QoQChange       float64   `json:"qoq_change"`
	BounceRate      float64   `json:"bounce_rate,omitempty"`
	SessionDuration float64   `json:"session_duration_sec,omitempty"`
	ConversionRate  float64   `json:"conversion_rate,omitempty"`
	AsOf            time.Time `json:"as_of"`
}

// NewsSeverity classifies a news event by adverse impact.
type NewsSeverity string

const (
	NewsSeverityCritical NewsSeverity = "critical"
	NewsSeverityWarning  NewsSeverity = "warning"
	NewsSeverityInfo     NewsSeverity = "info"
)

// NewsEvent is a scored media mention. Sentiment runs -1.0 (adverse)
// to +1.0 (favourable).
type NewsEvent struct {
	ID          uint64       `json:"-" badgerhold:"key"`
	SMEID       string       `json:"sme_id" badgerhold:"index"`
	Headline    string       `json:"headline"`
	EventType   string       `json:"event_type,omitempty"`
	Sentiment   float64      `json:"sentiment"`
	ImpactScore float64      `json:"impact_score,omitempty"`
	Severity    NewsSeverity `json:"severity"`
	Date        time.Time    `json:"date"`
}

// ComplianceRecord carries registry and court data for an SME.
type ComplianceRecord struct {
	SMEID             string    `json:"sme_id" badgerhold:"key"`
	CompanyStatus     string    `json:"company_status,omitempty"`
	AccountsOverdue   bool      `json:"accounts_overdue"`
	DaysOverdue       int       `json:"days_overdue,omitempty"`
	CCJCount          int       `json:"ccj_count"`
	DirectorChanges   int       `json:"director_changes"`
	InsolvencyFilings int       `json:"insolvency_filings"`
	AsOf              time.Time `json:"as_of"`
}

// SignalBundle is everything the scoring engine consumes for one SME.
// Any pointer field may be nil when the upstream feed has no data; the
// scorers substitute neutral defaults and the gap is logged, never fatal.
type SignalBundle struct {
	SME        *SME
	Financials []FinancialPeriod
	Employees  *EmployeeProfile
	Traffic    *WebTraffic
	News       []NewsEvent
	Compliance *ComplianceRecord
}

// LatestFinancial returns the most recent period, or nil when none exist.
// Financials are stored newest first.
func (b *SignalBundle) LatestFinancial() *FinancialPeriod {
	if len(b.Financials) == 0 {
		return nil
	}
	return &b.Financials[0]
}

// PreviousFinancial returns the period before the latest, or nil.
func (b *SignalBundle) PreviousFinancial() *FinancialPeriod {
	if len(b.Financials) < 2 {
		return nil
	}
	return &b.Financials[1]
}
