package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// PortfolioStorage implements the PortfolioStorage interface for Badger
type PortfolioStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPortfolioStorage creates a new PortfolioStorage instance
func NewPortfolioStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PortfolioStorage {
	return &PortfolioStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PortfolioStorage) StoreSME(ctx context.Context, sme *models.SME) error {
	if sme.ID == "" {
		return fmt.Errorf("sme ID is required")
	}
	if err := s.db.Store().Upsert(sme.ID, sme); err != nil {
		return fmt.Errorf("failed to store sme: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetSME(ctx context.Context, id string) (*models.SME, error) {
	var sme models.SME
	if err := s.db.Store().Get(id, &sme); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrSMENotFound, id)
		}
		return nil, fmt.Errorf("failed to get sme: %w", err)
	}
	return &sme, nil
}

func (s *PortfolioStorage) GetAllSMEs(ctx context.Context) ([]*models.SME, error) {
	var smes []models.SME
	if err := s.db.Store().Find(&smes, badgerhold.Where("ID").Ne("").SortBy("ID")); err != nil {
		return nil, fmt.Errorf("failed to list smes: %w", err)
	}
	out := make([]*models.SME, len(smes))
	for i := range smes {
		out[i] = &smes[i]
	}
	return out, nil
}

func (s *PortfolioStorage) CountSMEs(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.SME{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count smes: %w", err)
	}
	return int(count), nil
}

func (s *PortfolioStorage) StoreFinancials(ctx context.Context, periods []models.FinancialPeriod) error {
	for i := range periods {
		if err := s.db.Store().Insert(badgerhold.NextSequence(), &periods[i]); err != nil {
			return fmt.Errorf("failed to store financial period: %w", err)
		}
	}
	return nil
}

func (s *PortfolioStorage) GetFinancials(ctx context.Context, smeID string) ([]models.FinancialPeriod, error) {
	var periods []models.FinancialPeriod
	query := badgerhold.Where("SMEID").Eq(smeID).Index("SMEID").SortBy("PeriodEnd").Reverse()
	if err := s.db.Store().Find(&periods, query); err != nil {
		return nil, fmt.Errorf("failed to get financials: %w", err)
	}
	return periods, nil
}

func (s *PortfolioStorage) StoreEmployeeProfile(ctx context.Context, profile *models.EmployeeProfile) error {
	if err := s.db.Store().Upsert(profile.SMEID, profile); err != nil {
		return fmt.Errorf("failed to store employee profile: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetEmployeeProfile(ctx context.Context, smeID string) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile
	if err := s.db.Store().Get(smeID, &profile); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee profile: %w", err)
	}
	return &profile, nil
}

func (s *PortfolioStorage) StoreWebTraffic(ctx context.Context, traffic *models.WebTraffic) error {
	if err := s.db.Store().Upsert(traffic.SMEID, traffic); err != nil {
		return fmt.Errorf("failed to store web traffic: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetWebTraffic(ctx context.Context, smeID string) (*models.WebTraffic, error) {
	var traffic models.WebTraffic
	if err := s.db.Store().Get(smeID, &traffic); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get web traffic: %w", err)
	}
	return &traffic, nil
}

func (s *PortfolioStorage) StoreNewsEvents(ctx context.Context, events []models.NewsEvent) error {
	for i := range events {
		if err := s.db.Store().Insert(badgerhold.NextSequence(), &events[i]); err != nil {
			return fmt.Errorf("failed to store news event: %w", err)
		}
	}
	return nil
}

func (s *PortfolioStorage) GetNewsEvents(ctx context.Context, smeID string) ([]models.NewsEvent, error) {
	var events []models.NewsEvent
	query := badgerhold.Where("SMEID").Eq(smeID).Index("SMEID").SortBy("Date").Reverse()
	if err := s.db.Store().Find(&events, query); err != nil {
		return nil, fmt.Errorf("failed to get news events: %w", err)
	}
	return events, nil
}

func (s *PortfolioStorage) StoreCompliance(ctx context.Context, record *models.ComplianceRecord) error {
	if err := s.db.Store().Upsert(record.SMEID, record); err != nil {
		return fmt.Errorf("failed to store compliance record: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetCompliance(ctx context.Context, smeID string) (*models.ComplianceRecord, error) {
	var record models.ComplianceRecord
	if err := s.db.Store().Get(smeID, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get compliance record: %w", err)
	}
	return &record, nil
}

// GetSignalBundle assembles everything the scoring pipeline needs for
// one SME. Missing optional tables leave nil fields; only a missing
// master record is an error.
func (s *PortfolioStorage) GetSignalBundle(ctx context.Context, smeID string) (*models.SignalBundle, error) {
	sme, err := s.GetSME(ctx, smeID)
	if err != nil {
		return nil, err
	}

	bundle := &models.SignalBundle{SME: sme}

	if bundle.Financials, err = s.GetFinancials(ctx, smeID); err != nil {
		return nil, err
	}
	if bundle.Employees, err = s.GetEmployeeProfile(ctx, smeID); err != nil {
		return nil, err
	}
	if bundle.Traffic, err = s.GetWebTraffic(ctx, smeID); err != nil {
		return nil, err
	}
	if bundle.News, err = s.GetNewsEvents(ctx, smeID); err != nil {
		return nil, err
	}
	if bundle.Compliance, err = s.GetCompliance(ctx, smeID); err != nil {
		return nil, err
	}

	return bundle, nil
}

func (s *PortfolioStorage) StoreRiskRecord(ctx context.Context, record *models.RiskRecord) error {
	if record.SMEID == "" {
		return fmt.Errorf("sme ID is required")
	}
	if err := s.db.Store().Upsert(record.SMEID, record); err != nil {
		return fmt.Errorf("failed to store risk record: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) GetRiskRecord(ctx context.Context, smeID string) (*models.RiskRecord, error) {
	var record models.RiskRecord
	if err := s.db.Store().Get(smeID, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrSMENotFound, smeID)
		}
		return nil, fmt.Errorf("failed to get risk record: %w", err)
	}
	return &record, nil
}

func (s *PortfolioStorage) GetAllRiskRecords(ctx context.Context) ([]*models.RiskRecord, error) {
	var records []models.RiskRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("SMEID").Ne("").SortBy("SMEID")); err != nil {
		return nil, fmt.Errorf("failed to list risk records: %w", err)
	}
	out := make([]*models.RiskRecord, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out, nil
}

// ClearAll drops every portfolio aggregate. Used before a fresh CSV
// import.
func (s *PortfolioStorage) ClearAll(ctx context.Context) error {
	types := []interface{}{
		&models.SME{},
		&models.FinancialPeriod{},
		&models.EmployeeProfile{},
		&models.WebTraffic{},
		&models.NewsEvent{},
		&models.ComplianceRecord{},
		&models.RiskRecord{},
	}
	for _, t := range types {
		if err := s.db.Store().DeleteMatching(t, nil); err != nil {
			return fmt.Errorf("failed to clear storage: %w", err)
		}
	}
	return nil
}
