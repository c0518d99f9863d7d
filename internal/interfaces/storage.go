package interfaces

import (
	"context"

	"github.com/ternarybob/aestimo/internal/models"
)

// PortfolioStorage - interface for SME and signal persistence
type PortfolioStorage interface {
	// SME operations
	StoreSME(ctx context.Context, sme *models.SME) error
	GetSME(ctx context.Context, id string) (*models.SME, error)
	GetAllSMEs(ctx context.Context) ([]*models.SME, error)
	CountSMEs(ctx context.Context) (int, error)

	// Signal operations
	StoreFinancials(ctx context.Context, periods []models.FinancialPeriod) error
	GetFinancials(ctx context.Context, smeID string) ([]models.FinancialPeriod, error)
	StoreEmployeeProfile(ctx context.Context, profile *models.EmployeeProfile) error
	GetEmployeeProfile(ctx context.Context, smeID string) (*models.EmployeeProfile, error)
	StoreWebTraffic(ctx context.Context, traffic *models.WebTraffic) error
	GetWebTraffic(ctx context.Context, smeID string) (*models.WebTraffic, error)
	StoreNewsEvents(ctx context.Context, events []models.NewsEvent) error
	GetNewsEvents(ctx context.Context, smeID string) ([]models.NewsEvent, error)
	StoreCompliance(ctx context.Context, record *models.ComplianceRecord) error
	GetCompliance(ctx context.Context, smeID string) (*models.ComplianceRecord, error)

	// GetSignalBundle assembles the full signal set for one SME. Missing
	// optional signals leave nil fields; a missing SME returns an error.
	GetSignalBundle(ctx context.Context, smeID string) (*models.SignalBundle, error)

	// Risk record operations
	StoreRiskRecord(ctx context.Context, record *models.RiskRecord) error
	GetRiskRecord(ctx context.Context, smeID string) (*models.RiskRecord, error)
	GetAllRiskRecords(ctx context.Context) ([]*models.RiskRecord, error)

	// Bulk operations
	ClearAll(ctx context.Context) error
}

// ScenarioJobStorage - interface for scenario job persistence
type ScenarioJobStorage interface {
	StoreJob(ctx context.Context, job *models.ScenarioJob) error
	GetJob(ctx context.Context, id string) (*models.ScenarioJob, error)
	ListJobs(ctx context.Context, limit int) ([]*models.ScenarioJob, error)
	UpdateJob(ctx context.Context, job *models.ScenarioJob) error
	DeleteJob(ctx context.Context, id string) error
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	PortfolioStorage() PortfolioStorage
	ScenarioJobStorage() ScenarioJobStorage
	Close() error
}
