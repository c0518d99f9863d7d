package interfaces

import (
	"context"

	"github.com/ternarybob/aestimo/internal/models"
)

// RiskService scores SMEs from their current signal set.
type RiskService interface {
	// Score computes a fresh risk record for one SME and persists it.
	Score(ctx context.Context, smeID string) (*models.RiskRecord, error)

	// ScoreBatch scores many SMEs. Individual failures are reported per
	// item; the batch itself never aborts.
	ScoreBatch(ctx context.Context, smeIDs []string) ([]models.BatchScoreItem, error)

	// ScoreAll scores the entire portfolio.
	ScoreAll(ctx context.Context) ([]models.BatchScoreItem, error)
}

// ScenarioService runs stress scenarios against the scored portfolio.
type ScenarioService interface {
	Run(ctx context.Context, params models.ScenarioParams) (*models.ScenarioResult, error)
}

// ScenarioJobService manages asynchronous scenario runs.
type ScenarioJobService interface {
	Submit(ctx context.Context, params models.ScenarioParams) (*models.ScenarioJob, error)
	Status(ctx context.Context, jobID string) (*models.ScenarioJob, error)
	List(ctx context.Context, limit int) ([]*models.ScenarioJob, error)
	Cancel(ctx context.Context, jobID string) error
}

// PortfolioListOptions controls portfolio listing
type PortfolioListOptions struct {
	Sector   models.Sector
	Category models.RiskCategory
	MinScore float64
	MaxScore float64
	SortBy   string // score, exposure, name
	SortDir  string // asc, desc
	Limit    int
	Offset   int
}

// PortfolioService answers read queries over the scored book.
type PortfolioService interface {
	List(ctx context.Context, opts PortfolioListOptions) ([]*models.RiskRecord, int, error)
	Get(ctx context.Context, smeID string) (*models.RiskRecord, error)
	Summary(ctx context.Context) (*models.PortfolioSummary, error)
	SectorBreakdown(ctx context.Context) ([]models.SectorBreakdown, error)
	CriticalSMEs(ctx context.Context, limit int) ([]*models.RiskRecord, error)
	Search(ctx context.Context, query string, limit int) ([]*models.RiskRecord, error)
}
