package scenario

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// Service runs stress scenarios against the scored portfolio.
type Service struct {
	storage  interfaces.PortfolioStorage
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewService creates a new scenario service
func NewService(storage interfaces.PortfolioStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
	}
}

// Run validates the parameters, loads the scored book and applies the
// scenario in one pass.
func (s *Service) Run(ctx context.Context, params models.ScenarioParams) (*models.ScenarioResult, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, err
	}

	records, err := s.storage.GetAllRiskRecords(ctx)
	if err != nil {
		return nil, err
	}

	result, err := Apply(params, records)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("scenario", string(params.Type)).
		Int("total_smes", result.TotalSMEs).
		Int("impacted", result.ImpactedCount).
		Int("newly_critical", result.NewlyCritical).
		Float64("loss_year0", result.LossProjection.Year0).
		Str("tier", string(result.Recommendation.Tier)).
		Msg("Scenario completed")

	return result, nil
}
