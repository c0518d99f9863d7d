// Package risk orchestrates scoring: it assembles signal bundles from
// storage, runs the scoring pipeline and persists the resulting risk
// records.
package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/aestimo/internal/services/scoring"
)

// Service scores SMEs from their current signal set.
type Service struct {
	storage interfaces.PortfolioStorage
	logger  arbor.ILogger
}

// NewService creates a new risk service
func NewService(storage interfaces.PortfolioStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Score computes a fresh risk record for one SME and persists it.
// Returns models.ErrSMENotFound when the identifier has no master
// record. Missing secondary signals degrade to neutral defaults with a
// logged warning, never an error.
func (s *Service) Score(ctx context.Context, smeID string) (*models.RiskRecord, error) {
	bundle, err := s.storage.GetSignalBundle(ctx, smeID)
	if err != nil {
		return nil, err
	}

	composite, fin, op, _, alt := scoring.ScoreBundle(bundle)

	if fin.Degraded {
		s.logger.Warn().Str("sme_id", smeID).Msg("No financial periods, neutral default applied")
	}
	if op.Degraded {
		s.logger.Warn().Str("sme_id", smeID).Msg("No operational data, neutral default applied")
	}
	for _, name := range alt.Degraded {
		s.logger.Warn().Str("sme_id", smeID).Str("signal", name).Msg("Signal table missing, neutral default applied")
	}

	record := &models.RiskRecord{
		SMEID:            bundle.SME.ID,
		Name:             bundle.SME.Name,
		Sector:           bundle.SME.Sector,
		Geography:        bundle.SME.Geography,
		CompositeScore:   composite.Score,
		Category:         composite.Category,
		Components:       composite.Components,
		Grade:            composite.Grade,
		BankRating:       bundle.SME.BankRating,
		RatingGapNotches: composite.RatingGapNotches,
		RatingStale:      composite.RatingStale,
		DefaultProb:      composite.DefaultProb,
		CreditExposure:   bundle.SME.CreditExposure,
		ActiveSignals:    composite.ActiveSignals,
		Narrative:        composite.Narrative,
		ScoredAt:         time.Now().UTC(),
	}

	if err := s.storage.StoreRiskRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store risk record for %s: %w", smeID, err)
	}

	s.logger.Debug().
		Str("sme_id", smeID).
		Float64("score", record.CompositeScore).
		Str("category", string(record.Category)).
		Str("grade", record.Grade).
		Msg("SME scored")

	return record, nil
}

// ScoreBatch scores many SMEs. Individual failures are reported per
// item; the batch itself never aborts.
func (s *Service) ScoreBatch(ctx context.Context, smeIDs []string) ([]models.BatchScoreItem, error) {
	items := make([]models.BatchScoreItem, 0, len(smeIDs))
	for _, id := range smeIDs {
		item := models.BatchScoreItem{SMEID: id}
		record, err := s.Score(ctx, id)
		if err != nil {
			item.Error = err.Error()
			s.logger.Warn().Str("sme_id", id).Err(err).Msg("Batch scoring item failed")
		} else {
			item.Record = record
		}
		items = append(items, item)
	}
	return items, nil
}

// ScoreAll scores the entire portfolio.
func (s *Service) ScoreAll(ctx context.Context) ([]models.BatchScoreItem, error) {
	smes, err := s.storage.GetAllSMEs(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(smes))
	for i, sme := range smes {
		ids[i] = sme.ID
	}

	items, err := s.ScoreBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, item := range items {
		if item.Error != "" {
			failed++
		}
	}
	s.logger.Info().
		Int("total", len(items)).
		Int("failed", failed).
		Msg("Portfolio scoring completed")

	return items, nil
}
