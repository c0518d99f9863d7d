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

// ScenarioJobStorage implements the ScenarioJobStorage interface for Badger
type ScenarioJobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewScenarioJobStorage creates a new ScenarioJobStorage instance
func NewScenarioJobStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ScenarioJobStorage {
	return &ScenarioJobStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ScenarioJobStorage) StoreJob(ctx context.Context, job *models.ScenarioJob) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	if err := s.db.Store().Upsert(job.ID, job); err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	return nil
}

func (s *ScenarioJobStorage) GetJob(ctx context.Context, id string) (*models.ScenarioJob, error) {
	var job models.ScenarioJob
	if err := s.db.Store().Get(id, &job); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (s *ScenarioJobStorage) ListJobs(ctx context.Context, limit int) ([]*models.ScenarioJob, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var jobs []models.ScenarioJob
	if err := s.db.Store().Find(&jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	out := make([]*models.ScenarioJob, len(jobs))
	for i := range jobs {
		out[i] = &jobs[i]
	}
	return out, nil
}

func (s *ScenarioJobStorage) UpdateJob(ctx context.Context, job *models.ScenarioJob) error {
	return s.StoreJob(ctx, job)
}

func (s *ScenarioJobStorage) DeleteJob(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.ScenarioJob{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("job not found: %s", id)
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
