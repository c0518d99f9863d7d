// Package jobs wraps scenario execution in background jobs with status
// polling. The runner carries no scoring logic of its own.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// Runner manages asynchronous scenario runs. Job records are persisted
// so submissions survive a restart, though an interrupted running job
// stays in its last stored state.
type Runner struct {
	scenarios interfaces.ScenarioService
	storage   interfaces.ScenarioJobStorage
	logger    arbor.ILogger

	mu sync.Mutex
	wg sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewRunner creates a new scenario job runner
func NewRunner(scenarios interfaces.ScenarioService, storage interfaces.ScenarioJobStorage, logger arbor.ILogger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		scenarios: scenarios,
		storage:   storage,
		logger:    logger,
		baseCtx:   ctx,
		cancel:    cancel,
	}
}

// Submit records a pending job and starts the scenario in the
// background. The job identifier is returned immediately for polling.
func (r *Runner) Submit(ctx context.Context, params models.ScenarioParams) (*models.ScenarioJob, error) {
	job := &models.ScenarioJob{
		ID:        common.NewJobID(),
		Status:    models.JobStatusPending,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.storage.StoreJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to store job: %w", err)
	}

	r.logger.Info().
		Str("job_id", job.ID).
		Str("scenario", string(params.Type)).
		Msg("Scenario job submitted")

	r.wg.Add(1)
	go r.execute(job.ID, params)

	return job, nil
}

// execute runs one job to a terminal state.
func (r *Runner) execute(jobID string, params models.ScenarioParams) {
	defer r.wg.Done()

	if !r.transition(jobID, models.JobStatusPending, models.JobStatusRunning) {
		return
	}

	result, err := r.scenarios.Run(r.baseCtx, params)

	r.mu.Lock()
	defer r.mu.Unlock()

	job, getErr := r.storage.GetJob(r.baseCtx, jobID)
	if getErr != nil {
		r.logger.Error().Str("job_id", jobID).Err(getErr).Msg("Failed to load job for completion")
		return
	}
	if job.IsTerminal() {
		// Cancelled while running; drop the result.
		return
	}

	now := time.Now().UTC()
	job.CompletedAt = &now
	if err != nil {
		job.Status = models.JobStatusFailed
		job.Error = err.Error()
		r.logger.Warn().Str("job_id", jobID).Err(err).Msg("Scenario job failed")
	} else {
		job.Status = models.JobStatusCompleted
		job.Result = result
		r.logger.Info().
			Str("job_id", jobID).
			Int("newly_critical", result.NewlyCritical).
			Msg("Scenario job completed")
	}

	if err := r.storage.UpdateJob(r.baseCtx, job); err != nil {
		r.logger.Error().Str("job_id", jobID).Err(err).Msg("Failed to persist job result")
	}
}

// transition moves a job from one status to another, returning false if
// the job is no longer in the expected state.
func (r *Runner) transition(jobID string, from, to models.JobStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.storage.GetJob(r.baseCtx, jobID)
	if err != nil || job.Status != from {
		return false
	}

	job.Status = to
	if to == models.JobStatusRunning {
		now := time.Now().UTC()
		job.StartedAt = &now
	}
	if err := r.storage.UpdateJob(r.baseCtx, job); err != nil {
		r.logger.Error().Str("job_id", jobID).Err(err).Msg("Failed to persist job transition")
		return false
	}
	return true
}

// Status returns the job's current state and, when completed, its
// result.
func (r *Runner) Status(ctx context.Context, jobID string) (*models.ScenarioJob, error) {
	return r.storage.GetJob(ctx, jobID)
}

// List returns recent jobs, newest first.
func (r *Runner) List(ctx context.Context, limit int) ([]*models.ScenarioJob, error) {
	return r.storage.ListJobs(ctx, limit)
}

// Cancel marks a non-terminal job cancelled. A job already running will
// finish its computation but its result is discarded.
func (r *Runner) Cancel(ctx context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.storage.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.IsTerminal() {
		return fmt.Errorf("job %s already %s", jobID, job.Status)
	}

	now := time.Now().UTC()
	job.Status = models.JobStatusCancelled
	job.CompletedAt = &now
	return r.storage.UpdateJob(ctx, job)
}

// Shutdown waits for in-flight jobs to finish.
func (r *Runner) Shutdown() {
	r.cancel()
	r.wg.Wait()
}
