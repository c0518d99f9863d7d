package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/models"
)

// memJobStorage is an in-memory ScenarioJobStorage.
type memJobStorage struct {
	mu   sync.Mutex
	jobs map[string]models.ScenarioJob
}

func newMemJobStorage() *memJobStorage {
	return &memJobStorage{jobs: map[string]models.ScenarioJob{}}
}

func (m *memJobStorage) StoreJob(ctx context.Context, job *models.ScenarioJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

func (m *memJobStorage) GetJob(ctx context.Context, id string) (*models.ScenarioJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	copied := job
	return &copied, nil
}

func (m *memJobStorage) ListJobs(ctx context.Context, limit int) ([]*models.ScenarioJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ScenarioJob
	for _, job := range m.jobs {
		copied := job
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memJobStorage) UpdateJob(ctx context.Context, job *models.ScenarioJob) error {
	return m.StoreJob(ctx, job)
}

func (m *memJobStorage) DeleteJob(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, id)
	return nil
}

// stubScenarios returns a canned result after an optional delay.
type stubScenarios struct {
	delay  time.Duration
	result *models.ScenarioResult
	err    error
}

func (s *stubScenarios) Run(ctx context.Context, params models.ScenarioParams) (*models.ScenarioResult, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func waitForTerminal(t *testing.T, r *Runner, jobID string) *models.ScenarioJob {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		job, err := r.Status(context.Background(), jobID)
		require.NoError(t, err)
		if job.IsTerminal() {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state")
	return nil
}

func TestSubmitAndComplete(t *testing.T) {
	scenarios := &stubScenarios{
		result: &models.ScenarioResult{Name: "Recession", NewlyCritical: 3},
	}
	runner := NewRunner(scenarios, newMemJobStorage(), arbor.NewLogger())
	defer runner.Shutdown()

	job, err := runner.Submit(context.Background(), models.ScenarioParams{Type: models.ScenarioRecession})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.JobStatusPending, job.Status)

	final := waitForTerminal(t, runner, job.ID)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
	require.NotNil(t, final.Result)
	assert.Equal(t, 3, final.Result.NewlyCritical)
	assert.NotNil(t, final.StartedAt)
	assert.NotNil(t, final.CompletedAt)
}

func TestSubmitFailure(t *testing.T) {
	scenarios := &stubScenarios{err: errors.New("unknown scenario type: bad")}
	runner := NewRunner(scenarios, newMemJobStorage(), arbor.NewLogger())
	defer runner.Shutdown()

	job, err := runner.Submit(context.Background(), models.ScenarioParams{Type: "bad"})
	require.NoError(t, err)

	final := waitForTerminal(t, runner, job.ID)
	assert.Equal(t, models.JobStatusFailed, final.Status)
	assert.Contains(t, final.Error, "unknown scenario")
	assert.Nil(t, final.Result)
}

func TestCancelRunningJobDiscardsResult(t *testing.T) {
	scenarios := &stubScenarios{
		delay:  200 * time.Millisecond,
		result: &models.ScenarioResult{Name: "Slow"},
	}
	runner := NewRunner(scenarios, newMemJobStorage(), arbor.NewLogger())

	job, err := runner.Submit(context.Background(), models.ScenarioParams{Type: models.ScenarioRecession})
	require.NoError(t, err)

	// Give the job time to leave pending, then cancel mid-run.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, runner.Cancel(context.Background(), job.ID))

	runner.Shutdown()

	final, err := runner.Status(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, final.Status)
	assert.Nil(t, final.Result)
}

func TestCancelTerminalJobRejected(t *testing.T) {
	scenarios := &stubScenarios{result: &models.ScenarioResult{}}
	runner := NewRunner(scenarios, newMemJobStorage(), arbor.NewLogger())
	defer runner.Shutdown()

	job, err := runner.Submit(context.Background(), models.ScenarioParams{Type: models.ScenarioRecession})
	require.NoError(t, err)
	waitForTerminal(t, runner, job.ID)

	err = runner.Cancel(context.Background(), job.ID)
	assert.Error(t, err)
}

func TestListJobs(t *testing.T) {
	scenarios := &stubScenarios{result: &models.ScenarioResult{}}
	runner := NewRunner(scenarios, newMemJobStorage(), arbor.NewLogger())
	defer runner.Shutdown()

	for i := 0; i < 3; i++ {
		_, err := runner.Submit(context.Background(), models.ScenarioParams{Type: models.ScenarioRecession})
		require.NoError(t, err)
	}

	jobs, err := runner.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}
