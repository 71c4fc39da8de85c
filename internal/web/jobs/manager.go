package jobs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned for unknown job IDs.
var ErrNotFound = errors.New("job not found")

// newUUID generates job IDs. Extracted as a variable for testing.
var newUUID = uuid.NewString

// Manager manages scan job lifecycle: create, execute, track, store results.
type Manager struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	runner *scanner.Runner
	logger zerolog.Logger
	wg     sync.WaitGroup
}

// NewManager creates a new job manager backed by the given scanner runner.
func NewManager(runner *scanner.Runner, logger zerolog.Logger) *Manager {
	return &Manager{
		jobs:   make(map[string]*Job),
		runner: runner,
		logger: logger,
	}
}

// Runner returns the runner jobs execute on.
func (m *Manager) Runner() *scanner.Runner {
	return m.runner
}

// Create creates a new pending scan job. Output capture is always on.
func (m *Manager) Create(target types.Target, ids []scanner.ID, opts scanner.Options) Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	opts.Capture = true
	opts.OnFinish = nil

	states := make([]ScannerState, len(ids))
	for i, id := range ids {
		states[i] = ScannerState{Scanner: id.String(), Status: string(StatusPending)}
	}

	job := &Job{
		ID:          newUUID(),
		Target:      target,
		Scanners:    append([]scanner.ID(nil), ids...),
		Options:     opts,
		Status:      StatusPending,
		Invocations: make([]types.Invocation, len(ids)),
		CreatedAt:   time.Now(),
		Progress: JobProgress{
			TotalScanners: len(ids),
			Scanners:      states,
		},
	}
	m.jobs[job.ID] = job
	return job.snapshot()
}

// Start launches the scan job in a background goroutine.
func (m *Manager) Start(jobID string) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrNotFound, jobID)
	}
	if job.Status != StatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job %q is already %s", jobID, job.Status)
	}

	ctx, cancel := context.WithCancel(context.Background())
	job.cancel = cancel
	job.Status = StatusRunning
	job.StartedAt = time.Now()
	for i := range job.Progress.Scanners {
		job.Progress.Scanners[i].Status = string(StatusRunning)
	}
	m.mu.Unlock()

	m.wg.Add(1)
	go m.execute(ctx, cancel, job)
	return nil
}

func (m *Manager) execute(ctx context.Context, cancel context.CancelFunc, job *Job) {
	defer m.wg.Done()
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			job.Status = StatusFailed
			job.Error = fmt.Sprintf("panic: %v", r)
			job.CompletedAt = time.Now()
			m.mu.Unlock()
			m.logger.Error().Str("job", job.ID).Interface("panic", r).Msg("scan job panicked")
		}
	}()

	m.logger.Info().
		Str("job", job.ID).
		Str("target", job.Target.URL).
		Strs("scanners", job.ScannerNames()).
		Msg("scan job started")

	opts := job.Options
	opts.OnFinish = func(i int, inv types.Invocation) {
		m.mu.Lock()
		defer m.mu.Unlock()
		job.Invocations[i] = inv
		job.Progress.CompletedScanners++
		if !inv.Succeeded() {
			job.Progress.FailedScanners++
		}
		job.Progress.Scanners[i].Status = inv.Status()
	}

	results := m.runner.RunAll(ctx, job.Scanners, job.Target, opts)

	m.mu.Lock()
	defer m.mu.Unlock()
	job.Invocations = results
	job.CompletedAt = time.Now()
	job.cancel = nil

	launched := 0
	for _, inv := range results {
		if inv.Launched() {
			launched++
		}
	}

	switch {
	case ctx.Err() != nil:
		job.Status = StatusCancelled
		job.Error = "scan cancelled"
	case launched == 0 && len(results) > 0:
		job.Status = StatusFailed
		job.Error = "no scanner could be launched"
	default:
		job.Status = StatusCompleted
	}

	m.logger.Info().
		Str("job", job.ID).
		Str("status", string(job.Status)).
		Int("launched", launched).
		Dur("duration", job.CompletedAt.Sub(job.StartedAt)).
		Msg("scan job finished")
}

// Get returns a snapshot of a job by ID.
func (m *Manager) Get(jobID string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return Job{}, fmt.Errorf("%w: %q", ErrNotFound, jobID)
	}
	return job.snapshot(), nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		result = append(result, j.snapshot())
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Cancel stops a running job. The job's status becomes cancelled once its
// processes have been killed.
func (m *Manager) Cancel(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, jobID)
	}
	if job.cancel != nil {
		job.cancel()
	}
	return nil
}

// Delete cancels the job if it is still running and removes it.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, jobID)
	}
	if job.cancel != nil {
		job.cancel()
	}
	delete(m.jobs, jobID)
	return nil
}

// Shutdown cancels every running job and waits for them to stop or for ctx
// to expire.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for _, job := range m.jobs {
		if job.cancel != nil {
			job.cancel()
		}
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
