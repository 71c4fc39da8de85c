package jobs

import (
	"context"
	"time"

	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/pkg/types"
)

// JobStatus represents the current state of a scan job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// ScannerState is the per-scanner progress entry of a job.
type ScannerState struct {
	Scanner string `json:"scanner"`
	Status  string `json:"status"`
}

// JobProgress tracks scanner-level progress within a job.
type JobProgress struct {
	TotalScanners     int            `json:"total_scanners"`
	CompletedScanners int            `json:"completed_scanners"`
	FailedScanners    int            `json:"failed_scanners"`
	Scanners          []ScannerState `json:"scanners"`
}

// Job represents an async scan job.
type Job struct {
	ID          string             `json:"id"`
	Target      types.Target       `json:"target"`
	Scanners    []scanner.ID       `json:"-"`
	Options     scanner.Options    `json:"-"`
	Status      JobStatus          `json:"status"`
	Invocations []types.Invocation `json:"invocations,omitempty"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	StartedAt   time.Time          `json:"started_at,omitempty"`
	CompletedAt time.Time          `json:"completed_at,omitempty"`
	Progress    JobProgress        `json:"progress"`

	cancel context.CancelFunc
}

// ScannerNames returns the requested scanners by name.
func (j *Job) ScannerNames() []string {
	names := make([]string, len(j.Scanners))
	for i, id := range j.Scanners {
		names[i] = id.String()
	}
	return names
}

// LineCount returns the number of captured output lines across the job.
func (j *Job) LineCount() int {
	n := 0
	for _, inv := range j.Invocations {
		n += len(inv.Output)
	}
	return n
}

// snapshot returns a copy safe to hand out while the job keeps running.
func (j *Job) snapshot() Job {
	c := *j
	c.cancel = nil
	c.Scanners = append([]scanner.ID(nil), j.Scanners...)
	c.Progress.Scanners = append([]ScannerState(nil), j.Progress.Scanners...)
	c.Invocations = make([]types.Invocation, 0, len(j.Invocations))
	for _, inv := range j.Invocations {
		if inv.Scanner != "" {
			c.Invocations = append(c.Invocations, inv)
		}
	}
	return c
}
