package types

import (
	"strconv"
	"strings"
	"time"
)

// Invocation is the record of a single scanner launch against a target.
type Invocation struct {
	Scanner     string    `json:"scanner"`
	Executable  string    `json:"executable"`
	Args        []string  `json:"args,omitempty"`
	Target      Target    `json:"target"`
	PID         int       `json:"pid,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	ExitCode    int       `json:"exit_code"`
	State       string    `json:"state,omitempty"`
	Output      []string  `json:"output,omitempty"`
	Stderr      string    `json:"stderr,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Launched reports whether a process was actually started.
func (i Invocation) Launched() bool {
	return i.PID != 0
}

// Succeeded reports whether the process started and exited with status 0.
func (i Invocation) Succeeded() bool {
	return i.Launched() && i.Error == "" && i.ExitCode == 0
}

// Duration returns how long the process ran.
func (i Invocation) Duration() time.Duration {
	if i.StartedAt.IsZero() || i.CompletedAt.IsZero() {
		return 0
	}
	return i.CompletedAt.Sub(i.StartedAt)
}

// CommandLine renders the executable and its arguments for display.
func (i Invocation) CommandLine() string {
	if len(i.Args) == 0 {
		return i.Executable
	}
	return i.Executable + " " + strings.Join(i.Args, " ")
}

// Status returns a short human-readable outcome.
func (i Invocation) Status() string {
	switch {
	case i.Error != "" && !i.Launched():
		return "failed to launch"
	case i.Error != "":
		return "aborted"
	case i.ExitCode == 0:
		return "ok"
	default:
		return "exit " + strconv.Itoa(i.ExitCode)
	}
}
