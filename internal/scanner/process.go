package scanner

import (
	"errors"
	"os"
	"os/exec"
	"sync/atomic"
	"time"
)

// ExitStatus is the terminal state of a waited process.
type ExitStatus struct {
	Code     int
	State    string
	Duration time.Duration
}

// Success reports whether the process exited with status 0.
func (s ExitStatus) Success() bool {
	return s.Code == 0
}

// Process is an exclusively owned handle to a spawned scanner. It may be
// waited on exactly once.
type Process struct {
	Scanner    ID
	Executable string
	Args       []string
	StartedAt  time.Time

	cmd    *exec.Cmd
	group  bool
	waited atomic.Bool
	exited atomic.Bool
}

// PID returns the operating system process ID.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the process exits. A non-zero exit status is reported
// in ExitStatus, not as an error.
func (p *Process) Wait() (ExitStatus, error) {
	if !p.waited.CompareAndSwap(false, true) {
		return ExitStatus{}, ErrAlreadyWaited
	}

	err := p.cmd.Wait()
	p.exited.Store(true)
	status := ExitStatus{Duration: time.Since(p.StartedAt)}
	if ps := p.cmd.ProcessState; ps != nil {
		status.Code = ps.ExitCode()
		status.State = ps.String()
	}

	// ErrWaitDelay means the process exited but a descendant held the
	// output pipes open past waitDelay.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
		return status, err
	}
	return status, nil
}

// Kill terminates the process immediately, together with its descendants
// when it leads its own process group. Killing an already exited process is
// not an error.
func (p *Process) Kill() error {
	if p.exited.Load() {
		return nil
	}
	if p.group {
		return killProcessGroup(p.cmd)
	}
	return p.Signal(os.Kill)
}

// Signal sends sig to the process.
func (p *Process) Signal(sig os.Signal) error {
	err := p.cmd.Process.Signal(sig)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}
