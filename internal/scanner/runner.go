package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/buemura/reconbox/pkg/types"
	"github.com/rs/zerolog"
)

// Runner launches scanners against a target and waits for them, applying
// caller policy: timeouts, output capture and batch failure handling.
type Runner struct {
	registry *Registry
	invoker  *Invoker
	logger   zerolog.Logger
}

// NewRunner creates a runner. Nil registry or invoker fall back to the
// defaults used by NewToolBox.
func NewRunner(registry *Registry, invoker *Invoker, logger zerolog.Logger) *Runner {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if invoker == nil {
		invoker = NewInvoker(WithLogger(logger))
	}
	return &Runner{registry: registry, invoker: invoker, logger: logger}
}

// Registry returns the registry the runner resolves specs from.
func (r *Runner) Registry() *Registry {
	return r.registry
}

type waitResult struct {
	status ExitStatus
	err    error
}

// RunOne spawns a single scanner and waits for it. The returned error is the
// launch error, if any; the Invocation records it as well.
func (r *Runner) RunOne(ctx context.Context, id ID, target types.Target, opts Options) (types.Invocation, error) {
	spec, ok := r.registry.Lookup(id)
	if !ok {
		return types.Invocation{Scanner: id.String(), Target: target}, fmt.Errorf("scanner %q not found", id)
	}
	inv := types.Invocation{
		Scanner:    id.String(),
		Executable: spec.Executable,
		Target:     target,
		StartedAt:  time.Now(),
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		inv.Error = err.Error()
		inv.CompletedAt = time.Now()
		return inv, err
	}

	invoker := r.invoker
	var stdout, stderr bytes.Buffer
	if opts.Capture {
		invoker = invoker.WithStreams(Streams{Stdout: &stdout, Stderr: &stderr})
	}

	proc, err := NewToolBox(target, r.registry, invoker).Spawn(id)
	if err != nil {
		if args, rerr := Render(spec, target); rerr == nil {
			inv.Args = args
		}
		inv.Error = err.Error()
		inv.CompletedAt = time.Now()
		r.logger.Warn().Err(err).Str("scanner", inv.Scanner).Msg("launch failed")
		return inv, err
	}

	inv.Args = proc.Args
	inv.PID = proc.PID()
	inv.StartedAt = proc.StartedAt

	level := zerolog.DebugLevel
	if opts.Verbose {
		level = zerolog.InfoLevel
	}
	r.logger.WithLevel(level).
		Str("scanner", inv.Scanner).
		Int("pid", inv.PID).
		Str("command", inv.CommandLine()).
		Msg("scanner started")

	done := make(chan waitResult, 1)
	go func() {
		status, err := proc.Wait()
		done <- waitResult{status: status, err: err}
	}()

	var res waitResult
	select {
	case res = <-done:
	case <-ctx.Done():
		if kerr := proc.Kill(); kerr != nil {
			r.logger.Error().Err(kerr).Str("scanner", inv.Scanner).Int("pid", inv.PID).Msg("kill failed")
		}
		res = <-done
		inv.Error = ctx.Err().Error()
	}

	inv.CompletedAt = time.Now()
	inv.ExitCode = res.status.Code
	inv.State = res.status.State
	if res.err != nil && inv.Error == "" {
		inv.Error = res.err.Error()
	}
	if opts.Capture {
		inv.Output = splitLines(stdout.String())
		inv.Stderr = strings.TrimSpace(stderr.String())
	}

	r.logger.Info().
		Str("scanner", inv.Scanner).
		Int("pid", inv.PID).
		Int("exit_code", inv.ExitCode).
		Dur("duration", inv.Duration()).
		Int("lines", len(inv.Output)).
		Msg("scanner finished")

	return inv, nil
}

// RunAll runs the given scanners concurrently, bounded by opts.Concurrency.
// Results keep the order of ids. Launch failures are recorded and the batch
// continues unless opts.FailFast is set, in which case the first failure
// cancels everything still pending or running.
func (r *Runner) RunAll(ctx context.Context, ids []ID, target types.Target, opts Options) []types.Invocation {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, concurrency)
	results := make([]types.Invocation, len(ids))
	var wg sync.WaitGroup

	for i, id := range ids {
		if _, ok := r.registry.Lookup(id); !ok {
			results[i] = types.Invocation{
				Scanner: id.String(),
				Target:  target,
				Error:   fmt.Sprintf("scanner %q not found", id),
			}
			finish(opts, i, results[i])
			continue
		}

		wg.Add(1)
		go func(i int, id ID) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = types.Invocation{
					Scanner: id.String(),
					Target:  target,
					Error:   ctx.Err().Error(),
				}
				finish(opts, i, results[i])
				return
			}

			inv, err := r.RunOne(ctx, id, target, opts)
			results[i] = inv
			if err != nil && opts.FailFast && isLaunchFailure(err) {
				cancel()
			}
			finish(opts, i, inv)
		}(i, id)
	}

	wg.Wait()
	return results
}

func finish(opts Options, i int, inv types.Invocation) {
	if opts.OnFinish != nil {
		opts.OnFinish(i, inv)
	}
}

func isLaunchFailure(err error) bool {
	var launchErr *LaunchError
	var hostErr *HostResolutionError
	return errors.As(err, &launchErr) || errors.As(err, &hostErr)
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
