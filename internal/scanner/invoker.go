package scanner

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/buemura/reconbox/pkg/types"
	"github.com/rs/zerolog"
)

// waitDelay bounds how long Wait keeps copying output after the process
// has been killed or has exited.
const waitDelay = 2 * time.Second

// Streams configures the standard streams of spawned processes. A nil Stdin
// connects the child to the null device.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// InheritStreams passes the parent's stdout and stderr through.
func InheritStreams() Streams {
	return Streams{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Invoker launches scanner specs as child processes.
type Invoker struct {
	streams Streams
	env     []string
	dir     string
	logger  zerolog.Logger
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithStreamsOption sets the standard streams.
func WithStreamsOption(s Streams) InvokerOption {
	return func(inv *Invoker) { inv.streams = s }
}

// WithEnv sets the child environment. Nil inherits the parent's.
func WithEnv(env []string) InvokerOption {
	return func(inv *Invoker) { inv.env = env }
}

// WithDir sets the child working directory.
func WithDir(dir string) InvokerOption {
	return func(inv *Invoker) { inv.dir = dir }
}

// WithLogger sets the logger used for spawn diagnostics.
func WithLogger(logger zerolog.Logger) InvokerOption {
	return func(inv *Invoker) { inv.logger = logger }
}

// NewInvoker creates an Invoker that inherits stdout/stderr by default.
func NewInvoker(opts ...InvokerOption) *Invoker {
	inv := &Invoker{
		streams: InheritStreams(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// WithStreams returns a copy of the invoker using different streams.
func (inv *Invoker) WithStreams(s Streams) *Invoker {
	c := *inv
	c.streams = s
	return &c
}

// Spawn renders spec against target and starts the executable. It returns
// as soon as the process has been created; it never waits for it to finish.
func (inv *Invoker) Spawn(spec Spec, target types.Target) (*Process, error) {
	args, err := Render(spec, target)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(spec.Executable, args...)
	cmd.Stdin = inv.streams.Stdin
	cmd.Stdout = inv.streams.Stdout
	cmd.Stderr = inv.streams.Stderr
	cmd.Env = inv.env
	cmd.Dir = inv.dir
	cmd.WaitDelay = waitDelay
	// A tool reading the terminal must stay in the foreground group.
	group := inv.streams.Stdin == nil
	if group {
		setProcessGroup(cmd)
	}

	if err := cmd.Start(); err != nil {
		return nil, classifyStartError(spec, err)
	}

	inv.logger.Debug().
		Str("scanner", spec.ID.String()).
		Str("executable", spec.Executable).
		Strs("args", args).
		Int("pid", cmd.Process.Pid).
		Msg("process spawned")

	return &Process{
		Scanner:    spec.ID,
		Executable: spec.Executable,
		Args:       args,
		StartedAt:  time.Now(),
		cmd:        cmd,
		group:      group,
	}, nil
}

func classifyStartError(spec Spec, err error) *LaunchError {
	kind := OSRejected
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		kind = NotFound
	}
	return &LaunchError{
		Scanner:    spec.ID,
		Executable: spec.Executable,
		Kind:       kind,
		Err:        err,
	}
}
