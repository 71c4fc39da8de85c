package scanner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/buemura/reconbox/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHelperRunner(t *testing.T, overrides map[ID]Spec) *Runner {
	t.Helper()
	inv := helperInvoker(Streams{})
	return NewRunner(helperRegistry(t, overrides), inv, zerolog.Nop())
}

func TestRunner_RunOne_CapturesOutput(t *testing.T) {
	runner := newHelperRunner(t, nil)
	target := mustTarget(t, "https://e-aulas.urosario.edu.co")

	inv, err := runner.RunOne(context.Background(), Httpx, target, Options{Capture: true})
	require.NoError(t, err)

	assert.Equal(t, "httpx", inv.Scanner)
	assert.Positive(t, inv.PID)
	assert.Equal(t, 0, inv.ExitCode)
	assert.Empty(t, inv.Error)
	assert.True(t, inv.Succeeded())
	assert.Equal(t, []string{"-sc", "-fr", "-title", "-u", "https://e-aulas.urosario.edu.co", "-nc", "-silent"}, inv.Output)
	assert.False(t, inv.CompletedAt.Before(inv.StartedAt))
}

func TestRunner_RunOne_CapturesStderr(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Katana: helperSpec(Katana, Lit("stderr"), Lit("rate limited")),
	})

	inv, err := runner.RunOne(context.Background(), Katana, mustTarget(t, "example.com"), Options{Capture: true})
	require.NoError(t, err)
	assert.Empty(t, inv.Output)
	assert.Equal(t, "rate limited", inv.Stderr)
}

func TestRunner_RunOne_ExitCode(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Nuclei: helperSpec(Nuclei, Lit("exit"), Lit("2")),
	})

	inv, err := runner.RunOne(context.Background(), Nuclei, mustTarget(t, "example.com"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, inv.ExitCode)
	assert.Equal(t, "exit 2", inv.Status())
}

func TestRunner_RunOne_Timeout(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Dirsearch: helperSpec(Dirsearch, Lit("sleep"), Lit("30s")),
	})

	start := time.Now()
	inv, err := runner.RunOne(context.Background(), Dirsearch, mustTarget(t, "example.com"), Options{Timeout: 200 * time.Millisecond})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Contains(t, inv.Error, "deadline exceeded")
	assert.Equal(t, "aborted", inv.Status())
	assert.True(t, inv.Launched())
}

func TestRunner_RunOne_TimeoutKillsDescendants(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Dirsearch: helperSpec(Dirsearch, Lit("spawn"), Lit("30s")),
	})

	start := time.Now()
	inv, err := runner.RunOne(context.Background(), Dirsearch, mustTarget(t, "example.com"), Options{Capture: true, Timeout: 200 * time.Millisecond})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, inv.Error, "deadline exceeded")
	assert.Equal(t, "aborted", inv.Status())
}

func TestRunner_ProcessKillAfterExit(t *testing.T) {
	proc, err := helperInvoker(Streams{}).Spawn(helperSpec(Naabu, Lit("exit"), Lit("0")), mustTarget(t, "example.com"))
	require.NoError(t, err)

	_, err = proc.Wait()
	require.NoError(t, err)
	assert.NoError(t, proc.Kill())
}

func TestRunner_RunOne_LaunchFailure(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Httpx: {Executable: "reconbox-no-such-tool-e3b0c442", Args: []Token{Lit("-u"), URL}},
	})

	inv, err := runner.RunOne(context.Background(), Httpx, mustTarget(t, "example.com"), DefaultOptions())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, inv.Launched())
	assert.Equal(t, []string{"-u", "https://example.com"}, inv.Args)
	assert.Equal(t, "failed to launch", inv.Status())
}

func TestRunner_RunOne_HostResolution(t *testing.T) {
	runner := newHelperRunner(t, nil)

	inv, err := runner.RunOne(context.Background(), Subfinder, mustTarget(t, "mailto:a@b.c"), DefaultOptions())
	assert.ErrorIs(t, err, ErrHostRequired)
	assert.Contains(t, inv.Error, "requires a host")
	assert.Empty(t, inv.Args)
}

func TestRunner_RunOne_CancelledContext(t *testing.T) {
	runner := newHelperRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv, err := runner.RunOne(ctx, Katana, mustTarget(t, "example.com"), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, inv.Launched())
}

func TestRunner_RunOne_Unknown(t *testing.T) {
	runner := newHelperRunner(t, nil)
	_, err := runner.RunOne(context.Background(), ID(99), mustTarget(t, "example.com"), DefaultOptions())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunner_RunAll_KeepsOrder(t *testing.T) {
	runner := newHelperRunner(t, nil)
	ids := []ID{Naabu, Katana, Httpx, Waybackurls}

	results := runner.RunAll(context.Background(), ids, mustTarget(t, "https://example.com"), Options{Concurrency: 2, Capture: true})
	require.Len(t, results, len(ids))
	for i, id := range ids {
		assert.Equal(t, id.String(), results[i].Scanner)
		assert.True(t, results[i].Succeeded(), results[i].Error)
		assert.NotEmpty(t, results[i].Output)
	}
}

func TestRunner_RunAll_ContinuesAfterLaunchFailure(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Httpx: {Executable: "reconbox-no-such-tool-e3b0c442", Args: []Token{URL}},
	})

	results := runner.RunAll(context.Background(), []ID{Httpx, Katana}, mustTarget(t, "example.com"), Options{Concurrency: 1})
	require.Len(t, results, 2)
	assert.Equal(t, "failed to launch", results[0].Status())
	assert.True(t, results[1].Succeeded())
}

func TestRunner_RunAll_FailFast(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Httpx:  {Executable: "reconbox-no-such-tool-e3b0c442", Args: []Token{URL}},
		Katana: helperSpec(Katana, Lit("sleep"), Lit("30s")),
	})

	start := time.Now()
	results := runner.RunAll(context.Background(), []ID{Katana, Httpx}, mustTarget(t, "example.com"), Options{Concurrency: 2, FailFast: true})
	assert.Less(t, time.Since(start), 10*time.Second)

	require.Len(t, results, 2)
	assert.Contains(t, results[0].Error, "canceled")
	assert.Equal(t, "failed to launch", results[1].Status())
}

func TestRunner_RunAll_UnknownScanner(t *testing.T) {
	runner := newHelperRunner(t, nil)

	results := runner.RunAll(context.Background(), []ID{ID(99)}, mustTarget(t, "example.com"), DefaultOptions())
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Error, "not found")
}

func TestRunner_RunAll_ContextCancellation(t *testing.T) {
	runner := newHelperRunner(t, map[ID]Spec{
		Katana: helperSpec(Katana, Lit("sleep"), Lit("30s")),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	results := runner.RunAll(ctx, []ID{Katana}, mustTarget(t, "example.com"), Options{Concurrency: 1})
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Error, "deadline exceeded")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\n\n  b  \n"))
	assert.Nil(t, splitLines(""))
}

func TestRunner_RunAll_OnFinish(t *testing.T) {
	runner := newHelperRunner(t, nil)
	ids := []ID{Katana, ID(99), Httpx}

	var mu sync.Mutex
	seen := map[int]string{}
	opts := Options{Concurrency: 2, OnFinish: func(i int, inv types.Invocation) {
		mu.Lock()
		defer mu.Unlock()
		seen[i] = inv.Scanner
	}}

	runner.RunAll(context.Background(), ids, mustTarget(t, "example.com"), opts)
	assert.Equal(t, map[int]string{0: "katana", 1: "scanner(99)", 2: "httpx"}, seen)
}
