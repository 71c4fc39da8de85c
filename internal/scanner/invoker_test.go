package scanner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoker_SpawnAndWait(t *testing.T) {
	var stdout bytes.Buffer
	inv := helperInvoker(Streams{Stdout: &stdout})
	spec := helperSpec(Katana, Lit("echo"), Lit("-u"), URL)

	proc, err := inv.Spawn(spec, mustTarget(t, "https://example.com"))
	require.NoError(t, err)
	require.NotNil(t, proc)
	assert.Positive(t, proc.PID())
	assert.Equal(t, Katana, proc.Scanner)
	assert.Equal(t, []string{"-test.run=TestHelperProcess", "--", "echo", "-u", "https://example.com"}, proc.Args)

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.True(t, status.Success())
	assert.Equal(t, "-u\nhttps://example.com\n", stdout.String())
}

func TestInvoker_ArgumentsAreNotShellInterpreted(t *testing.T) {
	var stdout bytes.Buffer
	inv := helperInvoker(Streams{Stdout: &stdout})
	spec := helperSpec(Katana, Lit("echo"), Lit("$(id); echo pwned"), URL)

	proc, err := inv.Spawn(spec, mustTarget(t, "https://example.com/?q=a&b=c"))
	require.NoError(t, err)
	_, err = proc.Wait()
	require.NoError(t, err)

	assert.Equal(t, "$(id); echo pwned\nhttps://example.com/?q=a&b=c\n", stdout.String())
}

func TestInvoker_NonZeroExitIsNotAnError(t *testing.T) {
	inv := helperInvoker(Streams{})
	proc, err := inv.Spawn(helperSpec(Nuclei, Lit("exit"), Lit("3")), mustTarget(t, "example.com"))
	require.NoError(t, err)

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 3, status.Code)
	assert.False(t, status.Success())
	assert.Contains(t, status.State, "exit status 3")
}

func TestInvoker_WaitTwice(t *testing.T) {
	inv := helperInvoker(Streams{})
	proc, err := inv.Spawn(helperSpec(Katana, Lit("exit"), Lit("0")), mustTarget(t, "example.com"))
	require.NoError(t, err)

	_, err = proc.Wait()
	require.NoError(t, err)

	_, err = proc.Wait()
	assert.ErrorIs(t, err, ErrAlreadyWaited)
}

func TestInvoker_NotFound(t *testing.T) {
	inv := NewInvoker()
	spec := Spec{ID: Httpx, Executable: "reconbox-no-such-tool-e3b0c442", Args: []Token{Lit("-u"), URL}}

	proc, err := inv.Spawn(spec, mustTarget(t, "https://example.com"))
	assert.Nil(t, proc)
	require.Error(t, err)

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, NotFound, launchErr.Kind)
	assert.Equal(t, Httpx, launchErr.Scanner)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrOSRejected)
	assert.Contains(t, err.Error(), "not found")
}

func TestInvoker_NotFoundAbsolutePath(t *testing.T) {
	inv := NewInvoker()
	spec := Spec{ID: Katana, Executable: filepath.Join(t.TempDir(), "missing"), Args: []Token{URL}}

	_, err := inv.Spawn(spec, mustTarget(t, "https://example.com"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoker_OSRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses execute permission checks")
	}

	path := filepath.Join(t.TempDir(), "not-executable")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))

	inv := NewInvoker()
	_, err := inv.Spawn(Spec{ID: Naabu, Executable: path, Args: []Token{Host}}, mustTarget(t, "example.com"))
	require.Error(t, err)

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, OSRejected, launchErr.Kind)
	assert.ErrorIs(t, err, ErrOSRejected)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestInvoker_HostResolutionBeforeSpawn(t *testing.T) {
	// The executable does not exist: host resolution must fail first.
	inv := NewInvoker()
	spec := Spec{ID: Subfinder, Executable: "reconbox-no-such-tool-e3b0c442", Args: []Token{Lit("-d"), Host}}

	_, err := inv.Spawn(spec, mustTarget(t, "mailto:security@example.com"))
	require.Error(t, err)

	var hostErr *HostResolutionError
	assert.True(t, errors.As(err, &hostErr))
	var launchErr *LaunchError
	assert.False(t, errors.As(err, &launchErr))
}

func TestInvoker_DefaultStdinIsClosed(t *testing.T) {
	var stdout bytes.Buffer
	inv := helperInvoker(Streams{Stdout: &stdout})

	proc, err := inv.Spawn(helperSpec(Katana, Lit("echo"), Lit("done")), mustTarget(t, "example.com"))
	require.NoError(t, err)
	_, err = proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, "done", strings.TrimSpace(stdout.String()))
}

func TestInvoker_WithStreamsCopies(t *testing.T) {
	base := NewInvoker()
	var buf bytes.Buffer
	other := base.WithStreams(Streams{Stdout: &buf})

	assert.NotSame(t, base, other)
	assert.Equal(t, os.Stdout, base.streams.Stdout)
	assert.Equal(t, &buf, other.streams.Stdout)
}

func TestProcess_KillAfterExit(t *testing.T) {
	inv := helperInvoker(Streams{})
	proc, err := inv.Spawn(helperSpec(Katana, Lit("exit"), Lit("0")), mustTarget(t, "example.com"))
	require.NoError(t, err)
	_, err = proc.Wait()
	require.NoError(t, err)

	assert.NoError(t, proc.Kill())
}

func TestProcess_Kill(t *testing.T) {
	inv := helperInvoker(Streams{})
	proc, err := inv.Spawn(helperSpec(Katana, Lit("sleep"), Lit("30s")), mustTarget(t, "example.com"))
	require.NoError(t, err)

	require.NoError(t, proc.Kill())
	status, err := proc.Wait()
	require.NoError(t, err)
	assert.False(t, status.Success())
	assert.Less(t, status.Duration.Seconds(), 30.0)
}
