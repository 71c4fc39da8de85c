// Package scannertest provides fake scanner executables for tests in
// packages that drive real processes through the scanner package.
package scannertest

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/buemura/reconbox/internal/scanner"
	"github.com/rs/zerolog"
)

// Script bodies for fake tools.
const (
	// Echo prints each argument on its own line.
	Echo = `for a in "$@"; do printf '%s\n' "$a"; done`
	// Sleep blocks long enough to be killed. sleep runs as a child of the
	// shell, so killing only the shell would leave the output pipes open.
	Sleep = `sleep 30`
)

// Exit returns a body that exits with code.
func Exit(code int) string {
	return fmt.Sprintf("exit %d", code)
}

// Stderr returns a body that writes msg to stderr.
func Stderr(msg string) string {
	return fmt.Sprintf("echo %q >&2", msg)
}

// Script writes an executable shell script and returns its path. Tests are
// skipped on platforms without /bin/sh.
func Script(t testing.TB, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake scanners need /bin/sh")
	}

	path := filepath.Join(t.TempDir(), name)
	content := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("writing fake scanner: %v", err)
	}
	return path
}

// Registry returns a registry whose executables are fake scripts. Every
// scanner echoes its rendered arguments unless bodies overrides it.
func Registry(t testing.TB, bodies map[scanner.ID]string) *scanner.Registry {
	t.Helper()

	catalog := scanner.Catalog()
	for id, spec := range catalog {
		body, ok := bodies[id]
		if !ok {
			body = Echo
		}
		spec.Executable = Script(t, id.String(), body)
		catalog[id] = spec
	}

	reg, err := scanner.NewRegistry(catalog)
	if err != nil {
		t.Fatalf("building fake registry: %v", err)
	}
	return reg
}

// Runner returns a runner backed by Registry(t, bodies).
func Runner(t testing.TB, bodies map[scanner.ID]string) *scanner.Runner {
	t.Helper()
	return scanner.NewRunner(Registry(t, bodies), nil, zerolog.Nop())
}

// Executables returns config-style executable overrides pointing every
// scanner at a fake script.
func Executables(t testing.TB, bodies map[scanner.ID]string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	for _, spec := range Registry(t, bodies).All() {
		out[spec.ID.String()] = spec.Executable
	}
	return out
}
