package scanner

import (
	"errors"
	"testing"

	"github.com/buemura/reconbox/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTarget(t *testing.T, raw string) types.Target {
	t.Helper()
	target, err := types.ParseTarget(raw)
	require.NoError(t, err)
	return target
}

func TestRender_SubstitutesURLInOrder(t *testing.T) {
	spec := Spec{ID: Dirsearch, Executable: "dirsearch", Args: []Token{Lit("-u"), URL, Lit("-quiet")}}

	args, err := Render(spec, mustTarget(t, "https://example.com"))
	require.NoError(t, err)
	assert.Equal(t, []string{"-u", "https://example.com", "-quiet"}, args)
}

func TestRender_Httpx(t *testing.T) {
	spec := DefaultRegistry().Resolve(Httpx)

	args, err := Render(spec, mustTarget(t, "https://e-aulas.urosario.edu.co"))
	require.NoError(t, err)
	assert.Equal(t, "httpx-pd", spec.Executable)
	assert.Equal(t, []string{"-sc", "-fr", "-title", "-u", "https://e-aulas.urosario.edu.co", "-nc", "-silent"}, args)
}

func TestRender_Subfinder(t *testing.T) {
	spec := DefaultRegistry().Resolve(Subfinder)

	args, err := Render(spec, mustTarget(t, "https://e-aulas.urosario.edu.co"))
	require.NoError(t, err)
	assert.Equal(t, []string{"-d", "e-aulas.urosario.edu.co", "--silent"}, args)
}

func TestRender_HostMissing(t *testing.T) {
	spec := DefaultRegistry().Resolve(Naabu)

	args, err := Render(spec, mustTarget(t, "mailto:security@example.com"))
	assert.Nil(t, args)
	require.Error(t, err)

	var hostErr *HostResolutionError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, Naabu, hostErr.Scanner)
	assert.Equal(t, "mailto:security@example.com", hostErr.Target)
	assert.ErrorIs(t, err, ErrHostRequired)
	assert.Contains(t, err.Error(), "naabu requires a host")
}

func TestRender_URLOnlySpecAcceptsHostlessTarget(t *testing.T) {
	spec := DefaultRegistry().Resolve(Waybackurls)

	args, err := Render(spec, mustTarget(t, "mailto:security@example.com"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mailto:security@example.com"}, args)
}

func TestRender_NoPlaceholders(t *testing.T) {
	spec := Spec{ID: Katana, Executable: "katana", Args: Lits("-version", "-silent")}

	for _, raw := range []string{"https://example.com", "mailto:a@b.c", "10.0.0.1:22"} {
		args, err := Render(spec, mustTarget(t, raw))
		require.NoError(t, err)
		assert.Equal(t, []string{"-version", "-silent"}, args)
	}
}

func TestRender_EmptyTemplate(t *testing.T) {
	args, err := Render(Spec{ID: Katana, Executable: "katana"}, mustTarget(t, "example.com"))
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestRender_Idempotent(t *testing.T) {
	target := mustTarget(t, "https://example.com:8443/app?x=1")
	for _, spec := range DefaultRegistry().All() {
		first, err := Render(spec, target)
		require.NoError(t, err)
		second, err := Render(spec, target)
		require.NoError(t, err)
		assert.Equal(t, first, second, spec.ID.String())
	}
}

func TestRender_NoShellQuoting(t *testing.T) {
	spec := Spec{ID: Katana, Executable: "katana", Args: []Token{Lit("-H"), Lit("X-Test: a b; rm -rf /"), URL}}

	args, err := Render(spec, mustTarget(t, "https://example.com/a"))
	require.NoError(t, err)
	assert.Equal(t, "X-Test: a b; rm -rf /", args[1])
	assert.Len(t, args, 3)
}

func TestRender_RejectsZeroToken(t *testing.T) {
	spec := Spec{ID: Katana, Executable: "katana", Args: []Token{Lit("-u"), {}}}

	args, err := Render(spec, mustTarget(t, "example.com"))
	require.Error(t, err)
	assert.Nil(t, args)
	assert.Contains(t, err.Error(), "argument 1 is not a valid token")
}
