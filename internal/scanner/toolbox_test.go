package scanner

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolBox_OperationsMatchSpawn(t *testing.T) {
	reg := helperRegistry(t, nil)
	target := mustTarget(t, "https://e-aulas.urosario.edu.co")

	ops := map[ID]func(*ToolBox) (*Process, error){
		Dirsearch:   (*ToolBox).Dirsearch,
		Httpx:       (*ToolBox).Httpx,
		Katana:      (*ToolBox).Katana,
		Nuclei:      (*ToolBox).Nuclei,
		Waybackurls: (*ToolBox).Waybackurls,
		Subfinder:   (*ToolBox).Subfinder,
		Naabu:       (*ToolBox).Naabu,
	}
	require.Len(t, ops, len(IDs()))

	for id, op := range ops {
		t.Run(id.String(), func(t *testing.T) {
			var stdout bytes.Buffer
			box := NewToolBox(target, reg, helperInvoker(Streams{Stdout: &stdout}))

			proc, err := op(box)
			require.NoError(t, err)
			assert.Equal(t, id, proc.Scanner)

			_, err = proc.Wait()
			require.NoError(t, err)

			want, err := Render(reg.Resolve(id), target)
			require.NoError(t, err)
			assert.Equal(t, want, proc.Args)
		})
	}
}

func TestToolBox_SubfinderRendersHost(t *testing.T) {
	var stdout bytes.Buffer
	reg := helperRegistry(t, nil)
	box := NewToolBox(mustTarget(t, "https://e-aulas.urosario.edu.co"), reg, helperInvoker(Streams{Stdout: &stdout}))

	proc, err := box.Subfinder()
	require.NoError(t, err)
	_, err = proc.Wait()
	require.NoError(t, err)

	assert.Equal(t, "-d\ne-aulas.urosario.edu.co\n--silent\n", stdout.String())
}

func TestToolBox_HostlessTarget(t *testing.T) {
	box := NewToolBox(mustTarget(t, "mailto:security@example.com"), helperRegistry(t, nil), helperInvoker(Streams{}))

	proc, err := box.Naabu()
	assert.Nil(t, proc)
	var hostErr *HostResolutionError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, Naabu, hostErr.Scanner)
}

func TestToolBox_MissingExecutable(t *testing.T) {
	// The built-in catalog names real tools; override one with a missing binary.
	catalog := Catalog()
	spec := catalog[Httpx]
	spec.Executable = "reconbox-no-such-tool-e3b0c442"
	catalog[Httpx] = spec
	reg, err := NewRegistry(catalog)
	require.NoError(t, err)

	box := NewToolBox(mustTarget(t, "https://e-aulas.urosario.edu.co"), reg, nil)
	proc, err := box.Httpx()
	assert.Nil(t, proc)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewToolBox_Defaults(t *testing.T) {
	box := NewToolBox(mustTarget(t, "example.com"), nil, nil)
	assert.Same(t, DefaultRegistry(), box.registry)
	assert.NotNil(t, box.invoker)
	assert.Equal(t, "https://example.com", box.Target().URL)
}
