package views

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/reconbox/pkg/types"
)

func newTestInvocations() []types.Invocation {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []types.Invocation{
		{
			Scanner:     "subfinder",
			Executable:  "subfinder",
			Args:        []string{"-d", "example.com", "--silent"},
			PID:         42,
			StartedAt:   start,
			CompletedAt: start.Add(1500 * time.Millisecond),
			Output:      []string{"api.example.com", "www.example.com", "mail.example.com"},
		},
	}
}

func TestResultsModelView(t *testing.T) {
	view := NewResultsModel(newTestInvocations()).View()

	assert.Contains(t, view, "Results")
	assert.Contains(t, view, "subfinder")
	assert.Contains(t, view, "ok")
	assert.Contains(t, view, "3 lines")
	assert.Contains(t, view, "$ subfinder -d example.com --silent")
	assert.Contains(t, view, "api.example.com")
	assert.Contains(t, view, "mail.example.com")
}

func TestResultsModelNavigate(t *testing.T) {
	m := NewResultsModel(newTestInvocations())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(ResultsModel)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(ResultsModel)
	assert.Equal(t, 0, m.cursor)

	// Should not go below 0.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(ResultsModel)
	assert.Equal(t, 0, m.cursor)
}

func TestResultsModelNavigateBoundary(t *testing.T) {
	m := NewResultsModel(newTestInvocations())

	for i := 0; i < 5; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
		m = updated.(ResultsModel)
	}
	assert.Equal(t, 2, m.cursor)
}

func TestResultsModelScrolls(t *testing.T) {
	inv := types.Invocation{Scanner: "waybackurls", PID: 1}
	for i := 0; i < 30; i++ {
		inv.Output = append(inv.Output, "https://example.com/page")
	}
	m := NewResultsModel([]types.Invocation{inv})

	for i := 0; i < 25; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(ResultsModel)
	}
	assert.Equal(t, 25, m.cursor)
	assert.Equal(t, 6, m.offset)
	assert.Contains(t, m.View(), "Showing 7-26 of 30 lines")
}

func TestResultsModelEmptyOutput(t *testing.T) {
	m := NewResultsModel([]types.Invocation{{Scanner: "naabu", PID: 7}})
	assert.Contains(t, m.View(), "No output captured")
}

func TestResultsModelShowsError(t *testing.T) {
	m := NewResultsModel([]types.Invocation{{
		Scanner:    "httpx",
		Executable: "httpx-pd",
		Error:      `launch httpx: executable "httpx-pd" not found`,
		Stderr:     "warning",
	}})
	view := m.View()

	assert.Contains(t, view, "failed to launch")
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "not found")
	assert.Contains(t, view, "stderr: warning")
}

func TestResultsModelExport(t *testing.T) {
	old := ExportFile
	ExportFile = filepath.Join(t.TempDir(), "results.json")
	defer func() { ExportFile = old }()

	m := NewResultsModel(newTestInvocations())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = updated.(ResultsModel)

	assert.True(t, m.exported)
	assert.Contains(t, m.View(), "Results exported to")

	data, err := os.ReadFile(ExportFile)
	require.NoError(t, err)
	var invs []types.Invocation
	require.NoError(t, json.Unmarshal(data, &invs))
	require.Len(t, invs, 1)
	assert.Equal(t, "subfinder", invs[0].Scanner)
}

func TestResultsModelExportFailure(t *testing.T) {
	old := ExportFile
	ExportFile = filepath.Join(t.TempDir(), "missing", "results.json")
	defer func() { ExportFile = old }()

	m := NewResultsModel(newTestInvocations())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = updated.(ResultsModel)

	assert.False(t, m.exported)
	assert.Contains(t, m.View(), "export failed")
}

func TestResultsModelQuit(t *testing.T) {
	m := NewResultsModel(newTestInvocations())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel...", truncate("hello world", 6))
	assert.Equal(t, "hello world", truncate("hello world", 50))
}
