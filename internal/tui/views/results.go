package views

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/buemura/reconbox/internal/tui/styles"
	"github.com/buemura/reconbox/pkg/types"
	tea "github.com/charmbracelet/bubbletea"
)

// ExportFile is where the results view writes its JSON export.
var ExportFile = "reconbox-results.json"

// ResultsModel shows the outcome and captured lines of finished tools.
type ResultsModel struct {
	invocations []types.Invocation
	cursor      int
	offset      int
	maxRows     int
	exported    bool
	exportErr   string
}

// NewResultsModel creates a results view.
func NewResultsModel(invocations []types.Invocation) ResultsModel {
	return ResultsModel{
		invocations: invocations,
		maxRows:     20,
	}
}

// Init returns nil (no initial command).
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles key events for scrolling and export.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	lines := m.allLines()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(lines)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.maxRows {
					m.offset = m.cursor - m.maxRows + 1
				}
			}
		case "e":
			m.exportJSON()
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the status header and the scrollable output.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("reconbox — Results"))
	b.WriteString("\n\n")

	for _, inv := range m.invocations {
		status := inv.Status()
		b.WriteString(fmt.Sprintf("%s  %s  %s  %d lines\n",
			styles.SelectedStyle.Render(inv.Scanner),
			styles.StatusStyle(status).Render(status),
			inv.Duration().Round(time.Millisecond),
			len(inv.Output),
		))
		b.WriteString(styles.HelpStyle.Render("  $ " + inv.CommandLine()))
		b.WriteString("\n")
		if inv.Error != "" {
			b.WriteString(styles.ErrorStyle.Render("  Error: " + inv.Error))
			b.WriteString("\n")
		}
		if inv.Stderr != "" {
			b.WriteString(styles.HelpStyle.Render("  stderr: " + truncate(inv.Stderr, 200)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	lines := m.allLines()
	if len(lines) == 0 {
		b.WriteString("No output captured.\n")
	} else {
		b.WriteString(strings.Repeat("─", 80))
		b.WriteString("\n")

		end := m.offset + m.maxRows
		if end > len(lines) {
			end = len(lines)
		}

		for i := m.offset; i < end; i++ {
			cursor := "  "
			text := truncate(lines[i].text, 100)
			if i == m.cursor {
				cursor = styles.CursorStyle.Render("> ")
				text = styles.SelectedStyle.Render(text)
			}
			if len(m.invocations) > 1 {
				text = styles.HelpStyle.Render(fmt.Sprintf("[%s] ", lines[i].scanner)) + text
			}
			b.WriteString(cursor + text + "\n")
		}

		if len(lines) > m.maxRows {
			b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d lines\n",
				m.offset+1, end, len(lines)))
		}
	}

	if m.exported {
		b.WriteString("\n")
		b.WriteString(styles.SelectedStyle.Render("Results exported to " + ExportFile))
	}
	if m.exportErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.exportErr))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • e export JSON • esc back • q quit"))

	return b.String()
}

type outputLine struct {
	scanner string
	text    string
}

func (m ResultsModel) allLines() []outputLine {
	var lines []outputLine
	for _, inv := range m.invocations {
		for _, l := range inv.Output {
			lines = append(lines, outputLine{scanner: inv.Scanner, text: l})
		}
	}
	return lines
}

func (m *ResultsModel) exportJSON() {
	data, err := json.MarshalIndent(m.invocations, "", "  ")
	if err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	if err := os.WriteFile(ExportFile, data, 0644); err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	m.exported = true
	m.exportErr = ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
