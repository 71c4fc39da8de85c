package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/internal/tui/styles"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScanCompleteMsg is sent when the tool exits or fails to launch.
type ScanCompleteMsg struct {
	Invocation types.Invocation
}

// ScanModel is the view model for a running tool.
type ScanModel struct {
	spinner spinner.Model
	runner  *scanner.Runner
	id      scanner.ID
	target  types.Target
	opts    scanner.Options
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScanModel creates a progress view that runs id against target.
func NewScanModel(runner *scanner.Runner, id scanner.ID, target types.Target, opts scanner.Options) ScanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	ctx, cancel := context.WithCancel(context.Background())
	return ScanModel{
		spinner: sp,
		runner:  runner,
		id:      id,
		target:  target,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Init starts the spinner and launches the tool.
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runScan())
}

// Cancel kills the running tool. The completion message still arrives.
func (m ScanModel) Cancel() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Update handles spinner ticks.
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	return m, nil
}

// View renders the progress line.
func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(AppTitle))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s Running %s...\n",
		m.spinner.View(),
		styles.SelectedStyle.Render(m.id.String())))
	b.WriteString(fmt.Sprintf("  Target: %s\n", m.target.URL))

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("esc cancel • ctrl+c quit"))

	return b.String()
}

func (m ScanModel) runScan() tea.Cmd {
	runner, id, target, opts, ctx := m.runner, m.id, m.target, m.opts, m.ctx
	return func() tea.Msg {
		inv, _ := runner.RunOne(ctx, id, target, opts)
		return ScanCompleteMsg{Invocation: inv}
	}
}
