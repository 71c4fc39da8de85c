package tui

import (
	"github.com/buemura/reconbox/internal/scanner"
	"github.com/buemura/reconbox/internal/tui/views"
	"github.com/buemura/reconbox/pkg/types"
	tea "github.com/charmbracelet/bubbletea"
)

// appState represents which view is currently active.
type appState int

const (
	stateMenu    appState = iota // Tool selection menu
	stateTarget                  // Target URL/host input
	stateScan                    // Tool running
	stateResults                 // Output display
)

// Model is the root Bubble Tea model that manages view transitions.
type Model struct {
	state         appState
	runner        *scanner.Runner
	opts          scanner.Options
	defaultTarget string
	width         int
	height        int

	menu    views.MenuModel
	target  views.TargetModel
	scan    views.ScanModel
	results views.ResultsModel
}

// NewModel creates a root model. Tools always run with capture on so their
// output can be shown in the results view.
func NewModel(runner *scanner.Runner, defaultTarget string, opts scanner.Options) Model {
	opts.Capture = true

	specs := runner.Registry().All()
	items := make([]views.ScannerItem, len(specs))
	for i, s := range specs {
		_, err := s.LookPath()
		items[i] = views.ScannerItem{
			Name:        s.ID.String(),
			Description: s.Description,
			Input:       s.Input(),
			Installed:   err == nil,
		}
	}

	return Model{
		state:         stateMenu,
		runner:        runner,
		opts:          opts,
		defaultTarget: defaultTarget,
		menu:          views.NewMenuModel(items),
		target:        views.NewTargetModel(defaultTarget),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.target.Init()
}

// Update handles messages and manages state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.state == stateScan {
				m.scan.Cancel()
			}
			return m, tea.Quit
		case "esc":
			return m.handleBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateTarget:
		return m.updateTarget(msg)
	case stateScan:
		return m.updateScan(msg)
	case stateResults:
		return m.updateResults(msg)
	}

	return m, nil
}

// View renders the current view.
func (m Model) View() string {
	switch m.state {
	case stateMenu:
		return m.menu.View()
	case stateTarget:
		return m.target.View()
	case stateScan:
		return m.scan.View()
	case stateResults:
		return m.results.View()
	}
	return ""
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateTarget, stateResults:
		m.state = stateMenu
	case stateScan:
		// The results view opens once the killed tool is reaped.
		m.scan.Cancel()
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		selected := m.menu.Selected()
		if selected != nil {
			value := m.target.Value()
			if value == "" {
				value = m.defaultTarget
			}
			m.target = views.NewTargetModel(value)

			command := ""
			if spec, err := m.runner.Registry().Get(selected.Name); err == nil {
				command = spec.Executable + " " + spec.Template()
			}
			m.target.SetScanner(selected.Name, command)
			m.state = stateTarget
			return m, m.target.Init()
		}
	}

	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(views.MenuModel)
	return m, cmd
}

func (m Model) updateTarget(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		target, err := m.target.ValidatedTarget()
		if err == nil {
			id, idErr := scanner.ParseID(m.target.ScannerName())
			if idErr != nil {
				return m, nil
			}
			m.scan = views.NewScanModel(m.runner, id, target, m.opts)
			m.state = stateScan
			return m, m.scan.Init()
		}
	}

	updated, cmd := m.target.Update(msg)
	m.target = updated.(views.TargetModel)
	return m, cmd
}

func (m Model) updateScan(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(views.ScanCompleteMsg); ok {
		m.scan.Cancel()
		m.results = views.NewResultsModel([]types.Invocation{done.Invocation})
		m.state = stateResults
		return m, nil
	}

	updated, cmd := m.scan.Update(msg)
	m.scan = updated.(views.ScanModel)
	return m, cmd
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.results.Update(msg)
	m.results = updated.(views.ResultsModel)
	return m, cmd
}
