package tui

import (
	"fmt"

	"github.com/buemura/reconbox/internal/scanner"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI. defaultTarget prefills the target input.
func Run(runner *scanner.Runner, defaultTarget string, opts scanner.Options) error {
	m := NewModel(runner, defaultTarget, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.state == stateScan {
		fm.scan.Cancel()
	}

	return nil
}
