package views

import (
	"fmt"
	"strings"

	"github.com/buemura/reconbox/internal/tui/styles"
	"github.com/buemura/reconbox/pkg/types"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TargetModel is the view model for target URL/host input.
type TargetModel struct {
	textInput   textinput.Model
	scannerName string
	command     string
	err         string
}

// NewTargetModel creates a new target input view prefilled with value.
func NewTargetModel(value string) TargetModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. https://example.com or example.com"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	ti.PromptStyle = styles.CursorStyle
	ti.TextStyle = styles.SelectedStyle
	ti.SetValue(value)

	return TargetModel{textInput: ti}
}

// SetScanner sets which tool this target is for and its argument template.
func (m *TargetModel) SetScanner(name, command string) {
	m.scannerName = name
	m.command = command
}

// ScannerName returns the selected tool name.
func (m TargetModel) ScannerName() string {
	return m.scannerName
}

// Value returns the raw input.
func (m TargetModel) Value() string {
	return m.textInput.Value()
}

// Init returns the text input blink command.
func (m TargetModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (m TargetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if _, err := m.ValidatedTarget(); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.err = ""
	return m, cmd
}

// View renders the target input form.
func (m TargetModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(AppTitle))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("Tool: %s", m.scannerName)))
	b.WriteString("\n")
	if m.command != "" {
		b.WriteString(styles.HelpStyle.Render(m.command))
		b.WriteString("\n\n")
	}
	b.WriteString("Enter target URL or host:\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter submit • esc back"))

	return b.String()
}

// ValidatedTarget parses and returns the target, or an error if invalid.
func (m TargetModel) ValidatedTarget() (types.Target, error) {
	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		return types.Target{}, fmt.Errorf("target is required")
	}
	return types.ParseTarget(value)
}
