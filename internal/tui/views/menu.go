package views

import (
	"fmt"
	"strings"

	"github.com/buemura/reconbox/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// AppTitle is shown at the top of every view.
const AppTitle = "reconbox — Interactive Mode"

// ScannerItem represents a tool available in the menu.
type ScannerItem struct {
	Name        string
	Description string
	Input       string
	Installed   bool
}

// MenuModel is the view model for the tool selection menu.
type MenuModel struct {
	items  []ScannerItem
	cursor int
}

// NewMenuModel creates a menu with the given items.
func NewMenuModel(items []ScannerItem) MenuModel {
	return MenuModel{items: items}
}

// Init returns nil (no initial command).
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles key navigation in the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the tool selection menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(AppTitle))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render("Select a tool:"))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		nameStyle := styles.HelpStyle
		if i == m.cursor {
			cursor = styles.CursorStyle.Render("> ")
			nameStyle = styles.SelectedStyle
		}

		note := ""
		if !item.Installed {
			note = styles.ErrorStyle.Render(" (not installed)")
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s%s\n",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-12s", item.Name)),
			styles.HelpStyle.Render(fmt.Sprintf("[%s]", item.Input)),
			styles.HelpStyle.Render(item.Description),
			note,
		))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • enter select • q quit"))

	return b.String()
}

// Selected returns the currently highlighted item, or nil if empty.
func (m MenuModel) Selected() *ScannerItem {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.cursor]
}

// Cursor returns the current cursor position.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Items returns the menu items.
func (m MenuModel) Items() []ScannerItem {
	return m.items
}
