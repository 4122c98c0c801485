package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-world/internal/config"
)

// MenuModel is the Bubble Tea model for the theme picker shown before a preview.
type MenuModel struct {
	items    []config.ThemePreset
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	quitting bool
	selected *config.ThemePreset // Set when user selects a theme
}

// NewMenuModel creates a new theme picker.
func NewMenuModel(width, height int) MenuModel {
	names := config.ThemeNames()
	items := make([]config.ThemePreset, len(names))
	for i, n := range names {
		items[i] = config.ThemePreset(n)
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the preview
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  S N A K E   W O R L D  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a theme", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, item, config.ThemeDescription(item))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected theme, or nil if none selected.
func (m MenuModel) Selected() *config.ThemePreset {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// RunMenu runs the theme picker. ok is false when the user quit without choosing.
func RunMenu(width, height int) (preset config.ThemePreset, ok bool, err error) {
	p := tea.NewProgram(
		NewMenuModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, isMenu := finalModel.(MenuModel)
	if !isMenu || m.Selected() == nil {
		return "", false, nil
	}
	return *m.Selected(), true, nil
}
