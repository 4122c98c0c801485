package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-world/internal/storage"
	"github.com/vovakirdan/snake-world/internal/world"
)

// Ledger table layout constants
const (
	runsChrome = 8 // Title, totals, borders and help around the table
	maxRuns    = 100
)

// RunsModel is the Bubble Tea model for the run ledger screen.
type RunsModel struct {
	runs     []storage.RunSummary
	totals   map[world.FoodKind]int
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a ledger view showing up to limit recent runs.
// A nil store shows an empty ledger.
func NewRunsModel(store *storage.Store, limit, width, height int) RunsModel {
	if limit <= 0 || limit > maxRuns {
		limit = maxRuns
	}

	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	if store != nil {
		m.runs, m.loadErr = store.RecentRuns(limit)
		if m.loadErr == nil {
			m.totals, m.loadErr = store.KindTotals()
		}
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 10},
		{Title: "Seed", Width: 12},
		{Title: "Size", Width: 9},
		{Title: "Spawned", Width: 8},
		{Title: "🍒", Width: 5},
		{Title: "🐁", Width: 5},
		{Title: "💣", Width: 5},
		{Title: "Net", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-runsChrome, 3)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = runRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// runRow formats one ledger entry. The run ID is shortened to its random tail.
func runRow(r storage.RunSummary) table.Row {
	id := r.RunID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return table.Row{
		id,
		fmt.Sprintf("%d", r.Seed),
		fmt.Sprintf("%dx%d", r.Width, r.Height),
		fmt.Sprintf("%d", r.Spawned),
		fmt.Sprintf("%d", r.Cherries),
		fmt.Sprintf("%d", r.Mice),
		fmt.Sprintf("%d", r.Bombs),
		fmt.Sprintf("%+d", r.NetMeals),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// Init initializes the ledger model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ledger.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ledger.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("SPAWN RUNS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.totals != nil {
		b.WriteString(helpStyle.Render(m.totalsLine()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m RunsModel) totalsLine() string {
	parts := make([]string, 0, len(m.totals))
	for _, k := range world.AllFoodKinds() {
		parts = append(parts, fmt.Sprintf("%s %d", k, m.totals[k]))
	}
	return "all runs: " + strings.Join(parts, "  ")
}

// renderTableContent renders the table or an empty/error message.
func (m RunsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return errStyle.Padding(2, 4).Render(m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nTry `snakeworld spawn --record`.")
	}
	return m.table.View()
}

// Runs returns the runs loaded into the table.
func (m RunsModel) Runs() []storage.RunSummary {
	return m.runs
}

// RunLedger runs the ledger screen.
func RunLedger(store *storage.Store, limit, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
