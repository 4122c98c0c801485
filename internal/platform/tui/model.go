package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-world/internal/config"
	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/platform/canvas"
	"github.com/vovakirdan/snake-world/internal/storage"
	"github.com/vovakirdan/snake-world/internal/world"
)

// hudLines is the number of status rows drawn below the level.
const hudLines = 1

var (
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pauseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// Options configures a preview session.
type Options struct {
	World   config.WorldConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; the session tally is recorded on quit
}

// Model is the Bubble Tea model for the food spawn preview.
// It owns the level: every mutation happens inside Update.
type Model struct {
	world   config.WorldConfig
	runtime core.RuntimeConfig
	store   *storage.Store

	rng    *rand.Rand
	level  *world.Level
	screen *core.Screen
	canvas *canvas.ScreenCanvas

	keys PreviewKeyMap
	help help.Model

	tally     *world.Tally
	spawnedAt map[core.Position]int // Tick at which each live food appeared
	themeIdx  int                   // Index into config.ThemeNames, -1 for the configured style

	tick     int
	width    int
	height   int
	paused   bool
	quitting bool
	dirty    bool
	lastErr  error
	runID    string
}

// NewModel creates a preview model. The world config must be valid.
func NewModel(opts Options) (Model, error) {
	if err := opts.World.Validate(); err != nil {
		return Model{}, err
	}

	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		world:     opts.World,
		runtime:   rt,
		store:     opts.Store,
		rng:       rand.New(rand.NewSource(rt.Seed)),
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:      DefaultPreviewKeyMap(),
		help:      h,
		tally:     world.NewTally(),
		spawnedAt: make(map[core.Position]int),
		themeIdx:  -1,
		width:     rt.ScreenW,
		height:    rt.ScreenH,
	}
	m.canvas = canvas.NewScreenCanvas(m.screen, 0, 0)

	if err := m.rebuild(opts.World, false); err != nil {
		return Model{}, err
	}
	m.layout()
	m.redraw()
	return m, nil
}

// rebuild replaces the level with one styled from cfg. Live food carries
// over when keepFood is set.
func (m *Model) rebuild(cfg config.WorldConfig, keepFood bool) error {
	style, err := cfg.WorldStyle()
	if err != nil {
		return err
	}

	level := world.NewWithStyle(cfg.Level.Width, cfg.Level.Height, style, m.rng)
	if keepFood && m.level != nil {
		level.Foods = m.level.Foods
	} else {
		clear(m.spawnedAt)
	}
	m.level = level
	m.dirty = true
	return nil
}

// layout sizes the screen buffer to the space above the HUD and centers the level in it.
func (m *Model) layout() {
	helpLines := lipgloss.Height(m.help.View(m.keys))
	h := max(m.height-hudLines-helpLines, 0)
	m.screen.Resize(m.width, h)

	ox := max((m.width-m.level.TotalWidth())/2, 0)
	oy := max((h-m.level.TotalHeight())/2, 0)
	m.canvas.SetOrigin(ox, oy)
	m.dirty = true
}

// fits reports whether the whole level is visible.
func (m Model) fits() bool {
	return m.level.TotalWidth() <= m.screen.Width() && m.level.TotalHeight() <= m.screen.Height()
}

// redraw regenerates the terrain and draws the live food over it.
func (m *Model) redraw() {
	m.dirty = false
	if !m.fits() {
		return
	}
	if err := m.level.Generate(m.canvas); err != nil {
		m.lastErr = err
		return
	}
	if err := m.level.DrawFoods(m.canvas); err != nil {
		m.lastErr = err
	}
}

// spawn draws one random food and inserts it. It reports whether the level accepted it.
func (m *Model) spawn() bool {
	f, err := m.level.RandomFoodInset(m.world.Level.SpawnOffset)
	if err != nil {
		m.lastErr = err
		return false
	}
	if !m.level.AddFood(f) {
		return false
	}
	m.tally.Add(f)
	m.spawnedAt[f.Pos] = m.tick
	m.dirty = true
	return true
}

// expire removes food older than the configured lifetime.
func (m *Model) expire() {
	lifetime := m.world.Spawn.LifetimeTicks
	if lifetime <= 0 {
		return
	}
	for pos, born := range m.spawnedAt {
		if m.tick-born >= lifetime {
			m.level.RemoveFoodAt(pos)
			delete(m.spawnedAt, pos)
			m.dirty = true
		}
	}
}

func (m *Model) clearFood() {
	m.level.Foods = nil
	clear(m.spawnedAt)
	m.dirty = true
}

func (m *Model) nextTheme() {
	names := config.ThemeNames()
	m.themeIdx = (m.themeIdx + 1) % len(names)

	cfg := m.world
	config.ApplyThemePreset(&cfg, config.ThemePreset(names[m.themeIdx]))
	if err := m.rebuild(cfg, true); err != nil {
		m.lastErr = err
		return
	}
	m.world = cfg
}

// record saves the session tally to the ledger once. Empty sessions are skipped.
func (m *Model) record() {
	if m.store == nil || m.runID != "" || m.tally.Total == 0 {
		return
	}
	summary := storage.SummaryFromTally(m.runtime.Seed, m.level.Width, m.level.Height, m.world.Level.SpawnOffset, m.tally)
	summary.RunID = m.store.NewRunID()
	if _, err := m.store.SaveRun(summary); err != nil {
		m.lastErr = err
		return
	}
	m.runID = summary.RunID
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()

	case TickMsg:
		cmd = m.handleTick()
	}

	if m.dirty && !m.quitting {
		m.redraw()
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.record()
		return tea.Quit

	case key.Matches(msg, m.keys.Spawn):
		m.spawn()

	case key.Matches(msg, m.keys.Regenerate):
		if err := m.rebuild(m.world, false); err != nil {
			m.lastErr = err
		}
		m.layout()

	case key.Matches(msg, m.keys.NextTheme):
		m.nextTheme()

	case key.Matches(msg, m.keys.Clear):
		m.clearFood()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}
	return nil
}

// handleTick advances the simulation by one tick.
func (m *Model) handleTick() tea.Cmd {
	if m.quitting {
		return nil
	}
	if !m.paused {
		m.tick++
		m.expire()
		if m.tick%m.world.Spawn.IntervalTicks == 0 {
			m.spawn()
		}
	}
	return tickCmd(m.runtime.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.fits() {
		return m.tooSmallView()
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.hudView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) hudView() string {
	parts := []string{
		fmt.Sprintf("tick %d", m.tick),
		m.foodCount(),
		fmt.Sprintf("spawned %d", m.tally.Total),
	}
	for _, k := range world.AllFoodKinds() {
		parts = append(parts, fmt.Sprintf("%c %d", k.Traits().Symbol, m.tally.Count(k)))
	}
	parts = append(parts, fmt.Sprintf("net %+d", m.tally.NetMeals))

	line := hudStyle.Render(strings.Join(parts, "  "))
	if m.paused {
		line += "  " + pauseStyle.Render("PAUSED")
	}
	if m.lastErr != nil {
		line += "  " + errStyle.Render(m.lastErr.Error())
	}
	return line
}

func (m Model) foodCount() string {
	if m.level.MaxFood <= 0 {
		return fmt.Sprintf("food %d", len(m.level.Foods))
	}
	return fmt.Sprintf("food %d/%d", len(m.level.Foods), m.level.MaxFood)
}

func (m Model) tooSmallView() string {
	helpLines := lipgloss.Height(m.help.View(m.keys))
	needW := m.level.TotalWidth()
	needH := m.level.TotalHeight() + hudLines + helpLines
	msg := fmt.Sprintf("Terminal too small\n\nneed %dx%d, have %dx%d\n\nq to quit", needW, needH, m.width, m.height)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(msg))
}

// Level returns the level being previewed.
func (m Model) Level() *world.Level {
	return m.level
}

// Tally returns the statistics of every food spawned this session.
func (m Model) Tally() *world.Tally {
	return m.tally
}

// Seed returns the seed the session was started with.
func (m Model) Seed() int64 {
	return m.runtime.Seed
}

// RunID returns the ledger ID of the recorded session, or "" if nothing was recorded.
func (m Model) RunID() string {
	return m.runID
}

// Err returns the last error seen by the session.
func (m Model) Err() error {
	return m.lastErr
}

// Run starts the Bubble Tea program and returns the final model.
func Run(opts Options) (Model, error) {
	model, err := NewModel(opts)
	if err != nil {
		return Model{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(Model); ok {
		return m, nil
	}
	return model, nil
}
