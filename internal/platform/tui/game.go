package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-world/internal/config"
	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/platform/canvas"
	"github.com/vovakirdan/snake-world/internal/snake"
	"github.com/vovakirdan/snake-world/internal/storage"
	"github.com/vovakirdan/snake-world/internal/world"
)

var gameOverStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

// GameOptions configures a snake game session.
type GameOptions struct {
	World   config.WorldConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; finished games are recorded

	// ScreenshotDir is where ctrl+s writes screen dumps.
	// Defaults to ~/.snakeworld/screenshots.
	ScreenshotDir string
}

// GameModel is the Bubble Tea model for the snake game.
type GameModel struct {
	world   config.WorldConfig
	runtime core.RuntimeConfig
	store   *storage.Store

	game   *snake.Game
	screen *core.Screen
	canvas *canvas.ScreenCanvas

	keys GameKeyMap
	help help.Model

	width     int
	height    int
	highScore int
	saved     bool // Score of the current game has been recorded
	quitting  bool
	lastErr   error

	shotDir  string
	lastShot string
}

// NewGameModel creates a snake game model. The world config must be valid.
func NewGameModel(opts GameOptions) (GameModel, error) {
	if err := opts.World.Validate(); err != nil {
		return GameModel{}, err
	}

	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(os.Getenv("HOME"), ".snakeworld", "screenshots")
	}

	m := GameModel{
		world:   opts.World,
		runtime: rt,
		store:   opts.Store,
		screen:  core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		width:   rt.ScreenW,
		height:  rt.ScreenH,
		shotDir: shotDir,
	}
	m.canvas = canvas.NewScreenCanvas(m.screen, 0, 0)

	if m.store != nil {
		if high, err := m.store.HighScore(); err == nil {
			m.highScore = high
		}
	}

	if err := m.reset(rt.Seed); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

// reset starts a new game on a fresh level generated from seed.
func (m *GameModel) reset(seed int64) error {
	style, err := m.world.WorldStyle()
	if err != nil {
		return err
	}

	m.runtime.Seed = seed
	rng := rand.New(rand.NewSource(seed))
	level := world.NewWithStyle(m.world.Level.Width, m.world.Level.Height, style, rng)
	m.game = snake.New(level, snake.Options{
		MoveEveryTicks: m.world.Snake.MoveEveryTicks,
		StartLength:    m.world.Snake.StartLength,
		SpawnOffset:    m.world.Level.SpawnOffset,
	})
	m.saved = false
	m.layout()
	return nil
}

// layout sizes the screen buffer to the space above the HUD and centers the level in it.
func (m *GameModel) layout() {
	helpLines := lipgloss.Height(m.help.View(m.keys))
	h := max(m.height-hudLines-helpLines, 0)
	m.screen.Resize(m.width, h)

	level := m.game.Level()
	ox := max((m.width-level.TotalWidth())/2, 0)
	oy := max((h-level.TotalHeight())/2, 0)
	m.canvas.SetOrigin(ox, oy)
	m.redraw()
}

func (m GameModel) fits() bool {
	level := m.game.Level()
	return level.TotalWidth() <= m.screen.Width() && level.TotalHeight() <= m.screen.Height()
}

func (m *GameModel) redraw() {
	if !m.fits() {
		return
	}
	if err := m.game.Draw(m.canvas); err != nil {
		m.lastErr = err
		return
	}
	switch {
	case m.game.IsOver():
		m.banner("GAME OVER")
	case m.game.IsPaused():
		m.banner("PAUSED")
	}
}

// banner writes text across the middle row of the level.
func (m *GameModel) banner(text string) {
	level := m.game.Level()
	text = " " + text + " "
	ox, oy := m.canvas.Origin()
	x := ox + max((level.TotalWidth()-len(text))/2, 0)
	m.screen.DrawText(x, oy+level.TotalHeight()/2, text)
}

// recordScore saves the finished game once.
func (m *GameModel) recordScore() {
	if m.saved || !m.game.IsOver() {
		return
	}
	m.saved = true
	score := m.game.Score()
	if score > m.highScore {
		m.highScore = score
	}
	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		Seed:   m.runtime.Seed,
		Score:  score,
		Length: len(m.game.Body()),
		Eaten:  m.game.Eaten().Total,
	})
	if err != nil {
		m.lastErr = err
	}
}

// saveScreenshot writes the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.lastErr = fmt.Errorf("screenshot: %w", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("snake_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.lastErr = fmt.Errorf("screenshot: %w", err)
		return
	}
	m.lastShot = path
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.game.Step()
		m.recordScore()
		m.redraw()
		return m, tickCmd(m.runtime.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *GameModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()

	case key.Matches(msg, m.keys.Up):
		m.game.Turn(snake.DirUp)
	case key.Matches(msg, m.keys.Down):
		m.game.Turn(snake.DirDown)
	case key.Matches(msg, m.keys.Left):
		m.game.Turn(snake.DirLeft)
	case key.Matches(msg, m.keys.Right):
		m.game.Turn(snake.DirRight)

	case key.Matches(msg, m.keys.Pause):
		m.game.TogglePause()

	case key.Matches(msg, m.keys.Restart):
		if m.game.IsOver() {
			// New seed for a new level
			if err := m.reset(time.Now().UnixNano()); err != nil {
				m.lastErr = err
			}
		}
	}
	return nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.fits() {
		level := m.game.Level()
		msg := fmt.Sprintf("Terminal too small\n\nneed %dx%d, have %dx%d\n\nq to quit",
			level.TotalWidth(), level.TotalHeight()+hudLines+lipgloss.Height(m.help.View(m.keys)),
			m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(msg))
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.hudView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m GameModel) hudView() string {
	line := hudStyle.Render(fmt.Sprintf("score %d  best %d  length %d  eaten %d",
		m.game.Score(), m.highScore, len(m.game.Body()), m.game.Eaten().Total))

	switch {
	case m.game.IsOver():
		line += "  " + gameOverStyle.Render("GAME OVER - r to restart")
	case m.game.IsPaused():
		line += "  " + pauseStyle.Render("PAUSED")
	}
	if m.lastShot != "" {
		line += "  " + hudStyle.Render("saved "+filepath.Base(m.lastShot))
	}
	if m.lastErr != nil {
		line += "  " + errStyle.Render(m.lastErr.Error())
	}
	return line
}

// Game returns the running game.
func (m GameModel) Game() *snake.Game {
	return m.game
}

// Seed returns the seed of the current level.
func (m GameModel) Seed() int64 {
	return m.runtime.Seed
}

// HighScore returns the best score known to the session.
func (m GameModel) HighScore() int {
	return m.highScore
}

// Err returns the last error seen by the session.
func (m GameModel) Err() error {
	return m.lastErr
}

// RunGame starts the snake game and returns the final model.
func RunGame(opts GameOptions) (GameModel, error) {
	model, err := NewGameModel(opts)
	if err != nil {
		return GameModel{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(GameModel); ok {
		return m, nil
	}
	return model, nil
}
