// Package snake implements a snake that roams a generated world level and
// eats the food spawned into it. It has no Bubble Tea dependencies.
package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/world"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

var (
	headColor = core.RGB{R: 250, G: 250, B: 210}
	bodyColor = core.RGB{R: 60, G: 200, B: 90}
)

// Options configures a game.
type Options struct {
	MoveEveryTicks int    // Ticks between moves (speed)
	StartLength    int    // Initial body length, at least 1
	SpawnOffset    uint16 // Inset of the food spawn region
}

// DefaultOptions returns the standard speed and length.
func DefaultOptions() Options {
	return Options{MoveEveryTicks: 6, StartLength: 3}
}

// Game implements the snake. It owns the level's food set while running.
type Game struct {
	level *world.Level
	opts  Options

	tick       uint64
	moveTicker int // Counts ticks until next move

	// Snake state
	body      []core.Position // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growth    int       // Segments still to add, one per move

	score int // Sum of meals eaten
	eaten *world.Tally

	gameOver bool
	paused   bool
}

// New places a snake at the center of the level's interior, heading right,
// and fills the level with food up to its capacity.
func New(level *world.Level, opts Options) *Game {
	if opts.MoveEveryTicks <= 0 {
		opts.MoveEveryTicks = DefaultOptions().MoveEveryTicks
	}
	if opts.StartLength <= 0 {
		opts.StartLength = DefaultOptions().StartLength
	}

	g := &Game{
		level: level,
		opts:  opts,
		eaten: world.NewTally(),
	}
	g.initSnake()
	g.level.Foods = nil
	for range max(level.MaxFood, 1) {
		g.spawnFood()
	}
	return g
}

// initSnake lays the body out leftwards from the interior center.
func (g *Game) initSnake() {
	in := g.level.Interior()
	hx, hy := in.Center()
	length := min(g.opts.StartLength, hx-in.X+1)

	g.body = make([]core.Position, length)
	for i := range length {
		g.body[i] = core.Pos(uint16(hx-i), uint16(hy))
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growth = 0
}

// spawnFood makes one spawn attempt. Food is never placed on the snake.
func (g *Game) spawnFood() bool {
	f, err := g.level.RandomFoodInset(g.opts.SpawnOffset)
	if err != nil || g.isSnakeAt(f.Pos) {
		return false
	}
	return g.level.AddFood(f)
}

// isSnakeAt checks if the snake occupies the given position.
func (g *Game) isSnakeAt(p core.Position) bool {
	for _, seg := range g.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Turn buffers a direction change. Reversing onto the body is ignored.
func (g *Game) Turn(d Direction) {
	if !isOpposite(d, g.direction) {
		g.nextDir = d
	}
}

// TogglePause pauses or resumes the game.
func (g *Game) TogglePause() {
	if !g.gameOver {
		g.paused = !g.paused
	}
}

// Step advances the game by one tick.
func (g *Game) Step() {
	g.tick++

	if g.gameOver || g.paused {
		return
	}

	// Move snake on tick interval
	g.moveTicker++
	if g.moveTicker >= g.opts.MoveEveryTicks {
		g.moveTicker = 0
		g.move()
		if !g.gameOver && (g.level.MaxFood <= 0 || len(g.level.Foods) < g.level.MaxFood) {
			g.spawnFood()
		}
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// move advances the snake one cell in the buffered direction.
//
// Food with positive meals grows the snake by that many segments, one per
// move starting with this one. Food with negative meals cuts that many
// segments from the tail at once; the snake dies when nothing would remain.
func (g *Game) move() {
	g.direction = g.nextDir

	head := g.body[0]
	x, y := int(head.X), int(head.Y)
	switch g.direction {
	case DirUp:
		y--
	case DirDown:
		y++
	case DirLeft:
		x--
	case DirRight:
		x++
	}

	// Check border collision
	if g.level.IsBorder(x, y) {
		g.gameOver = true
		return
	}
	newHead := core.Pos(uint16(x), uint16(y))

	// Check self collision (excluding tail if not growing, since it will move)
	checkLen := len(g.body)
	if g.growth == 0 {
		checkLen--
	}
	for i := range checkLen {
		if g.body[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.body = append([]core.Position{newHead}, g.body...)

	// Check food collision
	f, ate := g.level.RemoveFoodAt(newHead)
	if ate {
		g.eaten.Add(f)
		g.score += int(f.Meals)
		if f.Meals > 0 {
			g.growth += int(f.Meals)
		}
	}

	// Remove tail unless growing
	if g.growth > 0 {
		g.growth--
	} else {
		g.body = g.body[:len(g.body)-1]
	}

	if !ate || f.Meals >= 0 {
		return
	}
	cut := int(-f.Meals)
	if cut >= len(g.body) {
		g.body = g.body[:1]
		g.gameOver = true
		return
	}
	g.body = g.body[:len(g.body)-cut]
}

// Frame builds the draw commands for the snake over the level gradient.
func (g *Game) Frame() world.Frame {
	frame := make(world.Frame, 0, 4*len(g.body))
	for i, seg := range g.body {
		x, y := int(seg.X), int(seg.Y)
		frame.MoveTo(x, y)
		if i == 0 {
			frame.SetForeground(headColor)
		} else {
			frame.SetForeground(bodyColor)
		}
		frame.SetBackground(g.level.Gradient(y))
		if i == 0 {
			frame.Print('@')
		} else {
			frame.Print('o')
		}
	}
	return frame
}

// Draw regenerates the terrain and draws food and snake on top.
func (g *Game) Draw(canvas world.Canvas) error {
	if err := g.level.Generate(canvas); err != nil {
		return err
	}
	if err := g.level.DrawFoods(canvas); err != nil {
		return err
	}
	if err := canvas.Submit(g.Frame()); err != nil {
		return fmt.Errorf("snake: submit snake frame: %w", err)
	}
	return nil
}

// Level returns the level the snake moves in.
func (g *Game) Level() *world.Level { return g.level }

// Body returns a copy of the snake's segments, head first.
func (g *Game) Body() []core.Position {
	return append([]core.Position(nil), g.body...)
}

// Eaten returns the tally of food eaten so far.
func (g *Game) Eaten() *world.Tally { return g.eaten }

// Score returns the sum of meals eaten.
func (g *Game) Score() int { return g.score }

// IsOver reports whether the snake has died.
func (g *Game) IsOver() bool { return g.gameOver }

// IsPaused reports whether the game is paused.
func (g *Game) IsPaused() bool { return g.paused }

// --- String representation for Direction ---

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d\n", g.tick, g.score))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s, Growth: %d\n", len(g.body), g.direction, g.growth))
	if len(g.body) > 0 {
		b.WriteString(fmt.Sprintf("Head: %s, Foods: %d\n", g.body[0], len(g.level.Foods)))
	}
	b.WriteString(fmt.Sprintf("GameOver: %v, Paused: %v\n", g.gameOver, g.paused))
	return b.String()
}
