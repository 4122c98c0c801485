// Package world owns the playable grid of a snake level: its geometry, the
// gradient-shaded terrain it paints onto a canvas, and the random food it
// spawns for the game loop.
package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/snake-world/internal/core"
)

// ErrInvalidSpawnRegion is returned when a spawn offset leaves no cell to
// sample from on at least one axis.
var ErrInvalidSpawnRegion = errors.New("world: invalid spawn region")

// Style holds the render styling of a level.
type Style struct {
	Background   rune
	Border       rune
	BorderWidth  uint16
	BorderHeight uint16
	Fg           core.RGB
	Bg           core.RGB
	GradientStep int // Green added per row of the background gradient
	MaxFood      int
}

// DefaultStyle returns the classic level styling.
func DefaultStyle() Style {
	return Style{
		Background:   ' ',
		Border:       '█',
		BorderWidth:  2,
		BorderHeight: 1,
		Fg:           core.RGB{R: 10, G: 100, B: 120},
		Bg:           core.RGB{R: 230, G: 40, B: 130},
		GradientStep: 10,
		MaxFood:      4,
	}
}

// Level is a single snake level. Width and Height are always odd so the
// interior is symmetric inside the border.
//
// A Level is not safe for concurrent use; the game loop owns it.
type Level struct {
	Width        uint16
	Height       uint16
	Background   rune
	Border       rune
	BorderWidth  uint16
	BorderHeight uint16
	FgColor      core.RGB
	BgColor      core.RGB
	GradientStep int

	// BgColorRange has one entry per terminal row once Generate has run.
	BgColorRange []core.RGB

	// Foods is the active food set. MaxFood is a capacity hint for the
	// game loop; only AddFood enforces it.
	Foods   []Food
	MaxFood int

	rng RandSource
}

// New creates a level with the default style. Even dimensions are bumped
// to the next odd value. A nil rng falls back to a time-seeded source.
func New(width, height uint16, rng RandSource) *Level {
	return NewWithStyle(width, height, DefaultStyle(), rng)
}

// NewWithStyle creates a level using the given style. A zero border
// thickness is replaced by the default thickness and a negative gradient
// step by zero.
func NewWithStyle(width, height uint16, style Style, rng RandSource) *Level {
	if width%2 == 0 {
		width++
	}
	if height%2 == 0 {
		height++
	}

	def := DefaultStyle()
	if style.BorderWidth == 0 {
		style.BorderWidth = def.BorderWidth
	}
	if style.BorderHeight == 0 {
		style.BorderHeight = def.BorderHeight
	}
	// The gradient only ever brightens downwards.
	style.GradientStep = max(style.GradientStep, 0)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Level{
		Width:        width,
		Height:       height,
		Background:   style.Background,
		Border:       style.Border,
		BorderWidth:  style.BorderWidth,
		BorderHeight: style.BorderHeight,
		FgColor:      style.Fg,
		BgColor:      style.Bg,
		GradientStep: style.GradientStep,
		BgColorRange: nil,
		Foods:        nil,
		MaxFood:      style.MaxFood,
		rng:          rng,
	}
}

// TotalWidth is the interior width plus both side borders.
func (l *Level) TotalWidth() int {
	return int(l.Width) + 2*int(l.BorderWidth)
}

// TotalHeight is the interior height plus top and bottom borders.
func (l *Level) TotalHeight() int {
	return int(l.Height) + 2*int(l.BorderHeight)
}

// Interior returns the playable area in total-grid coordinates.
func (l *Level) Interior() core.Rect {
	return core.NewRect(int(l.BorderWidth), int(l.BorderHeight), int(l.Width), int(l.Height))
}

// IsBorder reports whether the total-grid cell (x, y) belongs to the border margin.
func (l *Level) IsBorder(x, y int) bool {
	bw, bh := int(l.BorderWidth), int(l.BorderHeight)
	return x < bw || x > int(l.Width)+bw-1 || y < bh || y > int(l.Height)+bh-1
}

// Gradient returns the background color of terminal row y. Before the
// first Generate it returns the base background.
func (l *Level) Gradient(y int) core.RGB {
	if y < 0 || y >= len(l.BgColorRange) {
		return l.BgColor
	}
	return l.BgColorRange[y]
}

// Generate clears the canvas and paints the static terrain: border glyphs
// around the interior, every row shaded by the vertical gradient. The whole
// grid is submitted as one frame. The gradient table is rebuilt on every
// call.
func (l *Level) Generate(canvas Canvas) error {
	l.computeGradient()

	if err := canvas.Submit(l.TerrainFrame()); err != nil {
		return fmt.Errorf("world: submit terrain frame: %w", err)
	}
	return nil
}

func (l *Level) computeGradient() {
	rows := l.TotalHeight()
	l.BgColorRange = make([]core.RGB, 0, rows)
	for i := range rows {
		l.BgColorRange = append(l.BgColorRange, l.BgColor.WithGreenOffset(l.GradientStep*i))
	}
}

// TerrainFrame builds the draw commands for the whole grid in row-major
// order: clear, then move/fg/bg/print for every cell.
func (l *Level) TerrainFrame() Frame {
	w, h := l.TotalWidth(), l.TotalHeight()
	frame := make(Frame, 0, 1+4*w*h)
	frame.Clear()

	for y := range h {
		bg := l.Gradient(y)
		for x := range w {
			frame.MoveTo(x, y)
			frame.SetForeground(l.FgColor)
			frame.SetBackground(bg)
			if l.IsBorder(x, y) {
				frame.Print(l.Border)
			} else {
				frame.Print(l.Background)
			}
		}
	}
	return frame
}

// SpawnRegion returns the box RandomPos samples from for the given inset.
func (l *Level) SpawnRegion(offset uint16) (core.Rect, error) {
	off := int(offset)
	if int(l.Width) <= 2*off || int(l.Height) <= 2*off {
		return core.Rect{}, fmt.Errorf("%w: offset %d leaves no room in a %dx%d interior",
			ErrInvalidSpawnRegion, offset, l.Width, l.Height)
	}

	region := l.Interior().Inset(off)
	if region.Right()-1 > math.MaxUint16 || region.Bottom()-1 > math.MaxUint16 {
		return core.Rect{}, fmt.Errorf("%w: region %+v exceeds position range", ErrInvalidSpawnRegion, region)
	}
	return region, nil
}

// RandomPos samples a uniform position inside the interior inset by
// offset cells on every side.
func (l *Level) RandomPos(offset uint16) (core.Position, error) {
	region, err := l.SpawnRegion(offset)
	if err != nil {
		return core.Position{}, err
	}

	x := region.X + l.rng.Intn(region.W)
	y := region.Y + l.rng.Intn(region.H)
	return core.Pos(uint16(x), uint16(y)), nil
}

// RandomFood returns a food of a uniformly random kind at a random
// interior position. The food is not added to Foods.
func (l *Level) RandomFood() (Food, error) {
	return l.RandomFoodInset(0)
}

// RandomFoodInset is RandomFood with the spawn region inset by offset.
func (l *Level) RandomFoodInset(offset uint16) (Food, error) {
	pos, err := l.RandomPos(offset)
	if err != nil {
		return Food{}, err
	}

	kind := FoodKind(l.rng.Intn(int(foodKindCount)))
	return NewFood(kind, pos), nil
}

// FoodAt returns the index of the food at pos, or -1.
func (l *Level) FoodAt(pos core.Position) int {
	for i, f := range l.Foods {
		if f.Pos == pos {
			return i
		}
	}
	return -1
}

// AddFood appends f to Foods. It returns false when the level already
// holds MaxFood items (MaxFood <= 0 means unlimited), the cell is taken or
// lies outside the interior.
func (l *Level) AddFood(f Food) bool {
	if l.MaxFood > 0 && len(l.Foods) >= l.MaxFood {
		return false
	}
	if !l.Interior().ContainsPos(f.Pos) {
		return false
	}
	if l.FoodAt(f.Pos) >= 0 {
		return false
	}
	l.Foods = append(l.Foods, f)
	return true
}

// RemoveFoodAt removes and returns the food at pos, if any.
func (l *Level) RemoveFoodAt(pos core.Position) (Food, bool) {
	i := l.FoodAt(pos)
	if i < 0 {
		return Food{}, false
	}
	f := l.Foods[i]
	l.Foods = append(l.Foods[:i], l.Foods[i+1:]...)
	return f, true
}

// FoodFrame builds the draw commands for the active foods, each printed in
// its own color over the gradient of its row. It does not clear. A wide
// glyph whose second column would land on the border is replaced by the
// kind's narrow symbol.
func (l *Level) FoodFrame() Frame {
	frame := make(Frame, 0, 4*len(l.Foods))
	for _, f := range l.Foods {
		x, y := int(f.Pos.X), int(f.Pos.Y)
		frame.MoveTo(x, y)
		frame.SetForeground(f.Color)
		frame.SetBackground(l.Gradient(y))
		frame.Print(l.foodGlyph(f))
	}
	return frame
}

func (l *Level) foodGlyph(f Food) rune {
	y := int(f.Pos.Y)
	for i := 1; i < runewidth.RuneWidth(f.Symbol); i++ {
		if l.IsBorder(int(f.Pos.X)+i, y) {
			return f.Kind.NarrowSymbol()
		}
	}
	return f.Symbol
}

// DrawFoods submits FoodFrame to the canvas.
func (l *Level) DrawFoods(canvas Canvas) error {
	if len(l.Foods) == 0 {
		return nil
	}
	if err := canvas.Submit(l.FoodFrame()); err != nil {
		return fmt.Errorf("world: submit food frame: %w", err)
	}
	return nil
}
