package canvas

import (
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/world"
)

// ScreenCanvas replays frames into a core.Screen. Wide glyphs advance the
// cursor by their display width; the covered cell is marked with a zero
// rune so renderers skip it.
type ScreenCanvas struct {
	screen  *core.Screen
	originX int
	originY int
}

// NewScreenCanvas creates a canvas drawing into s with the grid origin at (ox, oy).
func NewScreenCanvas(s *core.Screen, ox, oy int) *ScreenCanvas {
	return &ScreenCanvas{screen: s, originX: ox, originY: oy}
}

// SetOrigin moves the grid origin.
func (c *ScreenCanvas) SetOrigin(x, y int) {
	c.originX, c.originY = x, y
}

// Origin returns the grid origin.
func (c *ScreenCanvas) Origin() (int, int) {
	return c.originX, c.originY
}

// Screen returns the target buffer.
func (c *ScreenCanvas) Screen() *core.Screen {
	return c.screen
}

// Submit applies the frame. Cells outside the screen are dropped.
func (c *ScreenCanvas) Submit(frame world.Frame) error {
	var x, y int
	var fg, bg core.RGB

	for _, cmd := range frame {
		switch cmd.Op {
		case world.OpClear:
			c.screen.Clear()
		case world.OpMoveTo:
			x, y = c.originX+cmd.X, c.originY+cmd.Y
		case world.OpSetForeground:
			fg = cmd.Color
		case world.OpSetBackground:
			bg = cmd.Color
		case world.OpPrint:
			c.screen.SetCell(x, y, core.Cell{Rune: cmd.Glyph, Fg: fg, Bg: bg, Styled: true})
			width := max(runewidth.RuneWidth(cmd.Glyph), 1)
			for i := 1; i < width; i++ {
				c.screen.SetCell(x+i, y, core.Cell{Rune: 0, Fg: fg, Bg: bg, Styled: true})
			}
			x += width
		}
	}
	return nil
}
