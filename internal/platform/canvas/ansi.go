// Package canvas implements world.Canvas for real terminals (ANSI escape
// sequences) and for in-memory screen buffers.
package canvas

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/world"
)

type colorPair struct {
	fg, bg core.RGB
}

// ANSICanvas encodes frames as ANSI escape sequences and writes each frame
// to the underlying writer with a single Write call.
type ANSICanvas struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	styles   map[colorPair]lipgloss.Style
	originX  int
	originY  int
}

// NewANSICanvas creates a canvas writing true-color output to w.
func NewANSICanvas(w io.Writer) *ANSICanvas {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)

	return &ANSICanvas{
		out:      w,
		renderer: r,
		styles:   make(map[colorPair]lipgloss.Style),
	}
}

// SetOrigin shifts every cursor move by (x, y) cells.
func (c *ANSICanvas) SetOrigin(x, y int) {
	c.originX, c.originY = x, y
}

// Submit encodes the frame and writes it out.
func (c *ANSICanvas) Submit(frame world.Frame) error {
	var buf bytes.Buffer
	var fg, bg core.RGB

	for _, cmd := range frame {
		switch cmd.Op {
		case world.OpClear:
			buf.WriteString(ansi.EraseEntireScreen)
		case world.OpMoveTo:
			// CUP is 1-based
			buf.WriteString(ansi.CursorPosition(c.originX+cmd.X+1, c.originY+cmd.Y+1))
		case world.OpSetForeground:
			fg = cmd.Color
		case world.OpSetBackground:
			bg = cmd.Color
		case world.OpPrint:
			buf.WriteString(c.style(fg, bg).Render(string(cmd.Glyph)))
		}
	}

	n, err := c.out.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("canvas: write frame: %w", err)
	}
	if n < buf.Len() {
		return fmt.Errorf("canvas: write frame: %w", io.ErrShortWrite)
	}
	return nil
}

func (c *ANSICanvas) style(fg, bg core.RGB) lipgloss.Style {
	key := colorPair{fg: fg, bg: bg}
	if s, ok := c.styles[key]; ok {
		return s
	}
	s := c.renderer.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	c.styles[key] = s
	return s
}
