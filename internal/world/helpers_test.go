package world

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/snake-world/internal/core"
)

// scriptedRand returns queued values (modulo n) in order.
type scriptedRand struct {
	values []int
	calls  []int // n passed to each Intn call
}

func (s *scriptedRand) Intn(n int) int {
	s.calls = append(s.calls, n)
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// recordingCanvas keeps every submitted frame.
type recordingCanvas struct {
	frames []Frame
}

func (c *recordingCanvas) Submit(frame Frame) error {
	c.frames = append(c.frames, frame)
	return nil
}

var errCanvasClosed = errors.New("canvas closed")

type failingCanvas struct{}

func (failingCanvas) Submit(Frame) error {
	return errCanvasClosed
}

// drawnCell is the state of one cell after replaying a frame.
type drawnCell struct {
	glyph rune
	fg    core.RGB
	bg    core.RGB
}

// replay interprets a frame like a terminal would: prints land at the
// cursor with the colors active at that moment.
func replay(frame Frame) map[[2]int]drawnCell {
	cells := make(map[[2]int]drawnCell)
	var x, y int
	var fg, bg core.RGB
	for _, cmd := range frame {
		switch cmd.Op {
		case OpClear:
			clear(cells)
		case OpMoveTo:
			x, y = cmd.X, cmd.Y
		case OpSetForeground:
			fg = cmd.Color
		case OpSetBackground:
			bg = cmd.Color
		case OpPrint:
			cells[[2]int{x, y}] = drawnCell{glyph: cmd.Glyph, fg: fg, bg: bg}
			x++
		}
	}
	return cells
}
