package world

import "github.com/vovakirdan/snake-world/internal/core"

// Op identifies a draw command.
type Op uint8

const (
	OpClear Op = iota
	OpMoveTo
	OpSetForeground
	OpSetBackground
	OpPrint
)

// String returns a short name for the op.
func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpMoveTo:
		return "move"
	case OpSetForeground:
		return "fg"
	case OpSetBackground:
		return "bg"
	case OpPrint:
		return "print"
	default:
		return "unknown"
	}
}

// Command is a single buffered draw instruction.
// Only the fields relevant to Op are set.
type Command struct {
	Op    Op
	X, Y  int
	Color core.RGB
	Glyph rune
}

// Frame is an ordered command buffer committed to a Canvas in one Submit.
type Frame []Command

// Clear appends a clear-screen command.
func (f *Frame) Clear() {
	*f = append(*f, Command{Op: OpClear})
}

// MoveTo appends a cursor move to (x, y).
func (f *Frame) MoveTo(x, y int) {
	*f = append(*f, Command{Op: OpMoveTo, X: x, Y: y})
}

// SetForeground appends a foreground color change.
func (f *Frame) SetForeground(c core.RGB) {
	*f = append(*f, Command{Op: OpSetForeground, Color: c})
}

// SetBackground appends a background color change.
func (f *Frame) SetBackground(c core.RGB) {
	*f = append(*f, Command{Op: OpSetBackground, Color: c})
}

// Print appends a glyph print at the current cursor position.
func (f *Frame) Print(r rune) {
	*f = append(*f, Command{Op: OpPrint, Glyph: r})
}

// Canvas accepts a whole frame of draw commands and commits it atomically.
// Implementations return an error when the underlying output cannot take
// the frame; nothing is retried.
type Canvas interface {
	Submit(frame Frame) error
}

// RandSource supplies uniform integers in [0, n). *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}
