package core

import "fmt"

// Position is a grid cell coordinate. The origin is the top-left cell,
// x grows to the right and y grows downward.
type Position struct {
	X, Y uint16
}

// Pos builds a Position.
func Pos(x, y uint16) Position {
	return Position{X: x, Y: y}
}

// String returns "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
