package world

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-world/internal/core"
)

// FoodKind is the closed set of spawnable food types.
type FoodKind uint8

const (
	Cherry FoodKind = iota
	Mouse
	Bomb
	foodKindCount // Sentinel value for iteration
)

// FoodTraits are the attributes derived from a FoodKind.
type FoodTraits struct {
	Meals  int16
	Symbol rune
	Color  core.RGB
}

// Traits returns the fixed meals/glyph/color triple for the kind.
// Unknown kinds return zero traits.
func (k FoodKind) Traits() FoodTraits {
	switch k {
	case Cherry:
		return FoodTraits{Meals: 1, Symbol: '🍒', Color: core.RGB{R: 255, G: 0, B: 0}}
	case Mouse:
		return FoodTraits{Meals: 2, Symbol: '🐁', Color: core.RGB{R: 50, G: 60, B: 70}}
	case Bomb:
		return FoodTraits{Meals: -10, Symbol: '💣', Color: core.RGB{R: 0, G: 0, B: 0}}
	default:
		return FoodTraits{}
	}
}

// NarrowSymbol returns a single-column stand-in for the kind's glyph, used
// where a double-width emoji would spill onto the border.
func (k FoodKind) NarrowSymbol() rune {
	switch k {
	case Cherry:
		return 'c'
	case Mouse:
		return 'm'
	case Bomb:
		return 'b'
	default:
		return '?'
	}
}

// String returns the lowercase kind name.
func (k FoodKind) String() string {
	switch k {
	case Cherry:
		return "cherry"
	case Mouse:
		return "mouse"
	case Bomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// ParseFoodKind converts a name back to a FoodKind.
func ParseFoodKind(s string) (FoodKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cherry":
		return Cherry, nil
	case "mouse":
		return Mouse, nil
	case "bomb":
		return Bomb, nil
	default:
		return 0, fmt.Errorf("world: unknown food kind %q", s)
	}
}

// AllFoodKinds returns every kind in declaration order.
func AllFoodKinds() []FoodKind {
	kinds := make([]FoodKind, 0, foodKindCount)
	for k := FoodKind(0); k < foodKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Food is a spawned item. Meals, Symbol and Color always match Kind.
type Food struct {
	Kind   FoodKind
	Meals  int16
	Symbol rune
	Color  core.RGB
	Pos    core.Position
}

// NewFood creates a food of the given kind at pos.
func NewFood(kind FoodKind, pos core.Position) Food {
	t := kind.Traits()
	return Food{
		Kind:   kind,
		Meals:  t.Meals,
		Symbol: t.Symbol,
		Color:  t.Color,
		Pos:    pos,
	}
}

// String returns e.g. "bomb at (5, 5)".
func (f Food) String() string {
	return fmt.Sprintf("%s at %s", f.Kind, f.Pos)
}
