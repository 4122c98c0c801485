package world

import (
	"testing"

	"github.com/vovakirdan/snake-world/internal/core"
)

func TestNewFoodTraits(t *testing.T) {
	tests := []struct {
		kind   FoodKind
		meals  int16
		symbol rune
		color  core.RGB
	}{
		{Cherry, 1, '🍒', core.RGB{R: 255, G: 0, B: 0}},
		{Mouse, 2, '🐁', core.RGB{R: 50, G: 60, B: 70}},
		{Bomb, -10, '💣', core.RGB{R: 0, G: 0, B: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			f := NewFood(tc.kind, core.Pos(5, 5))
			if f.Kind != tc.kind {
				t.Errorf("Kind = %v, expected %v", f.Kind, tc.kind)
			}
			if f.Meals != tc.meals {
				t.Errorf("Meals = %d, expected %d", f.Meals, tc.meals)
			}
			if f.Symbol != tc.symbol {
				t.Errorf("Symbol = %q, expected %q", f.Symbol, tc.symbol)
			}
			if f.Color != tc.color {
				t.Errorf("Color = %v, expected %v", f.Color, tc.color)
			}
			if f.Pos != core.Pos(5, 5) {
				t.Errorf("Pos = %v, expected (5, 5)", f.Pos)
			}
		})
	}
}

func TestUnknownFoodKind(t *testing.T) {
	k := FoodKind(42)
	if k.String() != "unknown" {
		t.Errorf("String() = %q, expected unknown", k.String())
	}
	if k.Traits() != (FoodTraits{}) {
		t.Errorf("Traits() = %+v, expected zero", k.Traits())
	}
	if k.NarrowSymbol() != '?' {
		t.Errorf("NarrowSymbol() = %q, expected '?'", k.NarrowSymbol())
	}
}

func TestNarrowSymbol(t *testing.T) {
	expected := map[FoodKind]rune{Cherry: 'c', Mouse: 'm', Bomb: 'b'}
	for k, r := range expected {
		if got := k.NarrowSymbol(); got != r {
			t.Errorf("%s.NarrowSymbol() = %q, expected %q", k, got, r)
		}
	}
}

func TestParseFoodKind(t *testing.T) {
	for _, k := range AllFoodKinds() {
		parsed, err := ParseFoodKind(k.String())
		if err != nil {
			t.Fatalf("ParseFoodKind(%q) failed: %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseFoodKind(%q) = %v, expected %v", k.String(), parsed, k)
		}
	}

	if k, err := ParseFoodKind(" Bomb "); err != nil || k != Bomb {
		t.Errorf("ParseFoodKind should trim and ignore case, got %v, %v", k, err)
	}
	if _, err := ParseFoodKind("apple"); err == nil {
		t.Error("ParseFoodKind(apple) should fail")
	}
}

func TestAllFoodKinds(t *testing.T) {
	kinds := AllFoodKinds()
	if len(kinds) != 3 || kinds[0] != Cherry || kinds[1] != Mouse || kinds[2] != Bomb {
		t.Errorf("AllFoodKinds() = %v", kinds)
	}
}

func TestFoodString(t *testing.T) {
	f := NewFood(Mouse, core.Pos(3, 7))
	if f.String() != "mouse at (3, 7)" {
		t.Errorf("String() = %q", f.String())
	}
}
