package world

import "github.com/vovakirdan/snake-world/internal/core"

// Tally accumulates statistics over spawned food.
type Tally struct {
	Counts   map[FoodKind]int
	Total    int
	NetMeals int

	// Bounds is the smallest box covering every recorded position.
	Bounds core.Rect
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{Counts: make(map[FoodKind]int)}
}

// Add records one spawned food.
func (t *Tally) Add(f Food) {
	if t.Counts == nil {
		t.Counts = make(map[FoodKind]int)
	}
	t.Counts[f.Kind]++
	t.NetMeals += int(f.Meals)

	x, y := int(f.Pos.X), int(f.Pos.Y)
	if t.Total == 0 {
		t.Bounds = core.NewRect(x, y, 1, 1)
	} else {
		left, top := min(t.Bounds.X, x), min(t.Bounds.Y, y)
		right, bottom := max(t.Bounds.Right(), x+1), max(t.Bounds.Bottom(), y+1)
		t.Bounds = core.NewRect(left, top, right-left, bottom-top)
	}
	t.Total++
}

// Count returns how many foods of kind k were recorded.
func (t *Tally) Count(k FoodKind) int {
	return t.Counts[k]
}

// Frequencies returns the share of each kind in [0, 1].
// All shares are zero for an empty tally.
func (t *Tally) Frequencies() map[FoodKind]float64 {
	freq := make(map[FoodKind]float64, foodKindCount)
	for _, k := range AllFoodKinds() {
		if t.Total == 0 {
			freq[k] = 0
			continue
		}
		freq[k] = float64(t.Counts[k]) / float64(t.Total)
	}
	return freq
}
