package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vovakirdan/snake-world/internal/core"
)

func TestNewNormalizesDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
		wantW, wantH  uint16
	}{
		{"even both", 10, 8, 11, 9},
		{"odd both", 11, 9, 11, 9},
		{"zero", 0, 0, 1, 1},
		{"mixed", 40, 17, 41, 17},
		{"max even", 65534, 2, 65535, 3},
		{"max odd", 65535, 1, 65535, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.width, tc.height, seeded(1))
			if l.Width != tc.wantW || l.Height != tc.wantH {
				t.Errorf("New(%d, %d) = %dx%d, expected %dx%d",
					tc.width, tc.height, l.Width, l.Height, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	l := New(10, 8, seeded(1))

	assert.Equal(t, uint16(11), l.Width)
	assert.Equal(t, uint16(9), l.Height)
	assert.Equal(t, 15, l.TotalWidth())
	assert.Equal(t, 11, l.TotalHeight())
	assert.Equal(t, uint16(2), l.BorderWidth)
	assert.Equal(t, uint16(1), l.BorderHeight)
	assert.Equal(t, ' ', l.Background)
	assert.Equal(t, '█', l.Border)
	assert.Equal(t, core.RGB{R: 10, G: 100, B: 120}, l.FgColor)
	assert.Equal(t, core.RGB{R: 230, G: 40, B: 130}, l.BgColor)
	assert.Empty(t, l.BgColorRange)
	assert.Empty(t, l.Foods)
	assert.Equal(t, 4, l.MaxFood)
}

func TestNewNilRandFallsBack(t *testing.T) {
	l := New(5, 5, nil)
	_, err := l.RandomFood()
	require.NoError(t, err)
}

func TestNewWithStyleKeepsBorderPositive(t *testing.T) {
	style := DefaultStyle()
	style.BorderWidth = 0
	style.BorderHeight = 0

	l := NewWithStyle(4, 4, style, seeded(1))
	assert.Equal(t, uint16(2), l.BorderWidth)
	assert.Equal(t, uint16(1), l.BorderHeight)
	assert.Equal(t, uint16(5), l.Width)
}

func TestNewWithStyleClampsNegativeGradient(t *testing.T) {
	style := DefaultStyle()
	style.GradientStep = -10

	l := NewWithStyle(5, 5, style, seeded(1))
	require.NoError(t, l.Generate(&recordingCanvas{}))

	assert.Equal(t, 0, l.GradientStep)
	for y := 1; y < len(l.BgColorRange); y++ {
		assert.GreaterOrEqual(t, l.BgColorRange[y].G, l.BgColorRange[y-1].G, "row %d", y)
	}
}

// Property: normalized dimensions are odd; even inputs grow by exactly one.
func TestPropertyDimensionsOdd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Uint16Range(0, 65534).Draw(t, "width")
		h := rapid.Uint16Range(0, 65534).Draw(t, "height")
		l := New(w, h, seeded(1))

		assert.Equal(t, uint16(1), l.Width%2)
		assert.Equal(t, uint16(1), l.Height%2)
		if w%2 == 0 {
			assert.Equal(t, w+1, l.Width)
		} else {
			assert.Equal(t, w, l.Width)
		}
		if h%2 == 0 {
			assert.Equal(t, h+1, l.Height)
		} else {
			assert.Equal(t, h, l.Height)
		}
		assert.Equal(t, int(l.Width)+4, l.TotalWidth())
		assert.Equal(t, int(l.Height)+2, l.TotalHeight())
	})
}

func TestGenerateGradient(t *testing.T) {
	l := New(10, 21, seeded(1))
	require.NoError(t, l.Generate(&recordingCanvas{}))

	require.Len(t, l.BgColorRange, l.TotalHeight())
	assert.Equal(t, core.RGB{R: 230, G: 40, B: 130}, l.BgColorRange[0])
	assert.Equal(t, core.RGB{R: 230, G: 70, B: 130}, l.BgColorRange[3])
	assert.Equal(t, core.RGB{R: 230, G: 250, B: 130}, l.BgColorRange[21])
	assert.Equal(t, core.RGB{R: 230, G: 255, B: 130}, l.BgColorRange[22])
}

func TestGenerateIsIdempotentOnGradient(t *testing.T) {
	l := New(10, 8, seeded(1))
	canvas := &recordingCanvas{}

	require.NoError(t, l.Generate(canvas))
	first := append([]core.RGB(nil), l.BgColorRange...)
	require.NoError(t, l.Generate(canvas))

	assert.Equal(t, first, l.BgColorRange)
	assert.Len(t, canvas.frames, 2)
}

func TestGenerateSubmitsSingleFrame(t *testing.T) {
	l := New(10, 8, seeded(1))
	canvas := &recordingCanvas{}
	require.NoError(t, l.Generate(canvas))

	require.Len(t, canvas.frames, 1)
	frame := canvas.frames[0]
	cells := l.TotalWidth() * l.TotalHeight()
	require.Len(t, frame, 1+4*cells)
	assert.Equal(t, OpClear, frame[0].Op)

	// Each cell is move, fg, bg, print in row-major order.
	for i := 0; i < cells; i++ {
		base := 1 + 4*i
		x, y := i%l.TotalWidth(), i/l.TotalWidth()
		assert.Equal(t, Command{Op: OpMoveTo, X: x, Y: y}, frame[base])
		assert.Equal(t, OpSetForeground, frame[base+1].Op)
		assert.Equal(t, l.FgColor, frame[base+1].Color)
		assert.Equal(t, OpSetBackground, frame[base+2].Op)
		assert.Equal(t, l.BgColorRange[y], frame[base+2].Color)
		assert.Equal(t, OpPrint, frame[base+3].Op)
	}
}

func TestGenerateBorderLayout(t *testing.T) {
	l := New(10, 8, seeded(1))
	canvas := &recordingCanvas{}
	require.NoError(t, l.Generate(canvas))

	cells := replay(canvas.frames[0])
	rows := make([]string, l.TotalHeight())
	for y := range rows {
		var row []rune
		for x := 0; x < l.TotalWidth(); x++ {
			if cells[[2]int{x, y}].glyph == l.Border {
				row = append(row, '#')
			} else {
				row = append(row, '.')
			}
		}
		rows[y] = string(row)
	}

	expected := []string{
		"###############",
		"##...........##",
		"##...........##",
		"##...........##",
		"##...........##",
		"##...........##",
		"##...........##",
		"##...........##",
		"##...........##",
		"##...........##",
		"###############",
	}
	assert.Equal(t, expected, rows)
}

func TestGenerateCanvasFailure(t *testing.T) {
	l := New(10, 8, seeded(1))

	err := l.Generate(failingCanvas{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errCanvasClosed), "canvas error should be wrapped, got %v", err)
}

// Property: after Generate the gradient has one non-decreasing, saturating
// entry per row, and every cell is a border glyph iff it lies outside the interior.
func TestPropertyGenerate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Uint16Range(0, 60).Draw(t, "width")
		h := rapid.Uint16Range(0, 40).Draw(t, "height")
		l := New(w, h, seeded(1))
		canvas := &recordingCanvas{}
		require.NoError(t, l.Generate(canvas))

		require.Len(t, l.BgColorRange, l.TotalHeight())
		for i := 1; i < len(l.BgColorRange); i++ {
			assert.GreaterOrEqual(t, l.BgColorRange[i].G, l.BgColorRange[i-1].G)
		}

		cells := replay(canvas.frames[0])
		require.Len(t, cells, l.TotalWidth()*l.TotalHeight())
		bw, bh := int(l.BorderWidth), int(l.BorderHeight)
		for y := 0; y < l.TotalHeight(); y++ {
			for x := 0; x < l.TotalWidth(); x++ {
				c := cells[[2]int{x, y}]
				border := x < bw || x > int(l.Width)+bw-1 || y < bh || y > int(l.Height)+bh-1
				if border {
					assert.Equal(t, l.Border, c.glyph, "cell (%d, %d)", x, y)
				} else {
					assert.Equal(t, l.Background, c.glyph, "cell (%d, %d)", x, y)
				}
				assert.Equal(t, l.BgColorRange[y], c.bg)
				assert.Equal(t, l.FgColor, c.fg)
			}
		}
	})
}

func TestGradientBeforeGenerate(t *testing.T) {
	l := New(10, 8, seeded(1))
	assert.Equal(t, l.BgColor, l.Gradient(3))
	assert.Equal(t, l.BgColor, l.Gradient(-1))
}

func TestRandomPosScripted(t *testing.T) {
	rng := &scriptedRand{values: []int{3, 4}}
	l := New(10, 8, rng)

	pos, err := l.RandomPos(0)
	require.NoError(t, err)
	assert.Equal(t, core.Pos(5, 5), pos)
	assert.Equal(t, []int{11, 9}, rng.calls)
}

func TestRandomPosOffsetShrinksRange(t *testing.T) {
	rng := &scriptedRand{values: []int{0, 0, 100, 100}}
	l := New(10, 8, rng)

	lo, err := l.RandomPos(2)
	require.NoError(t, err)
	assert.Equal(t, core.Pos(4, 3), lo)

	// 100 % 7 == 2 and 100 % 5 == 0
	hi, err := l.RandomPos(2)
	require.NoError(t, err)
	assert.Equal(t, core.Pos(6, 3), hi)
	assert.Equal(t, []int{7, 5, 7, 5}, rng.calls)
}

func TestRandomPosInvalidRegion(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint16
		offset        uint16
	}{
		{"width exhausted", 5, 41, 3},
		{"height exhausted", 41, 5, 3},
		{"exact half", 9, 9, 5},
		{"tiny level", 0, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.width, tc.height, seeded(1))
			_, err := l.RandomPos(tc.offset)
			assert.ErrorIs(t, err, ErrInvalidSpawnRegion)
		})
	}
}

// Property: RandomPos stays inside [b+off, dim+b-off) on both axes.
func TestPropertyRandomPosBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Uint16Range(0, 500).Draw(t, "width")
		h := rapid.Uint16Range(0, 500).Draw(t, "height")
		seed := rapid.Int64().Draw(t, "seed")
		l := New(w, h, seeded(seed))

		maxOff := min(l.Width, l.Height) / 2
		off := rapid.Uint16Range(0, maxOff).Draw(t, "offset")

		pos, err := l.RandomPos(off)
		require.NoError(t, err)

		bw, bh := int(l.BorderWidth), int(l.BorderHeight)
		o := int(off)
		x, y := int(pos.X), int(pos.Y)
		assert.GreaterOrEqual(t, x, bw+o)
		assert.Less(t, x, int(l.Width)+bw-o)
		assert.GreaterOrEqual(t, y, bh+o)
		assert.Less(t, y, int(l.Height)+bh-o)
		assert.False(t, l.IsBorder(x, y))
	})
}

func TestRandomFoodScripted(t *testing.T) {
	rng := &scriptedRand{values: []int{3, 4, 2}}
	l := New(10, 8, rng)

	f, err := l.RandomFood()
	require.NoError(t, err)
	assert.Equal(t, NewFood(Bomb, core.Pos(5, 5)), f)
	assert.Equal(t, []int{11, 9, 3}, rng.calls)
	assert.Empty(t, l.Foods, "RandomFood must not insert into Foods")
}

func TestRandomFoodInset(t *testing.T) {
	rng := &scriptedRand{values: []int{0, 0, 1}}
	l := New(10, 8, rng)

	f, err := l.RandomFoodInset(2)
	require.NoError(t, err)
	assert.Equal(t, NewFood(Mouse, core.Pos(4, 3)), f)
	assert.Equal(t, []int{7, 5, 3}, rng.calls)

	_, err = l.RandomFoodInset(5)
	assert.ErrorIs(t, err, ErrInvalidSpawnRegion)
}

func TestRandomFoodDeterministic(t *testing.T) {
	a := New(41, 17, seeded(12345))
	b := New(41, 17, seeded(12345))

	for i := 0; i < 50; i++ {
		fa, err := a.RandomFood()
		require.NoError(t, err)
		fb, err := b.RandomFood()
		require.NoError(t, err)
		if fa != fb {
			t.Fatalf("spawn %d differs: %v vs %v", i, fa, fb)
		}
	}
}

func TestRandomFoodFrequencies(t *testing.T) {
	l := New(41, 17, seeded(7))
	tally := NewTally()

	const n = 30000
	for i := 0; i < n; i++ {
		f, err := l.RandomFood()
		require.NoError(t, err)
		require.Equal(t, f.Kind.Traits(), FoodTraits{Meals: f.Meals, Symbol: f.Symbol, Color: f.Color})
		tally.Add(f)
	}

	for kind, share := range tally.Frequencies() {
		assert.InDelta(t, 1.0/3.0, share, 0.02, "kind %s", kind)
	}
	assert.Equal(t, n, tally.Total)
	assert.True(t, l.Interior().Contains(tally.Bounds.X, tally.Bounds.Y))
}

func TestAddFoodRespectsCapacity(t *testing.T) {
	l := New(10, 8, seeded(1))
	l.MaxFood = 2

	assert.True(t, l.AddFood(NewFood(Cherry, core.Pos(3, 3))))
	assert.False(t, l.AddFood(NewFood(Mouse, core.Pos(3, 3))), "occupied cell")
	assert.True(t, l.AddFood(NewFood(Mouse, core.Pos(4, 3))))
	assert.False(t, l.AddFood(NewFood(Bomb, core.Pos(5, 3))), "at capacity")
	l.MaxFood = 3
	assert.False(t, l.AddFood(NewFood(Bomb, core.Pos(1, 3))), "left border")
	assert.False(t, l.AddFood(NewFood(Bomb, core.Pos(5, 0))), "top border")
	assert.False(t, l.AddFood(NewFood(Bomb, core.Pos(13, 3))), "right border")
	l.MaxFood = 2
	assert.Len(t, l.Foods, 2)

	f, ok := l.RemoveFoodAt(core.Pos(3, 3))
	require.True(t, ok)
	assert.Equal(t, Cherry, f.Kind)
	assert.Equal(t, -1, l.FoodAt(core.Pos(3, 3)))

	_, ok = l.RemoveFoodAt(core.Pos(3, 3))
	assert.False(t, ok)
	assert.True(t, l.AddFood(NewFood(Bomb, core.Pos(5, 3))))
}

func TestAddFoodUnlimited(t *testing.T) {
	l := New(10, 8, seeded(1))
	l.MaxFood = 0
	for x := uint16(2); x < 12; x++ {
		require.True(t, l.AddFood(NewFood(Cherry, core.Pos(x, 1))))
	}
	assert.Len(t, l.Foods, 10)
}

func TestDrawFoods(t *testing.T) {
	l := New(10, 8, seeded(1))
	canvas := &recordingCanvas{}
	require.NoError(t, l.Generate(canvas))

	require.NoError(t, l.DrawFoods(canvas))
	assert.Len(t, canvas.frames, 1, "no frame for an empty food set")

	l.AddFood(NewFood(Cherry, core.Pos(3, 2)))
	l.AddFood(NewFood(Bomb, core.Pos(7, 5)))
	require.NoError(t, l.DrawFoods(canvas))
	require.Len(t, canvas.frames, 2)

	cells := replay(canvas.frames[1])
	assert.Equal(t, drawnCell{glyph: '🍒', fg: core.RGB{R: 255}, bg: l.Gradient(2)}, cells[[2]int{3, 2}])
	assert.Equal(t, drawnCell{glyph: '💣', fg: core.RGB{}, bg: l.Gradient(5)}, cells[[2]int{7, 5}])

	assert.ErrorIs(t, l.DrawFoods(failingCanvas{}), errCanvasClosed)
}

func TestDrawFoodsKeepsWideGlyphOffBorder(t *testing.T) {
	// Interior x spans 2..6; the right border starts at 7.
	l := New(5, 3, seeded(1))
	canvas := &recordingCanvas{}
	require.NoError(t, l.Generate(canvas))

	l.AddFood(NewFood(Cherry, core.Pos(6, 2)))
	l.AddFood(NewFood(Mouse, core.Pos(5, 1)))
	require.NoError(t, l.DrawFoods(canvas))

	cells := replay(canvas.frames[1])
	assert.Equal(t, 'c', cells[[2]int{6, 2}].glyph)
	assert.Equal(t, '🐁', cells[[2]int{5, 1}].glyph)
	assert.Equal(t, core.RGB{R: 255}, cells[[2]int{6, 2}].fg)
}
