package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#e62882", RGB{R: 230, G: 40, B: 130}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
}

func TestWithGreenOffset(t *testing.T) {
	base := RGB{R: 230, G: 40, B: 130}

	assert.Equal(t, RGB{R: 230, G: 70, B: 130}, base.WithGreenOffset(30))
	assert.Equal(t, RGB{R: 230, G: 255, B: 130}, base.WithGreenOffset(216))
	assert.Equal(t, RGB{R: 230, G: 255, B: 130}, base.WithGreenOffset(10000))
	assert.Equal(t, RGB{R: 230, G: 0, B: 130}, base.WithGreenOffset(-100))
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("#0a6478")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 10, G: 100, B: 120}, c)

	c, err = ParseRGB("E62882")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 230, G: 40, B: 130}, c)

	for _, bad := range []string{"", "#fff", "#gg0000", "#12345"} {
		_, err := ParseRGB(bad)
		assert.Error(t, err, "ParseRGB(%q) should fail", bad)
	}
}

// Property: ParseRGB(c.Hex()) == c for every color.
func TestPropertyHexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := RGB{
			R: rapid.Uint8().Draw(t, "r"),
			G: rapid.Uint8().Draw(t, "g"),
			B: rapid.Uint8().Draw(t, "b"),
		}
		parsed, err := ParseRGB(c.Hex())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	})
}

// Property: the green offset never wraps and never touches red or blue.
func TestPropertyGreenOffsetSaturates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := RGB{
			R: rapid.Uint8().Draw(t, "r"),
			G: rapid.Uint8().Draw(t, "g"),
			B: rapid.Uint8().Draw(t, "b"),
		}
		n := rapid.IntRange(0, 100000).Draw(t, "n")
		got := c.WithGreenOffset(n)
		assert.Equal(t, c.R, got.R)
		assert.Equal(t, c.B, got.B)
		assert.GreaterOrEqual(t, got.G, c.G)
		if int(c.G)+n >= 255 {
			assert.Equal(t, uint8(255), got.G)
		} else {
			assert.Equal(t, uint8(int(c.G)+n), got.G)
		}
	})
}
