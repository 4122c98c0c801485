package core

import (
	"fmt"
	"strings"
)

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color in "#rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// WithGreenOffset returns a copy of c with n added to the green channel.
// The channel saturates at 255 (and at 0 for negative n) instead of wrapping.
func (c RGB) WithGreenOffset(n int) RGB {
	c.G = uint8(Clamp(int(c.G)+n, 0, 255))
	return c
}

// ParseRGB parses a "#rrggbb" (or "rrggbb") color string.
func ParseRGB(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
