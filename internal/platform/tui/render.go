package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-world/internal/core"
)

type cellStyle struct {
	fg, bg core.RGB
	styled bool
}

// styleCache maps cell colors to lipgloss styles for one render pass.
type styleCache map[cellStyle]lipgloss.Style

func (c styleCache) get(k cellStyle) lipgloss.Style {
	if st, ok := c[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if k.styled {
		st = st.
			Foreground(lipgloss.Color(k.fg.Hex())).
			Background(lipgloss.Color(k.bg.Hex()))
	}
	c[k] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
// Continuation cells of wide glyphs (rune 0) are skipped.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(styleCache)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellStyle{fg: cell.Fg, bg: cell.Bg, styled: cell.Styled}

			// Collect consecutive cells with same colors
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellStyle{fg: cell.Fg, bg: cell.Bg, styled: cell.Styled}) != start {
					break
				}
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			if !start.styled {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
