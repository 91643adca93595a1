package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arkanoid/internal/core"
)

// styleCache keeps one lipgloss style per color seen so far.
type styleCache map[core.Color]lipgloss.Style

func (c styleCache) get(col core.Color) lipgloss.Style {
	if st, ok := c[col]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if !col.IsDefault() {
		st = st.Foreground(lipgloss.Color(col.Hex()))
	}
	c[col] = st
	return st
}

var defaultStyles = styleCache{}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, defaultStyles)
}

func renderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			if start.IsDefault() {
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
	return strings.Repeat(" ", (width-w)/2) + text
}
