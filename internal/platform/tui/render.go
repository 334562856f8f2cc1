package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// sky is shared by every cell so the scene reads as one backdrop.
var sky = lipgloss.Color("117")

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorSky:     lipgloss.NewStyle().Background(sky),
	core.ColorPipe:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Background(sky),
	core.ColorPipeCap: lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Background(sky),
	core.ColorBird:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(sky),
	core.ColorText:    lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(sky).Bold(true),
	core.ColorAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Background(sky).Bold(true),
	core.ColorButton:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("34")).Bold(true),
}

// helpStyle renders the key help line under the playfield.
var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
