package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ice-jumper/internal/core"
)

// palette maps core.Color to terminal colours.
var palette = map[core.Color]lipgloss.Color{
	core.ColorBlack:      lipgloss.Color("0"),
	core.ColorRed:        lipgloss.Color("1"),
	core.ColorGreen:      lipgloss.Color("2"),
	core.ColorYellow:     lipgloss.Color("3"),
	core.ColorBlue:       lipgloss.Color("4"),
	core.ColorCyan:       lipgloss.Color("6"),
	core.ColorWhite:      lipgloss.Color("7"),
	core.ColorBrightRed:  lipgloss.Color("9"),
	core.ColorBrightCyan: lipgloss.Color("14"),
	core.ColorDarkBlue:   lipgloss.Color("18"),
	core.ColorDarkGreen:  lipgloss.Color("22"),
	core.ColorGray:       lipgloss.Color("245"),
}

// cellStyle returns the lipgloss style for a foreground/background pair.
func cellStyle(fg, bg core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := palette[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)

			// Collect consecutive cells with the same colours
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != first.Fg || cell.Bg != first.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if first.Fg == core.ColorDefault && first.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(first.Fg, first.Bg).Render(run.String()))
		}
	}
	return sb.String()
}

// Prompt styles, coloured like the in-game messages.
var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorGreen])
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorRed])
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorYellow])
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	rankStyle    = lipgloss.NewStyle().Background(palette[core.ColorRed]).Foreground(palette[core.ColorWhite])
)

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// prompt renders lines centered in a box of the given size.
func prompt(width, height int, lines ...string) string {
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
