package core

// Color represents a cell colour in the screen buffer.
// Uses ANSI codes for terminal compatibility.
type Color uint8

// Palette used by the river board and the prompts.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorGray
	ColorDarkGreen
	ColorDarkBlue
	ColorBrightCyan
	ColorBrightRed
)
