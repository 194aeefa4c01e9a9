// Package icejumper implements the Ice Jumper level simulation: a river of
// oscillating ice floes, a player hopping between them, and the session that
// strings levels together. The package has no terminal dependencies; the
// platform layer drives it through Simulator and renders via Renderer.
package icejumper

// Direction is a player move or the drift of a floe row.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirDown
	DirUp
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Flip swaps Left and Right. Vertical directions are returned unchanged.
func (d Direction) Flip() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// dx returns the column delta of a horizontal direction.
func (d Direction) dx() int {
	switch d {
	case DirRight:
		return 1
	case DirLeft:
		return -1
	default:
		return 0
	}
}

// rowDirection returns the drift of floe row k: even rows drift right, odd rows left.
func rowDirection(k int) Direction {
	if k%2 == 0 {
		return DirRight
	}
	return DirLeft
}
