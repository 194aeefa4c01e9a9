package icejumper

import "github.com/vovakirdan/ice-jumper/internal/core"

// Position is a grid cell.
type Position struct {
	Col, Row int
}

// Player holds everything the session tracks about the player.
type Player struct {
	Name   string
	Lives  int
	Score  int
	Col    int
	Row    int
	Drift  Direction // Direction the player is carried on the next floe tick
	Loaded bool      // Progress was restored from a save
}

// Position returns the player's cell.
func (p Player) Position() Position {
	return Position{Col: p.Col, Row: p.Row}
}

// Place puts the player on a cell with the given drift.
func (p *Player) Place(col, row int, drift Direction) {
	p.Col = col
	p.Row = row
	p.Drift = drift
}

// Move applies a manual move and reports whether the position changed.
// Vertical moves hop two rows and flip the drift; horizontal moves shift one
// column. Moves that would leave the grid are ignored.
func (p *Player) Move(dir Direction, l Layout) bool {
	switch dir {
	case DirDown, DirUp:
		row := p.Row + 2
		if dir == DirUp {
			row = p.Row - 2
		}
		if row < 0 || row > l.Height-1 {
			return false
		}
		p.Row = row
		p.Drift = p.Drift.Flip()
		return true
	case DirLeft, DirRight:
		col := core.Clamp(p.Col+dir.dx(), 0, l.Width-1)
		if col == p.Col {
			return false
		}
		p.Col = col
		return true
	}
	return false
}

// Carry moves the player one column along their drift when standing on an
// interior row. It reports whether the position changed.
func (p *Player) Carry(l Layout) bool {
	if p.Row <= 0 || p.Row >= l.Height-1 {
		return false
	}
	col := core.Clamp(p.Col+p.Drift.dx(), 0, l.Width-1)
	if col == p.Col {
		return false
	}
	p.Col = col
	return true
}
