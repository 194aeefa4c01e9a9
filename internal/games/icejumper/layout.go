package icejumper

// RowKind classifies a river row.
type RowKind int

const (
	RowBank  RowKind = iota // Static bank, always safe
	RowWater                // Floe-free water between ice rows
	RowIce                  // Oscillating ice row
)

// Layout is the river geometry of one level.
//
// Row 0 is the start bank and row Height-1 the far bank. Interior even rows
// carry floes; odd rows are open water the player jumps over.
type Layout struct {
	Width  int
	Height int
}

// NewLayout returns the geometry for the given level (1-based).
// The river grows by two rows per level.
func NewLayout(level, width, baseHeight int) Layout {
	if level < 1 {
		level = 1
	}
	return Layout{
		Width:  width,
		Height: baseHeight + 2*(level-1),
	}
}

// FloeRows returns the number of ice rows.
func (l Layout) FloeRows() int {
	return (l.Height - 3) / 2
}

// IsBank reports whether row is the start or far bank.
func (l Layout) IsBank(row int) bool {
	return row == 0 || row == l.Height-1
}

// IsFarBank reports whether row is the level goal.
func (l Layout) IsFarBank(row int) bool {
	return row == l.Height-1
}

// Kind classifies a row.
func (l Layout) Kind(row int) RowKind {
	switch {
	case l.IsBank(row):
		return RowBank
	case row%2 == 0:
		return RowIce
	default:
		return RowWater
	}
}

// Contains reports whether (col, row) is on the grid.
func (l Layout) Contains(col, row int) bool {
	return col >= 0 && col < l.Width && row >= 0 && row < l.Height
}

// floeRowIndex maps a river row to its floe row index.
func floeRowIndex(row int) (int, bool) {
	if row < 2 || row%2 != 0 {
		return 0, false
	}
	return row/2 - 1, true
}

// floeRowY maps a floe row index to its river row.
func floeRowY(k int) int {
	return 2 + 2*k
}
