package icejumper

import (
	"math/rand"

	"github.com/vovakirdan/ice-jumper/internal/core"
)

// FloeParams bounds the random floe layout. Max values are exclusive.
type FloeParams struct {
	MinGap    int
	MaxGap    int
	MinLength int
	MaxLength int
}

// Floe is a single ice floe. It occupies [Start, Start+Length-1] modulo the
// river width, so after wrapping it may span both edges.
type Floe struct {
	Start  int
	Length int
	Row    int // River row
}

// Covers reports whether the floe occupies col on a river of the given width.
// Both end columns count as covered.
func (f Floe) Covers(col, width int) bool {
	return core.Mod(col-f.Start, width) < f.Length
}

// End returns the last occupied column.
func (f Floe) End(width int) int {
	return core.Mod(f.Start+f.Length-1, width)
}

// FloeRow is the ordered set of floes sharing one ice row and drift direction.
type FloeRow struct {
	Row   int // River row
	Dir   Direction
	Floes []Floe
}

// NewFloeRow builds floe row k from (start, length) pairs.
func NewFloeRow(k int, floes ...Floe) FloeRow {
	row := FloeRow{Row: floeRowY(k), Dir: rowDirection(k)}
	for _, f := range floes {
		f.Row = row.Row
		row.Floes = append(row.Floes, f)
	}
	return row
}

// RowDiff lists the cells of one river row that changed on an advance.
type RowDiff struct {
	Row   int
	Water []int // Columns that became water
	Ice   []int // Columns that became ice
}

// FloeField owns the floes of all ice rows for one level attempt.
type FloeField struct {
	width int
	rows  []FloeRow
}

// NewFloeField creates a field from explicit rows.
func NewFloeField(width int, rows []FloeRow) *FloeField {
	return &FloeField{width: width, rows: rows}
}

// GenerateFloes lays out floes greedily from left to right for every ice row.
// Gaps and lengths are drawn from p; a row stops once the next floe would
// reach the last column.
func GenerateFloes(rng *rand.Rand, layout Layout, p FloeParams) *FloeField {
	rows := make([]FloeRow, layout.FloeRows())
	for k := range rows {
		rows[k] = FloeRow{Row: floeRowY(k), Dir: rowDirection(k)}

		cursor := 0
		for cursor < layout.Width-1 {
			start := cursor + p.MinGap + rng.Intn(p.MaxGap-p.MinGap)
			length := p.MinLength + rng.Intn(p.MaxLength-p.MinLength)
			if start+length > layout.Width-1 {
				break
			}
			rows[k].Floes = append(rows[k].Floes, Floe{Start: start, Length: length, Row: rows[k].Row})
			cursor = start + length - 1
		}
	}
	return &FloeField{width: layout.Width, rows: rows}
}

// Width returns the river width.
func (f *FloeField) Width() int {
	return f.width
}

// RowCount returns the number of ice rows.
func (f *FloeField) RowCount() int {
	return len(f.rows)
}

// Rows returns a deep copy of all rows.
func (f *FloeField) Rows() []FloeRow {
	out := make([]FloeRow, len(f.rows))
	for k, r := range f.rows {
		out[k] = FloeRow{Row: r.Row, Dir: r.Dir, Floes: append([]Floe(nil), r.Floes...)}
	}
	return out
}

// Advance shifts every floe one column in its row's direction, wrapping at
// the edges, and returns the changed cells per row.
func (f *FloeField) Advance() []RowDiff {
	diffs := make([]RowDiff, 0, len(f.rows))
	for k := range f.rows {
		row := &f.rows[k]
		diff := RowDiff{Row: row.Row}
		for i := range row.Floes {
			fl := &row.Floes[i]
			if row.Dir == DirRight {
				diff.Water = append(diff.Water, fl.Start)
				diff.Ice = append(diff.Ice, core.Mod(fl.Start+fl.Length, f.width))
				if fl.Start == f.width-1 {
					fl.Start = 0
				} else {
					fl.Start++
				}
			} else {
				diff.Water = append(diff.Water, fl.End(f.width))
				diff.Ice = append(diff.Ice, core.Mod(fl.Start-1, f.width))
				if fl.Start == 0 {
					fl.Start = f.width - 1
				} else {
					fl.Start--
				}
			}
		}
		diffs = append(diffs, diff)
	}
	return diffs
}

// IsSolidAt reports whether the river cell (row, col) is covered by ice.
// Bank and water rows are never solid.
func (f *FloeField) IsSolidAt(row, col int) bool {
	k, ok := floeRowIndex(row)
	if !ok || k >= len(f.rows) || col < 0 || col >= f.width {
		return false
	}
	for _, fl := range f.rows[k].Floes {
		if fl.Covers(col, f.width) {
			return true
		}
	}
	return false
}

// Occupied returns the number of columns covered in floe row k.
func (f *FloeField) Occupied(k int) int {
	if k < 0 || k >= len(f.rows) {
		return 0
	}
	n := 0
	for col := 0; col < f.width; col++ {
		if f.IsSolidAt(f.rows[k].Row, col) {
			n++
		}
	}
	return n
}
