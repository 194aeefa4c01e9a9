package icejumper

import (
	"math/rand"
	"reflect"
	"testing"
)

func defaultFloeParams() FloeParams {
	return FloeParams{MinGap: 3, MaxGap: 5, MinLength: 2, MaxLength: 8}
}

func TestGenerateFloesBounds(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		for level := 1; level <= 10; level++ {
			layout := NewLayout(level, 70, 7)
			field := GenerateFloes(rand.New(rand.NewSource(seed)), layout, defaultFloeParams())

			if field.RowCount() != level+1 {
				t.Fatalf("seed %d level %d: expected %d floe rows, got %d", seed, level, level+1, field.RowCount())
			}

			for k, row := range field.Rows() {
				if row.Row != 2+2*k {
					t.Errorf("row %d: expected river row %d, got %d", k, 2+2*k, row.Row)
				}
				for i, f := range row.Floes {
					if f.Start < 0 || f.Start+f.Length-1 > layout.Width-1 {
						t.Errorf("seed %d row %d floe %d out of bounds: %+v", seed, k, i, f)
					}
					if f.Length < 2 || f.Length >= 8 {
						t.Errorf("seed %d row %d floe %d bad length %d", seed, k, i, f.Length)
					}
					if i > 0 {
						prev := row.Floes[i-1]
						if f.Start <= prev.Start+prev.Length-1 {
							t.Errorf("seed %d row %d: floe %d overlaps previous: %+v %+v", seed, k, i, prev, f)
						}
					}
				}
			}
		}
	}
}

func TestGenerateFloesDeterminism(t *testing.T) {
	layout := NewLayout(4, 70, 7)
	f1 := GenerateFloes(rand.New(rand.NewSource(99)), layout, defaultFloeParams())
	f2 := GenerateFloes(rand.New(rand.NewSource(99)), layout, defaultFloeParams())

	if !reflect.DeepEqual(f1.Rows(), f2.Rows()) {
		t.Error("same seed produced different floes")
	}
}

func TestRowDirections(t *testing.T) {
	field := GenerateFloes(rand.New(rand.NewSource(1)), NewLayout(3, 70, 7), defaultFloeParams())
	for k, row := range field.Rows() {
		want := DirRight
		if k%2 == 1 {
			want = DirLeft
		}
		if row.Dir != want {
			t.Errorf("row %d: expected %v, got %v", k, want, row.Dir)
		}
	}
}

func TestAdvancePreservesOccupied(t *testing.T) {
	layout := NewLayout(5, 70, 7)
	field := GenerateFloes(rand.New(rand.NewSource(7)), layout, defaultFloeParams())

	want := make([]int, field.RowCount())
	for k, row := range field.Rows() {
		want[k] = field.Occupied(k)
		total := 0
		for _, f := range row.Floes {
			total += f.Length
		}
		if want[k] != total {
			t.Fatalf("row %d: occupied %d, sum of lengths %d", k, want[k], total)
		}
	}

	for tick := 0; tick < 200; tick++ {
		field.Advance()
		for k := range want {
			if got := field.Occupied(k); got != want[k] {
				t.Fatalf("tick %d row %d: occupied changed from %d to %d", tick, k, want[k], got)
			}
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	field := NewFloeField(10, []FloeRow{
		NewFloeRow(0, Floe{Start: 9, Length: 3}),
		NewFloeRow(1, Floe{Start: 0, Length: 2}),
	})

	diffs := field.Advance()
	rows := field.Rows()

	if rows[0].Floes[0].Start != 0 {
		t.Errorf("right-drifting floe should wrap to 0, got %d", rows[0].Floes[0].Start)
	}
	if rows[1].Floes[0].Start != 9 {
		t.Errorf("left-drifting floe should wrap to 9, got %d", rows[1].Floes[0].Start)
	}

	wantDiffs := []RowDiff{
		{Row: 2, Water: []int{9}, Ice: []int{2}},
		{Row: 4, Water: []int{1}, Ice: []int{9}},
	}
	if !reflect.DeepEqual(diffs, wantDiffs) {
		t.Errorf("diffs = %+v, want %+v", diffs, wantDiffs)
	}

	for _, col := range []int{0, 1, 2} {
		if !field.IsSolidAt(2, col) {
			t.Errorf("row 2 col %d should be ice after wrap", col)
		}
	}
	for _, col := range []int{9, 0} {
		if !field.IsSolidAt(4, col) {
			t.Errorf("row 4 col %d should be ice after wrap", col)
		}
	}
	if field.IsSolidAt(4, 1) {
		t.Error("row 4 col 1 should be water after wrap")
	}
}

func TestIsSolidAt(t *testing.T) {
	field := NewFloeField(70, []FloeRow{
		NewFloeRow(0, Floe{Start: 10, Length: 4}),
		NewFloeRow(1, Floe{Start: 68, Length: 4}),
	})

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"start boundary", 2, 10, true},
		{"end boundary", 2, 13, true},
		{"before start", 2, 9, false},
		{"after end", 2, 14, false},
		{"wrapped tail", 4, 1, true},
		{"wrapped head", 4, 69, true},
		{"past wrapped tail", 4, 2, false},
		{"water row", 3, 10, false},
		{"start bank", 0, 10, false},
		{"outside grid", 2, 70, false},
		{"unknown ice row", 6, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := field.IsSolidAt(tt.row, tt.col); got != tt.want {
				t.Errorf("IsSolidAt(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}
