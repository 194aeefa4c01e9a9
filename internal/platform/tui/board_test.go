package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ice-jumper/internal/core"
	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
)

func newBoardSim(b *Board) *icejumper.Simulator {
	lp := icejumper.LevelParams{
		Number:            1,
		Layout:            icejumper.NewLayout(1, 20, 7),
		TimeBudget:        15,
		FloeInterval:      100 * time.Millisecond,
		CountdownInterval: time.Second,
	}
	field := icejumper.NewFloeField(20, []icejumper.FloeRow{
		icejumper.NewFloeRow(0, icejumper.Floe{Start: 8, Length: 4}),
		icejumper.NewFloeRow(1, icejumper.Floe{Start: 0, Length: 3}),
	})
	p := &icejumper.Player{Name: "ALICE", Lives: 3}
	return icejumper.NewSimulator(lp, field, p, b)
}

func TestBoardDrawLevel(t *testing.T) {
	b := NewBoard()
	newBoardSim(b)
	s := b.Screen()

	if s.Width() != 20 || s.Height() != infoHeight+7 {
		t.Fatalf("board size = %dx%d, want 20x%d", s.Width(), s.Height(), infoHeight+7)
	}

	tests := []struct {
		name     string
		col, row int
		want     core.Color
	}{
		{"start bank", 0, 0, core.ColorDarkGreen},
		{"far bank", 5, 6, core.ColorDarkGreen},
		{"water row", 5, 1, core.ColorDarkBlue},
		{"floe", 8, 2, core.ColorCyan},
		{"floe end", 11, 2, core.ColorCyan},
		{"gap", 12, 2, core.ColorDarkBlue},
		{"second row floe", 2, 4, core.ColorCyan},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.col, infoHeight+tt.row).Bg; got != tt.want {
			t.Errorf("%s: bg = %v, want %v", tt.name, got, tt.want)
		}
	}

	if got := s.Get(10, infoHeight); got != playerRune {
		t.Errorf("player glyph = %q, want %q", got, playerRune)
	}
	if !strings.Contains(s.Row(1), "TIME: 15") {
		t.Errorf("info bar = %q", s.Row(1))
	}
}

func TestBoardFollowsSimulation(t *testing.T) {
	b := NewBoard()
	sim := newBoardSim(b)
	s := b.Screen()

	sim.Move(icejumper.DirDown)
	if s.Get(10, infoHeight) == playerRune {
		t.Error("old player glyph should be erased")
	}
	if s.Get(10, infoHeight+2) != playerRune {
		t.Error("player glyph should be on the floe")
	}

	sim.Tick(100 * time.Millisecond)
	if s.GetCell(8, infoHeight+2).Bg != core.ColorDarkBlue || s.GetCell(12, infoHeight+2).Bg != core.ColorCyan {
		t.Error("floe should have moved one column right")
	}
	if s.Get(11, infoHeight+2) != playerRune {
		t.Error("player should ride the floe")
	}

	sim.Tick(time.Second)
	if !strings.Contains(s.Row(1), "TIME: 14") {
		t.Errorf("info bar = %q", s.Row(1))
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 1)
	s.DrawText(0, 0, "hello")
	if got := RenderScreen(s); got != "hello" {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func TestRequiredSize(t *testing.T) {
	w, h := RequiredSize(icejumper.DefaultParams())
	if w != 70 || h != infoHeight+25+1 {
		t.Errorf("RequiredSize = %dx%d, want 70x%d", w, h, infoHeight+26)
	}
}

func TestInfoLineFitsWidth(t *testing.T) {
	long := strings.Repeat("A", 20)

	tests := []struct {
		name  string
		info  icejumper.Info
		width int
		want  string
	}{
		{
			name:  "short name",
			info:  icejumper.Info{Name: "ALICE", Score: 40, Level: 2, Lives: 3, TimeLeft: 15},
			width: 70,
			want:  "PLAYER: ALICE | SCORES: 40 | LEVEL: 2 | LIVES: 3 | TIME: 15",
		},
		{
			name:  "long name is shortened",
			info:  icejumper.Info{Name: long, Score: 1234, Level: 10, Lives: 3, TimeLeft: 15},
			width: 70,
			want:  "PLAYER: " + long[:13] + " | SCORES: 1234 | LEVEL: 10 | LIVES: 3 | TIME: 15",
		},
		{
			name:  "narrow board",
			info:  icejumper.Info{Name: "ALICE", Score: 40, Level: 1, Lives: 2, TimeLeft: 9},
			width: 20,
			want:  "TIME: 9 | LIVES: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := infoLine(tt.info, tt.width)
			if got != tt.want {
				t.Errorf("infoLine = %q, want %q", got, tt.want)
			}
			if len(got) > tt.width {
				t.Errorf("infoLine is %d wide, board is %d", len(got), tt.width)
			}
		})
	}
}
