package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ice-jumper/internal/core"
	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
)

// Board layout: a three-line info bar above the river.
const (
	infoHeight = 3
	playerRune = '@'
)

// Board draws an attempt into a Screen. It implements icejumper.Renderer and
// updates only the cells reported by the simulator.
type Board struct {
	screen *core.Screen
	layout icejumper.Layout
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{screen: core.NewScreen(0, 0)}
}

// Screen returns the underlying buffer.
func (b *Board) Screen() *core.Screen {
	return b.screen
}

// DrawLevel redraws the whole board for a new attempt.
func (b *Board) DrawLevel(snap icejumper.Snapshot) {
	b.layout = snap.Layout
	b.screen.Resize(snap.Layout.Width, infoHeight+snap.Layout.Height)
	b.screen.Clear()

	rule := strings.Repeat("=", snap.Layout.Width)
	b.screen.DrawText(0, 0, rule)
	b.screen.DrawText(0, 2, rule)

	for row := 0; row < snap.Layout.Height; row++ {
		bg := core.ColorDarkBlue
		if snap.Layout.IsBank(row) {
			bg = core.ColorDarkGreen
		}
		b.screen.FillRect(core.NewRect(0, infoHeight+row, snap.Layout.Width, 1), bg)
	}

	for _, fr := range snap.Rows {
		for _, f := range fr.Floes {
			for i := 0; i < f.Length; i++ {
				b.paint(fr.Row, core.Mod(f.Start+i, snap.Layout.Width), core.ColorCyan)
			}
		}
	}

	b.drawPlayer(snap.Player.Position(), snap.Footing)
}

// FloesMoved repaints the cells that changed between water and ice.
func (b *Board) FloesMoved(diffs []icejumper.RowDiff) {
	for _, d := range diffs {
		for _, col := range d.Water {
			b.paint(d.Row, col, core.ColorDarkBlue)
		}
		for _, col := range d.Ice {
			b.paint(d.Row, col, core.ColorCyan)
		}
	}
}

// PlayerMoved erases the previous glyph and draws the player at the new cell.
func (b *Board) PlayerMoved(from, to icejumper.Position, footing icejumper.Footing) {
	prev := b.screen.GetCell(from.Col, infoHeight+from.Row)
	prev.Rune = ' '
	prev.Fg = core.ColorDefault
	b.screen.SetCell(from.Col, infoHeight+from.Row, prev)

	b.drawPlayer(to, footing)
}

// InfoChanged rewrites the info bar.
func (b *Board) InfoChanged(info icejumper.Info) {
	w := b.screen.Width()
	b.screen.FillRect(core.NewRect(0, 1, w, 1), core.ColorDefault)
	b.screen.DrawText(0, 1, infoLine(info, w))
}

// infoLine formats the info bar for width columns. The name is shortened
// first; a board too narrow for all fields shows only time and lives.
func infoLine(info icejumper.Info, width int) string {
	const prefix = "PLAYER: "
	stats := fmt.Sprintf(" | SCORES: %d | LEVEL: %d | LIVES: %d | TIME: %d",
		info.Score, info.Level, info.Lives, info.TimeLeft)

	room := width - len(prefix) - len(stats)
	if room < 1 {
		return fmt.Sprintf("TIME: %d | LIVES: %d", info.TimeLeft, info.Lives)
	}
	name := []rune(info.Name)
	if len(name) > room {
		name = name[:room]
	}
	return prefix + string(name) + stats
}

func (b *Board) drawPlayer(p icejumper.Position, footing icejumper.Footing) {
	if footing == icejumper.FootingDrowned {
		b.paint(p.Row, p.Col, core.ColorDarkBlue)
	}
	b.screen.DrawTextColor(p.Col, infoHeight+p.Row, string(playerRune), core.ColorRed)
}

// paint sets the background of a river cell. Bank rows keep their colour.
func (b *Board) paint(row, col int, bg core.Color) {
	if b.layout.IsBank(row) {
		return
	}
	b.screen.Paint(col, infoHeight+row, bg)
}

var _ icejumper.Renderer = (*Board)(nil)

// RequiredSize returns the terminal size needed to play every level of p,
// including the help line below the river.
func RequiredSize(p icejumper.Params) (width, height int) {
	l := icejumper.NewLayout(p.LastLevel, p.Width, p.BaseHeight)
	return l.Width, infoHeight + l.Height + 1
}
