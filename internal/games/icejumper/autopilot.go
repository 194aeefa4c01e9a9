package icejumper

import "github.com/vovakirdan/ice-jumper/internal/core"

// Autopilot is an InputSource that plays a simulator on its own.
//
// It hops down when the far bank is next, or when both the landing cell and
// the cell it would be carried to on the next floe tick are ice. Otherwise it
// waits.
type Autopilot struct {
	sim   *Simulator
	hops  int
	polls int
}

// NewAutopilot attaches an autopilot to sim.
func NewAutopilot(sim *Simulator) *Autopilot {
	return &Autopilot{sim: sim}
}

// Poll returns DirDown when a hop is safe.
func (a *Autopilot) Poll() (Direction, bool) {
	a.polls++
	if a.sim.Done() {
		return 0, false
	}
	if !SafeHop(a.sim.Snapshot()) {
		return 0, false
	}
	a.hops++
	return DirDown, true
}

// Hops returns the number of hops issued.
func (a *Autopilot) Hops() int {
	return a.hops
}

// SafeHop reports whether hopping down from the captured state lands on ice
// that still holds the player after the next floe advance.
func SafeHop(snap Snapshot) bool {
	l := snap.Layout
	p := snap.Player
	target := p.Row + 2
	if target > l.Height-1 {
		return false
	}
	if l.IsFarBank(target) {
		return true
	}

	field := NewFloeField(l.Width, snap.Rows)
	if !field.IsSolidAt(target, p.Col) {
		return false
	}

	drift := p.Drift.Flip()
	next := core.Clamp(p.Col+drift.dx(), 0, l.Width-1)
	field.Advance()
	return field.IsSolidAt(target, next)
}
