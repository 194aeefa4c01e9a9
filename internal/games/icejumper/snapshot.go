package icejumper

// Snapshot captures the attempt state for rendering, testing and the autopilot.
type Snapshot struct {
	Level     int
	Layout    Layout
	Rows      []FloeRow
	Player    Player
	TimeLeft  int
	Footing   Footing
	FloeTicks uint64
	Done      bool
	Outcome   Outcome
}

// Snapshot returns a copy of the current attempt state.
func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Level:     s.params.Number,
		Layout:    s.params.Layout,
		Rows:      s.field.Rows(),
		Player:    *s.player,
		TimeLeft:  s.timeLeft,
		Footing:   s.footing,
		FloeTicks: s.floeTicks,
		Done:      s.done,
		Outcome:   s.outcome,
	}
}

// IsSolidAt answers point queries against the captured rows.
func (snap Snapshot) IsSolidAt(row, col int) bool {
	return NewFloeField(snap.Layout.Width, snap.Rows).IsSolidAt(row, col)
}
