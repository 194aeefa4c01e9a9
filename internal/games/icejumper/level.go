package icejumper

import (
	"fmt"
	"time"
)

// Footing is the player's standing after an evaluation.
type Footing int

const (
	FootingSafe Footing = iota
	FootingDrowned
)

func (f Footing) String() string {
	if f == FootingDrowned {
		return "drowned"
	}
	return "safe"
}

// FailReason says why an attempt failed.
type FailReason int

const (
	FailNone FailReason = iota
	FailDrowned
	FailTimedOut
)

func (r FailReason) String() string {
	switch r {
	case FailDrowned:
		return "drowned"
	case FailTimedOut:
		return "timed out"
	default:
		return "none"
	}
}

// Outcome is the result of a finished level attempt.
type Outcome struct {
	Completed bool
	Bonus     int        // timeLeft² when Completed
	Reason    FailReason // Set when not Completed
	TimeLeft  int
}

// Failed reports whether the attempt was lost.
func (o Outcome) Failed() bool {
	return !o.Completed
}

func (o Outcome) String() string {
	if o.Completed {
		return fmt.Sprintf("completed (+%d)", o.Bonus)
	}
	return fmt.Sprintf("failed (%s)", o.Reason)
}

// LevelParams configures one attempt.
type LevelParams struct {
	Number            int
	Layout            Layout
	TimeBudget        int // Seconds
	FloeInterval      time.Duration
	CountdownInterval time.Duration
}

// Simulator runs a single level attempt.
//
// Input is applied through Move and evaluated immediately. Tick runs every
// floe step that elapsed before the countdown steps. Once the attempt is done every
// further call is a no-op.
type Simulator struct {
	params    LevelParams
	field     *FloeField
	player    *Player
	renderer  Renderer
	floeTimer Cadence
	countdown Cadence
	timeLeft  int
	footing   Footing
	floeTicks uint64
	done      bool
	outcome   Outcome
}

// NewSimulator starts an attempt on the given field. The player is placed
// mid-width on the start bank with a leftward drift, and the renderer
// receives the initial full draw.
func NewSimulator(lp LevelParams, field *FloeField, player *Player, r Renderer) *Simulator {
	if r == nil {
		r = NopRenderer{}
	}
	player.Place(lp.Layout.Width/2, 0, DirLeft)

	s := &Simulator{
		params:    lp,
		field:     field,
		player:    player,
		renderer:  r,
		floeTimer: NewCadence(lp.FloeInterval),
		countdown: NewCadence(lp.CountdownInterval),
		timeLeft:  lp.TimeBudget,
	}
	s.renderer.DrawLevel(s.Snapshot())
	s.renderer.InfoChanged(s.info())
	return s
}

// Move applies a player move and re-evaluates the attempt.
func (s *Simulator) Move(dir Direction) {
	if s.done {
		return
	}
	from := s.player.Position()
	moved := s.player.Move(dir, s.params.Layout)
	s.evaluate()
	if moved {
		s.renderer.PlayerMoved(from, s.player.Position(), s.footing)
	}
}

// Tick advances the simulation clock by dt.
func (s *Simulator) Tick(dt time.Duration) {
	if s.done {
		return
	}

	// Every elapsed floe step runs before any countdown step.
	floeSteps := s.floeTimer.Advance(dt)
	seconds := s.countdown.Advance(dt)

	for i := 0; i < floeSteps; i++ {
		s.advanceFloes()
		if s.done {
			return
		}
	}

	for i := 0; i < seconds; i++ {
		s.timeLeft--
		s.renderer.InfoChanged(s.info())
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			s.finish(Outcome{Reason: FailTimedOut})
			return
		}
	}
}

// Step applies moves in order and then advances the clock by dt.
// It returns the outcome and true once the attempt is over.
func (s *Simulator) Step(dt time.Duration, moves ...Direction) (Outcome, bool) {
	for _, m := range moves {
		s.Move(m)
		if s.done {
			return s.outcome, true
		}
	}
	s.Tick(dt)
	return s.outcome, s.done
}

// advanceFloes moves the ice, carries the player and re-evaluates.
func (s *Simulator) advanceFloes() {
	s.floeTicks++
	s.renderer.FloesMoved(s.field.Advance())

	from := s.player.Position()
	carried := s.player.Carry(s.params.Layout)
	s.evaluate()
	if carried || s.footing == FootingDrowned {
		s.renderer.PlayerMoved(from, s.player.Position(), s.footing)
	}
}

// evaluate applies the bank, drowning and completion rules to the current position.
func (s *Simulator) evaluate() {
	layout := s.params.Layout
	row, col := s.player.Row, s.player.Col

	s.footing = s.FootingAt(row, col)
	switch {
	case layout.IsFarBank(row):
		s.finish(Outcome{Completed: true, Bonus: s.timeLeft * s.timeLeft})
	case s.footing == FootingDrowned:
		s.finish(Outcome{Reason: FailDrowned})
	}
}

// FootingAt classifies a cell: banks are always safe, interior rows are safe
// only on ice.
func (s *Simulator) FootingAt(row, col int) Footing {
	if s.params.Layout.IsBank(row) || s.field.IsSolidAt(row, col) {
		return FootingSafe
	}
	return FootingDrowned
}

// finish ends the attempt.
func (s *Simulator) finish(o Outcome) {
	o.TimeLeft = s.timeLeft
	s.outcome = o
	s.done = true
}

// info builds the info bar content.
func (s *Simulator) info() Info {
	return Info{
		Name:     s.player.Name,
		Score:    s.player.Score,
		Level:    s.params.Number,
		Lives:    s.player.Lives,
		TimeLeft: s.timeLeft,
	}
}

// Done reports whether the attempt is over.
func (s *Simulator) Done() bool {
	return s.done
}

// Outcome returns the attempt outcome. Only meaningful once Done.
func (s *Simulator) Outcome() Outcome {
	return s.outcome
}

// Footing returns the result of the latest evaluation.
func (s *Simulator) Footing() Footing {
	return s.footing
}

// TimeLeft returns the remaining seconds.
func (s *Simulator) TimeLeft() int {
	return s.timeLeft
}

// Layout returns the river geometry.
func (s *Simulator) Layout() Layout {
	return s.params.Layout
}

// IsSolidAt forwards to the floe field.
func (s *Simulator) IsSolidAt(row, col int) bool {
	return s.field.IsSolidAt(row, col)
}
