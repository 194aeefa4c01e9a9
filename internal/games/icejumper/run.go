package icejumper

import (
	"context"
	"time"
)

// InputSource supplies at most one move per poll without blocking.
type InputSource interface {
	Poll() (Direction, bool)
}

// Clock abstracts wall time so the loop can run headless.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// ManualClock only moves when slept on or advanced.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time        { return c.now }
func (c *ManualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Run drives one attempt until it is over or ctx is cancelled.
//
// Each iteration polls input once, measures the time since the previous
// iteration, ticks the simulator and sleeps for one frame. Frames longer than
// the floe interval run several floe steps per tick.
func Run(ctx context.Context, sim *Simulator, in InputSource, clk Clock, frame time.Duration) (Outcome, error) {
	last := clk.Now()
	for !sim.Done() {
		if err := ctx.Err(); err != nil {
			return sim.Outcome(), err
		}

		if dir, ok := in.Poll(); ok {
			sim.Move(dir)
			if sim.Done() {
				break
			}
		}

		now := clk.Now()
		sim.Tick(now.Sub(last))
		last = now

		clk.Sleep(frame)
	}
	return sim.Outcome(), nil
}

// NoInput never produces a move.
type NoInput struct{}

func (NoInput) Poll() (Direction, bool) { return 0, false }

// ScriptedInput replays a fixed list of moves, one per poll.
type ScriptedInput struct {
	Moves []Direction
}

func (s *ScriptedInput) Poll() (Direction, bool) {
	if len(s.Moves) == 0 {
		return 0, false
	}
	d := s.Moves[0]
	s.Moves = s.Moves[1:]
	return d, true
}
