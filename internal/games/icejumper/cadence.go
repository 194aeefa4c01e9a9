package icejumper

import "time"

// Cadence is a periodic timer driven by elapsed time rather than the wall clock.
// Advance reports every whole period that elapsed and keeps the remainder, so
// the period holds under jittery or long frame times.
type Cadence struct {
	period  time.Duration
	elapsed time.Duration
}

// NewCadence creates a cadence with the given period.
func NewCadence(period time.Duration) Cadence {
	return Cadence{period: period}
}

// Advance adds dt and returns how many periods elapsed.
func (c *Cadence) Advance(dt time.Duration) int {
	if c.period <= 0 {
		return 0
	}
	c.elapsed += dt
	n := c.elapsed / c.period
	c.elapsed -= n * c.period
	return int(n)
}

// Period returns the configured period.
func (c Cadence) Period() time.Duration {
	return c.period
}
