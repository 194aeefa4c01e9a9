package icejumper

import (
	"context"
	"testing"
	"time"
)

func TestAutopilotCrossesWideFloes(t *testing.T) {
	sim, _ := newTestSim(nil, wideRows()...)
	ap := NewAutopilot(sim)

	o, err := Run(context.Background(), sim, ap, NewManualClock(time.Unix(0, 0)), 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !o.Completed {
		t.Fatalf("autopilot should cross, got %v", o)
	}
	if ap.Hops() != 3 {
		t.Errorf("hops = %d, want 3", ap.Hops())
	}
}

func TestAutopilotWaitsForIce(t *testing.T) {
	sim, _ := newTestSim(nil, NewFloeRow(0, Floe{Start: 40, Length: 5}), NewFloeRow(1))
	ap := NewAutopilot(sim)

	if _, ok := ap.Poll(); ok {
		t.Error("autopilot must not hop into water")
	}
}

func TestAutopilotNeverHopsIntoWater(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 30; seed++ {
		s := NewSession(p, "bot", seed)
		sim := s.NewAttempt(nil)
		ap := NewAutopilot(sim)

		for frame := 0; frame < 2000 && !sim.Done(); frame++ {
			if dir, ok := ap.Poll(); ok {
				sim.Move(dir)
				if sim.Footing() == FootingDrowned {
					t.Fatalf("seed %d frame %d: autopilot hopped into water", seed, frame)
				}
			}
			sim.Tick(10 * time.Millisecond)
		}
	}
}

func TestSafeHopAtEdge(t *testing.T) {
	tests := []struct {
		name string
		floe Floe
		want bool
	}{
		{"floe wraps under the player", Floe{Start: 68, Length: 2}, true},
		{"floe leaves the border", Floe{Start: 69, Length: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, p := newTestSim(nil, NewFloeRow(0, tt.floe), NewFloeRow(1))
			p.Place(69, 0, DirLeft)
			if got := SafeHop(sim.Snapshot()); got != tt.want {
				t.Errorf("SafeHop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafeHopFarBank(t *testing.T) {
	sim, p := newTestSim(nil, NewFloeRow(0), NewFloeRow(1))
	p.Place(10, 4, DirLeft)
	if !SafeHop(sim.Snapshot()) {
		t.Error("the far bank is always a safe landing")
	}
}
