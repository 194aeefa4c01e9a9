package icejumper

// Info is the content of the info bar.
type Info struct {
	Name     string
	Score    int
	Level    int
	Lives    int
	TimeLeft int
}

// Renderer receives drawing notifications from the simulator.
// Implementations must not mutate the simulator from these callbacks.
type Renderer interface {
	// DrawLevel is called once when an attempt starts.
	DrawLevel(snap Snapshot)
	// FloesMoved is called after every floe advance.
	FloesMoved(diffs []RowDiff)
	// PlayerMoved is called after the player's position or footing changed.
	PlayerMoved(from, to Position, footing Footing)
	// InfoChanged is called on countdown ticks and score changes.
	InfoChanged(info Info)
}

// NopRenderer discards all notifications. Used for headless runs.
type NopRenderer struct{}

func (NopRenderer) DrawLevel(Snapshot)                      {}
func (NopRenderer) FloesMoved([]RowDiff)                    {}
func (NopRenderer) PlayerMoved(Position, Position, Footing) {}
func (NopRenderer) InfoChanged(Info)                        {}

var _ Renderer = NopRenderer{}
