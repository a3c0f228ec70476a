package model

// CellState is the per-cell state machine position derived from a Cell's flags
type CellState int

const (
	StateDead CellState = iota
	StateAliveStable
	StateDecaying
)

func (s CellState) String() string {
	switch s {
	case StateDead:
		return "dead"
	case StateAliveStable:
		return "alive"
	case StateDecaying:
		return "decaying"
	}
	return "unknown"
}

// Cell holds the state of one grid position
type Cell struct {
	// DecayingTicksRemaining counts down while the cell decays, within [0, decayTicks]
	DecayingTicksRemaining uint32
	IsDecaying             bool
	IsDead                 bool
	// NeighborCount is only valid after the counting phase of the current tick
	NeighborCount uint32
}

// DeadCell returns an empty position with an exhausted countdown
func DeadCell() Cell {
	return Cell{IsDecaying: true, IsDead: true}
}

// AliveCell returns a freshly spawned, stable cell
func AliveCell(decayTicks uint32) Cell {
	return Cell{DecayingTicksRemaining: decayTicks}
}

// IsAlive reports whether the cell is alive, decaying or not
func (c Cell) IsAlive() bool {
	return !c.IsDead
}

// State maps the cell flags to its state machine position
func (c Cell) State() CellState {
	switch {
	case c.IsDead:
		return StateDead
	case c.IsDecaying:
		return StateDecaying
	default:
		return StateAliveStable
	}
}

// spawn revives the cell as stable with a full countdown
func (c *Cell) spawn(decayTicks uint32) {
	c.IsDead = false
	c.IsDecaying = false
	c.DecayingTicksRemaining = decayTicks
}
