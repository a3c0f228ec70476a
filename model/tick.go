package model

import (
	"github.com/sheikhrachel/go-decay-gol/rules"
)

// Change reports a cell whose IsDead flag flipped during a tick
type Change struct {
	Coord
	IsDead bool
}

// TickResult lists the cells that flipped during one tick
type TickResult struct {
	Spawned []Coord // dead -> alive, spawn phase
	Killed  []Coord // alive -> dead, kill phase
}

// Changes returns the flips in phase order: spawns first, then kills.
// A cell may appear twice when it spawns and dies in the same tick; applying in order yields its final state.
func (r TickResult) Changes() []Change {
	changes := make([]Change, 0, len(r.Spawned)+len(r.Killed))
	for _, c := range r.Spawned {
		changes = append(changes, Change{Coord: c, IsDead: false})
	}
	for _, c := range r.Killed {
		changes = append(changes, Change{Coord: c, IsDead: true})
	}
	return changes
}

// Empty reports whether no cell flipped
func (r TickResult) Empty() bool {
	return len(r.Spawned) == 0 && len(r.Killed) == 0
}

// TickProcessor advances a grid by one step using a swappable rule set
type TickProcessor struct {
	rules   rules.RuleSet
	counter NeighborCounter
}

// NewTickProcessor creates a processor; a nil rule set falls back to rules.Standard
func NewTickProcessor(rs rules.RuleSet, counter NeighborCounter) *TickProcessor {
	if rs == nil {
		rs = rules.Standard
	}
	return &TickProcessor{rules: rs, counter: counter}
}

// RuleSet returns the rules the processor applies
func (p *TickProcessor) RuleSet() rules.RuleSet {
	return p.rules
}

/*
Tick runs one step over the whole grid in four strict phases:

 1. count: every cell's NeighborCount is filled from the pre-tick IsDead flags
 2. spawn: dead cells satisfying ShouldSpawn become alive and stable
 3. decay: living stable cells satisfying ShouldDecay start decaying, then every decaying cell loses one tick
 4. kill: decaying cells with no ticks remaining die

Phases 2-4 read only the counts from phase 1. A decaying cell never returns to stable.
*/
func (p *TickProcessor) Tick(g *Grid) TickResult {
	p.counter.Count(g)

	var result TickResult
	result.Spawned = p.spawnCells(g)
	p.decayCells(g)
	result.Killed = p.killCells(g)
	return result
}

func (p *TickProcessor) spawnCells(g *Grid) (spawned []Coord) {
	g.ForEachCoordinate(func(x, y int) {
		cell := g.at(x, y)
		if !cell.IsDead {
			return
		}
		if p.rules.ShouldSpawn(int(cell.NeighborCount)) {
			cell.spawn(g.decayTicks)
			spawned = append(spawned, Coord{X: x, Y: y})
		}
	})
	return
}

func (p *TickProcessor) decayCells(g *Grid) {
	g.ForEachCoordinate(func(x, y int) {
		cell := g.at(x, y)
		if cell.IsDead {
			return
		}
		if !cell.IsDecaying && p.rules.ShouldDecay(int(cell.NeighborCount)) {
			cell.IsDecaying = true
		}
		if cell.IsDecaying && cell.DecayingTicksRemaining > 0 {
			cell.DecayingTicksRemaining--
		}
	})
}

func (p *TickProcessor) killCells(g *Grid) (killed []Coord) {
	g.ForEachCoordinate(func(x, y int) {
		cell := g.at(x, y)
		if cell.IsDead {
			return
		}
		if cell.IsDecaying && cell.DecayingTicksRemaining == 0 {
			cell.IsDead = true
			killed = append(killed, Coord{X: x, Y: y})
		}
	})
	return
}
