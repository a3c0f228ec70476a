package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles grid backing arrays across restarts
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves a dead grid with the requested dimensions and decay duration
func (p *GridPool) Get(width, height int, decayTicks uint32) *Grid {
	g := p.pool.Get().(*Grid)
	g.Reset(width, height, decayTicks)
	return g
}

// Put returns a grid to the pool, clearing its state
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}

// NewSeededGrid builds a grid from the pool (or fresh when pool is nil) and seeds it
func NewSeededGrid(pool *GridPool, width, height int, decayTicks uint32, alive []Coord) (*Grid, error) {
	var g *Grid
	if pool != nil {
		g = pool.Get(width, height, decayTicks)
	} else {
		g = NewGrid(width, height, decayTicks)
	}
	if err := g.Seed(alive); err != nil {
		GridToPool(g, pool)
		return nil, err
	}
	return g, nil
}
