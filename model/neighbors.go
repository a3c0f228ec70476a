package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NeighborCounter fills NeighborCount for every cell from the current IsDead flags
type NeighborCounter struct {
	// Parallel splits the pass into row bands counted concurrently.
	// Counting only reads IsDead and only writes NeighborCount, so the result matches the sequential pass.
	Parallel bool
}

// Count runs one full counting pass over g
func (nc NeighborCounter) Count(g *Grid) {
	if !nc.Parallel || g.height < 2 {
		countRows(g, 0, g.height)
		return
	}

	var (
		eg            errgroup.Group
		numWorkers    = min(runtime.NumCPU(), g.height)
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			countRows(g, startRow, endRow)
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()
}

func countRows(g *Grid, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			g.cells[y*g.width+x].NeighborCount = uint32(g.CountLivingNeighbors(x, y))
		}
	}
}

// CountLivingNeighbors counts non-dead cells in the clamped Moore window around (x, y)
func (g *Grid) CountLivingNeighbors(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}

	count := 0
	minX, maxX, minY, maxY := g.neighborBounds(x, y)

	for ny := minY; ny <= maxY; ny++ {
		row := g.cells[ny*g.width : (ny+1)*g.width]
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if !row[nx].IsDead {
				count++
			}
		}
	}

	return count
}
