package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned for coordinates outside [0,width) x [0,height)
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidCell is returned by Set for a cell whose countdown exceeds the grid's decay duration
	ErrInvalidCell = errors.New("invalid cell state")
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// Coord addresses one grid position
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Grid is a fixed-size board of cells stored row-major in one contiguous slice
type Grid struct {
	width      int
	height     int
	decayTicks uint32
	cells      []Cell
	history    []string // Store recent grid states for cycle detection
}

// NewGrid creates a grid with every cell dead
func NewGrid(width, height int, decayTicks uint32) *Grid {
	g := &Grid{}
	g.Reset(width, height, decayTicks)
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// GetDecayTicks returns how many ticks a cell decays for before dying
func (g *Grid) GetDecayTicks() uint32 {
	return g.decayTicks
}

// Reset resizes the grid and kills every cell
func (g *Grid) Reset(width, height int, decayTicks uint32) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("model: negative grid dimensions %dx%d", width, height))
	}
	g.width = width
	g.height = height
	g.decayTicks = decayTicks

	// Reuse the backing array when it is large enough
	if cap(g.cells) < width*height {
		g.cells = make([]Cell, width*height)
	}
	g.cells = g.cells[:width*height]
	g.Clear()
}

// Clear kills all cells and drops the history
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = DeadCell()
	}
	g.history = nil
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns a copy of the cell at (x, y)
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, errors.Wrapf(ErrOutOfBounds, "[Get] (%d, %d) on %dx%d grid", x, y, g.width, g.height)
	}
	return g.cells[y*g.width+x], nil
}

// Set replaces the cell at (x, y)
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d, %d) on %dx%d grid", x, y, g.width, g.height)
	}
	if c.DecayingTicksRemaining > g.decayTicks {
		return errors.Wrapf(ErrInvalidCell, "[Set] %d ticks remaining exceeds decay duration %d",
			c.DecayingTicksRemaining, g.decayTicks)
	}
	g.cells[y*g.width+x] = c
	return nil
}

// IsDead reports whether the cell at (x, y) is dead; out-of-range positions count as dead
func (g *Grid) IsDead(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[y*g.width+x].IsDead
}

// at returns the cell at (x, y) for in-place mutation.
// Callers inside the engine only pass clamped coordinates, so a miss is a defect.
func (g *Grid) at(x, y int) *Cell {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("model: internal lookup of (%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return &g.cells[y*g.width+x]
}

// ForEachCoordinate visits every coordinate once in row-major order
func (g *Grid) ForEachCoordinate(visit func(x, y int)) {
	for y := range g.height {
		for x := range g.width {
			visit(x, y)
		}
	}
}

// neighborBounds clamps the Moore window around (x, y) to the grid
func (g *Grid) neighborBounds(x, y int) (minX, maxX, minY, maxY int) {
	return max(0, x-1), min(g.width-1, x+1), max(0, y-1), min(g.height-1, y+1)
}

// NeighborCoordinates returns the Moore neighbors of (x, y) that lie on the grid.
// Corners have 3, other edge cells 5 and interior cells 8.
func (g *Grid) NeighborCoordinates(x, y int) []Coord {
	return g.AppendNeighborCoordinates(make([]Coord, 0, 8), x, y)
}

// AppendNeighborCoordinates appends the neighbors of (x, y) to dst
func (g *Grid) AppendNeighborCoordinates(dst []Coord, x, y int) []Coord {
	if !g.InBounds(x, y) {
		return dst
	}
	minX, maxX, minY, maxY := g.neighborBounds(x, y)
	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			dst = append(dst, Coord{X: nx, Y: ny})
		}
	}
	return dst
}

// Seed kills every cell and then brings the listed coordinates to life
func (g *Grid) Seed(alive []Coord) error {
	for _, c := range alive {
		if !g.InBounds(c.X, c.Y) {
			return errors.Wrapf(ErrOutOfBounds, "[Seed] %s on %dx%d grid", c, g.width, g.height)
		}
	}
	g.Clear()
	for _, c := range alive {
		g.cells[c.Y*g.width+c.X] = AliveCell(g.decayTicks)
	}
	return nil
}

// CountLivingCells returns the number of cells that are not dead
func (g *Grid) CountLivingCells() (count int) {
	for i := range g.cells {
		if !g.cells[i].IsDead {
			count++
		}
	}
	return
}

// CountDecayingCells returns the number of living cells counting down
func (g *Grid) CountDecayingCells() (count int) {
	for i := range g.cells {
		if !g.cells[i].IsDead && g.cells[i].IsDecaying {
			count++
		}
	}
	return
}

// GetGridHash returns an MD5 hash of every cell's state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, 0, 6)
	for i := range g.cells {
		c := &g.cells[i]
		buf = buf[:0]
		buf = append(buf, boolByte(c.IsDead), boolByte(c.IsDecaying),
			byte(c.DecayingTicksRemaining>>24), byte(c.DecayingTicksRemaining>>16),
			byte(c.DecayingTicksRemaining>>8), byte(c.DecayingTicksRemaining))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three recorded states
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if g.history[len(g.history)-i] == currentHash {
			return true
		}
	}
	return false
}
