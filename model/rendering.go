package model

import (
	"github.com/gdamore/tcell/v2"
)

const (
	// cellColumns is how many terminal columns one grid cell occupies
	cellColumns = 2
	cellRune    = ' '
)

var (
	DeadColor  = tcell.NewRGBColor(64, 64, 64)
	AliveColor = tcell.NewRGBColor(191, 191, 191)
)

// TerminalRenderer draws a grid onto a tcell screen.
// Grid position (x, y) always maps to screen columns 2x..2x+1 of row y, so changed cells are redrawn in place.
type TerminalRenderer struct {
	screen     tcell.Screen
	deadStyle  tcell.Style
	aliveStyle tcell.Style
	textStyle  tcell.Style
}

// NewTerminalRenderer wraps an initialized screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen:     screen,
		deadStyle:  tcell.StyleDefault.Background(DeadColor),
		aliveStyle: tcell.StyleDefault.Background(AliveColor),
		textStyle:  tcell.StyleDefault,
	}
}

// CellStyle returns the style used for a cell with the given dead flag
func (r *TerminalRenderer) CellStyle(isDead bool) tcell.Style {
	if isDead {
		return r.deadStyle
	}
	return r.aliveStyle
}

func (r *TerminalRenderer) drawCell(x, y int, isDead bool) {
	style := r.CellStyle(isDead)
	for i := range cellColumns {
		r.screen.SetContent(x*cellColumns+i, y, cellRune, nil, style)
	}
}

// Display redraws every cell of the grid
func (r *TerminalRenderer) Display(g *Grid) {
	g.ForEachCoordinate(func(x, y int) {
		r.drawCell(x, y, g.IsDead(x, y))
	})
}

// Apply redraws only the cells that flipped, in order
func (r *TerminalRenderer) Apply(changes []Change) {
	for _, c := range changes {
		r.drawCell(c.X, c.Y, c.IsDead)
	}
}

// DrawStatus writes a line of text on the row below the grid
func (r *TerminalRenderer) DrawStatus(g *Grid, status string) {
	row := g.GetHeight()
	width, _ := r.screen.Size()
	col := 0
	for _, ch := range status {
		if col >= width {
			break
		}
		r.screen.SetContent(col, row, ch, nil, r.textStyle)
		col++
	}
	for ; col < width; col++ {
		r.screen.SetContent(col, row, ' ', nil, r.textStyle)
	}
}

// Show flushes pending drawing to the terminal
func (r *TerminalRenderer) Show() {
	r.screen.Show()
}

// Clear blanks the screen
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}
