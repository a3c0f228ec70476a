package model

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)
	return screen
}

func styleAt(screen tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := screen.GetContent(x, y)
	return style
}

func TestDisplayMapsCellsToColumns(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen)

	g := NewGrid(3, 3, 5)
	_ = g.Seed([]Coord{{1, 1}, {2, 0}})
	r.Display(g)

	tests := []struct {
		name   string
		x, y   int
		isDead bool
	}{
		{"Dead origin left column", 0, 0, true},
		{"Dead origin right column", 1, 0, true},
		{"Alive (2,0) left column", 4, 0, false},
		{"Alive (2,0) right column", 5, 0, false},
		{"Alive (1,1)", 2, 1, false},
		{"Dead (1,2)", 3, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styleAt(screen, tt.x, tt.y); got != r.CellStyle(tt.isDead) {
				t.Errorf("Expected style for dead=%v at screen (%d, %d)", tt.isDead, tt.x, tt.y)
			}
		})
	}
}

func TestApplyRedrawsOnlyChangedCells(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen)

	g := NewGrid(3, 3, 5)
	r.Display(g)

	r.Apply([]Change{
		{Coord: Coord{0, 0}, IsDead: false},
		{Coord: Coord{2, 2}, IsDead: false},
		{Coord: Coord{2, 2}, IsDead: true},
	})

	if styleAt(screen, 0, 0) != r.CellStyle(false) {
		t.Error("Expected (0, 0) drawn alive")
	}
	if styleAt(screen, 4, 2) != r.CellStyle(true) {
		t.Error("Expected the last change for (2, 2) to win")
	}
	if styleAt(screen, 2, 1) != r.CellStyle(true) {
		t.Error("Expected untouched cell to stay dead")
	}
}

func TestDrawStatusBelowGrid(t *testing.T) {
	screen := newTestScreen(t)
	r := NewTerminalRenderer(screen)

	g := NewGrid(3, 3, 5)
	r.DrawStatus(g, "Tick: 1")

	want := "Tick: 1"
	for i, ch := range want {
		got, _, _, _ := screen.GetContent(i, g.GetHeight())
		if got != ch {
			t.Errorf("Expected %q at column %d, got %q", ch, i, got)
		}
	}
	if got, _, _, _ := screen.GetContent(len(want), g.GetHeight()); got != ' ' {
		t.Errorf("Expected the rest of the row cleared, got %q", got)
	}
}

func TestCellStyleColors(t *testing.T) {
	r := NewTerminalRenderer(tcell.NewSimulationScreen("UTF-8"))
	_, deadBg, _ := r.CellStyle(true).Decompose()
	_, aliveBg, _ := r.CellStyle(false).Decompose()
	if deadBg != DeadColor || aliveBg != AliveColor {
		t.Errorf("Expected dead %v and alive %v backgrounds, got %v and %v", DeadColor, AliveColor, deadBg, aliveBg)
	}
}
