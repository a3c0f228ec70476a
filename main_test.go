package main

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-decay-gol/model"
	"github.com/sheikhrachel/go-decay-gol/utils"
)

func newTestRenderer(t *testing.T) *model.TerminalRenderer {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)
	return model.NewTerminalRenderer(screen)
}

func runFrameLoop(t *testing.T, g *game, cmds ...command) error {
	t.Helper()
	commands := make(chan command, len(cmds))
	for _, c := range cmds {
		commands <- c
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return frameLoop(ctx, g, newTestRenderer(t), commands)
}

func TestManualStepStopsAtMaxTicks(t *testing.T) {
	config := testConfig(t, "1;1\n")
	config.MaxTicks = 1
	config.FrameRate = utils.Duration(time.Hour)
	g, err := initializeGame(config, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	err = runFrameLoop(t, g, cmdTogglePause, cmdStep, cmdStep)
	if !errors.Is(err, errQuit) {
		t.Fatalf("Expected the loop to stop at max_ticks, got %v", err)
	}
	if g.tick != 1 {
		t.Errorf("Expected exactly 1 tick, got %d", g.tick)
	}

	// Stepping a finished game does nothing
	err = runFrameLoop(t, g, cmdTogglePause, cmdStep, cmdQuit)
	if !errors.Is(err, errQuit) {
		t.Fatalf("Expected quit, got %v", err)
	}
	if g.tick != 1 {
		t.Errorf("Expected no step past max_ticks, got %d ticks", g.tick)
	}
}

func TestManualStepOnlyWhilePaused(t *testing.T) {
	config := testConfig(t, "1;1\n")
	config.FrameRate = utils.Duration(time.Hour)
	g, err := initializeGame(config, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	if err := runFrameLoop(t, g, cmdStep, cmdTogglePause, cmdStep, cmdStep, cmdQuit); !errors.Is(err, errQuit) {
		t.Fatalf("Expected quit, got %v", err)
	}
	if g.tick != 2 {
		t.Errorf("Expected 2 paused steps, got %d ticks", g.tick)
	}
}
