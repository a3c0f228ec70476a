package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-decay-gol/model"
	"github.com/sheikhrachel/go-decay-gol/utils"
)

// errQuit stops the run loops when the user asks to exit
var errQuit = errors.New("quit requested")

type command int

const (
	cmdQuit command = iota
	cmdTogglePause
	cmdStep
	cmdRedraw
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	alivePath := flag.String("alive", "", "path to the initial alive cells file (overrides alive_file)")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			logger.Fatalf("Configuration error: %v", err)
		}
		logger.Printf("Using default configuration (%s not found)", *configPath)
		config = utils.DefaultConfig()
	}
	if *alivePath != "" {
		config.AliveFile = *alivePath
	}
	if err := config.Validate(); err != nil {
		logger.Fatalf("Configuration error: %v", err)
	}

	g, restoreLog, err := startGame(config, logger)
	if err != nil {
		logger.Fatalf("Configuration error: %v", err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.Headless {
		err = runHeadless(ctx, g)
	} else {
		err = runTerminal(ctx, g)
	}
	restoreLog()
	if err != nil && !errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Simulation error: %v", err)
	}
	logger.Print(g.summary(time.Now()))
}

// runHeadless ticks at the configured interval until max_ticks or a signal
func runHeadless(ctx context.Context, g *game) error {
	ticker := time.NewTicker(g.config.TickInterval.Std())
	defer ticker.Stop()

	for !g.done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			g.step(now)
		}
	}
	return nil
}

// runTerminal renders to the terminal; the frame loop is the only goroutine touching the grid
func runTerminal(ctx context.Context, g *game) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runTerminal] failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "[runTerminal] failed to initialize screen")
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()

	renderer := model.NewTerminalRenderer(screen)
	commands := make(chan command, 16)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return pollInput(ctx, screen, commands)
	})
	eg.Go(func() error {
		// PollEvent only returns once the screen is finalized
		defer fini()
		return frameLoop(ctx, g, renderer, commands)
	})
	return eg.Wait()
}

// pollInput translates terminal events into commands until the screen is finalized
func pollInput(ctx context.Context, screen tcell.Screen, commands chan<- command) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		var cmd command
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				cmd = cmdQuit
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				cmd = cmdQuit
			case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
				cmd = cmdTogglePause
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
				cmd = cmdStep
			default:
				continue
			}
		case *tcell.EventResize:
			screen.Sync()
			cmd = cmdRedraw
		default:
			continue
		}

		select {
		case commands <- cmd:
		case <-ctx.Done():
			return nil
		}
	}
}

// frameLoop polls at frame_rate and runs a tick whenever the tick timer allows it
func frameLoop(ctx context.Context, g *game, renderer *model.TerminalRenderer, commands <-chan command) error {
	var (
		ticker = time.NewTicker(g.config.FrameRate.Std())
		timer  = utils.NewTickTimer(g.config.TickInterval.Std())
		paused = false
	)
	defer ticker.Stop()

	redraw := func(now time.Time) {
		renderer.Clear()
		renderer.Display(g.grid)
		renderer.DrawStatus(g.grid, g.statusLine(now, paused))
		renderer.Show()
	}
	advance := func(now time.Time) {
		result, restarted := g.step(now)
		if restarted {
			redraw(now)
			return
		}
		renderer.Apply(result.Changes())
		renderer.DrawStatus(g.grid, g.statusLine(now, paused))
		renderer.Show()
	}

	redraw(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-commands:
			now := time.Now()
			switch cmd {
			case cmdQuit:
				return errQuit
			case cmdTogglePause:
				paused = !paused
				renderer.DrawStatus(g.grid, g.statusLine(now, paused))
				renderer.Show()
			case cmdStep:
				if !paused || g.done() {
					continue
				}
				advance(now)
				if g.done() {
					return errQuit
				}
			case cmdRedraw:
				redraw(now)
			}
		case now := <-ticker.C:
			if paused || !timer.Ready(now) {
				continue
			}
			advance(now)
			if g.done() {
				return errQuit
			}
		}
	}
}
