package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-decay-gol/model"
	"github.com/sheikhrachel/go-decay-gol/utils"
)

// game owns the grid and everything that advances it; nothing else mutates the grid
type game struct {
	config    utils.Config
	logger    *log.Logger
	pool      *model.GridPool
	grid      *model.Grid
	alive     []model.Coord
	processor *model.TickProcessor
	stats     *utils.Stats

	tick           int
	stagnantCount  int
	lastRestartGen int
	lastTickTime   time.Time
}

// initializeGame loads the seed file and builds the initial grid; any error here is fatal
func initializeGame(config utils.Config, logger *log.Logger) (*game, error) {
	rs, err := config.Rules()
	if err != nil {
		return nil, err
	}

	alive, err := model.LoadAliveFile(config.AliveFile, config.Width, config.Height, logger)
	if err != nil {
		return nil, err
	}

	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	grid, err := model.NewSeededGrid(pool, config.Width, config.Height, config.DecayTicks, alive)
	if err != nil {
		return nil, err
	}

	return &game{
		config:       config,
		logger:       logger,
		pool:         pool,
		grid:         grid,
		alive:        alive,
		processor:    model.NewTickProcessor(rs, model.NeighborCounter{Parallel: config.UseParallel}),
		stats:        utils.NewStats(),
		lastTickTime: time.Now(),
	}, nil
}

// startGame initializes the game, then moves logging into log_file while the terminal UI owns the screen.
// Startup errors are returned before any redirect, so they still reach the original output.
// restore puts the original output back and closes the log file; it is safe to call more than once.
func startGame(config utils.Config, logger *log.Logger) (g *game, restore func(), err error) {
	g, err = initializeGame(config, logger)
	if err != nil {
		return nil, nil, err
	}

	restore = func() {}
	if config.Headless || config.LogFile == "" {
		return g, restore, nil
	}

	f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[startGame] failed to open log file: %s", config.LogFile)
	}

	original := logger.Writer()
	logger.SetOutput(f)
	closed := false
	restore = func() {
		if closed {
			return
		}
		closed = true
		logger.SetOutput(original)
		f.Close()
	}
	return g, restore, nil
}

// step runs one tick and the host bookkeeping around it.
// restarted is true when the grid was replaced and must be redrawn in full.
func (g *game) step(now time.Time) (result model.TickResult, restarted bool) {
	result = g.processor.Tick(g.grid)
	g.tick++

	livingCells := g.grid.CountLivingCells()
	g.stats.Update(g.tick, livingCells, len(result.Spawned), len(result.Killed), now.Sub(g.lastTickTime))
	g.lastTickTime = now

	// Compare against history before recording the current state
	if g.grid.IsStagnant() {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}
	g.grid.UpdateHistory()

	// Reseeding an empty alive set would only reproduce the same extinct board
	if !g.config.AutoRestart || len(g.alive) == 0 {
		return result, false
	}
	shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.config)
	if !shouldRestart {
		return result, false
	}

	g.logger.Printf("Restarting at tick %d due to %s", g.tick, reason)
	g.restart()
	return result, true
}

// checkRestartConditions determines if the board should be reseeded
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restart reseeds the board from the initial alive set
func (g *game) restart() {
	model.GridToPool(g.grid, g.pool)

	// alive was validated against the same dimensions at startup
	grid, err := model.NewSeededGrid(g.pool, g.config.Width, g.config.Height, g.config.DecayTicks, g.alive)
	if err != nil {
		panic(fmt.Sprintf("reseeding validated grid: %v", err))
	}
	g.grid = grid
	g.stagnantCount = 0
	g.lastRestartGen = g.tick
	g.stats.Restarts++
}

// done reports whether the configured tick limit was reached
func (g *game) done() bool {
	return g.config.MaxTicks > 0 && g.tick >= g.config.MaxTicks
}

// statusLine summarizes the current state for the status row
func (g *game) statusLine(now time.Time, paused bool) string {
	living := g.grid.CountLivingCells()
	density := float64(living) / float64(g.grid.GetWidth()*g.grid.GetHeight()) * 100

	status := "Active"
	switch {
	case living == 0:
		status = "Extinct"
	case g.stagnantCount > 0:
		status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	if g.stats.Restarts > 0 {
		status += fmt.Sprintf(" (restart #%d, %d ticks ago)", g.stats.Restarts, g.tick-g.lastRestartGen)
	}
	if paused {
		status += " [paused]"
	}

	return fmt.Sprintf("Tick: %d | Living: %d (decaying %d) | Density: %.1f%% | %s | %.1f ticks/sec | Runtime: %.1fs | q quit, space pause, n step",
		g.tick, living, g.grid.CountDecayingCells(), density, status,
		g.stats.TicksPerSecond, g.stats.Runtime(now).Seconds())
}

// summary is logged when the simulation stops
func (g *game) summary(now time.Time) string {
	return fmt.Sprintf("Final stats: %d ticks in %.1f seconds, %d spawned, %d killed, %d restarts, %.1f avg population",
		g.tick, g.stats.Runtime(now).Seconds(), g.stats.TotalSpawned, g.stats.TotalKilled,
		g.stats.Restarts, g.stats.AveragePopulation)
}
