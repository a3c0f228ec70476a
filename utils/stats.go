package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	TicksPerSecond    float64
	AveragePopulation float64
	TotalTicks        int
	TotalSpawned      int
	TotalKilled       int
	Restarts          int
	StartTime         time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one completed tick
func (s *Stats) Update(tick, population, spawned, killed int, duration time.Duration) {
	s.TotalTicks = tick
	s.TotalSpawned += spawned
	s.TotalKilled += killed
	if duration > 0 {
		s.TicksPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the wall time since the stats were created
func (s *Stats) Runtime(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}
