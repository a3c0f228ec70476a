package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-decay-gol/rules"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration that decodes from either a string ("100ms") or integer nanoseconds
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration.UnmarshalJSON] failed to parse %q", s)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := json.Unmarshal(data, &ns); err != nil {
		return errors.Wrapf(err, "[Duration.UnmarshalJSON] expected string or integer, got %s", data)
	}
	*d = Duration(ns)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns d as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the configuration for the simulation and its host
type Config struct {
	Width               int      `json:"width"`
	Height              int      `json:"height"`
	TickInterval        Duration `json:"tick_interval"`
	FrameRate           Duration `json:"frame_rate"`
	DecayTicks          uint32   `json:"decay_ticks"`
	RuleSet             string   `json:"rule_set"`
	AliveFile           string   `json:"alive_file"`
	UseParallel         bool     `json:"use_parallel"`
	UseMemoryPool       bool     `json:"use_memory_pool"`
	AutoRestart         bool     `json:"auto_restart"`
	StagnationThreshold int      `json:"stagnation_threshold"`
	MaxTicks            int      `json:"max_ticks"`
	Headless            bool     `json:"headless"`
	LogFile             string   `json:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               100,
		Height:              60,
		TickInterval:        Duration(100 * time.Millisecond),
		FrameRate:           Duration(16 * time.Millisecond),
		DecayTicks:          10,
		RuleSet:             "standard",
		AliveFile:           "alive.csv",
		UseParallel:         false,
		UseMemoryPool:       true,
		AutoRestart:         false,
		StagnationThreshold: 5,
		MaxTicks:            0,
		Headless:            false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the simulation cannot start with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] board must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] tick_interval must be positive, got %s", c.TickInterval.Std())
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame_rate must be positive, got %s", c.FrameRate.Std())
	case c.DecayTicks == 0:
		return errors.Wrap(ErrInvalidConfig, "[Validate] decay_ticks must be at least 1")
	case c.StagnationThreshold < 0 || c.MaxTicks < 0:
		return errors.Wrap(ErrInvalidConfig, "[Validate] stagnation_threshold and max_ticks must not be negative")
	}

	if _, err := rules.ByName(c.RuleSet); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// Rules resolves the configured rule set
func (c Config) Rules() (rules.RuleSet, error) {
	return rules.ByName(c.RuleSet)
}
