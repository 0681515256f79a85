// Package config loads runtime settings from an optional .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"

	"snake-agent/ai"
	"snake-agent/game/types"
)

// Renderer names.
const (
	RendererHeadless = "headless"
	RendererTerminal = "terminal"
	RendererRaylib   = "raylib"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the application's configuration values.
type Config struct {
	Strategy   string        // decision strategy, ai.StrategyAStar or ai.StrategyReward
	Sweeps     int           // reward field sweeps per turn
	Width      int           // board width, walls included
	Height     int           // board height, walls included
	Food       int           // food items kept on the board
	Starve     int           // turns without food before starving, types.NoStarvation disables
	TurnBudget time.Duration // wall-clock budget for one decision
	Speed      time.Duration // delay between ticks in interactive modes
	Renderer   string
	Games      int    // games played in headless mode
	Workers    int    // games played concurrently in headless mode
	MaxTurns   int    // turns per game before it is cut short
	Seed       uint64 // 0 picks a time-based seed
	StatsFile  string
	LogLevel   string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Strategy:   ai.StrategyAStar,
		Sweeps:     ai.DefaultSweeps,
		Width:      types.DefaultWidth,
		Height:     types.DefaultHeight,
		Food:       1,
		Starve:     types.NoStarvation,
		TurnBudget: 100 * time.Millisecond,
		Speed:      50 * time.Millisecond,
		Renderer:   RendererHeadless,
		Games:      10,
		Workers:    1,
		MaxTurns:   10000,
		StatsFile:  "data/stats.json",
		LogLevel:   "info",
	}
}

// Load reads the given .env files (".env" when none are named) and overlays
// the environment onto Default. Missing .env files are not an error.
func Load(logger log.Logger, files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && logger != nil {
		_ = level.Info(logger).Log("msg", ".env file not loaded", "err", err)
	}
	return FromEnv()
}

// FromEnv overlays the process environment onto Default.
func FromEnv() (Config, error) {
	c := Default()
	var errs []error
	c.Strategy = getEnvWithDefault("SNAKE_STRATEGY", c.Strategy)
	c.Sweeps = getEnvAsInt("SNAKE_SWEEPS", c.Sweeps, &errs)
	c.Width = getEnvAsInt("SNAKE_WIDTH", c.Width, &errs)
	c.Height = getEnvAsInt("SNAKE_HEIGHT", c.Height, &errs)
	c.Food = getEnvAsInt("SNAKE_FOOD", c.Food, &errs)
	c.Starve = getEnvAsInt("SNAKE_STARVE", c.Starve, &errs)
	c.TurnBudget = getEnvAsDuration("SNAKE_TURN_BUDGET", c.TurnBudget, &errs)
	c.Speed = getEnvAsDuration("SNAKE_SPEED", c.Speed, &errs)
	c.Renderer = getEnvWithDefault("SNAKE_RENDERER", c.Renderer)
	c.Games = getEnvAsInt("SNAKE_GAMES", c.Games, &errs)
	c.Workers = getEnvAsInt("SNAKE_WORKERS", c.Workers, &errs)
	c.MaxTurns = getEnvAsInt("SNAKE_MAX_TURNS", c.MaxTurns, &errs)
	c.Seed = getEnvAsUint64("SNAKE_SEED", c.Seed, &errs)
	c.StatsFile = getEnvWithDefault("SNAKE_STATS_FILE", c.StatsFile)
	c.LogLevel = getEnvWithDefault("LOG_LEVEL", c.LogLevel)
	return c, errors.Join(errs...)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Strategy != ai.StrategyAStar && c.Strategy != ai.StrategyReward:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	case c.Sweeps < 1:
		return fmt.Errorf("%w: sweeps must be positive, got %d", ErrInvalidConfig, c.Sweeps)
	case c.Width < 3 || c.Height < 3:
		return fmt.Errorf("%w: board %dx%d is smaller than 3x3", ErrInvalidConfig, c.Width, c.Height)
	case c.Food < 1:
		return fmt.Errorf("%w: food must be positive, got %d", ErrInvalidConfig, c.Food)
	case c.Starve < 1 && c.Starve != types.NoStarvation:
		return fmt.Errorf("%w: starve must be positive or %d, got %d", ErrInvalidConfig, types.NoStarvation, c.Starve)
	case c.TurnBudget <= 0:
		return fmt.Errorf("%w: turn budget must be positive", ErrInvalidConfig)
	case c.Games < 1 || c.MaxTurns < 1:
		return fmt.Errorf("%w: games and max turns must be positive", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Renderer {
	case RendererHeadless, RendererTerminal, RendererRaylib:
		return nil
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, c.Renderer)
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return n
}

func getEnvAsUint64(key string, defaultValue uint64, errs *[]error) uint64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be an unsigned integer: %v", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return n
}

// getEnvAsDuration accepts Go durations ("150ms") or bare milliseconds ("150").
func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%w: %s must be a duration: %v", ErrInvalidConfig, key, err))
		return defaultValue
	}
	return d
}
