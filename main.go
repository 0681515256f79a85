package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"snake-agent/ai"
	"snake-agent/config"
	"snake-agent/game"
	"snake-agent/logging"
	"snake-agent/stats"
	"snake-agent/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "snake-agent:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(logging.GlobalLogger())
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("snake-agent", flag.ContinueOnError)
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "decision strategy: astar or reward")
	fs.IntVar(&cfg.Sweeps, "sweeps", cfg.Sweeps, "reward field sweeps per turn")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "board width, walls included")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "board height, walls included")
	fs.IntVar(&cfg.Food, "food", cfg.Food, "food items on the board")
	fs.IntVar(&cfg.Starve, "starve", cfg.Starve, "turns without food before starving, -1 disables")
	fs.DurationVar(&cfg.TurnBudget, "budget", cfg.TurnBudget, "wall-clock budget for one decision")
	fs.DurationVar(&cfg.Speed, "speed", cfg.Speed, "delay between ticks in terminal and raylib modes")
	fs.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "headless, terminal or raylib")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "games to play in headless mode")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "games played concurrently in headless mode")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "turns per game before it is cut short")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time-based")
	fs.StringVar(&cfg.StatsFile, "stats", cfg.StatsFile, "statistics file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn, error or none")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	if cfg.Renderer == config.RendererTerminal {
		// Log lines would garble the terminal view.
		logger = logging.New(os.Stderr, "none")
	}
	logging.SetGlobalLogger(logger)

	strategy, err := ai.NewStrategy(cfg.Strategy, cfg.Sweeps)
	if err != nil {
		return err
	}
	agent := ai.NewAgent(strategy,
		ai.WithLogger(log.With(logger, "component", "agent")),
		ai.WithRedraw(cfg.Renderer != config.RendererHeadless),
	)

	st := stats.New(stats.DefaultGroupSize)
	if err := st.LoadFromFile(cfg.StatsFile); err != nil {
		_ = level.Warn(logger).Log("msg", "stats not loaded", "file", cfg.StatsFile, "err", err)
	}

	var runErr error
	if cfg.Renderer == config.RendererHeadless && cfg.Workers > 1 {
		runErr = playPool(cfg, st, log.With(logger, "component", "pool"), func() game.Agent {
			return ai.NewAgent(strategy, ai.WithLogger(log.With(logger, "component", "agent")))
		})
	} else {
		g, err := game.New(gameOptions(cfg), agent, st, log.With(logger, "component", "game"))
		if err != nil {
			return err
		}
		runErr = play(cfg, g, agent)
	}
	if err := st.SaveToFile(cfg.StatsFile); err != nil {
		_ = level.Error(logger).Log("msg", "stats not saved", "file", cfg.StatsFile, "err", err)
	}
	return runErr
}

func play(cfg config.Config, g *game.Game, agent *ai.Agent) error {
	switch cfg.Renderer {
	case config.RendererTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		others := make([]ai.Strategy, 0, 2)
		for _, name := range []string{ai.StrategyAStar, ai.StrategyReward} {
			s, err := ai.NewStrategy(name, cfg.Sweeps)
			if err != nil {
				return err
			}
			others = append(others, s)
		}
		return ui.NewTerminal(screen, g, agent, cfg.Speed, others...).Run()
	case config.RendererRaylib:
		return ui.RunWindow(g, agent, cfg.Speed)
	default:
		played, err := g.Run(cfg.Games, cfg.MaxTurns)
		if err != nil {
			return err
		}
		printSummary(g.Stats(), g.HighScore(), played)
		return nil
	}
}

func playPool(cfg config.Config, st *stats.Stats, logger log.Logger, newAgent func() game.Agent) error {
	pool, err := game.NewPool(cfg.Workers, gameOptions(cfg), newAgent, st, logger)
	if err != nil {
		return err
	}
	played, err := pool.Run(cfg.Games, cfg.MaxTurns)
	printSummary(st, pool.HighScore(), played)
	return err
}

func gameOptions(cfg config.Config) game.Options {
	return game.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Food:       cfg.Food,
		Starve:     cfg.Starve,
		TurnBudget: cfg.TurnBudget,
		Seed:       cfg.Seed,
	}
}

func printSummary(st *stats.Stats, highScore, played int) {
	lat := st.LatencySummary()
	fmt.Printf("games this run: %d (total %d)\n", played, st.GamesPlayed())
	fmt.Printf("high score this run: %d\n", highScore)
	fmt.Printf("average score: %.2f  median: %.1f  max: %d\n", st.AverageScore(), st.MedianScore(), st.MaxScore())
	fmt.Printf("decision latency: mean %s  p95 %s  max %s over %d turns\n", lat.Mean, lat.P95, lat.Max, lat.Count)
}
