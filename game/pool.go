package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"snake-agent/logging"
	"snake-agent/stats"
)

// Pool runs independent games side by side. Every game has its own agent and
// board; they only share the statistics.
type Pool struct {
	games  []*Game
	stats  *stats.Stats
	logger log.Logger
	mutex  sync.RWMutex
}

// NewPool creates size games from opts. newAgent is called once per game.
// With a fixed seed, game i is seeded with opts.Seed+i.
func NewPool(size int, opts Options, newAgent func() Agent, st *stats.Stats, logger log.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}
	if st == nil {
		st = stats.New(0)
	}
	logger = logging.OrNop(logger)
	pool := &Pool{
		games:  make([]*Game, size),
		stats:  st,
		logger: logger,
	}
	for i := 0; i < size; i++ {
		o := opts
		if o.Seed != 0 {
			o.Seed += uint64(i)
		}
		g, err := New(o, newAgent(), st, log.With(logger, "worker", i))
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		pool.games[i] = g
	}
	return pool, nil
}

// GetGame returns a game from the pool, nil when index is out of range.
func (p *Pool) GetGame(index int) *Game {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if index >= 0 && index < len(p.games) {
		return p.games[index]
	}
	return nil
}

func (p *Pool) Size() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return len(p.games)
}

func (p *Pool) Stats() *stats.Stats {
	return p.stats
}

// HighScore is the best score any game in the pool has seen.
func (p *Pool) HighScore() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	best := 0
	for _, g := range p.games {
		best = max(best, g.HighScore())
	}
	return best
}

// Run spreads maxGames over the pool and plays them concurrently. It returns
// the number of games finished and every error the workers hit.
func (p *Pool) Run(maxGames, maxTurns int) (int, error) {
	p.mutex.RLock()
	games := p.games
	p.mutex.RUnlock()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		played int
		errs   []error
	)
	for i, g := range games {
		quota := maxGames / len(games)
		if i < maxGames%len(games) {
			quota++
		}
		if quota == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, g *Game, quota int) {
			defer wg.Done()
			before := g.GamesPlayed()
			n, err := g.Run(quota, maxTurns)
			mu.Lock()
			defer mu.Unlock()
			played += n - before
			if err != nil {
				errs = append(errs, fmt.Errorf("worker %d: %w", i, err))
			}
		}(i, g, quota)
	}
	wg.Wait()

	_ = level.Info(p.logger).Log("msg", "pool finished", "workers", len(games), "games", played, "high_score", p.HighScore())
	return played, errors.Join(errs...)
}
