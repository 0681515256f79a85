// Package game runs the turn loop around a decision agent: it builds the raw
// board every tick, asks the agent for a move under a wall-clock budget,
// applies it and reincarnates the snake when it dies.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-agent/ai"
	"snake-agent/game/entity"
	"snake-agent/game/manager"
	"snake-agent/game/types"
	"snake-agent/logging"
	"snake-agent/stats"
)

var (
	ErrInvalidDimensions = errors.New("board must be at least 3x3")
	ErrNoSpawnCell       = errors.New("no free cell to spawn on")
)

// Agent is what the game needs from the snake's brain.
type Agent interface {
	GetMove(t ai.Turn) (types.Move, error)
	OnDie(d ai.Death)
	ShouldRedrawBoard() bool
	ShouldGrowOnFoodCollision() bool
}

// Options configures a Game.
type Options struct {
	Width      int
	Height     int
	Food       int
	Starve     int // types.NoStarvation disables starvation
	TurnBudget time.Duration
	Seed       uint64 // 0 picks a time-based seed
}

// StepResult describes one turn.
type StepResult struct {
	Move    types.Move
	Ate     bool
	Dead    bool
	Cause   manager.Cause
	Latency time.Duration
}

type Game struct {
	UUID       string
	Grid       types.Grid
	TurnBudget time.Duration

	agent  Agent
	stats  *stats.Stats
	logger log.Logger

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	popMgr       *manager.PopulationManager
	stateMgr     *manager.StateManager

	gameID      string
	startTime   time.Time
	latencySum  time.Duration
	latencyMax  time.Duration
	decisions   int
	gamesPlayed int
	lastCause   manager.Cause
}

// New builds a game with a ring of walls around the board and spawns the
// first snake.
func New(opts Options, agent Agent, st *stats.Stats, logger log.Logger) (*Game, error) {
	if opts.Width < 3 || opts.Height < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, opts.Width, opts.Height)
	}
	if opts.TurnBudget <= 0 {
		opts.TurnBudget = 100 * time.Millisecond
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if st == nil {
		st = stats.New(0)
	}
	rng := rand.New(rand.NewSource(seed))
	grid := types.Grid{Width: opts.Width, Height: opts.Height}
	collisionMgr := manager.NewCollisionManager(grid, manager.BorderWalls(grid))

	g := &Game{
		UUID:         uuid.NewString(),
		Grid:         grid,
		TurnBudget:   opts.TurnBudget,
		agent:        agent,
		stats:        st,
		logger:       logging.OrNop(logger),
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(opts.Food, rng, collisionMgr),
		popMgr:       manager.NewPopulationManager(rng, collisionMgr),
		stateMgr:     manager.NewStateManager(opts.Starve),
	}
	if err := g.spawn(); err != nil {
		return nil, err
	}
	_ = level.Info(g.logger).Log("msg", "game created", "uuid", g.UUID, "width", grid.Width, "height", grid.Height, "seed", seed)
	return g, nil
}

func (g *Game) spawn() error {
	if !g.popMgr.RemoveDeadSnakes() {
		return fmt.Errorf("%w: %dx%d board", ErrNoSpawnCell, g.Grid.Width, g.Grid.Height)
	}
	snake := g.popMgr.GetSnake()
	g.stateMgr.Reset(snake)
	g.foodMgr.Clear()
	g.foodMgr.Update(snake)

	g.gameID = uuid.NewString()
	g.startTime = time.Now()
	g.latencySum = 0
	g.latencyMax = 0
	g.decisions = 0
	return nil
}

// Board builds the raw snapshot handed to the agent.
func (g *Game) Board() types.Board {
	board := g.deathBoard()
	snake := g.popMgr.GetSnake()
	if snake == nil {
		return board
	}
	for _, p := range snake.Body {
		board[p.X][p.Y] = types.SnakeBody
	}
	head := snake.GetHead()
	board[head.X][head.Y] = types.SnakeHead
	return board
}

// deathBoard holds walls and food only.
func (g *Game) deathBoard() types.Board {
	board := types.NewBoard(g.Grid.Width, g.Grid.Height)
	for _, w := range g.collisionMgr.Walls() {
		board[w.X][w.Y] = types.Wall
	}
	for _, f := range g.foodMgr.GetFoodList() {
		board[f.X][f.Y] = types.Food
	}
	return board
}

// Step plays one turn. A death is recorded and the next snake is spawned
// before Step returns.
func (g *Game) Step() (StepResult, error) {
	snake := g.popMgr.GetSnake()
	turn := ai.Turn{
		Board:         g.Board(),
		Score:         snake.Score,
		TurnsAlive:    snake.TurnsAlive,
		TurnsToStarve: snake.TurnsToStarve,
		Facing:        snake.Facing,
		Head:          snake.GetHead(),
		Body:          snake.BodyParts(),
	}

	start := time.Now()
	m, err := g.agent.GetMove(turn)
	elapsed := time.Since(start)
	g.stats.ObserveLatency(elapsed)
	g.latencySum += elapsed
	g.decisions++
	if elapsed > g.latencyMax {
		g.latencyMax = elapsed
	}

	res := StepResult{Move: m, Latency: elapsed}
	switch {
	case err != nil:
		if !errors.Is(err, ai.ErrNoSafeMove) {
			_ = level.Error(g.logger).Log("msg", "agent failed", "err", err)
		}
		res.Cause = manager.CauseNoMove
	case elapsed > g.TurnBudget:
		_ = level.Warn(g.logger).Log("msg", "turn budget exceeded", "elapsed", elapsed, "budget", g.TurnBudget)
		res.Cause = manager.CauseTimeout
	default:
		res.Ate, res.Cause = g.apply(snake, m)
	}

	if res.Cause != manager.CauseNone {
		res.Dead = true
		if err := g.die(snake, res.Cause); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (g *Game) apply(snake *entity.Snake, m types.Move) (bool, manager.Cause) {
	next := snake.Turn(m)
	ate, food := g.collisionMgr.CheckFoodCollisions(next, g.foodMgr.GetFoodList())
	growing := ate && g.agent.ShouldGrowOnFoodCollision()
	if cause := g.collisionMgr.CheckCollision(next, snake, growing); cause != manager.CauseNone {
		return false, cause
	}

	snake.Move(next)
	if !growing {
		snake.RemoveTail()
	}
	if !ate {
		return false, g.stateMgr.Tick(snake)
	}
	g.foodMgr.RemoveFood(food)
	g.stateMgr.Eat(snake)
	g.foodMgr.Update(snake)
	return true, manager.CauseNone
}

func (g *Game) die(snake *entity.Snake, cause manager.Cause) error {
	snake.Dead = true
	g.lastCause = cause
	g.gamesPlayed++

	g.agent.OnDie(ai.Death{
		Head:  snake.GetHead(),
		Board: g.deathBoard(),
		Score: snake.Score,
		Body:  snake.BodyParts(),
	})

	var avg float64
	if g.decisions > 0 {
		avg = float64(g.latencySum) / float64(g.decisions) / float64(time.Millisecond)
	}
	record := stats.GameRecord{
		GameID:     g.gameID,
		StartTime:  g.startTime,
		EndTime:    time.Now(),
		Score:      snake.Score,
		Turns:      snake.TurnsAlive,
		Cause:      string(cause),
		AvgLatency: avg,
		MaxLatency: float64(g.latencyMax) / float64(time.Millisecond),
	}
	g.stats.AddGame(record)
	g.stateMgr.AddToHistory(snake.Score)

	_ = level.Info(g.logger).Log(
		"msg", "game over",
		"game", g.gameID,
		"cause", string(cause),
		"score", snake.Score,
		"turns", snake.TurnsAlive,
		"high_score", g.stateMgr.GetHighScore(),
	)
	return g.spawn()
}

// EndGame kills the current snake, e.g. when a turn cap is reached.
func (g *Game) EndGame(cause manager.Cause) error {
	return g.die(g.popMgr.GetSnake(), cause)
}

// Run plays until maxGames snakes have died. A snake still alive after
// maxTurns turns is ended with manager.CauseTurnLimit.
func (g *Game) Run(maxGames, maxTurns int) (int, error) {
	target := g.gamesPlayed + maxGames
	for g.gamesPlayed < target {
		res, err := g.Step()
		if err != nil {
			return g.gamesPlayed, err
		}
		if !res.Dead && maxTurns > 0 && g.popMgr.GetSnake().TurnsAlive >= maxTurns {
			if err := g.EndGame(manager.CauseTurnLimit); err != nil {
				return g.gamesPlayed, err
			}
		}
	}
	return g.gamesPlayed, nil
}

func (g *Game) Snake() *entity.Snake {
	return g.popMgr.GetSnake()
}

func (g *Game) Food() []types.Point {
	return append([]types.Point(nil), g.foodMgr.GetFoodList()...)
}

func (g *Game) Walls() []types.Point {
	return g.collisionMgr.Walls()
}

func (g *Game) Stats() *stats.Stats {
	return g.stats
}

func (g *Game) HighScore() int {
	return g.stateMgr.GetHighScore()
}

func (g *Game) ScoreHistory() []int {
	return g.stateMgr.GetScoreHistory()
}

func (g *Game) GamesPlayed() int {
	return g.gamesPlayed
}

func (g *Game) LastCause() manager.Cause {
	return g.lastCause
}

func (g *Game) Generation() int {
	return g.popMgr.Generation()
}

// ShouldRedraw asks the agent whether the board should be drawn this tick.
func (g *Game) ShouldRedraw() bool {
	return g.agent.ShouldRedrawBoard()
}

// Restart ends the current snake without recording it and spawns a new one.
func (g *Game) Restart() error {
	if snake := g.popMgr.GetSnake(); snake != nil {
		snake.Dead = true
	}
	return g.spawn()
}
