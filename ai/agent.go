package ai

import (
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"snake-agent/game/types"
	"snake-agent/logging"
)

// Turn is everything the game hands the agent on one tick.
type Turn struct {
	Board         types.Board
	Score         int
	TurnsAlive    int
	TurnsToStarve int // types.NoStarvation when starvation is disabled
	Facing        types.Direction
	Head          types.Point
	Body          []types.Point // first element follows the head, last is the tail
}

// Death is what the game reports when the snake dies.
type Death struct {
	Head  types.Point
	Board types.Board // walls and food only
	Score int
	Body  []types.Point
}

// Agent is the snake's brain: it turns one board snapshot into one move.
// Decisions never depend on earlier turns; the counters are for logging only.
type Agent struct {
	strategy  Strategy
	logger    log.Logger
	redraw    bool
	last      Decision
	decisions int
	fallbacks int
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithLogger sets the agent's logger.
func WithLogger(l log.Logger) AgentOption {
	return func(a *Agent) {
		a.logger = logging.OrNop(l)
	}
}

// WithRedraw controls ShouldRedrawBoard.
func WithRedraw(redraw bool) AgentOption {
	return func(a *Agent) {
		a.redraw = redraw
	}
}

// NewAgent returns an agent deciding with s.
func NewAgent(s Strategy, opts ...AgentOption) *Agent {
	a := &Agent{
		strategy: s,
		logger:   log.NewNopLogger(),
		redraw:   true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Strategy returns the active strategy.
func (a *Agent) Strategy() Strategy {
	return a.strategy
}

// SetStrategy swaps the strategy used from the next turn on.
func (a *Agent) SetStrategy(s Strategy) {
	a.strategy = s
}

// GetMove rebuilds the grid from the turn's board and asks the strategy for a
// move. The board must hold exactly one head, at t.Head. ErrNoSafeMove means
// the snake cannot survive this turn.
func (a *Agent) GetMove(t Turn) (types.Move, error) {
	head, err := LocateHead(t.Board)
	if err != nil {
		return types.Straight, fmt.Errorf("locate head: %w", err)
	}
	if head != t.Head {
		return types.Straight, fmt.Errorf("%w: board has it at %v, turn reports %v", ErrMissingHead, head, t.Head)
	}
	grid, err := BuildGrid(t.Board, head)
	if err != nil {
		return types.Straight, fmt.Errorf("build grid: %w", err)
	}
	d, err := a.strategy.Decide(grid, t.Facing)
	if err != nil {
		if errors.Is(err, ErrNoSafeMove) {
			_ = level.Warn(a.logger).Log("msg", "no safe move", "strategy", a.strategy.Name(), "head", fmt.Sprint(t.Head), "score", t.Score)
		}
		return types.Straight, err
	}
	a.last = d
	a.decisions++
	if d.Source == SourceSafety {
		a.fallbacks++
		_ = level.Info(a.logger).Log("msg", "no reachable goal, playing safe", "head", fmt.Sprint(t.Head), "goals", len(grid.Goals()))
	}
	_ = level.Debug(a.logger).Log(
		"msg", "decision",
		"strategy", a.strategy.Name(),
		"source", d.Source,
		"move", d.Move,
		"direction", d.Direction,
		"path_len", d.PathLen,
		"turn", t.TurnsAlive,
	)
	return d.Move, nil
}

// LastDecision returns the most recent successful decision.
func (a *Agent) LastDecision() Decision {
	return a.last
}

// OnDie clears everything tied to the life that just ended.
func (a *Agent) OnDie(d Death) {
	_ = level.Info(a.logger).Log(
		"msg", "snake died",
		"head", fmt.Sprint(d.Head),
		"score", d.Score,
		"length", len(d.Body)+1,
		"decisions", a.decisions,
		"fallbacks", a.fallbacks,
	)
	a.last = Decision{}
	a.decisions = 0
	a.fallbacks = 0
}

// ShouldRedrawBoard tells the game whether to draw the board before the next move.
func (a *Agent) ShouldRedrawBoard() bool {
	return a.redraw
}

// ShouldGrowOnFoodCollision tells the game to grow the snake when it eats.
func (a *Agent) ShouldGrowOnFoodCollision() bool {
	return true
}
