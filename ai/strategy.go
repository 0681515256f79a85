package ai

import (
	"errors"
	"fmt"

	"snake-agent/game/types"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyAStar  = "astar"
	StrategyReward = "reward"
)

// Decision sources.
const (
	SourcePath   = "path"
	SourceSafety = "safety"
	SourceReward = "reward"
)

// Decision is the outcome of one turn.
type Decision struct {
	Move      types.Move
	Direction types.Direction // absolute heading after the move
	Source    string
	PathLen   int // steps to the goal; 0 unless Source is SourcePath
}

// Strategy chooses the snake's move on a grid.
type Strategy interface {
	Name() string
	Decide(grid *Grid, facing types.Direction) (Decision, error)
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string, sweeps int) (Strategy, error) {
	switch name {
	case StrategyAStar:
		return PathStrategy{}, nil
	case StrategyReward:
		return RewardStrategy{Sweeps: sweeps}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
	}
}

// PathStrategy heads for the nearest reachable goal and falls back to the
// safety heuristic when there is none.
type PathStrategy struct{}

func (PathStrategy) Name() string { return StrategyAStar }

func (PathStrategy) Decide(grid *Grid, facing types.Direction) (Decision, error) {
	head := grid.Head()
	path, err := FindPath(grid, head)
	switch {
	case err == nil:
		next, ok := path.Next()
		if !ok {
			// Already standing on the goal.
			return Decision{Move: types.Straight, Direction: facing, Source: SourcePath}, nil
		}
		m := facing.RelativeMove(next)
		return Decision{
			Move:      m,
			Direction: facing.Apply(m),
			Source:    SourcePath,
			PathLen:   path.Len(),
		}, nil
	case !errors.Is(err, ErrNoPathFound):
		return Decision{}, err
	}

	next, err := SafeDirection(grid, head)
	if err != nil {
		return Decision{}, err
	}
	m := facing.RelativeMove(next)
	return Decision{Move: m, Direction: facing.Apply(m), Source: SourceSafety}, nil
}

// RewardStrategy ranks the three moves by a propagated reward field.
type RewardStrategy struct {
	Sweeps int
}

func (RewardStrategy) Name() string { return StrategyReward }

func (s RewardStrategy) Decide(grid *Grid, facing types.Direction) (Decision, error) {
	sweeps := s.Sweeps
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}
	field := Propagate(grid, sweeps)
	m, err := BestMove(field, grid.Head(), facing)
	if err != nil {
		return Decision{}, err
	}
	return Decision{Move: m, Direction: facing.Apply(m), Source: SourceReward}, nil
}
