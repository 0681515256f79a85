package ai

import (
	"fmt"
	"strings"

	"snake-agent/game/types"
)

// Reward field parameters.
const (
	GoalReward    = 1.0
	StepReward    = -0.04 // paid on every move
	GreedyWeight  = 0.8   // weight of the best neighbour
	SpreadWeight  = 0.2   // weight spread over the remaining neighbours
	DefaultSweeps = 10
)

// RewardField is a value per walkable cell produced by a fixed number of
// synchronous propagation sweeps. Blocked cells have no value.
type RewardField struct {
	Width    int
	Height   int
	values   []float64
	defined  []bool
	terminal []bool
}

// Propagate seeds goals with GoalReward and every other walkable cell with 0,
// then relaxes all non-goal cells `sweeps` times from the previous sweep's values.
func Propagate(grid *Grid, sweeps int) *RewardField {
	n := grid.Width * grid.Height
	rf := &RewardField{
		Width:    grid.Width,
		Height:   grid.Height,
		values:   make([]float64, n),
		defined:  make([]bool, n),
		terminal: make([]bool, n),
	}
	for i, c := range grid.cells {
		if !c.Reachable {
			continue
		}
		rf.defined[i] = true
		if grid.IsGoal(c.Point()) {
			rf.terminal[i] = true
			rf.values[i] = GoalReward
		}
	}

	next := make([]float64, n)
	neighbours := make([]float64, 0, 4)
	for sweep := 0; sweep < sweeps; sweep++ {
		copy(next, rf.values)
		for i, c := range grid.cells {
			if !rf.defined[i] || rf.terminal[i] {
				continue
			}
			neighbours = neighbours[:0]
			for _, adj := range grid.Neighbors(c.Point()) {
				if v, ok := rf.At(adj.Point()); ok {
					neighbours = append(neighbours, v)
				}
			}
			next[i] = relax(rf.values[i], neighbours)
		}
		rf.values, next = next, rf.values
	}
	return rf
}

// relax computes a cell's next value from its neighbours' previous values.
func relax(own float64, neighbours []float64) float64 {
	if len(neighbours) == 0 {
		return StepReward + own
	}
	bestIdx := 0
	for i, v := range neighbours {
		if v > neighbours[bestIdx] {
			bestIdx = i
		}
	}
	best := neighbours[bestIdx]

	tie := true
	for _, v := range neighbours {
		if v != best {
			tie = false
			break
		}
	}
	if tie {
		return StepReward + mean(neighbours)
	}

	var sum float64
	for i, v := range neighbours {
		if i != bestIdx {
			sum += v
		}
	}
	others := sum / float64(len(neighbours)-1)
	return StepReward + GreedyWeight*best + SpreadWeight*others
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// At returns the value of the cell at p, false for blocked or absent cells.
func (rf *RewardField) At(p types.Point) (float64, bool) {
	if p.X < 0 || p.X >= rf.Width || p.Y < 0 || p.Y >= rf.Height {
		return 0, false
	}
	i := p.X*rf.Height + p.Y
	if !rf.defined[i] {
		return 0, false
	}
	return rf.values[i], true
}

// BestMove ranks the cells reached by going straight, left and right and picks
// the one with the strictly greatest value. Straight wins ties.
func BestMove(rf *RewardField, start types.Point, facing types.Direction) (types.Move, error) {
	best := types.Straight
	bestValue := 0.0
	found := false
	for _, m := range types.Moves {
		v, ok := rf.At(start.Add(facing.Apply(m).ToPoint()))
		if !ok {
			continue
		}
		if !found || v > bestValue {
			best, bestValue, found = m, v, true
		}
	}
	if !found {
		return types.Straight, ErrNoSafeMove
	}
	return best, nil
}

// String renders the field row by row; blocked cells print as dashes.
func (rf *RewardField) String() string {
	var sb strings.Builder
	for y := 0; y < rf.Height; y++ {
		for x := 0; x < rf.Width; x++ {
			if v, ok := rf.At(types.Point{X: x, Y: y}); ok {
				fmt.Fprintf(&sb, "%6.2f ", v)
			} else {
				sb.WriteString("   --- ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
