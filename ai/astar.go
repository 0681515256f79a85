package ai

import (
	"fmt"

	"snake-agent/game/types"
)

// StepCost is the cost of one orthogonal step; the heuristic is scaled to match.
const StepCost = 10

// Path is a route from the start cell to a goal, both ends included.
type Path struct {
	Goal  types.Point
	Cells []types.Point
}

// Len returns the number of steps on the path.
func (p Path) Len() int {
	if len(p.Cells) == 0 {
		return 0
	}
	return len(p.Cells) - 1
}

// Next returns the heading of the first step. It is false for a zero-length
// path, i.e. when the start already is the goal.
func (p Path) Next() (types.Direction, bool) {
	if len(p.Cells) < 2 {
		return types.North, false
	}
	return types.DirectionBetween(p.Cells[0], p.Cells[1])
}

// FindPath runs A* from start towards the nearest goal. When that goal cannot be
// reached it is dropped and the search starts over, with fresh bookkeeping,
// against the nearest of the remaining goals.
func FindPath(grid *Grid, start types.Point) (Path, error) {
	if !grid.InBounds(start) {
		return Path{}, fmt.Errorf("%w: start %v", ErrMissingHead, start)
	}
	goals := grid.Goals()
	for len(goals) > 0 {
		i := nearestGoal(goals, start)
		if path, ok := newSearch(grid, goals[i]).run(start); ok {
			return path, nil
		}
		goals = append(goals[:i], goals[i+1:]...)
	}
	return Path{}, ErrNoPathFound
}

// nearestGoal returns the index of the first goal at minimal Manhattan distance.
func nearestGoal(goals []types.Point, from types.Point) int {
	best := 0
	for i := 1; i < len(goals); i++ {
		if goals[i].Manhattan(from) < goals[best].Manhattan(from) {
			best = i
		}
	}
	return best
}

// heuristic is the Manhattan distance scaled by StepCost.
func heuristic(p, target types.Point) int {
	return StepCost * p.Manhattan(target)
}

type node struct {
	g, h, f int
	parent  int // grid index, -1 for none
	opened  bool
	closed  bool
}

// search holds the bookkeeping of one attempt against one target. Nothing in it
// outlives the attempt.
type search struct {
	grid   *Grid
	target types.Point
	nodes  []node
	open   *frontier
}

func newSearch(grid *Grid, target types.Point) *search {
	nodes := make([]node, len(grid.cells))
	for i := range nodes {
		nodes[i].parent = -1
	}
	return &search{
		grid:   grid,
		target: target,
		nodes:  nodes,
		open:   newFrontier(byCostThenAge),
	}
}

func (s *search) run(start types.Point) (Path, bool) {
	startIdx := s.grid.index(start.X, start.Y)
	targetIdx := s.grid.index(s.target.X, s.target.Y)

	s.nodes[startIdx].opened = true
	s.open.push(startIdx, s.nodes[startIdx].f)
	for !s.open.empty() {
		e := s.open.pop()
		cur := &s.nodes[e.cell]
		if cur.closed {
			continue
		}
		cur.closed = true
		if e.cell == targetIdx {
			return s.reconstruct(startIdx, targetIdx), true
		}
		for _, adj := range s.grid.Neighbors(s.grid.cells[e.cell].Point()) {
			if !adj.Reachable {
				continue
			}
			adjIdx := s.grid.index(adj.X, adj.Y)
			n := &s.nodes[adjIdx]
			if n.closed {
				continue
			}
			if n.opened {
				// The entry already queued keeps its old key.
				if n.g > cur.g+StepCost {
					s.relax(adjIdx, e.cell)
				}
				continue
			}
			s.relax(adjIdx, e.cell)
			n.opened = true
			s.open.push(adjIdx, n.f)
		}
	}
	return Path{}, false
}

func (s *search) relax(idx, parent int) {
	n := &s.nodes[idx]
	n.g = s.nodes[parent].g + StepCost
	n.h = heuristic(s.grid.cells[idx].Point(), s.target)
	n.parent = parent
	n.f = n.g + n.h
}

func (s *search) reconstruct(startIdx, targetIdx int) Path {
	var cells []types.Point
	for idx := targetIdx; ; idx = s.nodes[idx].parent {
		cells = append(cells, s.grid.cells[idx].Point())
		if idx == startIdx {
			break
		}
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Path{Goal: s.target, Cells: cells}
}
