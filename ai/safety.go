package ai

import (
	"sort"

	"snake-agent/game/types"
)

// candidate is one orthogonal neighbour of the head as seen by the safety heuristic.
type candidate struct {
	dir  types.Direction
	at   types.Point
	open bool
	run  int
}

// SafeDirection picks a heading for a snake that cannot reach any goal. It tries
// to keep as much open space ahead as possible and refuses to enter chutes unless
// nothing else is open. It returns ErrNoSafeMove when every neighbour is closed.
func SafeDirection(grid *Grid, start types.Point) (types.Direction, error) {
	cs := survey(grid, start)
	north, east, south, west := cs[0], cs[1], cs[2], cs[3]

	switch {
	case east.open && west.open && !north.open && !south.open:
		if d, ok := corridorChoice(grid, east, west); ok {
			return d, nil
		}
	case north.open && south.open && !east.open && !west.open:
		if d, ok := corridorChoice(grid, north, south); ok {
			return d, nil
		}
	default:
		ranked := make([]candidate, len(cs))
		copy(ranked, cs[:])
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].run > ranked[j].run
		})
		for _, c := range ranked {
			if c.open && !IsChute(grid, c.at, c.dir) {
				return c.dir, nil
			}
		}
	}

	for _, c := range cs {
		if c.open {
			return c.dir, nil
		}
	}
	return types.North, ErrNoSafeMove
}

// SafeMove is SafeDirection translated into a move relative to facing.
func SafeMove(grid *Grid, start types.Point, facing types.Direction) (types.Move, error) {
	d, err := SafeDirection(grid, start)
	if err != nil {
		return types.Straight, err
	}
	return facing.RelativeMove(d), nil
}

// survey inspects the neighbours of start in the order north, east, south, west.
func survey(grid *Grid, start types.Point) [4]candidate {
	var cs [4]candidate
	for i, d := range types.Directions {
		at := start.Add(d.ToPoint())
		c := candidate{dir: d, at: at, open: grid.Walkable(at)}
		if c.open {
			c.run = RunLength(grid, at, d)
		}
		cs[i] = c
	}
	return cs
}

// corridorChoice handles a head sitting in a straight corridor: take the end with
// the strictly longer run unless it is a chute, else the other end if that one is
// not a chute. Ties go to first.
func corridorChoice(grid *Grid, first, second candidate) (types.Direction, bool) {
	longer, shorter := first, second
	if second.run > first.run {
		longer, shorter = second, first
	}
	if !IsChute(grid, longer.at, longer.dir) {
		return longer.dir, true
	}
	if !IsChute(grid, shorter.at, shorter.dir) {
		return shorter.dir, true
	}
	return types.North, false
}

// RunLength counts the walkable cells met walking straight from `from` (included)
// in direction d until a blocked or out-of-range cell.
func RunLength(grid *Grid, from types.Point, d types.Direction) int {
	step := d.ToPoint()
	n := 0
	for p := from; grid.Walkable(p); p = p.Add(step) {
		n++
	}
	return n
}

// IsChute reports whether walking straight from `from` in direction d leads into
// a dead end: the corridor closes ahead before any cell along it has an open
// side. Blocked start cells are never safe and count as chutes.
func IsChute(grid *Grid, from types.Point, d types.Direction) bool {
	if !grid.Walkable(from) {
		return true
	}
	step := d.ToPoint()
	left := d.TurnLeft().ToPoint()
	right := d.TurnRight().ToPoint()
	for p := from; ; {
		if grid.Walkable(p.Add(left)) || grid.Walkable(p.Add(right)) {
			return false
		}
		next := p.Add(step)
		if !grid.Walkable(next) {
			return true
		}
		p = next
	}
}
