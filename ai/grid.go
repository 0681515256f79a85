package ai

import (
	"fmt"

	"snake-agent/game/types"
)

// Cell is one square of a Grid.
type Cell struct {
	X, Y      int
	Reachable bool // false for walls and body segments
}

// Point returns the position of the cell.
func (c Cell) Point() types.Point {
	return types.Point{X: c.X, Y: c.Y}
}

// Grid is the immutable per-turn snapshot of walkability and goal locations.
// Cells are stored column-major, matching the board's board[x][y] indexing.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
	head   types.Point
	goals  []types.Point
}

// NewGrid builds a grid directly from its parts. Blocked points and goals outside
// the grid are ignored; the head must lie inside it.
func NewGrid(width, height int, head types.Point, goals, blocked []types.Point) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, width, height)
	}
	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
		head:   head,
	}
	if !g.InBounds(head) {
		return nil, fmt.Errorf("%w: head %v outside %dx%d", ErrMissingHead, head, width, height)
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			g.cells[g.index(x, y)] = Cell{X: x, Y: y, Reachable: true}
		}
	}
	for _, p := range blocked {
		if g.InBounds(p) {
			g.cells[g.index(p.X, p.Y)].Reachable = false
		}
	}
	for _, p := range goals {
		if g.InBounds(p) {
			g.goals = append(g.goals, p)
		}
	}
	return g, nil
}

// BuildGrid classifies every cell of the raw board: walls and body segments are
// not walkable, food cells are goals. Goals are enumerated column by column,
// which fixes the tie-break order of the path search.
func BuildGrid(board types.Board, head types.Point) (*Grid, error) {
	width, height, err := boardSize(board)
	if err != nil {
		return nil, err
	}
	var goals, blocked []types.Point
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			p := types.Point{X: x, Y: y}
			switch o := board[x][y]; {
			case o.Blocked():
				blocked = append(blocked, p)
			case o == types.Food:
				goals = append(goals, p)
			}
		}
	}
	return NewGrid(width, height, head, goals, blocked)
}

// LocateHead returns the position of the single snake head on the board.
func LocateHead(board types.Board) (types.Point, error) {
	width, height, err := boardSize(board)
	if err != nil {
		return types.Point{}, err
	}
	found := false
	var head types.Point
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if board[x][y] != types.SnakeHead {
				continue
			}
			if found {
				return types.Point{}, fmt.Errorf("%w: heads at %v and %v", ErrMissingHead, head, types.Point{X: x, Y: y})
			}
			head = types.Point{X: x, Y: y}
			found = true
		}
	}
	if !found {
		return types.Point{}, ErrMissingHead
	}
	return head, nil
}

func boardSize(board types.Board) (int, int, error) {
	width := board.Width()
	height := board.Height()
	if width == 0 || height == 0 {
		return 0, 0, ErrEmptyGrid
	}
	for x := range board {
		if len(board[x]) != height {
			return 0, 0, fmt.Errorf("%w: column %d has %d cells, want %d", ErrRaggedBoard, x, len(board[x]), height)
		}
	}
	return width, height, nil
}

func (g *Grid) index(x, y int) int {
	return x*g.Height + y
}

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p types.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cell returns the cell at p. Positions outside the grid are absent.
func (g *Grid) Cell(p types.Point) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	return g.cells[g.index(p.X, p.Y)], true
}

// Walkable reports whether p is inside the grid and not blocked.
func (g *Grid) Walkable(p types.Point) bool {
	c, ok := g.Cell(p)
	return ok && c.Reachable
}

// Head returns the head position the grid was built for.
func (g *Grid) Head() types.Point {
	return g.head
}

// Goals returns a copy of the goal positions in enumeration order.
func (g *Grid) Goals() []types.Point {
	goals := make([]types.Point, len(g.goals))
	copy(goals, g.goals)
	return goals
}

// IsGoal reports whether p is one of the goals.
func (g *Grid) IsGoal(p types.Point) bool {
	for _, goal := range g.goals {
		if goal == p {
			return true
		}
	}
	return false
}

// expansionOrder is the order in which the search visits neighbours.
var expansionOrder = [4]types.Direction{types.East, types.North, types.West, types.South}

// Neighbors returns the in-range orthogonal neighbours of p, walkable or not.
func (g *Grid) Neighbors(p types.Point) []Cell {
	cells := make([]Cell, 0, 4)
	for _, d := range expansionOrder {
		if c, ok := g.Cell(p.Add(d.ToPoint())); ok {
			cells = append(cells, c)
		}
	}
	return cells
}
