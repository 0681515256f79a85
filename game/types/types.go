package types

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Game constants
const (
	DefaultWidth  = 25 // Board size of the original engine
	DefaultHeight = 25
	NoStarvation  = -1 // turns_to_starve value when starvation is disabled
)

// Point is a cell position. The origin is the upper left corner.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Manhattan returns |dx|+|dy| between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Object is the classification of a single board cell as reported by the game.
type Object int

const (
	Empty Object = iota
	Food
	Wall
	SnakeHead
	SnakeBody
)

func (o Object) String() string {
	switch o {
	case Empty:
		return "empty"
	case Food:
		return "food"
	case Wall:
		return "wall"
	case SnakeHead:
		return "head"
	case SnakeBody:
		return "body"
	default:
		return "unknown"
	}
}

// Blocked reports whether the snake dies when entering a cell holding o.
func (o Object) Blocked() bool {
	return o == Wall || o == SnakeBody
}

// Board is the raw per-turn snapshot, indexed board[x][y].
type Board [][]Object

// NewBoard allocates an empty width x height board.
func NewBoard(width, height int) Board {
	b := make(Board, width)
	for x := range b {
		b[x] = make([]Object, height)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	return len(b)
}

// Height returns the number of rows, or 0 for an empty board.
func (b Board) Height() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// At returns the object at p and false when p is outside the board.
func (b Board) At(p Point) (Object, bool) {
	if p.X < 0 || p.X >= len(b) || p.Y < 0 || p.Y >= len(b[p.X]) {
		return Empty, false
	}
	return b[p.X][p.Y], true
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	for x := range b {
		c[x] = make([]Object, len(b[x]))
		copy(c[x], b[x])
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
