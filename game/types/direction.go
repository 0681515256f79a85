package types

// Direction is an absolute heading on the fixed world axes.
type Direction int

const (
	North Direction = iota // decrements Y
	East                   // increments X
	South                  // increments Y
	West                   // decrements X
)

// Directions lists the headings in clockwise order starting at North.
var Directions = [4]Direction{North, East, South, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	default:
		return "NONE"
	}
}

// ToPoint converts a Direction into a one-cell displacement vector.
func (d Direction) ToPoint() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 0}
	}
}

// TurnLeft returns the heading after a left turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case North:
		return West
	case East:
		return North
	case South:
		return East
	case West:
		return South
	default:
		return d
	}
}

// TurnRight returns the heading after a right turn.
func (d Direction) TurnRight() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	default:
		return d
	}
}

// Opposite returns the heading directly behind d.
func (d Direction) Opposite() Direction {
	return d.TurnLeft().TurnLeft()
}

// Apply returns the heading that results from making m while facing d.
func (d Direction) Apply(m Move) Direction {
	switch m {
	case Left:
		return d.TurnLeft()
	case Right:
		return d.TurnRight()
	default:
		return d
	}
}

// RelativeMove translates the absolute heading next into the move that a snake
// facing d has to make. Reversing is not a legal move for the snake; it maps to
// Left, which is what the game has always done with it.
func (d Direction) RelativeMove(next Direction) Move {
	switch next {
	case d:
		return Straight
	case d.TurnLeft():
		return Left
	case d.TurnRight():
		return Right
	default:
		return Left
	}
}

// DirectionBetween returns the heading leading from one point to an adjacent one.
func DirectionBetween(from, to Point) (Direction, bool) {
	for _, d := range Directions {
		if from.Add(d.ToPoint()) == to {
			return d, true
		}
	}
	return North, false
}

// Move is a turn relative to the snake's current heading.
type Move int

const (
	Left Move = iota
	Straight
	Right
)

// Moves lists the relative moves in the order the snake evaluates them.
var Moves = [3]Move{Straight, Left, Right}

func (m Move) String() string {
	switch m {
	case Left:
		return "LEFT"
	case Straight:
		return "STRAIGHT"
	case Right:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}
