package entity

import (
	"snake-agent/game/types"
)

type Color struct {
	R, G, B uint8
}

// Snake stores its body tail first, head last.
type Snake struct {
	Body          []types.Point
	Facing        types.Direction
	Score         int
	TurnsAlive    int
	TurnsToStarve int
	Dead          bool
	Color         Color
}

func NewSnake(startPos types.Point, facing types.Direction, color Color) *Snake {
	return &Snake{
		Body:          []types.Point{startPos},
		Facing:        facing,
		TurnsToStarve: types.NoStarvation,
		Color:         color,
	}
}

// Move pushes a new head; the caller decides whether the tail follows.
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, newHead)
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[1:]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[len(s.Body)-1]
}

// Turn applies a relative move to the facing and returns the cell ahead.
func (s *Snake) Turn(m types.Move) types.Point {
	s.Facing = s.Facing.Apply(m)
	return s.GetHead().Add(s.Facing.ToPoint())
}

// BodyParts returns the segments behind the head, nearest first.
func (s *Snake) BodyParts() []types.Point {
	parts := make([]types.Point, 0, len(s.Body)-1)
	for i := len(s.Body) - 2; i >= 0; i-- {
		parts = append(parts, s.Body[i])
	}
	return parts
}

// Occupies reports whether p is part of the snake, head included.
func (s *Snake) Occupies(p types.Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

func (s *Snake) Len() int {
	return len(s.Body)
}
