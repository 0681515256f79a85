package manager

import (
	"snake-agent/game/entity"
	"snake-agent/game/types"
)

// Cause names why a snake died.
type Cause string

const (
	CauseNone      Cause = ""
	CauseWall      Cause = "wall"
	CauseSelf      Cause = "self"
	CauseBounds    Cause = "bounds"
	CauseStarved   Cause = "starved"
	CauseNoMove    Cause = "no_move"
	CauseTimeout   Cause = "timeout"
	CauseTurnLimit Cause = "turn_limit" // game cut short by the turn cap
)

type CollisionManager struct {
	grid  types.Grid
	walls map[types.Point]struct{}
}

func NewCollisionManager(grid types.Grid, walls []types.Point) *CollisionManager {
	cm := &CollisionManager{
		grid:  grid,
		walls: make(map[types.Point]struct{}, len(walls)),
	}
	for _, w := range walls {
		if grid.Contains(w) {
			cm.walls[w] = struct{}{}
		}
	}
	return cm
}

// BorderWalls returns the ring of cells around the edge of grid.
func BorderWalls(grid types.Grid) []types.Point {
	var walls []types.Point
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			if x == 0 || y == 0 || x == grid.Width-1 || y == grid.Height-1 {
				walls = append(walls, types.Point{X: x, Y: y})
			}
		}
	}
	return walls
}

// CheckCollision reports what the snake hits when its head enters pos. The
// tail cell is free unless the snake grows this turn, since the tail moves away.
func (cm *CollisionManager) CheckCollision(pos types.Point, snake *entity.Snake, growing bool) Cause {
	if !cm.grid.Contains(pos) {
		return CauseBounds
	}
	if cm.IsWall(pos) {
		return CauseWall
	}
	if snake == nil {
		return CauseNone
	}
	start := 1
	if growing {
		start = 0
	}
	for i := start; i < len(snake.Body); i++ {
		if snake.Body[i] == pos {
			return CauseSelf
		}
	}
	return CauseNone
}

func (cm *CollisionManager) IsWall(pos types.Point) bool {
	_, ok := cm.walls[pos]
	return ok
}

func (cm *CollisionManager) Walls() []types.Point {
	walls := make([]types.Point, 0, len(cm.walls))
	for x := 0; x < cm.grid.Width; x++ {
		for y := 0; y < cm.grid.Height; y++ {
			if p := (types.Point{X: x, Y: y}); cm.IsWall(p) {
				walls = append(walls, p)
			}
		}
	}
	return walls
}

// ValidateSpawnPosition checks that pos is inside the grid, not a wall and
// not covered by the snake.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if !cm.grid.Contains(pos) || cm.IsWall(pos) {
		return false
	}
	return snake == nil || !snake.Occupies(pos)
}

// FreeCells lists every cell a new item could be placed on, column by column.
func (cm *CollisionManager) FreeCells(snake *entity.Snake, taken []types.Point) []types.Point {
	blocked := make(map[types.Point]struct{}, len(taken))
	for _, p := range taken {
		blocked[p] = struct{}{}
	}
	var free []types.Point
	for x := 0; x < cm.grid.Width; x++ {
		for y := 0; y < cm.grid.Height; y++ {
			p := types.Point{X: x, Y: y}
			if _, ok := blocked[p]; ok {
				continue
			}
			if cm.ValidateSpawnPosition(p, snake) {
				free = append(free, p)
			}
		}
	}
	return free
}

// CheckFoodCollisions checks if a position collides with any food.
func (cm *CollisionManager) CheckFoodCollisions(pos types.Point, foodList []types.Point) (bool, types.Point) {
	for _, food := range foodList {
		if pos == food {
			return true, food
		}
	}
	return false, types.Point{}
}
