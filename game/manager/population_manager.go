package manager

import (
	"golang.org/x/exp/rand"

	"snake-agent/game/entity"
	"snake-agent/game/types"
)

// PopulationManager owns the single live snake and spawns its successor when
// it dies.
type PopulationManager struct {
	rng          *rand.Rand
	collisionMgr *CollisionManager
	currentSnake *entity.Snake
	generation   int
}

func NewPopulationManager(rng *rand.Rand, collisionMgr *CollisionManager) *PopulationManager {
	return &PopulationManager{
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// InitializePopulation spawns a snake on a random free cell with a random
// facing when there is none alive. It is false when no cell is free.
func (pm *PopulationManager) InitializePopulation() bool {
	if pm.currentSnake != nil && !pm.currentSnake.Dead {
		return true
	}
	free := pm.collisionMgr.FreeCells(nil, nil)
	if len(free) == 0 {
		return false
	}
	pos := free[pm.rng.Intn(len(free))]
	facing := types.Directions[pm.rng.Intn(len(types.Directions))]
	pm.currentSnake = entity.NewSnake(pos, facing, pm.generateRandomColor())
	pm.generation++
	return true
}

func (pm *PopulationManager) GetSnake() *entity.Snake {
	return pm.currentSnake
}

// Generation counts the snakes spawned so far.
func (pm *PopulationManager) Generation() int {
	return pm.generation
}

func (pm *PopulationManager) IsAllSnakesDead() bool {
	return pm.currentSnake == nil || pm.currentSnake.Dead
}

// RemoveDeadSnakes replaces a dead snake with a fresh one.
func (pm *PopulationManager) RemoveDeadSnakes() bool {
	if pm.currentSnake != nil && pm.currentSnake.Dead {
		pm.currentSnake = nil
	}
	return pm.InitializePopulation()
}

func (pm *PopulationManager) AddSnake(snake *entity.Snake) {
	pm.currentSnake = snake
}

func (pm *PopulationManager) generateRandomColor() entity.Color {
	return entity.Color{
		R: uint8(64 + pm.rng.Intn(192)),
		G: uint8(64 + pm.rng.Intn(192)),
		B: uint8(64 + pm.rng.Intn(192)),
	}
}
