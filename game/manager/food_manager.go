package manager

import (
	"golang.org/x/exp/rand"

	"snake-agent/game/entity"
	"snake-agent/game/types"
)

// FoodManager keeps a fixed number of food items on free cells.
type FoodManager struct {
	count        int
	foodList     []types.Point
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(count int, rng *rand.Rand, collisionMgr *CollisionManager) *FoodManager {
	if count < 1 {
		count = 1
	}
	return &FoodManager{
		count:        count,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// Update tops the food back up to its target count while free cells remain.
func (fm *FoodManager) Update(snake *entity.Snake) {
	for len(fm.foodList) < fm.count {
		food, ok := fm.GenerateFood(snake)
		if !ok {
			return
		}
		fm.foodList = append(fm.foodList, food)
	}
}

// GenerateFood picks a random free cell. It is false when the board is full.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, bool) {
	free := fm.collisionMgr.FreeCells(snake, fm.foodList)
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

func (fm *FoodManager) GetFoodList() []types.Point {
	return fm.foodList
}

func (fm *FoodManager) AddFood(food types.Point) {
	fm.foodList = append(fm.foodList, food)
}

func (fm *FoodManager) RemoveFood(food types.Point) {
	for i, f := range fm.foodList {
		if f == food {
			fm.foodList[i] = fm.foodList[len(fm.foodList)-1]
			fm.foodList = fm.foodList[:len(fm.foodList)-1]
			return
		}
	}
}

func (fm *FoodManager) Clear() {
	fm.foodList = fm.foodList[:0]
}
