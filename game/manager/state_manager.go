package manager

import (
	"snake-agent/game/entity"
	"snake-agent/game/types"
)

const maxScoreHistory = 200

// StateManager does the per-turn score and starvation bookkeeping and keeps
// the session high score.
type StateManager struct {
	starve       int
	highScore    int
	scoreHistory []int
}

// NewStateManager starves snakes after `starve` turns without food;
// types.NoStarvation disables starvation.
func NewStateManager(starve int) *StateManager {
	if starve < 1 {
		starve = types.NoStarvation
	}
	return &StateManager{starve: starve}
}

// Reset prepares a freshly spawned snake.
func (sm *StateManager) Reset(snake *entity.Snake) {
	snake.Score = 0
	snake.TurnsAlive = 0
	snake.TurnsToStarve = sm.starve
}

// Tick advances one turn for a snake that did not eat. It returns
// CauseStarved once the countdown runs out.
func (sm *StateManager) Tick(snake *entity.Snake) Cause {
	snake.TurnsAlive++
	if snake.TurnsToStarve == types.NoStarvation {
		return CauseNone
	}
	snake.TurnsToStarve--
	if snake.TurnsToStarve <= 0 {
		return CauseStarved
	}
	return CauseNone
}

// Eat advances one turn for a snake that ate.
func (sm *StateManager) Eat(snake *entity.Snake) {
	snake.TurnsAlive++
	snake.Score++
	if snake.TurnsToStarve != types.NoStarvation {
		snake.TurnsToStarve = sm.starve
	}
	sm.UpdateScore(snake.Score)
}

func (sm *StateManager) UpdateScore(score int) {
	if score > sm.highScore {
		sm.highScore = score
	}
}

func (sm *StateManager) AddToHistory(score int) {
	sm.UpdateScore(score)
	sm.scoreHistory = append(sm.scoreHistory, score)
	if len(sm.scoreHistory) > maxScoreHistory {
		sm.scoreHistory = sm.scoreHistory[len(sm.scoreHistory)-maxScoreHistory:]
	}
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

func (sm *StateManager) GetScoreHistory() []int {
	return sm.scoreHistory
}
