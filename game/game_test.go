package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"snake-agent/ai"
	"snake-agent/game/entity"
	"snake-agent/game/manager"
	"snake-agent/game/types"
	"snake-agent/stats"
)

type scriptedAgent struct {
	moves  []types.Move
	err    error
	delay  time.Duration
	turns  []ai.Turn
	deaths []ai.Death
}

func (a *scriptedAgent) GetMove(t ai.Turn) (types.Move, error) {
	a.turns = append(a.turns, t)
	time.Sleep(a.delay)
	if a.err != nil {
		return types.Straight, a.err
	}
	if len(a.moves) == 0 {
		return types.Straight, nil
	}
	m := a.moves[0]
	a.moves = a.moves[1:]
	return m, nil
}

func (a *scriptedAgent) OnDie(d ai.Death)                { a.deaths = append(a.deaths, d) }
func (a *scriptedAgent) ShouldRedrawBoard() bool         { return true }
func (a *scriptedAgent) ShouldGrowOnFoodCollision() bool { return true }

func newTestGame(t *testing.T, opts Options, agent Agent) *Game {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	if opts.TurnBudget == 0 {
		opts.TurnBudget = time.Second
	}
	g, err := New(opts, agent, stats.New(0), nil)
	require.NoError(t, err)
	return g
}

// place swaps in a snake with the given body, tail first, and clears the food.
func place(g *Game, facing types.Direction, body ...types.Point) *entity.Snake {
	s := entity.NewSnake(body[0], facing, entity.Color{})
	s.Body = append([]types.Point(nil), body...)
	g.popMgr.AddSnake(s)
	g.stateMgr.Reset(s)
	g.foodMgr.Clear()
	return s
}

func TestNewRejectsTinyBoard(t *testing.T) {
	_, err := New(Options{Width: 2, Height: 5}, &scriptedAgent{}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestRestartWithoutFreeCell(t *testing.T) {
	g := newTestGame(t, Options{Width: 3, Height: 3}, &scriptedAgent{})
	var all []types.Point
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			all = append(all, types.Point{X: x, Y: y})
		}
	}
	g.popMgr = manager.NewPopulationManager(rand.New(rand.NewSource(1)), manager.NewCollisionManager(g.Grid, all))

	err := g.Restart()
	assert.ErrorIs(t, err, ErrNoSpawnCell)
	assert.NotErrorIs(t, err, ErrInvalidDimensions)
}

func TestNewSpawnsSnakeAndFood(t *testing.T) {
	g := newTestGame(t, Options{Width: 8, Height: 6, Food: 2}, &scriptedAgent{})
	require.NotNil(t, g.Snake())
	assert.Len(t, g.Food(), 2)
	assert.NotEmpty(t, g.UUID)
	assert.Equal(t, 1, g.Generation())

	head, err := ai.LocateHead(g.Board())
	require.NoError(t, err)
	assert.Equal(t, g.Snake().GetHead(), head)
}

func TestBoard(t *testing.T) {
	g := newTestGame(t, Options{Width: 6, Height: 5, Food: 1}, &scriptedAgent{})
	place(g, types.East, types.Point{X: 2, Y: 2}, types.Point{X: 3, Y: 2})
	g.foodMgr.AddFood(types.Point{X: 1, Y: 1})

	board := g.Board()
	assert.Equal(t, 6, board.Width())
	assert.Equal(t, 5, board.Height())
	assert.Equal(t, types.Wall, board[0][0])
	assert.Equal(t, types.Wall, board[5][4])
	assert.Equal(t, types.SnakeHead, board[3][2])
	assert.Equal(t, types.SnakeBody, board[2][2])
	assert.Equal(t, types.Food, board[1][1])
	assert.Equal(t, types.Empty, board[4][3])
}

func TestStepEatsAndGrows(t *testing.T) {
	agent := &scriptedAgent{moves: []types.Move{types.Straight}}
	g := newTestGame(t, Options{Width: 7, Height: 5, Food: 1}, agent)
	snake := place(g, types.East, types.Point{X: 2, Y: 2})
	g.foodMgr.AddFood(types.Point{X: 3, Y: 2})

	res, err := g.Step()
	require.NoError(t, err)
	assert.True(t, res.Ate)
	assert.False(t, res.Dead)
	assert.Equal(t, 1, snake.Score)
	assert.Equal(t, 2, snake.Len())
	assert.Equal(t, types.Point{X: 3, Y: 2}, snake.GetHead())

	require.Len(t, g.Food(), 1)
	assert.False(t, snake.Occupies(g.Food()[0]))

	require.Len(t, agent.turns, 1)
	turn := agent.turns[0]
	assert.Equal(t, types.Point{X: 2, Y: 2}, turn.Head)
	assert.Equal(t, types.East, turn.Facing)
	assert.Equal(t, types.Food, turn.Board[3][2])
	assert.Equal(t, types.NoStarvation, turn.TurnsToStarve)
}

func TestStepHitsWall(t *testing.T) {
	agent := &scriptedAgent{}
	g := newTestGame(t, Options{Width: 6, Height: 5, Food: 1}, agent)
	old := place(g, types.West, types.Point{X: 1, Y: 2})

	res, err := g.Step()
	require.NoError(t, err)
	assert.True(t, res.Dead)
	assert.Equal(t, manager.CauseWall, res.Cause)
	assert.Equal(t, manager.CauseWall, g.LastCause())

	require.Len(t, agent.deaths, 1)
	assert.Equal(t, types.Point{X: 1, Y: 2}, agent.deaths[0].Head)
	for _, col := range agent.deaths[0].Board {
		for _, o := range col {
			assert.NotEqual(t, types.SnakeHead, o, "death board holds walls and food only")
		}
	}

	assert.Equal(t, 1, g.GamesPlayed())
	assert.Equal(t, 1, g.Stats().GamesPlayed())
	assert.Equal(t, "wall", g.Stats().Records()[0].Cause)
	assert.NotSame(t, old, g.Snake())
	assert.False(t, g.Snake().Dead)
	assert.Len(t, g.Food(), 1)
}

func TestStepSelfCollision(t *testing.T) {
	agent := &scriptedAgent{moves: []types.Move{types.Right}}
	g := newTestGame(t, Options{Width: 6, Height: 5, Food: 1}, agent)
	place(g, types.West,
		types.Point{X: 1, Y: 2},
		types.Point{X: 1, Y: 1},
		types.Point{X: 2, Y: 1},
		types.Point{X: 3, Y: 1},
		types.Point{X: 3, Y: 2},
		types.Point{X: 2, Y: 2},
	)

	res, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, manager.CauseSelf, res.Cause)
	require.Len(t, agent.deaths, 1)
	assert.Len(t, agent.deaths[0].Body, 5)
}

func TestStepWithoutSafeMove(t *testing.T) {
	agent := &scriptedAgent{err: ai.ErrNoSafeMove}
	g := newTestGame(t, Options{Width: 6, Height: 5, Food: 1}, agent)

	res, err := g.Step()
	require.NoError(t, err)
	assert.True(t, res.Dead)
	assert.Equal(t, manager.CauseNoMove, res.Cause)
}

func TestStepOverBudget(t *testing.T) {
	agent := &scriptedAgent{delay: 20 * time.Millisecond}
	g := newTestGame(t, Options{Width: 6, Height: 5, Food: 1, TurnBudget: time.Millisecond}, agent)

	res, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, manager.CauseTimeout, res.Cause)
	assert.GreaterOrEqual(t, res.Latency, 20*time.Millisecond)
	assert.Equal(t, 1, g.Stats().LatencySummary().Count)
}

func TestStarvation(t *testing.T) {
	agent := &scriptedAgent{}
	g := newTestGame(t, Options{Width: 9, Height: 5, Food: 1, Starve: 2}, agent)
	snake := place(g, types.East, types.Point{X: 2, Y: 2})
	require.Equal(t, 2, snake.TurnsToStarve)

	res, err := g.Step()
	require.NoError(t, err)
	require.False(t, res.Dead)
	assert.Equal(t, 1, snake.TurnsToStarve)

	res, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, manager.CauseStarved, res.Cause)
}

func TestRestart(t *testing.T) {
	agent := &scriptedAgent{}
	g := newTestGame(t, Options{Width: 6, Height: 5, Food: 1}, agent)
	old := g.Snake()

	require.NoError(t, g.Restart())
	assert.NotSame(t, old, g.Snake())
	assert.Zero(t, g.GamesPlayed())
	assert.Empty(t, agent.deaths)
}

func TestRunWithDecisionAgent(t *testing.T) {
	agent := ai.NewAgent(ai.PathStrategy{})
	g := newTestGame(t, Options{Width: 8, Height: 8, Food: 1, Starve: types.NoStarvation, Seed: 42}, agent)

	n, err := g.Run(3, 200)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, g.Stats().GamesPlayed())

	ids := map[string]bool{}
	for _, r := range g.Stats().Records() {
		assert.NotEmpty(t, r.Cause)
		ids[r.GameID] = true
	}
	assert.Len(t, ids, 3)
	assert.Len(t, g.ScoreHistory(), 3)
	assert.GreaterOrEqual(t, g.HighScore(), 0)
}
