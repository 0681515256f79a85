package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-agent/ai"
	"snake-agent/game"
	"snake-agent/game/types"
)

var (
	wallStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bodyStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	foodStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

var headRunes = map[types.Direction]rune{
	types.North: '^',
	types.East:  '>',
	types.South: 'v',
	types.West:  '<',
}

// Terminal plays the game in a terminal: q quits, r restarts the snake and
// s switches to the next strategy.
type Terminal struct {
	screen     tcell.Screen
	game       *game.Game
	agent      *ai.Agent
	strategies []ai.Strategy
	current    int
	speed      time.Duration
}

// NewTerminal draws g on screen. The screen must already be initialised.
func NewTerminal(screen tcell.Screen, g *game.Game, agent *ai.Agent, speed time.Duration, strategies ...ai.Strategy) *Terminal {
	t := &Terminal{
		screen:     screen,
		game:       g,
		agent:      agent,
		strategies: strategies,
		speed:      speed,
	}
	for i, s := range strategies {
		if s.Name() == agent.Strategy().Name() {
			t.current = i
		}
	}
	return t
}

// Run ticks the game until q is pressed or the screen goes away.
func (t *Terminal) Run() error {
	evChan := make(chan tcell.Event, 100)
	quitChan := make(chan struct{}, 1)
	go t.screen.ChannelEvents(evChan, quitChan)
	defer close(quitChan)

	speed := t.speed
	if speed <= 0 {
		speed = 50 * time.Millisecond
	}
	ticker := time.NewTicker(speed)
	defer ticker.Stop()

	t.Draw()
	for {
		select {
		case <-ticker.C:
			if _, err := t.game.Step(); err != nil {
				return err
			}
			if t.game.ShouldRedraw() {
				t.Draw()
			}
		case ev, ok := <-evChan:
			if !ok {
				return nil
			}
			quit, err := t.HandleEvent(ev)
			if err != nil || quit {
				return err
			}
		}
	}
}

// HandleEvent reacts to one terminal event and reports whether to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.Draw()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if ev.Key() != tcell.KeyRune {
			return false, nil
		}
		switch ev.Rune() {
		case 'q':
			return true, nil
		case 'r':
			if err := t.game.Restart(); err != nil {
				return true, err
			}
			t.Draw()
		case 's':
			if len(t.strategies) > 0 {
				t.current = (t.current + 1) % len(t.strategies)
				t.agent.SetStrategy(t.strategies[t.current])
				t.Draw()
			}
		}
	}
	return false, nil
}

// Draw renders the board with a status line underneath.
func (t *Terminal) Draw() {
	t.screen.Clear()
	board := t.game.Board()
	facing := types.North
	if snake := t.game.Snake(); snake != nil {
		facing = snake.Facing
	}
	for x := range board {
		for y, o := range board[x] {
			switch o {
			case types.Wall:
				t.screen.SetContent(x, y, '#', nil, wallStyle)
			case types.SnakeBody:
				t.screen.SetContent(x, y, 'o', nil, bodyStyle)
			case types.SnakeHead:
				t.screen.SetContent(x, y, headRunes[facing], nil, headStyle)
			case types.Food:
				t.screen.SetContent(x, y, '*', nil, foodStyle)
			}
		}
	}
	t.print(0, board.Height(), t.status())
	t.screen.Show()
}

func (t *Terminal) status() string {
	score := 0
	if snake := t.game.Snake(); snake != nil {
		score = snake.Score
	}
	lat := t.game.Stats().LatencySummary()
	return fmt.Sprintf("%s | score %d | high %d | games %d | p95 %s",
		t.agent.Strategy().Name(), score, t.game.HighScore(), t.game.GamesPlayed(), lat.P95)
}

func (t *Terminal) print(x, y int, s string) {
	for i, c := range s {
		t.screen.SetContent(x+i, y, c, nil, tcell.StyleDefault)
	}
}
