package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-agent/ai"
	"snake-agent/game"
	"snake-agent/game/types"
)

const (
	maxScores     = 200 // Maximum number of scores to show in graph
	borderPadding = 10
)

// Renderer draws the game in a raylib window with a stats panel on the right.
type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
	startTime       time.Time
}

func NewRenderer() *Renderer {
	r := &Renderer{startTime: time.Now()}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
	r.layout()
}

// layout splits the window into the game area and a stats panel of a
// seventh of the width.
func (r *Renderer) layout() {
	r.statsPanel = r.screenWidth / 7
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight
	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

// fitGrid sizes the cells so the whole board fits the game area.
func (r *Renderer) fitGrid(grid types.Grid) {
	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	r.cellSize = min(availableWidth/int32(grid.Width), availableHeight/int32(grid.Height))
	if r.cellSize < 1 {
		r.cellSize = 1
	}
	r.totalGridWidth = r.cellSize * int32(grid.Width)
	r.totalGridHeight = r.cellSize * int32(grid.Height)
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2
}

func (r *Renderer) cellOrigin(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.X)*r.cellSize, r.offsetY + int32(p.Y)*r.cellSize
}

func (r *Renderer) Draw(g *game.Game, agent *ai.Agent) {
	r.UpdateDimensions()
	r.fitGrid(g.Grid)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/45, r.statsPanel/15)
	lineHeight := min(r.screenHeight/35, r.statsPanel/12)

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	for x := 0; x < g.Grid.Width; x++ {
		for y := 0; y < g.Grid.Height; y++ {
			cx, cy := r.cellOrigin(types.Point{X: x, Y: y})
			rl.DrawRectangleLines(cx, cy, r.cellSize, r.cellSize, rl.Gray)
		}
	}

	for _, w := range g.Walls() {
		cx, cy := r.cellOrigin(w)
		rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, rl.LightGray)
	}
	for _, food := range g.Food() {
		cx, cy := r.cellOrigin(food)
		rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, rl.Red)
	}
	r.drawSnake(g)
	r.drawStatsPanel(g, agent, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) drawSnake(g *game.Game) {
	snake := g.Snake()
	if snake == nil || snake.Dead {
		return
	}
	base := rl.Color{R: snake.Color.R, G: snake.Color.G, B: snake.Color.B, A: 255}
	for j, p := range snake.Body {
		color := base
		if j == 0 && len(snake.Body) > 1 { // Tail
			color = rl.White
		}
		cx, cy := r.cellOrigin(p)
		rl.DrawRectangle(cx, cy, r.cellSize, r.cellSize, color)
	}
	r.drawHeadIndicator(snake.GetHead(), snake.Facing)
}

func (r *Renderer) drawHeadIndicator(head types.Point, facing types.Direction) {
	headX, headY := r.cellOrigin(head)
	halfCell := r.cellSize / 2
	switch facing {
	case types.East:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Yellow)
	case types.West:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Yellow)
	case types.South:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Yellow)
	default:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Yellow)
	}
}

func (r *Renderer) drawStatsPanel(g *game.Game, agent *ai.Agent, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)
	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	score := 0
	if snake := g.Snake(); snake != nil {
		score = snake.Score
	}
	st := g.Stats()
	lat := st.LatencySummary()
	last := agent.LastDecision()

	lines := []string{
		"Strategy: " + agent.Strategy().Name(),
		fmt.Sprintf("Score: %d", score),
		fmt.Sprintf("High: %d", g.HighScore()),
		fmt.Sprintf("Avg: %.2f", st.AverageScore()),
		fmt.Sprintf("Median: %.1f", st.MedianScore()),
		fmt.Sprintf("Games: %d", st.GamesPlayed()),
		"",
		fmt.Sprintf("Move: %s (%s)", last.Move, last.Source),
		fmt.Sprintf("Path: %d", last.PathLen),
		fmt.Sprintf("Lat mean: %s", lat.Mean.Round(time.Microsecond)),
		fmt.Sprintf("Lat p95: %s", lat.P95.Round(time.Microsecond)),
		fmt.Sprintf("Lat max: %s", lat.Max.Round(time.Microsecond)),
	}
	if cause := g.LastCause(); cause != "" {
		lines = append(lines, "", "Last death: "+string(cause))
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	r.drawPerformanceGraph(g, statsX, fontSize)
}

func (r *Renderer) drawPerformanceGraph(g *game.Game, graphX, fontSize int32) {
	graphY := r.screenHeight - r.graphHeight - fontSize*2
	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Performance", graphX, graphY-fontSize-5, fontSize, rl.White)

	duration := time.Since(r.startTime)
	timeText := fmt.Sprintf("%02d:%02d:%02d", int(duration.Hours()), int(duration.Minutes())%60, int(duration.Seconds())%60)
	rl.DrawText(timeText, graphX, r.screenHeight-fontSize-5, fontSize, rl.White)

	scores := g.ScoreHistory()
	if len(scores) > maxScores {
		scores = scores[len(scores)-maxScores:]
	}
	if len(scores) < 2 {
		return
	}
	maxScore := 1
	sum := 0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
		sum += s
	}
	scaleY := func(v float32) int32 {
		return graphY + r.graphHeight - int32(float32(r.graphHeight)*v/float32(maxScore))
	}
	for j := 1; j < len(scores); j++ {
		x1 := graphX + int32(float32(r.graphWidth)*float32(j-1)/float32(maxScores))
		x2 := graphX + int32(float32(r.graphWidth)*float32(j)/float32(maxScores))
		rl.DrawLine(x1, scaleY(float32(scores[j-1])), x2, scaleY(float32(scores[j])), rl.Green)
	}

	// dashed average
	avgY := scaleY(float32(sum) / float32(len(scores)))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.SkyBlue)
	}
}

// RunWindow opens a window and plays until it is closed or Q is pressed.
func RunWindow(g *game.Game, agent *ai.Agent, speed time.Duration) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(1280, 800, "snake-agent")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	r := NewRenderer()
	last := time.Now()
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return nil
		}
		if time.Since(last) >= speed {
			last = time.Now()
			if _, err := g.Step(); err != nil {
				return err
			}
		}
		if g.ShouldRedraw() {
			r.Draw(g, agent)
		} else {
			rl.BeginDrawing()
			rl.EndDrawing()
		}
	}
	return nil
}
