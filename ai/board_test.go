package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"snake-agent/game/types"
)

// parseBoard turns a picture into a board. Rows are y, columns are x:
// '#' wall, 'o' body, 'H' head, '*' food, '.' empty.
func parseBoard(t *testing.T, rows ...string) (types.Board, types.Point) {
	t.Helper()
	require.NotEmpty(t, rows)
	board := types.NewBoard(len(rows[0]), len(rows))
	var head types.Point
	for y, row := range rows {
		require.Len(t, row, len(rows[0]), "row %d", y)
		for x, c := range row {
			switch c {
			case '#':
				board[x][y] = types.Wall
			case 'o':
				board[x][y] = types.SnakeBody
			case 'H':
				board[x][y] = types.SnakeHead
				head = types.Point{X: x, Y: y}
			case '*':
				board[x][y] = types.Food
			case '.':
				board[x][y] = types.Empty
			default:
				t.Fatalf("unexpected %q at %d,%d", c, x, y)
			}
		}
	}
	return board, head
}

func parseGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	board, head := parseBoard(t, rows...)
	grid, err := BuildGrid(board, head)
	require.NoError(t, err)
	return grid
}

func pt(x, y int) types.Point {
	return types.Point{X: x, Y: y}
}
