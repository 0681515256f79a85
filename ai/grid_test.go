package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake-agent/game/types"
)

func TestBuildGrid(t *testing.T) {
	board, head := parseBoard(t,
		"#####",
		"#H*o#",
		"#..*#",
		"#####",
	)
	grid, err := BuildGrid(board, head)
	require.NoError(t, err)

	assert.Equal(t, 5, grid.Width)
	assert.Equal(t, 4, grid.Height)
	assert.Equal(t, pt(1, 1), grid.Head())
	assert.Equal(t, []types.Point{pt(2, 1), pt(3, 2)}, grid.Goals())

	assert.True(t, grid.Walkable(pt(1, 1)), "head is walkable")
	assert.True(t, grid.Walkable(pt(2, 1)), "food is walkable")
	assert.False(t, grid.Walkable(pt(3, 1)), "body is blocked")
	assert.False(t, grid.Walkable(pt(0, 0)), "wall is blocked")

	t.Run("outside cells are absent", func(t *testing.T) {
		for _, p := range []types.Point{pt(-1, 0), pt(0, -1), pt(5, 0), pt(0, 4)} {
			_, ok := grid.Cell(p)
			assert.False(t, ok, "%v", p)
			assert.False(t, grid.Walkable(p), "%v", p)
		}
	})

	t.Run("goals are copied", func(t *testing.T) {
		goals := grid.Goals()
		goals[0] = pt(0, 0)
		assert.Equal(t, pt(2, 1), grid.Goals()[0])
	})
}

func TestBuildGridIsIdempotent(t *testing.T) {
	board, head := parseBoard(t,
		"#*....#",
		"#.oo..#",
		"#..H.*#",
		"#######",
	)
	a, err := BuildGrid(board, head)
	require.NoError(t, err)
	b, err := BuildGrid(board, head)
	require.NoError(t, err)

	assert.Equal(t, a.Goals(), b.Goals())
	for x := 0; x < a.Width; x++ {
		for y := 0; y < a.Height; y++ {
			assert.Equal(t, a.Walkable(pt(x, y)), b.Walkable(pt(x, y)))
		}
	}
}

func TestBuildGridErrors(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		_, err := BuildGrid(nil, pt(0, 0))
		assert.ErrorIs(t, err, ErrEmptyGrid)
		_, err = BuildGrid(types.Board{{}}, pt(0, 0))
		assert.ErrorIs(t, err, ErrEmptyGrid)
	})

	t.Run("ragged board", func(t *testing.T) {
		board := types.Board{
			{types.Empty, types.Empty},
			{types.Empty},
		}
		_, err := BuildGrid(board, pt(0, 0))
		assert.ErrorIs(t, err, ErrRaggedBoard)
	})

	t.Run("head outside board", func(t *testing.T) {
		board := types.NewBoard(3, 3)
		_, err := BuildGrid(board, pt(3, 1))
		assert.ErrorIs(t, err, ErrMissingHead)
	})

	t.Run("non-positive dimensions", func(t *testing.T) {
		_, err := NewGrid(0, 4, pt(0, 0), nil, nil)
		assert.ErrorIs(t, err, ErrEmptyGrid)
		_, err = NewGrid(4, -1, pt(0, 0), nil, nil)
		assert.ErrorIs(t, err, ErrEmptyGrid)
	})
}

func TestLocateHead(t *testing.T) {
	board, want := parseBoard(t,
		"....",
		"..H.",
		"....",
	)
	got, err := LocateHead(board)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	board, _ = parseBoard(t, "...", "...")
	_, err = LocateHead(board)
	assert.ErrorIs(t, err, ErrMissingHead)

	board, _ = parseBoard(t, "H..", "..H")
	_, err = LocateHead(board)
	assert.ErrorIs(t, err, ErrMissingHead)
}

func TestNeighbors(t *testing.T) {
	grid, err := NewGrid(3, 3, pt(1, 1), nil, []types.Point{pt(1, 0)})
	require.NoError(t, err)

	var got []types.Point
	for _, c := range grid.Neighbors(pt(1, 1)) {
		got = append(got, c.Point())
	}
	assert.Equal(t, []types.Point{pt(2, 1), pt(1, 0), pt(0, 1), pt(1, 2)}, got, "east, north, west, south")

	corner := grid.Neighbors(pt(0, 0))
	assert.Len(t, corner, 2)
	assert.False(t, grid.Neighbors(pt(1, 1))[1].Reachable)
}
