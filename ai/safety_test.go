package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snake-agent/game/types"
)

func TestRunLength(t *testing.T) {
	grid := parseGrid(t,
		"#######",
		"#.....#",
		"#.....#",
		"#.H...#",
		"#.....#",
		"#######",
	)
	assert.Equal(t, 3, RunLength(grid, pt(3, 3), types.East))
	assert.Equal(t, 2, RunLength(grid, pt(2, 2), types.North))
	assert.Equal(t, 1, RunLength(grid, pt(2, 4), types.South))
	assert.Equal(t, 0, RunLength(grid, pt(0, 3), types.West), "blocked start")
	assert.Equal(t, 0, RunLength(grid, pt(-1, 3), types.West), "outside")
}

func TestIsChute(t *testing.T) {
	t.Run("dead end corridor", func(t *testing.T) {
		grid := parseGrid(t,
			"#######",
			"#..H..#",
			"###.###",
			"###.###",
			"###.###",
			"#######",
		)
		for y := 2; y <= 4; y++ {
			assert.True(t, IsChute(grid, pt(3, y), types.South), "from y=%d", y)
		}
		assert.False(t, IsChute(grid, pt(3, 2), types.North), "leads back into the room")
	})

	t.Run("side opening", func(t *testing.T) {
		grid := parseGrid(t,
			"#######",
			"#..H..#",
			"###.###",
			"###..##",
			"###.###",
			"#######",
		)
		assert.False(t, IsChute(grid, pt(3, 2), types.South))
		assert.False(t, IsChute(grid, pt(3, 3), types.South))
		assert.True(t, IsChute(grid, pt(3, 4), types.South), "past the opening")
	})

	t.Run("blocked start", func(t *testing.T) {
		grid := parseGrid(t, "H#.")
		assert.True(t, IsChute(grid, pt(1, 0), types.East))
		assert.True(t, IsChute(grid, pt(3, 0), types.East))
	})
}

func TestSafeDirection(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		want  types.Direction
	}{
		{
			name: "horizontal corridor avoids longer chute",
			board: []string{
				"##########",
				"#...######",
				"#...H....#",
				"#...######",
				"##########",
			},
			want: types.West,
		},
		{
			name: "horizontal corridor takes longer open end",
			board: []string{
				"##########",
				"######...#",
				"#...H....#",
				"#...######",
				"##########",
			},
			want: types.East,
		},
		{
			name: "horizontal corridor tie goes east",
			board: []string{
				"#########",
				"#..###..#",
				"#...H...#",
				"#########",
			},
			want: types.East,
		},
		{
			name: "vertical corridor avoids longer chute",
			board: []string{
				"#####",
				"##.##",
				"##.##",
				"##.##",
				"##H##",
				"#...#",
				"#####",
			},
			want: types.South,
		},
		{
			name: "vertical corridor tie goes north",
			board: []string{
				"#####",
				"#...#",
				"##H##",
				"#...#",
				"#####",
			},
			want: types.North,
		},
		{
			name: "open room takes longest run",
			board: []string{
				"#######",
				"#.....#",
				"#.....#",
				"#.H...#",
				"#.....#",
				"#######",
			},
			want: types.East,
		},
		{
			name: "ranking skips chutes",
			board: []string{
				"##########",
				"###.######",
				"###.######",
				"#..H.....#",
				"#.########",
				"##########",
			},
			want: types.West,
		},
		{
			name: "only chutes left takes first open",
			board: []string{
				"#########",
				"###.#####",
				"#..H....#",
				"#########",
			},
			want: types.North,
		},
		{
			name: "single exit",
			board: []string{
				"#####",
				"#oHo#",
				"#o.o#",
				"#####",
			},
			want: types.South,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := parseGrid(t, tt.board...)
			got, err := SafeDirection(grid, grid.Head())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeDirectionNoOpenNeighbour(t *testing.T) {
	grid := parseGrid(t,
		"#",
		"H",
		"#",
	)
	_, err := SafeDirection(grid, grid.Head())
	assert.ErrorIs(t, err, ErrNoSafeMove)

	grid = parseGrid(t,
		"ooo",
		"oHo",
		"ooo",
	)
	_, err = SafeMove(grid, grid.Head(), types.North)
	assert.ErrorIs(t, err, ErrNoSafeMove)
}

func TestSafeMoveIsRelativeToFacing(t *testing.T) {
	grid := parseGrid(t,
		"#######",
		"#.....#",
		"#.....#",
		"#.H...#",
		"#.....#",
		"#######",
	)
	m, err := SafeMove(grid, grid.Head(), types.North)
	require.NoError(t, err)
	assert.Equal(t, types.Right, m)

	m, err = SafeMove(grid, grid.Head(), types.East)
	require.NoError(t, err)
	assert.Equal(t, types.Straight, m)
}
