package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func game(score, turns int, start time.Time) GameRecord {
	return GameRecord{
		GameID:    "g",
		StartTime: start,
		EndTime:   start.Add(time.Second),
		Score:     score,
		Turns:     turns,
		Cause:     "wall",
	}
}

func TestAddGame(t *testing.T) {
	s := New(0)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.AddGame(game(3, 30, t0))
	s.AddGame(game(7, 70, t0.Add(time.Minute)))
	s.AddGame(game(2, 20, t0.Add(2*time.Minute)))

	assert.Equal(t, 3, s.GamesPlayed())
	assert.InDelta(t, 4.0, s.AverageScore(), 1e-9)
	assert.InDelta(t, 3.0, s.MedianScore(), 1e-9)
	assert.Equal(t, 7, s.MaxScore())

	records := s.Records()
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].GamesCount)
	assert.Equal(t, 3, records[0].MaxScore)
	assert.InDelta(t, 30.0, records[0].AverageTurns, 1e-9)
}

func TestEmptyStats(t *testing.T) {
	s := New(10)
	assert.Zero(t, s.GamesPlayed())
	assert.Zero(t, s.AverageScore())
	assert.Zero(t, s.MedianScore())
	assert.Zero(t, s.MaxScore())
	assert.Equal(t, LatencySummary{}, s.LatencySummary())
}

func TestGrouping(t *testing.T) {
	s := New(4)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		s.AddGame(game(i, 10*i, t0.Add(time.Duration(i)*time.Minute)))
	}

	records := s.Records()
	require.Len(t, records, 3, "two groups of four and one single game")
	assert.Equal(t, 0, records[0].CompressionIndex)
	assert.Equal(t, 8, records[0].Score)

	first := records[1]
	assert.Equal(t, 1, first.CompressionIndex)
	assert.Equal(t, 4, first.GamesCount)
	assert.InDelta(t, 1.5, first.AverageScore, 1e-9)
	assert.InDelta(t, 1.5, first.MedianScore, 1e-9)
	assert.Equal(t, 0, first.MinScore)
	assert.Equal(t, 3, first.MaxScore)
	assert.Equal(t, t0, first.StartTime)

	assert.Equal(t, 9, s.GamesPlayed())
	assert.InDelta(t, 4.0, s.AverageScore(), 1e-9)
	assert.Equal(t, 8, s.MaxScore())
}

func TestGroupingCascades(t *testing.T) {
	s := New(2)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		s.AddGame(game(i, 1, t0.Add(time.Duration(i)*time.Minute)))
	}
	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].CompressionIndex)
	assert.Equal(t, 4, records[0].GamesCount)
	assert.InDelta(t, 1.5, records[0].AverageScore, 1e-9)
}

func TestLatencySummary(t *testing.T) {
	s := New(0)
	for i := 1; i <= 20; i++ {
		s.ObserveLatency(time.Duration(i) * time.Millisecond)
	}
	sum := s.LatencySummary()
	assert.Equal(t, 20, sum.Count)
	assert.Equal(t, 20*time.Millisecond, sum.Max)
	assert.Equal(t, 19*time.Millisecond, sum.P95)
	assert.Equal(t, 10500*time.Microsecond, sum.Mean)
}

func TestLatencyWindowRolls(t *testing.T) {
	s := New(0)
	s.window = 3
	for i := 1; i <= 5; i++ {
		s.ObserveLatency(time.Duration(i) * time.Millisecond)
	}
	sum := s.LatencySummary()
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 5*time.Millisecond, sum.Max)
	assert.Equal(t, 4*time.Millisecond, sum.Mean)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.json")
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := New(0)
	s.AddGame(game(5, 50, t0))
	require.NoError(t, s.SaveToFile(path))

	loaded := New(0)
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, s.Records(), loaded.Records())

	missing := New(0)
	require.NoError(t, missing.LoadFromFile(filepath.Join(t.TempDir(), "none.json")))
	assert.Zero(t, missing.GamesPlayed())
}
