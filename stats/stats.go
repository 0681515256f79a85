// Package stats keeps per-game records and decision latency figures.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	DefaultGroupSize     = 100  // records folded into one compressed record
	DefaultLatencyWindow = 1000 // latency samples kept for LatencySummary
)

// GameRecord holds one game, or a group of games once compressed.
type GameRecord struct {
	GameID           string    `json:"gameId,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	Turns            int       `json:"turns"`
	Cause            string    `json:"cause,omitempty"`
	AvgLatency       float64   `json:"avgLatencyMs"`
	MaxLatency       float64   `json:"maxLatencyMs"`
	CompressionIndex int       `json:"compressionIndex"` // 0 for single games
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageTurns     float64   `json:"averageTurns"`
}

// LatencySummary describes the recent decision latencies.
type LatencySummary struct {
	Count int
	Mean  time.Duration
	Max   time.Duration
	P95   time.Duration
}

// Stats is safe for concurrent use.
type Stats struct {
	mu        sync.RWMutex
	games     []GameRecord
	groupSize int
	latencies []time.Duration
	window    int
	next      int // ring position once the window is full
}

// New returns empty statistics folding every groupSize records of the same
// compression level into one. Non-positive sizes select DefaultGroupSize.
func New(groupSize int) *Stats {
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}
	return &Stats{
		groupSize: groupSize,
		window:    DefaultLatencyWindow,
	}
}

// AddGame records one finished game. Aggregate fields are derived from the
// single-game fields.
func (s *Stats) AddGame(r GameRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.CompressionIndex = 0
	r.GamesCount = 1
	r.AverageScore = float64(r.Score)
	r.MedianScore = float64(r.Score)
	r.MaxScore = r.Score
	r.MinScore = r.Score
	r.AverageTurns = float64(r.Turns)
	s.games = append(s.games, r)
	s.groupGames()
}

// groupGames compresses levels holding at least groupSize records, cascading
// into higher levels.
func (s *Stats) groupGames() {
	sort.SliceStable(s.games, func(i, j int) bool {
		if s.games[i].CompressionIndex != s.games[j].CompressionIndex {
			return s.games[i].CompressionIndex < s.games[j].CompressionIndex
		}
		return s.games[i].StartTime.Before(s.games[j].StartTime)
	})

	for lvl := 0; ; lvl++ {
		var records, rest []GameRecord
		for _, g := range s.games {
			if g.CompressionIndex == lvl {
				records = append(records, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(records) < s.groupSize {
			return
		}

		var folded []GameRecord
		for i := 0; i < len(records); i += s.groupSize {
			end := i + s.groupSize
			if end > len(records) {
				folded = append(folded, records[i:]...)
				break
			}
			folded = append(folded, fold(records[i:end], lvl+1))
		}
		s.games = append(rest, folded...)
	}
}

func fold(group []GameRecord, lvl int) GameRecord {
	out := GameRecord{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: lvl,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
	}
	var score, turns, latency float64
	var medians []float64
	for _, g := range group {
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		if g.MaxScore > out.MaxScore {
			out.MaxScore = g.MaxScore
		}
		if g.MinScore < out.MinScore {
			out.MinScore = g.MinScore
		}
		if g.MaxLatency > out.MaxLatency {
			out.MaxLatency = g.MaxLatency
		}
		n := float64(g.GamesCount)
		score += g.AverageScore * n
		turns += g.AverageTurns * n
		latency += g.AvgLatency * n
		out.GamesCount += g.GamesCount
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}
	n := float64(out.GamesCount)
	out.AverageScore = score / n
	out.AverageTurns = turns / n
	out.AvgLatency = latency / n
	out.MedianScore = median(medians)
	return out
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Records returns a copy of the current records.
func (s *Stats) Records() []GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]GameRecord(nil), s.games...)
}

// GamesPlayed returns the number of games recorded, grouped ones included.
func (s *Stats) GamesPlayed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, g := range s.games {
		total += g.GamesCount
	}
	return total
}

// AverageScore returns the mean score over all games.
func (s *Stats) AverageScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	var games int
	for _, g := range s.games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// MedianScore returns the median score, grouped records contributing their
// median once per game they hold.
func (s *Stats) MedianScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var scores []float64
	for _, g := range s.games {
		for i := 0; i < g.GamesCount; i++ {
			scores = append(scores, g.MedianScore)
		}
	}
	return median(scores)
}

// MaxScore returns the best score recorded.
func (s *Stats) MaxScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := 0
	for i, g := range s.games {
		if i == 0 || g.MaxScore > best {
			best = g.MaxScore
		}
	}
	return best
}

// ObserveLatency records the time one decision took.
func (s *Stats) ObserveLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.latencies) < s.window {
		s.latencies = append(s.latencies, d)
		return
	}
	s.latencies[s.next] = d
	s.next = (s.next + 1) % s.window
}

// LatencySummary summarises the most recent decision latencies.
func (s *Stats) LatencySummary() LatencySummary {
	s.mu.RLock()
	samples := append([]time.Duration(nil), s.latencies...)
	s.mu.RUnlock()

	if len(samples) == 0 {
		return LatencySummary{}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	var sum time.Duration
	for _, d := range samples {
		sum += d
	}
	idx := (len(samples)*95+99)/100 - 1
	return LatencySummary{
		Count: len(samples),
		Mean:  sum / time.Duration(len(samples)),
		Max:   samples[len(samples)-1],
		P95:   samples[idx],
	}
}

// SaveToFile writes the records to path as JSON, creating parent directories.
func (s *Stats) SaveToFile(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create stats directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.games, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	return nil
}

// LoadFromFile replaces the records with those stored at path. A missing file
// leaves the statistics empty.
func (s *Stats) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.games = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read stats file: %w", err)
	}
	var games []GameRecord
	if err := json.Unmarshal(data, &games); err != nil {
		return fmt.Errorf("decode stats file: %w", err)
	}
	s.mu.Lock()
	s.games = games
	s.mu.Unlock()
	return nil
}
