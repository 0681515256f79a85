package ai

import "container/heap"

// frontierEntry is one push onto the open set. The key is frozen at push time;
// later improvements to the cell's cost do not move the entry.
type frontierEntry struct {
	cell int // grid index
	f    int
	seq  int // insertion order
}

// byCostThenAge orders entries by ascending f, the earlier push winning ties.
func byCostThenAge(a, b frontierEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// frontier is a binary min-heap of entries under an explicit comparator.
type frontier struct {
	entries []frontierEntry
	less    func(a, b frontierEntry) bool
	pushed  int
}

func newFrontier(less func(a, b frontierEntry) bool) *frontier {
	return &frontier{less: less}
}

func (q *frontier) Len() int           { return len(q.entries) }
func (q *frontier) Less(i, j int) bool { return q.less(q.entries[i], q.entries[j]) }
func (q *frontier) Swap(i, j int)      { q.entries[i], q.entries[j] = q.entries[j], q.entries[i] }

func (q *frontier) Push(x any) {
	q.entries = append(q.entries, x.(frontierEntry))
}

func (q *frontier) Pop() any {
	old := q.entries
	n := len(old)
	e := old[n-1]
	q.entries = old[:n-1]
	return e
}

// push inserts a cell with the given key, stamping its insertion order.
func (q *frontier) push(cell, f int) {
	heap.Push(q, frontierEntry{cell: cell, f: f, seq: q.pushed})
	q.pushed++
}

// pop removes and returns the least entry. The frontier must not be empty.
func (q *frontier) pop() frontierEntry {
	return heap.Pop(q).(frontierEntry)
}

func (q *frontier) empty() bool {
	return len(q.entries) == 0
}
