package cellqueue

import (
	"container/heap"

	"github.com/tetforge/exude/mesh"
)

// Direct is the single-threaded store policy: a binary min-heap with a
// membership index, so Erase removes entries structurally and Front is O(1).
type Direct struct {
	h directHeap
}

// NewDirect creates an empty single-threaded store.
func NewDirect() *Direct {
	return &Direct{h: directHeap{pos: make(map[mesh.CellHandle]int)}}
}

// Insert registers c with the given quality, overwriting any earlier entry.
func (q *Direct) Insert(c mesh.CellHandle, quality float64) {
	if i, ok := q.h.pos[c]; ok {
		q.h.items[i].Quality = quality
		heap.Fix(&q.h, i)
		return
	}
	heap.Push(&q.h, Entry{Cell: c, Quality: quality})
}

// Erase removes c if present.
func (q *Direct) Erase(c mesh.CellHandle) {
	if i, ok := q.h.pos[c]; ok {
		heap.Remove(&q.h, i)
	}
}

// Front returns the worst entry without removing it.
func (q *Direct) Front() (Entry, error) {
	if len(q.h.items) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	return q.h.items[0], nil
}

// PopFront removes and returns the worst entry.
func (q *Direct) PopFront() (Entry, error) {
	if len(q.h.items) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	return heap.Pop(&q.h).(Entry), nil
}

// Len reports the number of entries.
func (q *Direct) Len() int { return len(q.h.items) }

// Empty reports whether the store is empty.
func (q *Direct) Empty() bool { return len(q.h.items) == 0 }

// directHeap implements heap.Interface, mirroring every move into the
// membership index so Erase and overwrite stay O(log n).
type directHeap struct {
	items []Entry
	pos   map[mesh.CellHandle]int
}

func (h *directHeap) Len() int           { return len(h.items) }
func (h *directHeap) Less(i, j int) bool { return less(h.items[i], h.items[j]) }

func (h *directHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].Cell] = i
	h.pos[h.items[j].Cell] = j
}

func (h *directHeap) Push(x any) {
	e := x.(Entry)
	h.pos[e.Cell] = len(h.items)
	h.items = append(h.items, e)
}

func (h *directHeap) Pop() any {
	n := len(h.items) - 1
	e := h.items[n]
	h.items = h.items[:n]
	delete(h.pos, e.Cell)
	return e
}
