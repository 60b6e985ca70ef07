package cellqueue

import (
	"container/heap"
	"sync"

	"github.com/tetforge/exude/mesh"
)

// Versioned is the concurrent store policy. Entries snapshot the cell's
// revision counter at insert time; Erase bumps the counter through the
// triangulation instead of mutating the heap, and stale entries (erased,
// superseded, or invalidated by a retriangulation elsewhere) are dropped
// lazily when they reach the front.
//
// Len counts registered, not-erased cells. Cells invalidated externally are
// still counted until their entry surfaces and is discarded; the count is an
// upper bound, which is what the progress visitor needs.
type Versioned struct {
	mu sync.Mutex

	t      *mesh.Triangulation
	h      versionedHeap
	latest map[mesh.CellHandle]uint64 // cell -> seq of its most recent insert
	seq    uint64
}

// NewVersioned creates an empty concurrent store invalidating entries
// through t's cell revision counters.
func NewVersioned(t *mesh.Triangulation) *Versioned {
	return &Versioned{t: t, latest: make(map[mesh.CellHandle]uint64)}
}

// Insert registers c with the given quality, superseding any earlier entry
// for the same cell. The cell's current revision is captured alongside.
func (q *Versioned) Insert(c mesh.CellHandle, quality float64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	q.latest[c] = q.seq
	heap.Push(&q.h, ventry{
		Entry: Entry{Cell: c, Quality: quality, Rev: q.t.Rev(c)},
		seq:   q.seq,
	})
}

// Erase invalidates c's entry by bumping the cell's revision counter. The
// heap itself is untouched.
func (q *Versioned) Erase(c mesh.CellHandle) {
	q.mu.Lock()
	if _, ok := q.latest[c]; ok {
		q.t.BumpRev(c)
		delete(q.latest, c)
	}
	q.mu.Unlock()
}

// Front returns the worst live entry without removing it.
func (q *Versioned) Front() (Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.drain()
	if len(q.h) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	return q.h[0].Entry, nil
}

// PopFront removes and returns the worst live entry. The caller must still
// re-check Entry.Rev before dereferencing the cell: the revision may change
// between this pop and the caller acquiring its locks.
func (q *Versioned) PopFront() (Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.drain()
	if len(q.h) == 0 {
		return Entry{}, ErrEmptyQueue
	}

	e := heap.Pop(&q.h).(ventry)
	delete(q.latest, e.Cell)
	return e.Entry, nil
}

// Len reports the number of registered, not-erased cells.
func (q *Versioned) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.drain()
	return len(q.latest)
}

// Empty reports whether no live entry remains.
func (q *Versioned) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.drain()
	return len(q.h) == 0
}

// drain discards stale heap entries until the front is live or the heap is
// empty. Callers must hold q.mu.
func (q *Versioned) drain() {
	for len(q.h) > 0 {
		top := q.h[0]
		if q.latest[top.Cell] != top.seq {
			// Superseded by a later Insert, or erased.
			heap.Pop(&q.h)
			continue
		}
		if q.t.Rev(top.Cell) != top.Rev {
			// Invalidated outside the store (the cell was retriangulated).
			heap.Pop(&q.h)
			delete(q.latest, top.Cell)
			continue
		}
		return
	}
}

type ventry struct {
	Entry
	seq uint64
}

type versionedHeap []ventry

func (h versionedHeap) Len() int           { return len(h) }
func (h versionedHeap) Less(i, j int) bool { return less(h[i].Entry, h[j].Entry) }
func (h versionedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *versionedHeap) Push(x any) { *h = append(*h, x.(ventry)) }

func (h *versionedHeap) Pop() any {
	old := *h
	n := len(old) - 1
	e := old[n]
	*h = old[:n]
	return e
}
