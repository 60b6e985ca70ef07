// Package cellqueue defines the entry type and sentinel errors shared by the
// two priority-store policies.
package cellqueue

import (
	"errors"

	"github.com/tetforge/exude/mesh"
)

// ErrEmptyQueue is returned by Front and PopFront when the store holds no
// live entries.
var ErrEmptyQueue = errors.New("cellqueue: queue is empty")

// Entry is one queued tetrahedron. Rev is the cell's revision counter as
// captured at insert time; it is zero for entries coming from a Direct store,
// which never needs staleness checks.
type Entry struct {
	Cell    mesh.CellHandle
	Quality float64
	Rev     uint32
}

// Store is the priority-store contract the exuder's scheduler consumes:
// worst (lowest) quality first, deterministic tie-break on the cell handle.
type Store interface {
	// Insert registers c with the given quality, overwriting any earlier
	// registration of the same cell.
	Insert(c mesh.CellHandle, quality float64)

	// Erase removes c from the store. Erasing an absent cell is a no-op.
	Erase(c mesh.CellHandle)

	// Front returns the minimum-quality entry without removing it.
	Front() (Entry, error)

	// PopFront removes and returns the minimum-quality entry.
	PopFront() (Entry, error)

	// Len reports the number of live entries.
	Len() int

	// Empty reports whether the store holds no live entries.
	Empty() bool
}

// less orders entries worst-first, breaking quality ties on the cell handle
// so the pop sequence is reproducible.
func less(a, b Entry) bool {
	if a.Quality != b.Quality {
		return a.Quality < b.Quality
	}
	return a.Cell < b.Cell
}
