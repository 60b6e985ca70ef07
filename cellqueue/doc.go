// Package cellqueue provides the worst-first priority store driving the
// sliver exudation loop: tetrahedra keyed by a scalar quality value, lower
// meaning worse, popped in strictly ascending order.
//
// Overview:
//
//   - The store is a binary min-heap over (quality, cell handle) pairs with a
//     per-cell membership index, so a cell appears at most once and a repeat
//     Insert overwrites its quality in place.
//   - Ties on quality break on the cell handle, keeping the pop order fully
//     deterministic for identical inputs.
//   - Two backing policies cover the two scheduling models of the exuder.
//
// Policies:
//
//   - Direct: true structural removal. Erase takes the entry out of the heap
//     immediately. This is the single-threaded policy: O(log n) per
//     operation, no synchronization.
//   - Versioned: entries capture the cell's revision counter at insert time,
//     and Erase merely bumps the cell's counter instead of touching the heap
//     (lazy invalidation, as in a lazy-decrease-key priority queue). Stale
//     entries are discarded on the way out of Front/PopFront, and consumers
//     of a popped entry must re-check Entry.Rev against the triangulation
//     before acting on it, because another worker may have retriangulated
//     the cell away in the meantime. All operations are mutex-guarded.
//
// Complexity:
//
//	– Insert:   O(log n)
//	– Erase:    O(log n) direct, O(1) versioned (one atomic increment)
//	– Front:    O(1) direct, amortized O(log n) versioned (stale-entry drain)
//	– PopFront: O(log n)
//
// Errors (sentinel):
//
//	– ErrEmptyQueue if Front or PopFront is called on an empty store.
//
// Example usage:
//
//	q := cellqueue.NewDirect()
//	q.Insert(c, 0.12)
//	q.Insert(c, 0.08) // overwrite: c now carries 0.08
//	e, err := q.Front()
//	// e.Cell == c, e.Quality == 0.08, err == nil
package cellqueue
