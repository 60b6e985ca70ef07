// The parallel scheduling model: one task per queued cell, worst-first at
// enqueue time only. Workers busy-wait (yielding, never sleeping) on the
// start barrier and on spatial-lock contention, retry a contended attempt
// while the cell's revision counter is unchanged, and give the cell up once
// it changed — some other worker already retriangulated that region.
package exuder

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tetforge/exude/cellqueue"
	"github.com/tetforge/exude/mesh"
	"github.com/tetforge/exude/spatial"
)

type pumpTask struct {
	cell mesh.CellHandle
	rev  uint32 // revision captured at enqueue time
}

type parallelRun struct {
	e    *Exuder
	grid *spatial.Grid

	mu    sync.Mutex
	tasks []pumpTask

	outstanding atomic.Int64
	start       atomic.Bool
}

func (e *Exuder) runParallel() ReturnCode {
	lo, hi := e.tr.Bbox()
	grid, err := spatial.NewGrid(lo, hi, e.opts.GridCellsPerAxis)
	if err != nil {
		// Degenerate bounding box: nothing to lock over, so nothing worth
		// parallelizing either.
		return e.runSequential()
	}
	e.tr.SetLockGrid(grid)

	q := cellqueue.NewVersioned(e.tr)
	e.queue = q
	e.fillQueue()

	run := &parallelRun{e: e, grid: grid}
	e.requeue = run.enqueue

	// Drain the store into tasks in worst-first order. Completion order is
	// up to the scheduler from here on.
	for {
		entry, err := q.PopFront()
		if err != nil {
			break
		}
		run.push(pumpTask{cell: entry.Cell, rev: entry.Rev})
	}

	var wg sync.WaitGroup
	for w := 0; w < e.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run.work()
		}()
	}

	// Tasks begin only once everything is enqueued. Flushing happens
	// implicitly: workers keep pulling until no task is pending anywhere,
	// including tasks deferred by updates that ran meanwhile.
	run.start.Store(true)
	wg.Wait()

	// No wall-clock budget applies here.
	if e.boundReached() {
		return BoundReached
	}
	return CantImproveAnymore
}

// enqueue defers a below-bound cell produced by an update to a fresh task.
func (r *parallelRun) enqueue(c mesh.CellHandle, _ float64) {
	r.push(pumpTask{cell: c, rev: r.e.tr.Rev(c)})
}

func (r *parallelRun) push(t pumpTask) {
	r.outstanding.Add(1)
	r.mu.Lock()
	r.tasks = append(r.tasks, t)
	r.mu.Unlock()
}

func (r *parallelRun) pop() (pumpTask, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tasks) == 0 {
		return pumpTask{}, false
	}
	t := r.tasks[0]
	r.tasks = r.tasks[1:]
	return t, true
}

// work processes tasks until none are pending and none are in flight.
func (r *parallelRun) work() {
	for !r.start.Load() {
		runtime.Gosched()
	}

	for {
		t, ok := r.pop()
		if !ok {
			if r.outstanding.Load() == 0 {
				return
			}
			// A task in flight may still defer new work.
			runtime.Gosched()
			continue
		}
		r.process(t)
		r.outstanding.Add(-1)
	}
}

// process attempts to pump each vertex of the task's cell in turn. Every
// attempt runs under a fresh lock set; contention releases all locks and
// retries unless the cell's revision moved on.
func (r *parallelRun) process(t pumpTask) {
	e := r.e

	for i := 0; i < 4; i++ {
		for {
			if e.tr.Rev(t.cell) != t.rev {
				// Someone already rebuilt this region; the entry is stale.
				break
			}

			g := r.grid.NewGuard()
			if !e.tr.TryLockCell(t.cell, g) {
				g.ReleaseAll()
				runtime.Gosched()
				continue
			}
			if e.tr.Rev(t.cell) != t.rev {
				g.ReleaseAll()
				break
			}

			couldLock := true
			v := e.tr.CellVertex(t.cell, i)
			if e.opts.PumpSurfaceVertices || e.cx.Dimension(v) > 2 {
				var pumped bool
				pumped, couldLock = e.pumpVertex(v, g)

				e.statsMu.Lock()
				if pumped {
					e.stats.Pumped++
				} else if couldLock {
					e.stats.Treated++
					e.stats.Ignored++
				}
				e.statsMu.Unlock()
			}

			g.ReleaseAll()
			if couldLock {
				break
			}
			runtime.Gosched()
		}
	}

	if e.opts.Visitor != nil {
		e.opts.Visitor(int(r.outstanding.Load()))
	}
}
