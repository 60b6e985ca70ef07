// The exudation engine: one struct drives both scheduling models, selected
// by Options.Workers. The sequential loop processes the priority store
// strictly worst-first; the parallel loop turns the initial store content
// into spatially locked tasks.
package exuder

import (
	"sync"
	"time"

	"github.com/tetforge/exude/cellqueue"
	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/mesh"
	"github.com/tetforge/exude/spatial"
)

// Exuder pumps vertex weights until every complex cell meets the quality
// bound or no further improvement is possible.
type Exuder struct {
	cx   *mesh.Complex
	tr   *mesh.Triangulation
	crit SliverCriterion

	opts    Options
	bound   float64
	sqDelta float64 // Delta², the weight-guard factor

	queue   cellqueue.Store
	requeue func(c mesh.CellHandle, quality float64)

	statsMu sync.Mutex
	stats   Stats

	// onStarMin, when non-nil, observes the tracked star minimum right
	// after seeding and after every accepted expansion step. Set by tests.
	onStarMin func(worst float64)
}

// Stats counts the outcomes of a run.
type Stats struct {
	Pumped  int // successful weight pumps
	Ignored int // pump attempts that found no better weight
	Treated int // vertices examined without being pumped
}

// New validates the configuration and builds an engine over the complex.
// The bound defaults to the criterion's DefaultBound when opts.Bound is zero.
func New(cx *mesh.Complex, crit SliverCriterion, opts Options) (*Exuder, error) {
	if cx == nil {
		return nil, ErrNilComplex
	}
	if crit == nil {
		return nil, ErrNilCriterion
	}

	bound := opts.Bound
	if bound == 0 {
		bound = crit.DefaultBound()
	}
	if bound <= 0 || bound > crit.MaxValue() {
		return nil, ErrBadBound
	}
	if opts.Delta <= 0 || opts.Delta > 1 {
		return nil, ErrBadDelta
	}
	if opts.Workers < 1 {
		return nil, ErrBadWorkers
	}
	if opts.GridCellsPerAxis < 1 {
		return nil, ErrBadGridCells
	}

	return &Exuder{
		cx:      cx,
		tr:      cx.T,
		crit:    crit,
		opts:    opts,
		bound:   bound,
		sqDelta: opts.Delta * opts.Delta,
	}, nil
}

// SetTimeLimit replaces the wall-clock budget of subsequent sequential runs.
func (e *Exuder) SetTimeLimit(d time.Duration) { e.opts.TimeLimit = d }

// TimeLimit returns the current wall-clock budget.
func (e *Exuder) TimeLimit() time.Duration { return e.opts.TimeLimit }

// Stats returns the counters of the last run.
func (e *Exuder) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

// Run executes one exudation pass and reports how it ended.
func (e *Exuder) Run() ReturnCode {
	e.stats = Stats{}

	if e.opts.Workers > 1 {
		return e.runParallel()
	}
	return e.runSequential()
}

func (e *Exuder) runSequential() ReturnCode {
	q := cellqueue.NewDirect()
	e.queue = q
	e.requeue = q.Insert
	e.fillQueue()

	start := time.Now()
	for !q.Empty() && !e.timeExceeded(start) {
		front, _ := q.Front()
		c := front.Cell

		pumped := false
		for i := 0; i < 4; i++ {
			v := e.tr.CellVertex(c, i)
			if !e.opts.PumpSurfaceVertices && e.cx.Dimension(v) <= 2 {
				continue
			}

			ok, _ := e.pumpVertex(v, nil)
			if ok {
				// The front cell is gone; restart from the new front.
				pumped = true
				e.stats.Pumped++
				break
			}
			e.stats.Treated++
			e.stats.Ignored++
		}

		if !pumped {
			// Exhausted at the current bound: none of its vertices can be
			// pumped, drop it for good.
			q.PopFront()
		}
		if e.opts.Visitor != nil {
			e.opts.Visitor(q.Len())
		}
	}

	if e.timeExceeded(start) {
		return TimeLimitReached
	}
	if e.boundReached() {
		return BoundReached
	}
	return CantImproveAnymore
}

func (e *Exuder) timeExceeded(start time.Time) bool {
	return e.opts.TimeLimit > 0 && time.Since(start) > e.opts.TimeLimit
}

// fillQueue registers every complex cell below the bound.
func (e *Exuder) fillQueue() {
	for _, c := range e.cx.CellsInComplex() {
		if value := e.cellQuality(c); value < e.bound {
			e.queue.Insert(c, value)
		}
	}
}

// boundReached rescans the complex: true when no cell is below the bound.
func (e *Exuder) boundReached() bool {
	for _, c := range e.cx.CellsInComplex() {
		if e.cellQuality(c) < e.bound {
			return false
		}
	}
	return true
}

func (e *Exuder) cellQuality(c mesh.CellHandle) float64 {
	pts := e.tr.CellPoints(c)
	return e.crit.Value(pts[0].Point3, pts[1].Point3, pts[2].Point3, pts[3].Point3)
}

// pumpVertex tries to raise v's weight. It returns whether v was pumped and,
// in parallel mode, whether the whole zone could be locked; on a lock
// failure nothing was mutated and the attempt should be retried later.
func (e *Exuder) pumpVertex(v mesh.VertexHandle, g *spatial.Guard) (pumped, couldLock bool) {
	best, couldLock := e.bestWeight(v, g)
	if !couldLock {
		return false, false
	}

	if best > e.tr.Point(v).W {
		wp := geom.WeightedPoint{Point3: e.tr.Point(v).Point3, W: best}
		if !e.updateMesh(wp, v, g) {
			return false, false
		}
		return true, true
	}

	return false, true
}
