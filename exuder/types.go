// Package exuder defines the configuration surface and pluggable quality
// criterion of the sliver exudation engine.
package exuder

import (
	"errors"
	"time"

	"github.com/tetforge/exude/geom"
)

// Sentinel errors returned by New for invalid configurations.
var (
	ErrNilComplex   = errors.New("exuder: complex must not be nil")
	ErrNilCriterion = errors.New("exuder: sliver criterion must not be nil")
	ErrBadBound     = errors.New("exuder: bound must be in (0, criterion max]")
	ErrBadDelta     = errors.New("exuder: delta must be in (0, 1]")
	ErrBadWorkers   = errors.New("exuder: workers must be >= 1")
	ErrBadGridCells = errors.New("exuder: grid cells per axis must be >= 1")
)

// ReturnCode classifies how a run ended. None of these are failures.
type ReturnCode int

const (
	// TimeLimitReached: the wall-clock budget expired before the queue
	// drained (sequential mode only).
	TimeLimitReached ReturnCode = iota

	// BoundReached: every complex cell now meets the quality bound.
	BoundReached

	// CantImproveAnymore: cells below the bound remain, but no vertex pump
	// can improve any of them further.
	CantImproveAnymore
)

// String implements fmt.Stringer.
func (rc ReturnCode) String() string {
	switch rc {
	case TimeLimitReached:
		return "TIME_LIMIT_REACHED"
	case BoundReached:
		return "BOUND_REACHED"
	case CantImproveAnymore:
		return "CANT_IMPROVE_ANYMORE"
	default:
		return "UNKNOWN"
	}
}

// SliverCriterion maps a tetrahedron to a scalar quality, lower meaning
// worse. Value must be a pure function of the four corner positions.
type SliverCriterion interface {
	// Value returns the quality of the tetrahedron (a, b, c, d).
	Value(a, b, c, d geom.Point3) float64

	// DefaultBound is the threshold used when Options.Bound is zero.
	DefaultBound() float64

	// MaxValue is the largest quality Value can return.
	MaxValue() float64
}

// MinRadiusRatio is the default criterion: three times the insphere radius
// over the circumsphere radius, 1 for the regular tetrahedron and near 0 for
// slivers.
type MinRadiusRatio struct{}

func (MinRadiusRatio) Value(a, b, c, d geom.Point3) float64 {
	return geom.RadiusRatio(a, b, c, d)
}

func (MinRadiusRatio) DefaultBound() float64 { return 0.25 }
func (MinRadiusRatio) MaxValue() float64     { return 1 }

// Visitor is invoked once per processed cell with the number of cells still
// queued. Nil visitors are skipped. In parallel mode it may be called from
// several goroutines at once.
type Visitor func(remaining int)

// Options configures a run.
type Options struct {
	// Bound is the quality threshold below which a cell counts as a sliver.
	// Zero selects the criterion's DefaultBound.
	Bound float64

	// Delta scales the weight guard: a pumped vertex's weight never reaches
	// Delta² times the squared distance to its nearest neighbor.
	Delta float64

	// TimeLimit caps the wall-clock time of a sequential run, checked once
	// per outer iteration. Zero means unlimited. Parallel runs ignore it.
	TimeLimit time.Duration

	// PumpSurfaceVertices enables pumping vertices lying on the boundary
	// (dimension <= 2). When false only interior vertices are pumped.
	PumpSurfaceVertices bool

	// Workers selects the scheduling model: 1 is the deterministic
	// sequential loop, more run the spatially locked parallel loop.
	Workers int

	// GridCellsPerAxis sizes the spatial lock grid used by parallel runs.
	GridCellsPerAxis int

	// Visitor receives progress callbacks; may be nil.
	Visitor Visitor
}

// DefaultOptions returns the production defaults: sequential, surface
// pumping on, delta 0.45, no time limit.
func DefaultOptions() Options {
	return Options{
		Delta:               0.45,
		PumpSurfaceVertices: true,
		Workers:             1,
		GridCellsPerAxis:    30,
	}
}
