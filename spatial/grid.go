package spatial

import (
	"errors"
	"sync/atomic"

	"github.com/tetforge/exude/geom"
)

// Sentinel errors for lock-grid construction.
var (
	// ErrBadGridSize indicates a non-positive cells-per-axis value.
	ErrBadGridSize = errors.New("spatial: cells per axis must be at least 1")

	// ErrEmptyBbox indicates a bounding box with non-positive extent.
	ErrEmptyBbox = errors.New("spatial: bounding box must have positive extent on every axis")
)

// Grid is a coarse lattice of lockable voxels covering a bounding box.
// Points outside the box are clamped to the nearest boundary voxel, so every
// point maps to a voxel and TryLock is total.
type Grid struct {
	lo, hi  geom.Point3
	inv     geom.Point3 // cells-per-unit-length on each axis
	n       int
	voxels  []atomic.Int32
	guardID atomic.Int32
}

// NewGrid builds a lock grid of n³ voxels over the box [lo, hi].
func NewGrid(lo, hi geom.Point3, n int) (*Grid, error) {
	if n < 1 {
		return nil, ErrBadGridSize
	}
	ext := hi.Sub(lo)
	if ext.X <= 0 || ext.Y <= 0 || ext.Z <= 0 {
		return nil, ErrEmptyBbox
	}

	g := &Grid{
		lo:     lo,
		hi:     hi,
		inv:    geom.Point3{X: float64(n) / ext.X, Y: float64(n) / ext.Y, Z: float64(n) / ext.Z},
		n:      n,
		voxels: make([]atomic.Int32, n*n*n),
	}

	return g, nil
}

// voxelIndex maps a point to its voxel, clamping out-of-box coordinates.
func (g *Grid) voxelIndex(p geom.Point3) int {
	clamp := func(v float64) int {
		i := int(v)
		if i < 0 {
			return 0
		}
		if i >= g.n {
			return g.n - 1
		}
		return i
	}

	x := clamp((p.X - g.lo.X) * g.inv.X)
	y := clamp((p.Y - g.lo.Y) * g.inv.Y)
	z := clamp((p.Z - g.lo.Z) * g.inv.Z)

	return (z*g.n+y)*g.n + x
}

// Guard is one task's view of the grid: the set of voxels it currently owns.
// A Guard must not be shared between goroutines.
type Guard struct {
	grid *Grid
	id   int32
	held []int
}

// NewGuard creates a fresh guard with a unique owner id.
func (g *Grid) NewGuard() *Guard {
	return &Guard{
		grid: g,
		id:   g.guardID.Add(1),
		held: make([]int, 0, 16),
	}
}

// TryLock attempts to claim the voxel containing p. It returns true if the
// guard now owns (or already owned) that voxel, false on contention. It never
// blocks.
func (gd *Guard) TryLock(p geom.Point3) bool {
	idx := gd.grid.voxelIndex(p)
	v := &gd.grid.voxels[idx]

	if v.Load() == gd.id {
		return true
	}
	if v.CompareAndSwap(0, gd.id) {
		gd.held = append(gd.held, idx)
		return true
	}

	return false
}

// ReleaseAll frees every voxel the guard holds.
func (gd *Guard) ReleaseAll() {
	for _, idx := range gd.held {
		gd.grid.voxels[idx].Store(0)
	}
	gd.held = gd.held[:0]
}

// Held reports how many voxels the guard currently owns.
func (gd *Guard) Held() int {
	return len(gd.held)
}
