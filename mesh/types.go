package mesh

import (
	"errors"
	"sync/atomic"

	"github.com/tetforge/exude/geom"
)

// Sentinel errors for triangulation construction and insertion.
var (
	// ErrNoConflict indicates an inserted weighted point conflicts with no
	// cell: in a regular triangulation such a point is hidden and creates no
	// vertex.
	ErrNoConflict = errors.New("mesh: point conflicts with no cell (hidden)")

	// ErrDegenerateInput indicates Triangulate received fewer than four
	// affinely independent points.
	ErrDegenerateInput = errors.New("mesh: need at least four non-coplanar points")
)

// VertexHandle is a stable index into the triangulation's vertex arena.
type VertexHandle int32

// CellHandle is a stable index into the triangulation's cell arena.
type CellHandle int32

// NilVertex and NilCell are the invalid handles.
const (
	NilVertex VertexHandle = -1
	NilCell   CellHandle   = -1
)

// InfiniteVertex is the sentinel vertex closing the triangulation at its
// convex hull. Cells containing it are unbounded.
const InfiniteVertex VertexHandle = 0

// Facet identifies face I of a cell — the face opposite the cell's vertex I.
// It is valid as a map key.
type Facet struct {
	Cell CellHandle
	I    int
}

// vertexData is one vertex arena slot.
type vertexData struct {
	point   geom.WeightedPoint
	cell    CellHandle // one incident cell
	dim     int8       // boundary dimension tag (0..3)
	feature int32      // opaque boundary-feature index
	alive   bool
}

// cellData is one cell arena slot. rev is the revision counter from the data
// model: it survives slot reuse and is bumped on every structural
// invalidation, so a (handle, revision) pair taken earlier can be checked for
// staleness without touching freed state.
type cellData struct {
	v         [4]VertexHandle
	n         [4]CellHandle
	rev       atomic.Uint32
	subdomain int32    // 0 = not in complex
	surface   [4]int32 // per-facet surface-patch tag, 0 = not in complex
	alive     bool
}
