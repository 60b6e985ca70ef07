package mesh

import (
	"sync"
	"sync/atomic"
)

// Arena slots live in fixed-size blocks behind an atomically swapped block
// directory: handle lookups from concurrent readers stay valid while another
// goroutine grows the arena, because existing blocks never move.
const (
	blockShift = 10
	blockSize  = 1 << blockShift
	blockMask  = blockSize - 1
)

type vertexBlock [blockSize]vertexData
type cellBlock [blockSize]cellData

// arena manages slot allocation for both vertex and cell storage.
type arena struct {
	mu sync.Mutex // guards growth and the free lists

	vblocks atomic.Pointer[[]*vertexBlock]
	cblocks atomic.Pointer[[]*cellBlock]

	nextVert  int32
	nextCell  int32
	freeVerts []VertexHandle
	freeCells []CellHandle
}

func newArena() *arena {
	a := &arena{}
	v := []*vertexBlock{}
	c := []*cellBlock{}
	a.vblocks.Store(&v)
	a.cblocks.Store(&c)
	return a
}

// vert returns the slot for h. The handle must have been allocated.
func (a *arena) vert(h VertexHandle) *vertexData {
	blocks := *a.vblocks.Load()
	return &blocks[h>>blockShift][h&blockMask]
}

// cell returns the slot for h. The handle must have been allocated.
func (a *arena) cell(h CellHandle) *cellData {
	blocks := *a.cblocks.Load()
	return &blocks[h>>blockShift][h&blockMask]
}

// allocVert hands out a vertex slot, recycling freed ones first.
func (a *arena) allocVert() VertexHandle {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.freeVerts); n > 0 {
		h := a.freeVerts[n-1]
		a.freeVerts = a.freeVerts[:n-1]
		return h
	}

	h := VertexHandle(a.nextVert)
	a.nextVert++
	if int(h)>>blockShift >= len(*a.vblocks.Load()) {
		grown := append(append([]*vertexBlock{}, *a.vblocks.Load()...), new(vertexBlock))
		a.vblocks.Store(&grown)
	}

	return h
}

// allocCell hands out a cell slot, recycling freed ones first. The slot's
// revision counter is preserved across reuse.
func (a *arena) allocCell() CellHandle {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.freeCells); n > 0 {
		h := a.freeCells[n-1]
		a.freeCells = a.freeCells[:n-1]
		return h
	}

	h := CellHandle(a.nextCell)
	a.nextCell++
	if int(h)>>blockShift >= len(*a.cblocks.Load()) {
		grown := append(append([]*cellBlock{}, *a.cblocks.Load()...), new(cellBlock))
		a.cblocks.Store(&grown)
	}

	return h
}

func (a *arena) freeVert(h VertexHandle) {
	a.mu.Lock()
	a.freeVerts = append(a.freeVerts, h)
	a.mu.Unlock()
}

func (a *arena) freeCell(h CellHandle) {
	a.mu.Lock()
	a.freeCells = append(a.freeCells, h)
	a.mu.Unlock()
}

// vertCap and cellCap report the high-water slot counts (including freed
// slots), for iteration over the arenas.
func (a *arena) vertCap() int32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextVert
}

func (a *arena) cellCap() int32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextCell
}
