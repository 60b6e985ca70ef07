package mesh

// Complex records which cells and facets of a triangulation belong to the
// meshed domain: cells carry a subdomain tag, facets on the domain surface a
// surface-patch tag, and vertices a boundary dimension plus an opaque feature
// index. A tag of zero means "not in the complex".
type Complex struct {
	T *Triangulation
}

// NewComplex wraps an existing triangulation.
func NewComplex(t *Triangulation) *Complex {
	return &Complex{T: t}
}

// IsCellInComplex reports whether c belongs to the meshed domain.
func (cx *Complex) IsCellInComplex(c CellHandle) bool {
	return cx.T.a.cell(c).subdomain != 0
}

// Subdomain returns c's subdomain tag (0 when outside the complex).
func (cx *Complex) Subdomain(c CellHandle) int32 {
	return cx.T.a.cell(c).subdomain
}

// AddCellToComplex tags c as part of subdomain tag. Tag must be non-zero.
func (cx *Complex) AddCellToComplex(c CellHandle, tag int32) {
	if tag == 0 {
		panic("mesh: zero subdomain tag")
	}
	cx.T.a.cell(c).subdomain = tag
}

// RemoveCellFromComplex clears c's subdomain tag.
func (cx *Complex) RemoveCellFromComplex(c CellHandle) {
	cx.T.a.cell(c).subdomain = 0
}

// IsFacetInComplex reports whether f carries a surface-patch tag.
func (cx *Complex) IsFacetInComplex(f Facet) bool {
	return cx.T.a.cell(f.Cell).surface[f.I] != 0
}

// SurfacePatch returns f's surface-patch tag (0 when not on the surface).
func (cx *Complex) SurfacePatch(f Facet) int32 {
	return cx.T.a.cell(f.Cell).surface[f.I]
}

// AddFacetToComplex tags f — on both of its sides — as part of surface patch
// tag. Tag must be non-zero.
func (cx *Complex) AddFacetToComplex(f Facet, tag int32) {
	if tag == 0 {
		panic("mesh: zero surface-patch tag")
	}
	m := cx.T.MirrorFacet(f)
	cx.T.a.cell(f.Cell).surface[f.I] = tag
	cx.T.a.cell(m.Cell).surface[m.I] = tag
}

// RemoveFacetFromComplex clears f's surface tag on both sides.
func (cx *Complex) RemoveFacetFromComplex(f Facet) {
	m := cx.T.MirrorFacet(f)
	cx.T.a.cell(f.Cell).surface[f.I] = 0
	cx.T.a.cell(m.Cell).surface[m.I] = 0
}

// Dimension returns v's boundary dimension tag: 3 for interior vertices,
// 2 for surface vertices, lower for curves and corners.
func (cx *Complex) Dimension(v VertexHandle) int {
	return int(cx.T.a.vert(v).dim)
}

// SetDimension sets v's boundary dimension tag.
func (cx *Complex) SetDimension(v VertexHandle, dim int) {
	cx.T.a.vert(v).dim = int8(dim)
}

// FeatureIndex returns v's opaque boundary-feature index.
func (cx *Complex) FeatureIndex(v VertexHandle) int32 {
	return cx.T.a.vert(v).feature
}

// SetFeatureIndex sets v's boundary-feature index.
func (cx *Complex) SetFeatureIndex(v VertexHandle, idx int32) {
	cx.T.a.vert(v).feature = idx
}

// CellsInComplex returns every complex cell in handle order.
func (cx *Complex) CellsInComplex() []CellHandle {
	out := make([]CellHandle, 0, 64)
	for _, c := range cx.T.Cells() {
		if cx.IsCellInComplex(c) {
			out = append(out, c)
		}
	}
	return out
}

// NumCellsInComplex counts the cells of the meshed domain.
func (cx *Complex) NumCellsInComplex() int {
	return len(cx.CellsInComplex())
}
