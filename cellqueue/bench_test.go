package cellqueue

import (
	"testing"

	"github.com/tetforge/exude/mesh"
)

// BenchmarkDirect_Churn fills the direct store with 256 entries and drains
// it, the pattern of one sequential scheduling round.
func BenchmarkDirect_Churn(b *testing.B) {
	q := NewDirect()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for c := 0; c < 256; c++ {
			q.Insert(mesh.CellHandle(c), float64((c*37)%256))
		}
		for !q.Empty() {
			if _, err := q.PopFront(); err != nil {
				b.Fatalf("PopFront failed: %v", err)
			}
		}
	}
}

// BenchmarkVersioned_Churn measures insert/pop over live cell handles,
// including the revision capture and staleness drain.
func BenchmarkVersioned_Churn(b *testing.B) {
	tr := newTestTriangulation(b)
	cells := tr.Cells()
	q := NewVersioned(tr)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j, c := range cells {
			q.Insert(c, float64(j))
		}
		for !q.Empty() {
			if _, err := q.PopFront(); err != nil {
				b.Fatalf("PopFront failed: %v", err)
			}
		}
	}
}
