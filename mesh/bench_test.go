package mesh

import (
	"testing"

	"github.com/tetforge/exude/geom"
)

// benchmarkTriangulate measures full incremental construction of an n-point
// jittered cloud. Point generation is excluded from the timer.
func benchmarkTriangulate(b *testing.B, n int) {
	pts := jitteredCloud(n, 10, 7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Triangulate(pts); err != nil {
			b.Fatalf("Triangulate failed: %v", err)
		}
	}
}

func BenchmarkTriangulate_50(b *testing.B) {
	benchmarkTriangulate(b, 50)
}

func BenchmarkTriangulate_200(b *testing.B) {
	benchmarkTriangulate(b, 200)
}

// BenchmarkFindConflicts measures one conflict-region scan in the middle of
// an existing cloud, the dominant cost of every insertion and pump.
func BenchmarkFindConflicts(b *testing.B) {
	tr, err := Triangulate(jitteredCloud(100, 10, 7))
	if err != nil {
		b.Fatalf("Triangulate failed: %v", err)
	}

	probe := geom.WeightedPoint{Point3: geom.Point3{X: 0.123, Y: 0.456, Z: 0.789}}

	var hint CellHandle
	found := false
	for _, c := range tr.FiniteCells() {
		if tr.inConflict(c, probe) {
			hint, found = c, true
			break
		}
	}
	if !found {
		b.Fatal("probe point conflicts with no cell")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.FindConflicts(probe, hint); err != nil {
			b.Fatalf("FindConflicts failed: %v", err)
		}
	}
}
