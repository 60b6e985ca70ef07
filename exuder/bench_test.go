package exuder

import (
	"testing"

	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/mesh"
)

// benchmarkRun rebuilds the ring complex outside the timer and measures one
// full exudation pass per iteration.
func benchmarkRun(b *testing.B, workers int) {
	opts := DefaultOptions()
	opts.Workers = workers

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		_, cx := buildRingComplex(b)
		ex, err := New(cx, flatCriterion{}, opts)
		if err != nil {
			b.Fatalf("New failed: %v", err)
		}
		b.StartTimer()

		if code := ex.Run(); code != BoundReached {
			b.Fatalf("Run returned %v", code)
		}
	}
}

// BenchmarkRun_Sequential measures the worst-first sequential pass.
func BenchmarkRun_Sequential(b *testing.B) {
	benchmarkRun(b, 1)
}

// BenchmarkRun_Parallel4 measures the spatially locked pass with 4 workers.
func BenchmarkRun_Parallel4(b *testing.B) {
	benchmarkRun(b, 4)
}

// BenchmarkBestWeight measures a single pre-star expansion at the sliver
// vertex, the hot inner step of every pump attempt.
func BenchmarkBestWeight(b *testing.B) {
	_, cx := buildRingComplex(b)
	ex, err := New(cx, flatCriterion{}, DefaultOptions())
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	var sliver mesh.VertexHandle
	found := false
	for _, v := range cx.T.Vertices() {
		p := cx.T.Point(v)
		if geom.SquaredDistance(p.Point3, geom.Point3{X: 1, Y: 0, Z: 0.01}) < 1e-18 {
			sliver, found = v, true
			break
		}
	}
	if !found {
		b.Fatal("sliver vertex not found")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ex.bestWeight(sliver, nil)
	}
}
