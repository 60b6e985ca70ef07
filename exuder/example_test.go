// Package exuder_test provides runnable examples for the exudation engine.
// Each example is runnable via “go test -run Example”, showing both code and
// expected output.
package exuder_test

import (
	"fmt"

	"github.com/tetforge/exude/exuder"
	"github.com/tetforge/exude/geom"
	"github.com/tetforge/exude/mesh"
)

// ExampleExuder_Run exudes a tiny mesh: a regular tetrahedron with one
// interior vertex, every cell already above the default quality bound, so
// the engine reports the bound reached without pumping anything.
func ExampleExuder_Run() {
	// 1) Triangulate five weighted points (weights start at zero).
	tr, err := mesh.Triangulate([]geom.WeightedPoint{
		{Point3: geom.Point3{X: 1, Y: 1, Z: 1}},
		{Point3: geom.Point3{X: 1, Y: -1, Z: -1}},
		{Point3: geom.Point3{X: -1, Y: 1, Z: -1}},
		{Point3: geom.Point3{X: -1, Y: -1, Z: 1}},
		{Point3: geom.Point3{}},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) Mark every bounded cell as part of the mesh domain (subdomain 1).
	cx := mesh.NewComplex(tr)
	for _, c := range tr.FiniteCells() {
		cx.AddCellToComplex(c, 1)
	}

	// 3) Build the engine with the default radius-ratio criterion and run.
	ex, err := exuder.New(cx, exuder.MinRadiusRatio{}, exuder.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(ex.Run())
	// Output: BOUND_REACHED
}
