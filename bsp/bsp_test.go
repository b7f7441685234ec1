package bsp_test

import (
	"testing"

	"github.com/solidforge/solidforge/bsp"
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

func cubePolygons(t *testing.T, half float64) []geom.Polygon {
	t.Helper()
	faces := [][4]vecmath.Vector{
		{{-half, -half, half}, {half, -half, half}, {half, half, half}, {-half, half, half}},
		{{half, -half, -half}, {-half, -half, -half}, {-half, half, -half}, {half, half, -half}},
		{{-half, -half, -half}, {-half, -half, half}, {-half, half, half}, {-half, half, -half}},
		{{half, -half, half}, {half, -half, -half}, {half, half, -half}, {half, half, half}},
		{{-half, half, half}, {half, half, half}, {half, half, -half}, {-half, half, -half}},
		{{-half, -half, -half}, {half, -half, -half}, {half, -half, half}, {-half, -half, half}},
	}
	var polys []geom.Polygon
	for _, f := range faces {
		verts := make([]geom.Vertex, 4)
		for i, p := range f {
			verts[i] = geom.NewVertex(p)
		}
		poly, ok := geom.NewPolygon(verts, nil)
		if !ok {
			t.Fatalf("degenerate cube face")
		}
		polys = append(polys, poly)
	}
	return polys
}

func TestBSPContainsPointCube(t *testing.T) {
	tree := bsp.Build(cubePolygons(t, 1))
	if !tree.ContainsPoint(vecmath.Vector{}) {
		t.Fatalf("expected origin inside unit cube")
	}
	if tree.ContainsPoint(vecmath.Vector{X: 5}) {
		t.Fatalf("expected far point outside unit cube")
	}
	if !tree.ContainsPoint(vecmath.Vector{X: 0.99}) {
		t.Fatalf("expected near-boundary interior point inside unit cube")
	}
}

func TestInvertTwiceIsIdentity(t *testing.T) {
	tree := bsp.Build(cubePolygons(t, 1))
	twice := tree.Invert().Invert()
	inside := vecmath.Vector{}
	if tree.ContainsPoint(inside) != twice.ContainsPoint(inside) {
		t.Fatalf("double inversion changed containment at origin")
	}
	outside := vecmath.Vector{X: 5}
	if tree.ContainsPoint(outside) != twice.ContainsPoint(outside) {
		t.Fatalf("double inversion changed containment outside cube")
	}
}

func TestClipRemovesInteriorPolygons(t *testing.T) {
	a := bsp.Build(cubePolygons(t, 1))
	b := cubePolygons(t, 0.5) // fully inside a
	clipped := a.Clip(b, false)
	if len(clipped) != 0 {
		t.Fatalf("expected all of a smaller interior cube's faces to be clipped away, got %d left", len(clipped))
	}
}

func TestClipKeepsExteriorPolygons(t *testing.T) {
	a := bsp.Build(cubePolygons(t, 1))
	b := cubePolygons(t, 5) // fully outside/containing a
	clipped := a.Clip(b, false)
	if len(clipped) == 0 {
		t.Fatalf("expected far polygons to survive clipping")
	}
}
