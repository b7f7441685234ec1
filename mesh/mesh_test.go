package mesh_test

import (
	"testing"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// cube returns an axis-aligned cube mesh centered at center with the given
// half-extent, used across this package's tests as a known-convex,
// known-watertight fixture.
func cube(t *testing.T, center vecmath.Vector, half float64) mesh.Mesh {
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
			verts[i] = geom.NewVertex(p.Add(center))
		}
		poly, ok := geom.NewPolygon(verts, nil)
		if !ok {
			t.Fatalf("degenerate cube face")
		}
		polys = append(polys, poly)
	}
	return mesh.NewConvex(polys)
}

func TestUnionWithEmptyIsIdentity(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	u := mesh.Union(a, mesh.Empty)
	if !u.Equals(a) {
		t.Fatalf("expected A ∪ ∅ == A")
	}
}

func TestIntersectionWithSelfIsSelf(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	i := mesh.Intersection(a, a)
	if i.IsEmpty() {
		t.Fatalf("expected A ∩ A to be non-empty")
	}
	if !i.Bounds().Min.Equals(a.Bounds().Min) || !i.Bounds().Max.Equals(a.Bounds().Max) {
		t.Fatalf("expected A ∩ A to have the same bounds as A, got %v vs %v", i.Bounds(), a.Bounds())
	}
}

func TestDifferenceWithSelfIsEmpty(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	d := mesh.Difference(a, a)
	if !d.IsEmpty() {
		t.Fatalf("expected A − A == ∅, got %d polygons", len(d.Polygons()))
	}
}

func TestDifferenceWithEmptyIsIdentity(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	d := mesh.Difference(a, mesh.Empty)
	if !d.Equals(a) {
		t.Fatalf("expected A − ∅ == A")
	}
}

func TestUnionOfDisjointCubesContainsBothInteriors(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 10}, 1)
	u := mesh.Union(a, b)
	if !u.ContainsPoint(vecmath.Vector{}) {
		t.Fatalf("expected union to contain A's center")
	}
	if !u.ContainsPoint(vecmath.Vector{X: 10}) {
		t.Fatalf("expected union to contain B's center")
	}
	if u.ContainsPoint(vecmath.Vector{X: 5}) {
		t.Fatalf("expected union to not contain the empty gap between A and B")
	}
}

func TestIntersectionOfDisjointCubesIsEmpty(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 10}, 1)
	i := mesh.Intersection(a, b)
	if !i.IsEmpty() {
		t.Fatalf("expected disjoint cubes to have an empty intersection")
	}
}

func TestDifferenceRemovesOverlapNotWhole(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 1}, 1) // overlaps a's +X half
	d := mesh.Difference(a, b)
	if d.IsEmpty() {
		t.Fatalf("expected A − B to keep A's far side")
	}
	if d.ContainsPoint(vecmath.Vector{X: 0.9}) {
		t.Fatalf("expected the overlapping region to be removed")
	}
	if !d.ContainsPoint(vecmath.Vector{X: -0.9}) {
		t.Fatalf("expected A's untouched far side to remain")
	}
}

func TestInvertedTwiceIsIdentity(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	twice := a.Inverted().Inverted()
	if !twice.Equals(a) {
		t.Fatalf("expected double inversion to be the identity")
	}
}

func TestConvexCubeIsWatertight(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	if !a.IsWatertight() {
		t.Fatalf("expected a closed cube to be watertight")
	}
}

func TestUnionOfOverlappingCubesIsWatertight(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 1}, 1)
	u := mesh.Union(a, b)
	if !u.IsWatertight() {
		t.Fatalf("expected the union of two overlapping cubes to remain watertight")
	}
}

func TestSubmeshesOfDisjointCubesReportsTwoComponents(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 10}, 1)
	u := mesh.New(append(append([]geom.Polygon{}, a.Polygons()...), b.Polygons()...))
	sub := u.Submeshes()
	if len(sub) != 2 {
		t.Fatalf("expected 2 disjoint submeshes, got %d", len(sub))
	}
}

func TestIsConvexDetectsNonConvexUnion(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 1, Y: 1}, 1)
	u := mesh.Union(a, b)
	if u.IsConvex() {
		t.Fatalf("expected an L-shaped union of overlapping cubes to be non-convex")
	}
}

func TestUnionOfAbuttingCubesCancelsCoincidentSeam(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{X: 2}, 1) // touches a's +X face exactly at x=1
	u := mesh.Union(a, b)
	if !u.IsWatertight() {
		t.Fatalf("expected abutting cubes sharing a coincident face to union into a watertight solid")
	}
	sub := u.Submeshes()
	if len(sub) != 1 {
		t.Fatalf("expected the shared seam to merge both cubes into 1 submesh, got %d", len(sub))
	}
	if !u.ContainsPoint(vecmath.Vector{X: 1}) {
		t.Fatalf("expected the union to contain the seam itself")
	}
}

func TestStencilPreservesAGeometryOutsideB(t *testing.T) {
	a := cube(t, vecmath.Vector{}, 1)
	b := cube(t, vecmath.Vector{}, 0.5)
	red := &vecmath.Material{Name: "red"}
	s := mesh.Stencil(a, b, red)
	if len(s.Polygons()) == 0 {
		t.Fatalf("expected stencil result to retain geometry")
	}
}
