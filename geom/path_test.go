package geom_test

import (
	"testing"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

func square() geom.Path {
	return geom.NewPath([]vecmath.Vector{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	})
}

func TestPathIsClosed(t *testing.T) {
	if !square().IsClosed() {
		t.Fatalf("expected square path to be closed")
	}
	open := geom.NewPath([]vecmath.Vector{{X: -1}, {X: 1}})
	if open.IsClosed() {
		t.Fatalf("expected open path to report not closed")
	}
}

func TestPathPlaneIsZNormal(t *testing.T) {
	plane, ok := square().Plane()
	if !ok {
		t.Fatalf("expected planar square to yield a plane")
	}
	if plane.Normal.Z < 0 {
		plane = plane.Flipped()
	}
	if !plane.Normal.Equals(vecmath.Vector{Z: 1}) {
		t.Fatalf("expected square's plane normal to be +Z, got %v", plane.Normal)
	}
}

func TestPathFaceVerticesProducesTriangles(t *testing.T) {
	faces := square().FaceVertices(nil)
	if len(faces) == 0 {
		t.Fatalf("expected at least one triangle from a square face")
	}
	for _, f := range faces {
		if len(f.Vertices) != 3 {
			t.Fatalf("expected triangulated face vertices, got %d-gon", len(f.Vertices))
		}
	}
}

func TestPathEdgeVerticesCumulativeArcLength(t *testing.T) {
	ev := square().EdgeVertices()
	if len(ev) != 5 {
		t.Fatalf("expected 5 edge vertices for a 5-point closed square path, got %d", len(ev))
	}
	if ev[0].V != 0 {
		t.Fatalf("expected first edge vertex v=0, got %v", ev[0].V)
	}
	if ev[len(ev)-1].V != 1 {
		t.Fatalf("expected last edge vertex v=1 (full arc length), got %v", ev[len(ev)-1].V)
	}
}

func TestPathClippedToYAxisKeepsNegativeXHalf(t *testing.T) {
	p := geom.NewPath([]vecmath.Vector{{X: -1}, {X: 1}})
	clipped := p.ClippedToYAxis()
	for _, pt := range clipped.Points {
		if pt.Position.X > vecmath.Epsilon {
			t.Fatalf("expected every point to be at x<=0, got %v", pt.Position)
		}
	}
}
