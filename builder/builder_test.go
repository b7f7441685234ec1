package builder_test

import (
	"testing"

	"github.com/solidforge/solidforge/builder"
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

func unitSquarePath() geom.Path {
	return geom.NewPath([]vecmath.Vector{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	})
}

func TestExtrudeClosedSquareProducesCappedBox(t *testing.T) {
	m := builder.Extrude([]geom.Path{unitSquarePath()}, vecmath.Vector{Z: 2}, nil, nil)
	if m.IsEmpty() {
		t.Fatalf("expected extruded box to have geometry")
	}
	if !m.ContainsPoint(vecmath.Vector{Z: 1}) {
		t.Fatalf("expected extruded box to contain its own center")
	}
}

func TestLatheProfileProducesSolidOfRevolution(t *testing.T) {
	profile := geom.NewPath([]vecmath.Vector{{X: -1, Y: -1}, {X: -1, Y: 1}})
	m := builder.Lathe([]geom.Path{profile}, 16, nil)
	if m.IsEmpty() {
		t.Fatalf("expected lathe to produce geometry")
	}
}

func TestFillProducesOnlyFace(t *testing.T) {
	m := builder.Fill([]geom.Path{unitSquarePath()}, nil)
	if m.IsEmpty() {
		t.Fatalf("expected fill to produce a face")
	}
}

func TestLoftBetweenTwoSquaresProducesSides(t *testing.T) {
	bottom := unitSquarePath()
	top := geom.Path{Points: append([]geom.PathPoint{}, bottom.Points...)}
	for i := range top.Points {
		top.Points[i].Position.Z = 2
	}
	m := builder.Loft([]geom.Path{bottom, top}, nil)
	if m.IsEmpty() {
		t.Fatalf("expected loft to produce geometry")
	}
}

func TestHullOfCubeCornersIsConvex(t *testing.T) {
	pts := []vecmath.Vector{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	m := builder.Hull(pts, nil)
	if m.IsEmpty() {
		t.Fatalf("expected hull of cube corners to produce geometry")
	}
	if !m.IsConvex() {
		t.Fatalf("expected hull result to be convex")
	}
}

func TestHullOfThreePointsIsFlatFan(t *testing.T) {
	pts := []vecmath.Vector{{X: -1}, {X: 1}, {Y: 1}}
	m := builder.Hull(pts, nil)
	if m.IsEmpty() {
		t.Fatalf("expected flat-fan hull to have geometry")
	}
}
