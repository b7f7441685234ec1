// Package builder produces Mesh values from Path/point inputs: extrude,
// lathe, loft, fill and hull (§4.6), plus the go-text-backed text builder
// (§4.6.7).
package builder

import (
	"math"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// Extrude sweeps each path along a straight axis (when guide is nil) or
// along a guide path, generating side walls from EdgeVertices and caps
// from FaceVertices when the source path is closed (§4.6). The result is
// built with mesh.New, so no watertight flag is set here; IsWatertight
// computes it from the polygons when asked.
func Extrude(paths []geom.Path, axis vecmath.Vector, guide *geom.Path, material *vecmath.Material) mesh.Mesh {
	var polys []geom.Polygon
	offsets := sweepOffsets(axis, guide)
	for _, p := range paths {
		polys = append(polys, extrudeOne(p, offsets, material)...)
	}
	return mesh.New(polys)
}

// sweepOffsets returns the translation applied at each of the extrusion's
// two rungs (start, end) — a straight sweep has exactly two; a guide path
// contributes one offset per guide point.
func sweepOffsets(axis vecmath.Vector, guide *geom.Path) []vecmath.Vector {
	if guide == nil {
		return []vecmath.Vector{{}, axis}
	}
	out := make([]vecmath.Vector, len(guide.Points))
	origin := guide.Points[0].Position
	for i, pt := range guide.Points {
		out[i] = pt.Position.Subtract(origin)
	}
	return out
}

func extrudeOne(p geom.Path, offsets []vecmath.Vector, material *vecmath.Material) []geom.Polygon {
	var out []geom.Polygon

	ev := p.EdgeVertices()
	n := len(ev)
	for layer := 0; layer+1 < len(offsets); layer++ {
		lo, hi := offsets[layer], offsets[layer+1]
		for i := 0; i+1 < n; i++ {
			a := ev[i]
			b := ev[i+1]
			quad := []geom.Vertex{
				geom.NewVertex(a.Position.Add(lo)).WithNormal(a.Normal).WithTexcoord(vecmath.Vector{X: 0, Y: a.V}),
				geom.NewVertex(b.Position.Add(lo)).WithNormal(b.Normal).WithTexcoord(vecmath.Vector{X: 0, Y: b.V}),
				geom.NewVertex(b.Position.Add(hi)).WithNormal(b.Normal).WithTexcoord(vecmath.Vector{X: 1, Y: b.V}),
				geom.NewVertex(a.Position.Add(hi)).WithNormal(a.Normal).WithTexcoord(vecmath.Vector{X: 1, Y: a.V}),
			}
			out = append(out, geom.Tessellate(quad, material)...)
		}
	}

	if p.IsClosed() {
		bottom := translatedPath(p, offsets[0])
		top := translatedPath(p, offsets[len(offsets)-1])
		out = append(out, bottom.FaceVertices(material)...)
		for _, poly := range top.FaceVertices(material) {
			out = append(out, poly.Flipped())
		}
	}
	return out
}

func translatedPath(p geom.Path, offset vecmath.Vector) geom.Path {
	out := geom.Path{Points: make([]geom.PathPoint, len(p.Points))}
	for i, pt := range p.Points {
		pt.Position = pt.Position.Add(offset)
		out.Points[i] = pt
	}
	return out
}

// Lathe rotates each path, clipped to the Y axis first, around the Y axis
// in segments angular slices, merging the seam edge (§4.6).
func Lathe(paths []geom.Path, segments int, material *vecmath.Material) mesh.Mesh {
	if segments < 3 {
		segments = 3
	}
	var polys []geom.Polygon
	for _, p := range paths {
		clipped := p.ClippedToYAxis()
		polys = append(polys, latheOne(clipped, segments, material)...)
	}
	return mesh.New(polys)
}

func latheOne(p geom.Path, segments int, material *vecmath.Material) []geom.Polygon {
	ev := p.EdgeVertices()
	n := len(ev)
	if n < 2 {
		return nil
	}
	step := 2 * math.Pi / float64(segments)

	ring := func(a int) []vecmath.Vector {
		angle := float64(a) * step
		rot := vecmath.RotationFromAxisAngle(vecmath.Vector{Y: 1}, angle)
		out := make([]vecmath.Vector, n)
		for i, v := range ev {
			out[i] = rot.Rotate(v.Position)
		}
		return out
	}

	var out []geom.Polygon
	for s := 0; s < segments; s++ {
		a := ring(s)
		b := ring(s + 1)
		for i := 0; i+1 < n; i++ {
			quad := []geom.Vertex{
				geom.NewVertex(a[i]),
				geom.NewVertex(a[i+1]),
				geom.NewVertex(b[i+1]),
				geom.NewVertex(b[i]),
			}
			out = append(out, geom.Tessellate(quad, material)...)
		}
	}
	return out
}
