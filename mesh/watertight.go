package mesh

import (
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

// IsWatertight reports (and caches) whether every edge in the mesh is
// shared by exactly two polygons (§4.4): a solid produced by a CSG
// operation on two watertight operands is watertight unless the
// operands touched along a seam that tessellated inconsistently.
func (m Mesh) IsWatertight() bool {
	if m.s == nil {
		return true
	}
	m.s.watertightOnce.Do(func() {
		m.s.watertight = computeWatertight(m.s.polygons)
	})
	return m.s.watertight
}

func edgeCounts(polygons []geom.Polygon) map[vecmath.LineSegment]int {
	counts := make(map[vecmath.LineSegment]int)
	for _, p := range polygons {
		for _, e := range p.Edges() {
			counts[e]++
		}
	}
	return counts
}

func computeWatertight(polygons []geom.Polygon) bool {
	for _, n := range edgeCounts(polygons) {
		if n != 2 {
			return false
		}
	}
	return true
}

// Repair attempts a best-effort T-junction fix (§4.4): for every edge
// shared by exactly one polygon (a boundary edge, the signature of a
// T-junction where a neighboring face was split but this one wasn't), it
// looks for another polygon with a vertex landing in the interior of
// that edge and re-tessellates the offending polygon by inserting the
// stray vertex into its loop. Geometry this can't resolve (genuine holes,
// non-manifold seams) is left as-is; callers should re-check
// IsWatertight after calling Repair.
func (m Mesh) Repair() Mesh {
	if m.IsEmpty() {
		return m
	}
	polys := append([]geom.Polygon{}, m.Polygons()...)
	counts := edgeCounts(polys)

	boundary := make([]vecmath.LineSegment, 0)
	for e, n := range counts {
		if n == 1 {
			boundary = append(boundary, e)
		}
	}
	if len(boundary) == 0 {
		return m
	}

	stray := collectStrayVertices(polys, boundary)
	if len(stray) == 0 {
		return m
	}

	out := make([]geom.Polygon, 0, len(polys))
	for _, p := range polys {
		out = append(out, insertStrayVertices(p, stray, p.Material)...)
	}
	return New(out)
}

// collectStrayVertices finds, for each boundary edge, any vertex from a
// different polygon that lies strictly between the edge's endpoints —
// the classic T-junction shape where a neighbor's edge was subdivided but
// this edge wasn't.
func collectStrayVertices(polys []geom.Polygon, boundary []vecmath.LineSegment) map[vecmath.LineSegment][]vecmath.Vector {
	out := make(map[vecmath.LineSegment][]vecmath.Vector)
	for _, e := range boundary {
		for _, p := range polys {
			for _, v := range p.Vertices {
				if pointOnSegmentInterior(v.Position, e) {
					out[e] = append(out[e], v.Position)
				}
			}
		}
	}
	return out
}

func pointOnSegmentInterior(p vecmath.Vector, e vecmath.LineSegment) bool {
	a, b := e.Start, e.End
	if p.Equals(a) || p.Equals(b) {
		return false
	}
	ab := b.Subtract(a)
	ap := p.Subtract(a)
	cross := ab.Cross(ap)
	if cross.LengthSquared() > vecmath.Epsilon*vecmath.Epsilon*ab.LengthSquared() {
		return false // not collinear
	}
	t := ap.Dot(ab) / ab.LengthSquared()
	return t > vecmath.Epsilon && t < 1-vecmath.Epsilon
}

// insertStrayVertices re-tessellates p, splicing any stray vertex found
// on one of p's own edges into the loop before re-triangulating.
func insertStrayVertices(p geom.Polygon, stray map[vecmath.LineSegment][]vecmath.Vector, material *vecmath.Material) []geom.Polygon {
	n := len(p.Vertices)
	touched := false
	var loop []geom.Vertex
	for i := 0; i < n; i++ {
		cur := p.Vertices[i]
		next := p.Vertices[(i+1)%n]
		loop = append(loop, cur)
		seg := vecmath.NewLineSegment(cur.Position, next.Position)
		extras := stray[seg]
		if len(extras) == 0 {
			continue
		}
		touched = true
		ordered := orderAlongSegment(cur.Position, extras)
		for _, pos := range ordered {
			t := segmentParameter(cur.Position, next.Position, pos)
			loop = append(loop, geom.Lerp(cur, next, t))
		}
	}
	if !touched {
		return []geom.Polygon{p}
	}
	return geom.Tessellate(loop, material)
}

func segmentParameter(a, b, p vecmath.Vector) float64 {
	ab := b.Subtract(a)
	ap := p.Subtract(a)
	denom := ab.Dot(ab)
	if denom < vecmath.Epsilon*vecmath.Epsilon {
		return 0
	}
	return ap.Dot(ab) / denom
}

func orderAlongSegment(origin vecmath.Vector, points []vecmath.Vector) []vecmath.Vector {
	out := append([]vecmath.Vector{}, points...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Subtract(origin).LengthSquared() < out[j-1].Subtract(origin).LengthSquared(); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
