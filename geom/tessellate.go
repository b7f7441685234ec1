package geom

import "github.com/solidforge/solidforge/vecmath"

// basis2D returns two orthonormal vectors spanning plane p, used to project
// 3D planar points into a 2D coordinate frame for ear-clipping.
func basis2D(p vecmath.Plane) (u, v vecmath.Vector) {
	ref := vecmath.Vector{X: 1}
	if p.Normal.Cross(ref).LengthSquared() < 1e-6 {
		ref = vecmath.Vector{Y: 1}
	}
	u = p.Normal.Cross(ref).Normalized()
	v = p.Normal.Cross(u).Normalized()
	return
}

func project2D(pos vecmath.Vector, origin, u, v vecmath.Vector) (float64, float64) {
	rel := pos.Subtract(origin)
	return rel.Dot(u), rel.Dot(v)
}

func cross2D(ox, oy, ax, ay, bx, by float64) float64 {
	return (ax-ox)*(by-oy) - (ay-oy)*(bx-ox)
}

// Triangulate ear-clips a simple (possibly non-convex) planar vertex loop
// into triangles, each emitted as its own convex Polygon sharing the
// source's material and a fresh id allocated per triangle (§3 Polygon
// invariant ii: only convex polygons are ever admitted).
func Triangulate(vertices []Vertex, material *vecmath.Material) []Polygon {
	if len(vertices) < 3 {
		return nil
	}
	if len(vertices) == 3 {
		if p, ok := NewPolygon(append([]Vertex{}, vertices...), material); ok {
			return []Polygon{p}
		}
		return nil
	}

	plane, ok := planeFromVertices(vertices)
	if !ok {
		return nil
	}
	origin := vertices[0].Position
	u, v := basis2D(plane)

	ring := make([]projectedVertex, len(vertices))
	for i, vtx := range vertices {
		x, y := project2D(vtx.Position, origin, u, v)
		ring[i] = projectedVertex{v: vtx, x: x, y: y}
	}

	// ensure CCW orientation in the projected frame
	if signedArea(ring) < 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}

	var out []Polygon
	remaining := ring
	guard := 0
	for len(remaining) > 3 && guard < len(vertices)*len(vertices)+8 {
		guard++
		earFound := false
		n := len(remaining)
		for i := 0; i < n; i++ {
			prev := remaining[(i-1+n)%n]
			cur := remaining[i]
			next := remaining[(i+1)%n]
			if cross2D(prev.x, prev.y, cur.x, cur.y, next.x, next.y) <= 0 {
				continue // reflex or collinear vertex, can't be an ear tip
			}
			isEar := true
			for j := 0; j < n; j++ {
				if j == (i-1+n)%n || j == i || j == (i+1)%n {
					continue
				}
				if pointInTriangle(remaining[j].x, remaining[j].y, prev.x, prev.y, cur.x, cur.y, next.x, next.y) {
					isEar = false
					break
				}
			}
			if !isEar {
				continue
			}
			tri, ok := NewPolygon([]Vertex{prev.v, cur.v, next.v}, material)
			if ok {
				out = append(out, tri)
			}
			remaining = append(append([]projectedVertex{}, remaining[:i]...), remaining[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			break // degenerate input; emit what we have
		}
	}
	if len(remaining) == 3 {
		if tri, ok := NewPolygon([]Vertex{remaining[0].v, remaining[1].v, remaining[2].v}, material); ok {
			out = append(out, tri)
		}
	}
	return out
}

// projectedVertex pairs a source vertex with its 2D projection for
// ear-clipping.
type projectedVertex struct {
	v    Vertex
	x, y float64
}

func signedArea(ring []projectedVertex) float64 {
	var area float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].x*ring[j].y - ring[j].x*ring[i].y
	}
	return area / 2
}

func pointInTriangle(px, py, ax, ay, bx, by, cx, cy float64) bool {
	d1 := cross2D(ax, ay, bx, by, px, py)
	d2 := cross2D(bx, by, cx, cy, px, py)
	d3 := cross2D(cx, cy, ax, ay, px, py)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Tessellate restores convexity after a spanning split (§4.1) or other
// operation that may have produced a non-convex loop: convex loops pass
// through as a single Polygon, non-convex loops are triangulated.
func Tessellate(vertices []Vertex, material *vecmath.Material) []Polygon {
	if isConvex(vertices) {
		if p, ok := NewPolygon(vertices, material); ok {
			return []Polygon{p}
		}
	}
	return Triangulate(vertices, material)
}

func isConvex(vertices []Vertex) bool {
	if len(vertices) < 3 {
		return false
	}
	plane, ok := planeFromVertices(vertices)
	if !ok {
		return false
	}
	origin := vertices[0].Position
	u, v := basis2D(plane)
	n := len(vertices)
	sign := 0
	for i := 0; i < n; i++ {
		ax, ay := project2D(vertices[i].Position, origin, u, v)
		bx, by := project2D(vertices[(i+1)%n].Position, origin, u, v)
		cx, cy := project2D(vertices[(i+2)%n].Position, origin, u, v)
		cr := cross2D(ax, ay, bx, by, cx, cy)
		if cr > 1e-9 {
			if sign < 0 {
				return false
			}
			sign = 1
		} else if cr < -1e-9 {
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
