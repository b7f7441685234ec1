package geom

import "github.com/solidforge/solidforge/vecmath"

// PathPoint is one control point of a Path: a position plus whether the
// point is a smooth curve endpoint or a sharp corner, with optional
// per-point color/texcoord carried through to generated vertices (§3).
type PathPoint struct {
	Position vecmath.Vector
	IsCurved bool
	Color    *vecmath.Color
	Texcoord *vecmath.Vector
}

// Path is an ordered, possibly-closed sequence of control points (§3, §4.5).
type Path struct {
	Points []PathPoint
}

// NewPath builds a Path from positions, defaulting every point to sharp.
func NewPath(positions []vecmath.Vector) Path {
	points := make([]PathPoint, len(positions))
	for i, p := range positions {
		points[i] = PathPoint{Position: p}
	}
	return Path{Points: points}
}

// IsClosed reports whether the first and last points coincide.
func (p Path) IsClosed() bool {
	if len(p.Points) < 2 {
		return false
	}
	return p.Points[0].Position.Equals(p.Points[len(p.Points)-1].Position)
}

// Bounds returns the axis-aligned bounds of the path's points.
func (p Path) Bounds() vecmath.Bounds {
	pts := make([]vecmath.Vector, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Position
	}
	return vecmath.BoundsForPoints(pts)
}

// Plane returns the path's supporting plane via Newell's method (§4.5),
// valid only for a closed, simple path; ok is false for open or
// non-planar input.
func (p Path) Plane() (plane vecmath.Plane, ok bool) {
	if !p.IsClosed() || !p.IsSimple() {
		return vecmath.Plane{}, false
	}
	loop := p.Points[:len(p.Points)-1]
	if len(loop) < 3 {
		return vecmath.Plane{}, false
	}
	var normal vecmath.Vector
	n := len(loop)
	for i := 0; i < n; i++ {
		cur := loop[i].Position
		next := loop[(i+1)%n].Position
		normal = normal.Add(vecmath.Vector{
			X: (cur.Y - next.Y) * (cur.Z + next.Z),
			Y: (cur.Z - next.Z) * (cur.X + next.X),
			Z: (cur.X - next.X) * (cur.Y + next.Y),
		})
	}
	if normal.LengthSquared() < vecmath.Epsilon {
		return vecmath.Plane{}, false
	}
	normal = normal.Normalized()
	for _, pt := range loop {
		if !vecmath.NewPlane(normal, loop[0].Position).OnPlane(pt.Position) {
			return vecmath.Plane{}, false
		}
	}
	return vecmath.NewPlane(normal, loop[0].Position), true
}

// IsSimple reports whether no two non-adjacent segments of the path cross
// (§3). Segments sharing an endpoint are not considered crossing.
func (p Path) IsSimple() bool {
	n := len(p.Points)
	if n < 4 {
		return true
	}
	segCount := n - 1
	for i := 0; i < segCount; i++ {
		for j := i + 1; j < segCount; j++ {
			if j == i || (j+1)%segCount == i || (i+1)%segCount == j {
				continue
			}
			a1, a2 := p.Points[i].Position, p.Points[i+1].Position
			b1, b2 := p.Points[j].Position, p.Points[j+1].Position
			if segmentsCross(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

func segmentsCross(a1, a2, b1, b2 vecmath.Vector) bool {
	d1 := orient2D(b1, b2, a1)
	d2 := orient2D(b1, b2, a2)
	d3 := orient2D(a1, a2, b1)
	d4 := orient2D(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// orient2D uses the xy-projection of the three points — sufficient for the
// path-simplicity check since self-intersection tests operate on already
// roughly-planar script-authored paths.
func orient2D(a, b, c vecmath.Vector) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Subpaths decomposes the path at self-touching joints (§4.5): whenever a
// point equals an earlier non-adjacent point, a subpath closes there and a
// new one begins at the same position.
func (p Path) Subpaths() []Path {
	if len(p.Points) == 0 {
		return nil
	}
	var out []Path
	var cur []PathPoint
	seen := map[int]int{} // position hash -> index within cur
	for _, pt := range p.Points {
		h := int(pt.Position.Hash() & 0x7fffffff)
		if idx, ok := seen[h]; ok && idx < len(cur)-1 {
			cur = append(cur, pt)
			out = append(out, Path{Points: append([]PathPoint{}, cur...)})
			cur = []PathPoint{pt}
			seen = map[int]int{h: 0}
			continue
		}
		seen[h] = len(cur)
		cur = append(cur, pt)
	}
	if len(cur) > 0 {
		out = append(out, Path{Points: cur})
	}
	return out
}

// FaceVertices tessellates a simple closed planar path into triangle
// vertices with outward-consistent normals (§4.5), via the shared
// ear-clipping Triangulate.
func (p Path) FaceVertices(material *vecmath.Material) []Polygon {
	plane, ok := p.Plane()
	if !ok {
		return nil
	}
	loop := p.Points
	if p.IsClosed() {
		loop = loop[:len(loop)-1]
	}
	verts := make([]Vertex, len(loop))
	for i, pt := range loop {
		v := NewVertex(pt.Position).WithNormal(plane.Normal)
		if pt.Color != nil {
			v = v.WithColor(*pt.Color)
		}
		verts[i] = v
	}
	return Triangulate(verts, material)
}

// EdgeVertex is one side-wall vertex emitted by EdgeVertices, carrying a
// cumulative-arc-length texcoord.v (§4.5).
type EdgeVertex struct {
	Position vecmath.Vector
	Normal   vecmath.Vector
	V        float64
}

// EdgeVertices emits one (position, normal, v) entry per path point for
// extrusion/loft side walls (§4.5): curve endpoints get the averaged
// normal of their adjacent segments; sharp points keep the segment-facing
// normal. Normal here is the tangent crossed with +Y (with +X when the
// tangent is parallel to Y), normalized: it is perpendicular to the
// segment and lies in the path's plane only for paths drawn in a plane
// perpendicular to Y; for other paths it is not an in-plane normal.
// Extrusion uses it unchanged as the side-wall vertex normal.
func (p Path) EdgeVertices() []EdgeVertex {
	n := len(p.Points)
	if n == 0 {
		return nil
	}
	out := make([]EdgeVertex, n)
	var cum float64
	for i, pt := range p.Points {
		if i > 0 {
			cum += pt.Position.Distance(p.Points[i-1].Position)
		}
		out[i] = EdgeVertex{Position: pt.Position, Normal: segmentNormal(p, i), V: cum}
	}
	total := cum
	if total > vecmath.Epsilon {
		for i := range out {
			out[i].V /= total
		}
	}
	return out
}

func segmentNormal(p Path, i int) vecmath.Vector {
	n := len(p.Points)
	var prevDir, nextDir vecmath.Vector
	if i > 0 {
		prevDir = p.Points[i].Position.Subtract(p.Points[i-1].Position).Normalized()
	}
	if i < n-1 {
		nextDir = p.Points[i+1].Position.Subtract(p.Points[i].Position).Normalized()
	}
	var tangent vecmath.Vector
	if p.Points[i].IsCurved {
		tangent = prevDir.Add(nextDir).Normalized()
	} else if nextDir.LengthSquared() > 0 {
		tangent = nextDir
	} else {
		tangent = prevDir
	}
	up := vecmath.Vector{Y: 1}
	normal := tangent.Cross(up)
	if normal.LengthSquared() < vecmath.Epsilon {
		normal = tangent.Cross(vecmath.Vector{X: 1})
	}
	return normal.Normalized()
}

// ClippedToYAxis splits the path against the plane x=0, keeping the x≤0
// half-space (§4.5) — used by the lathe builder. Points with x>0 are
// dropped, not mirrored, so a profile drawn wholly on the +X side of the
// axis clips down to its on-axis points.
func (p Path) ClippedToYAxis() Path {
	plane := vecmath.Plane{Normal: vecmath.Vector{X: 1}, W: 0}
	var out []PathPoint
	n := len(p.Points)
	for i := 0; i < n; i++ {
		cur := p.Points[i]
		if cur.Position.Compare(plane) != vecmath.Front {
			out = append(out, cur)
		}
		if i == n-1 {
			break
		}
		next := p.Points[i+1]
		ct, nt := cur.Position.Compare(plane), next.Position.Compare(plane)
		if (ct == vecmath.Front && nt == vecmath.Back) || (ct == vecmath.Back && nt == vecmath.Front) {
			_, t, ok := plane.Intersect(cur.Position, next.Position)
			if ok {
				mid := cur.Position.Lerp(next.Position, t)
				out = append(out, PathPoint{Position: mid, IsCurved: cur.IsCurved})
			}
		}
	}
	return Path{Points: out}
}
