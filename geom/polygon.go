package geom

import (
	"sync/atomic"

	"github.com/solidforge/solidforge/vecmath"
)

var nextPolygonID int64

// NewPolygonID allocates a fresh polygon identity. Polygons produced by
// splitting a common ancestor share an id until they diverge structurally
// (§3 Polygon invariant iv, §4.1).
func NewPolygonID() int {
	return int(atomic.AddInt64(&nextPolygonID, 1))
}

// Polygon is a planar, convex, non-self-intersecting vertex loop.
type Polygon struct {
	Vertices []Vertex
	Plane    vecmath.Plane
	Material *vecmath.Material
	ID       int
}

// NewPolygon builds a polygon from an already-convex, already-planar vertex
// loop, computing its supporting plane from the first three non-collinear
// vertices. Callers that admit non-convex input must tessellate first
// (§3 Polygon invariant ii) — see Tessellate.
func NewPolygon(vertices []Vertex, material *vecmath.Material) (Polygon, bool) {
	plane, ok := planeFromVertices(vertices)
	if !ok {
		return Polygon{}, false
	}
	return Polygon{Vertices: vertices, Plane: plane, Material: material, ID: NewPolygonID()}, true
}

// NewPolygonWithID is NewPolygon but inherits an existing id, used when a
// split or transform produces a structurally-unchanged descendant.
func NewPolygonWithID(vertices []Vertex, material *vecmath.Material, id int) (Polygon, bool) {
	plane, ok := planeFromVertices(vertices)
	if !ok {
		return Polygon{}, false
	}
	return Polygon{Vertices: vertices, Plane: plane, Material: material, ID: id}, true
}

func planeFromVertices(vertices []Vertex) (vecmath.Plane, bool) {
	if len(vertices) < 3 {
		return vecmath.Plane{}, false
	}
	a := vertices[0].Position
	for i := 1; i+1 < len(vertices); i++ {
		if p, ok := vecmath.PlaneFromPoints(a, vertices[i].Position, vertices[i+1].Position); ok {
			return p, true
		}
	}
	return vecmath.Plane{}, false
}

// IsPlanar reports whether every vertex lies on p.Plane within tolerance
// (testable property 1 of §8).
func (p Polygon) IsPlanar() bool {
	for _, v := range p.Vertices {
		if !p.Plane.OnPlane(v.Position) {
			return false
		}
	}
	return true
}

// Flipped reverses vertex order and negates the plane and vertex normals —
// used by BSP inversion (§4.2).
func (p Polygon) Flipped() Polygon {
	n := len(p.Vertices)
	rev := make([]Vertex, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v.Flipped()
	}
	return Polygon{Vertices: rev, Plane: p.Plane.Flipped(), Material: p.Material, ID: p.ID}
}

// WithMaterial returns a copy of p tagged with material.
func (p Polygon) WithMaterial(m *vecmath.Material) Polygon {
	p.Material = m
	return p
}

// WithID returns a copy of p tagged with a different polygon id.
func (p Polygon) WithID(id int) Polygon {
	p.ID = id
	return p
}

// Positions returns just the vertex positions, convenient for bounds and
// hashing.
func (p Polygon) Positions() []vecmath.Vector {
	out := make([]vecmath.Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.Position
	}
	return out
}

// Bounds returns the axis-aligned bounds of the polygon's vertices.
func (p Polygon) Bounds() vecmath.Bounds {
	return vecmath.BoundsForPoints(p.Positions())
}

// Edges returns the polygon's edges as canonicalized line segments.
func (p Polygon) Edges() []vecmath.LineSegment {
	n := len(p.Vertices)
	out := make([]vecmath.LineSegment, n)
	for i := 0; i < n; i++ {
		a := p.Vertices[i].Position
		b := p.Vertices[(i+1)%n].Position
		out[i] = vecmath.NewLineSegment(a, b)
	}
	return out
}

// RecomputeZeroNormals replaces any zero-normal vertex with the polygon
// plane's normal (§3 Vertex invariant).
func (p Polygon) RecomputeZeroNormals() Polygon {
	changed := false
	verts := make([]Vertex, len(p.Vertices))
	for i, v := range p.Vertices {
		if v.HasZeroNormal() {
			v.Normal = p.Plane.Normal
			changed = true
		}
		verts[i] = v
	}
	if !changed {
		return p
	}
	p.Vertices = verts
	return p
}
