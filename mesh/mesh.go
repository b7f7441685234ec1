// Package mesh implements the immutable Mesh handle (§3) and the boolean
// CSG operators built on bsp.Node clipping (§4.3), watertight repair
// (§4.4) and submesh/containment queries.
package mesh

import (
	"sync"

	"github.com/solidforge/solidforge/bsp"
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

// storage is the shared inner block a Mesh handle points to. Lazily
// computed fields use sync.Once so concurrent readers compute them at
// most once; Mesh values are otherwise immutable (§9 design note).
type storage struct {
	polygons []geom.Polygon

	boundsOnce sync.Once
	bounds     vecmath.Bounds

	convexOnce  sync.Once
	convexKnown bool
	convex      bool

	watertightOnce sync.Once
	watertight     bool

	submeshesOnce sync.Once
	submeshes     [][]geom.Polygon

	materialsOnce sync.Once
	materials     []*vecmath.Material
}

// Mesh is an immutable, reference-counted (via Go's GC) handle to a shared
// polygon-storage block. Cloning a Mesh never copies polygons.
type Mesh struct {
	s *storage
}

// Empty is the canonical empty mesh: convex, watertight, no submeshes.
var Empty = Mesh{s: &storage{polygons: nil, convexKnown: true, convex: true}}

// New builds a mesh from a polygon list with convexity left for lazy
// computation.
func New(polygons []geom.Polygon) Mesh {
	if len(polygons) == 0 {
		return Empty
	}
	return Mesh{s: &storage{polygons: polygons}}
}

// NewConvex builds a mesh the caller already knows is convex (e.g. a
// builder primitive), avoiding the lazy convexity scan.
func NewConvex(polygons []geom.Polygon) Mesh {
	if len(polygons) == 0 {
		return Empty
	}
	return Mesh{s: &storage{polygons: polygons, convexKnown: true, convex: true}}
}

// Polygons returns the mesh's polygon list. Callers must not mutate it.
func (m Mesh) Polygons() []geom.Polygon {
	if m.s == nil {
		return nil
	}
	return m.s.polygons
}

// IsEmpty reports whether the mesh has no polygons.
func (m Mesh) IsEmpty() bool { return m.s == nil || len(m.s.polygons) == 0 }

// Equals reduces to pointer identity, then falls back to polygon-list
// comparison (§9 design note).
func (m Mesh) Equals(o Mesh) bool {
	if m.s == o.s {
		return true
	}
	mp, op := m.Polygons(), o.Polygons()
	if len(mp) != len(op) {
		return false
	}
	for i := range mp {
		if !polygonsEqual(mp[i], op[i]) {
			return false
		}
	}
	return true
}

func polygonsEqual(a, b geom.Polygon) bool {
	if len(a.Vertices) != len(b.Vertices) {
		return false
	}
	if !a.Plane.Equals(b.Plane) {
		return false
	}
	for i := range a.Vertices {
		if !a.Vertices[i].Position.Equals(b.Vertices[i].Position) {
			return false
		}
	}
	return true
}

// Bounds returns (and caches) the mesh's axis-aligned bounds.
func (m Mesh) Bounds() vecmath.Bounds {
	if m.s == nil {
		return vecmath.EmptyBounds()
	}
	m.s.boundsOnce.Do(func() {
		b := vecmath.EmptyBounds()
		for _, p := range m.s.polygons {
			b = b.Union(p.Bounds())
		}
		m.s.bounds = b
	})
	return m.s.bounds
}

// IsConvex reports (and caches, unless already known at construction)
// whether every polygon plane has every other vertex on its back/coplanar
// side — the mesh-level convex test used by the empty/single-submesh
// invariant (§3).
func (m Mesh) IsConvex() bool {
	if m.s == nil {
		return true
	}
	m.s.convexOnce.Do(func() {
		if !m.s.convexKnown {
			m.s.convex = computeConvex(m.s.polygons)
			m.s.convexKnown = true
		}
	})
	return m.s.convex
}

func computeConvex(polygons []geom.Polygon) bool {
	for _, p := range polygons {
		for _, q := range polygons {
			for _, v := range q.Vertices {
				if v.Position.Compare(p.Plane) == vecmath.Front {
					return false
				}
			}
		}
	}
	return true
}

// Materials returns (and caches) the distinct materials referenced by the
// mesh's polygons, in first-seen order.
func (m Mesh) Materials() []*vecmath.Material {
	if m.s == nil {
		return nil
	}
	m.s.materialsOnce.Do(func() {
		seen := map[*vecmath.Material]bool{}
		var out []*vecmath.Material
		for _, p := range m.s.polygons {
			if p.Material == nil || seen[p.Material] {
				continue
			}
			seen[p.Material] = true
			out = append(out, p.Material)
		}
		m.s.materials = out
	})
	return m.s.materials
}

// ContainsPoint builds a BSP over the mesh (or reuses the cheap convex
// linear-chain path) and tests point containment (§4.2, §8 property 2).
func (m Mesh) ContainsPoint(p vecmath.Vector) bool {
	if m.IsEmpty() {
		return false
	}
	tree := bsp.Build(m.Polygons())
	return tree.ContainsPoint(p)
}

// Transformed applies t to every vertex position and (direction-corrected)
// normal of every polygon, returning a new mesh. Polygon ids are preserved
// since transforming doesn't change descent from a common source.
func (m Mesh) Transformed(t vecmath.Transform) Mesh {
	if m.IsEmpty() {
		return Empty
	}
	out := make([]geom.Polygon, 0, len(m.Polygons()))
	for _, p := range m.Polygons() {
		verts := make([]geom.Vertex, len(p.Vertices))
		for i, v := range p.Vertices {
			v.Position = t.ApplyPoint(v.Position)
			if !v.HasZeroNormal() {
				v.Normal = t.ApplyDirection(v.Normal)
			}
			verts[i] = v
		}
		if np, ok := geom.NewPolygonWithID(verts, p.Material, p.ID); ok {
			out = append(out, np)
		}
	}
	return New(out)
}

// WithMaterial returns a copy of the mesh with every polygon tagged with m.
func (mesh Mesh) WithMaterial(mat *vecmath.Material) Mesh {
	polys := mesh.Polygons()
	out := make([]geom.Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.WithMaterial(mat)
	}
	return New(out)
}

// Inverted flips every polygon (reversed winding, negated normals and
// plane) — the mesh-level analogue of bsp.Node.Invert used directly on a
// polygon list without building a tree.
func (mesh Mesh) Inverted() Mesh {
	polys := mesh.Polygons()
	out := make([]geom.Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.Flipped()
	}
	return New(out)
}
