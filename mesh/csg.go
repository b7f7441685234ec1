package mesh

import (
	"github.com/solidforge/solidforge/bsp"
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

// Union computes A ∪ B following the recipe of §4.3: a's polygons are
// clipped against b's tree keeping coplanar-front fragments, b's polygons
// are clipped against a's tree discarding them, and the surviving
// fragments from both operands are combined and deduplicated along any
// shared seam.
func Union(a, b Mesh) Mesh {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	treeA := bsp.Build(a.Polygons())
	treeB := bsp.Build(b.Polygons())

	pa := treeB.Clip(a.Polygons(), true)
	pb := treeA.Clip(b.Polygons(), false)

	return New(dedupeCoplanarDuplicates(append(pa, pb...)))
}

// Intersection computes A ∩ B: both operands are inverted, clipped against
// the other's inverted tree so only the part inside the other operand
// survives, then re-inverted (§4.3) — the classic "double negative"
// construction of an intersection from clip+invert.
func Intersection(a, b Mesh) Mesh {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty
	}
	treeA := bsp.Build(a.Polygons())
	treeB := bsp.Build(b.Polygons())

	invA := invertedPolygons(a.Polygons())
	invB := invertedPolygons(b.Polygons())

	pa := treeB.Invert().Clip(invA, false)
	pb := treeA.Invert().Clip(invB, false)

	pa = invertedPolygons(pa)
	pb = invertedPolygons(pb)

	return New(dedupeCoplanarDuplicates(append(pa, pb...)))
}

// Difference computes A − B: a's polygons are inverted, clipped against
// b's tree (dropping the part of a inside b) and restored; b's polygons
// are clipped against a's inverted tree (keeping the part of b inside a)
// and inverted so they face into the carved cavity (§4.3).
func Difference(a, b Mesh) Mesh {
	if a.IsEmpty() {
		return Empty
	}
	if b.IsEmpty() {
		return a
	}
	treeA := bsp.Build(a.Polygons())
	treeB := bsp.Build(b.Polygons())

	invA := invertedPolygons(a.Polygons())

	pa := treeB.Clip(invA, false)
	pb := treeA.Invert().Clip(b.Polygons(), true)
	pb = invertedPolygons(pb)

	pa = invertedPolygons(pa)

	return New(dedupeCoplanarDuplicates(append(pa, pb...)))
}

// Xor computes the symmetric difference (A ∪ B) − (A ∩ B) (§4.3). Built
// directly from Union/Intersection/Difference rather than a dedicated
// clip sequence, since the two composite operations already carry the
// correct coplanar tie-break behavior.
func Xor(a, b Mesh) Mesh {
	union := Union(a, b)
	inter := Intersection(a, b)
	return Difference(union, inter)
}

// Stencil repaints the portion of b's geometry that lies inside a with
// the given material (it is not read from a's polygons), leaving a's own
// geometry and the exterior portion of b untouched (§4.3) — used to
// project decals/material masks from one mesh onto another without
// altering either's shape.
func Stencil(a, b Mesh, material *vecmath.Material) Mesh {
	if a.IsEmpty() || b.IsEmpty() {
		return a
	}
	treeA := bsp.Build(a.Polygons())

	invA := treeA.Invert()
	inside := invA.Clip(b.Polygons(), false)
	outside := treeA.Clip(b.Polygons(), false)

	out := make([]geom.Polygon, 0, len(a.Polygons())+len(inside)+len(outside))
	out = append(out, a.Polygons()...)
	for _, p := range inside {
		out = append(out, p.WithMaterial(material))
	}
	out = append(out, outside...)
	return New(out)
}

func invertedPolygons(polys []geom.Polygon) []geom.Polygon {
	out := make([]geom.Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.Flipped()
	}
	return out
}

// coplanarKey canonicalizes a polygon's plane and vertex position set so
// that two fragments occupying the exact same seam, however they were
// tessellated, hash identically.
type coplanarKey struct {
	plane vecmath.Plane
	hash  uint64
}

// dedupeCoplanarDuplicates resolves the case where a CSG operation leaves
// two geometrically identical coplanar fragments on a shared seam: if
// their windings agree they're a redundant duplicate of the same surface
// and only one is kept; if their windings are opposed they face directly
// into each other and both are discarded, per the spec's "identical
// coplanar fragments cancel deterministically" rule (§4.2).
func dedupeCoplanarDuplicates(polys []geom.Polygon) []geom.Polygon {
	type entry struct {
		poly      geom.Polygon
		canonHash uint64
		winding   int
	}
	groups := map[vecmath.Plane][]entry{}
	planeKeys := make([]vecmath.Plane, 0, len(polys))
	planeSeen := map[vecmath.Plane]bool{}

	for _, p := range polys {
		plane := canonicalPlane(p.Plane)
		h, w := vertexSetHash(p)
		groups[plane] = append(groups[plane], entry{poly: p, canonHash: h, winding: w})
		if !planeSeen[plane] {
			planeSeen[plane] = true
			planeKeys = append(planeKeys, plane)
		}
	}

	var out []geom.Polygon
	for _, plane := range planeKeys {
		entries := groups[plane]
		discarded := make([]bool, len(entries))
		for i := 0; i < len(entries); i++ {
			if discarded[i] {
				continue
			}
			matched := false
			for j := i + 1; j < len(entries); j++ {
				if discarded[j] || entries[j].canonHash != entries[i].canonHash {
					continue
				}
				discarded[j] = true
				if entries[j].winding == entries[i].winding {
					// identical duplicate surface: keep exactly one copy
				} else {
					discarded[i] = true // opposing faces cancel
				}
				matched = true
				break
			}
			_ = matched
		}
		for i, e := range entries {
			if !discarded[i] {
				out = append(out, e.poly)
			}
		}
	}
	return out
}

func canonicalPlane(p vecmath.Plane) vecmath.Plane {
	if p.Normal.X < 0 || (p.Normal.X == 0 && p.Normal.Y < 0) || (p.Normal.X == 0 && p.Normal.Y == 0 && p.Normal.Z < 0) {
		return p.Flipped()
	}
	return p
}

// vertexSetHash returns an order-independent hash of the polygon's vertex
// positions plus its winding sign (+1 if its stored normal agrees with
// the canonical plane's, -1 otherwise).
func vertexSetHash(p geom.Polygon) (hash uint64, winding int) {
	for _, v := range p.Vertices {
		hash ^= v.Position.Hash()
	}
	if p.Plane.Normal.Dot(canonicalPlane(p.Plane).Normal) >= 0 {
		winding = 1
	} else {
		winding = -1
	}
	return hash, winding
}
