package mesh

import (
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

// Submeshes returns (and caches) the mesh's connected components, where
// two polygons are connected when they share an edge (§3): a mesh built
// from several disjoint primitives reports one submesh per primitive.
func (m Mesh) Submeshes() [][]geom.Polygon {
	if m.s == nil {
		return nil
	}
	m.s.submeshesOnce.Do(func() {
		m.s.submeshes = computeSubmeshes(m.s.polygons)
	})
	return m.s.submeshes
}

// computeSubmeshes unions polygons sharing an edge via a simple
// union-find, then groups them by root.
func computeSubmeshes(polygons []geom.Polygon) [][]geom.Polygon {
	n := len(polygons)
	if n == 0 {
		return nil
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	byEdge := make(map[vecmath.LineSegment][]int)
	for i, p := range polygons {
		for _, e := range p.Edges() {
			byEdge[e] = append(byEdge[e], i)
		}
	}
	for _, indices := range byEdge {
		for i := 1; i < len(indices); i++ {
			union(indices[0], indices[i])
		}
	}

	groups := make(map[int][]geom.Polygon)
	var order []int
	for i, p := range polygons {
		r := find(i)
		if _, ok := groups[r]; !ok {
			order = append(order, r)
		}
		groups[r] = append(groups[r], p)
	}

	out := make([][]geom.Polygon, 0, len(order))
	for _, r := range order {
		out = append(out, groups[r])
	}
	return out
}
