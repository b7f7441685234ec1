// Package bsp builds the polygon-classifying binary space partition tree
// (§4.2) that the mesh package's CSG operators clip against. The node
// shape and the clip/invert/containsPoint algorithms mirror the 2D
// collision BSP this project's build tooling used to generate for level
// geometry, generalized here to 3D polygon soup.
package bsp

import (
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/vecmath"
)

// splitCost weighs a polygon split against an imbalanced partition when
// scoring candidate splitting planes (§4.2): K in the spec's
// |front-back| + K*splits heuristic.
const splitCost = 8

// Node is one vertex of the BSP tree: a splitting plane plus front/back
// children (nil at a leaf) and the polygons lying exactly on the plane.
type Node struct {
	Plane    vecmath.Plane
	Front    *Node
	Back     *Node
	Coplanar []geom.Polygon
	hasPlane bool
}

// Build constructs a BSP tree from a non-empty polygon list. Returns nil
// for an empty input.
func Build(polygons []geom.Polygon) *Node {
	if len(polygons) == 0 {
		return nil
	}
	n := &Node{}
	n.insert(polygons)
	return n
}

// insert partitions polygons against n's plane (selecting one first if n
// doesn't have one yet) and recurses into front/back children.
func (n *Node) insert(polygons []geom.Polygon) {
	if len(polygons) == 0 {
		return
	}
	if !n.hasPlane {
		n.Plane = selectSplittingPlane(polygons)
		n.hasPlane = true
	}

	var front, back []geom.Polygon
	acc := &geom.SplitResult{}
	for _, p := range polygons {
		geom.SplitPolygon(n.Plane, p, acc)
	}
	n.Coplanar = append(n.Coplanar, acc.CoplanarFront...)
	n.Coplanar = append(n.Coplanar, acc.CoplanarBack...)
	front = acc.Front
	back = acc.Back

	if len(front) > 0 {
		if n.Front == nil {
			n.Front = &Node{}
		}
		n.Front.insert(front)
	}
	if len(back) > 0 {
		if n.Back == nil {
			n.Back = &Node{}
		}
		n.Back.insert(back)
	}
}

// selectSplittingPlane scores a bounded sample of candidate planes (the
// input polygons' own planes, taken at a stride for large inputs) and
// picks the one minimizing |frontCount-backCount| + splitCost*splitCount.
// A linear-chain short-circuit (§4.2) uses the first polygon's plane
// outright when every other polygon already lies entirely on one side —
// the common case for input meshes built from convex primitives.
func selectSplittingPlane(polygons []geom.Polygon) vecmath.Plane {
	first := polygons[0].Plane
	if isLinearChain(first, polygons) {
		return first
	}

	const maxCandidates = 32
	step := 1
	if len(polygons) > maxCandidates {
		step = len(polygons) / maxCandidates
	}

	bestScore := -1
	best := first
	for i := 0; i < len(polygons); i += step {
		candidate := polygons[i].Plane
		frontCount, backCount, splitCount := 0, 0, 0
		for _, p := range polygons {
			switch geom.Classify(candidate, p) {
			case vecmath.Front:
				frontCount++
			case vecmath.Back:
				backCount++
			case vecmath.Spanning:
				splitCount++
			}
		}
		diff := frontCount - backCount
		if diff < 0 {
			diff = -diff
		}
		score := diff + splitCost*splitCount
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best
}

// isLinearChain reports whether every polygon other than the one supplying
// plane lies entirely on one side of it (front-only, back-only, or
// coplanar) — the BSP then degenerates to a chain without needing the
// scored candidate search.
func isLinearChain(plane vecmath.Plane, polygons []geom.Polygon) bool {
	sawFront, sawBack := false, false
	for _, p := range polygons {
		switch geom.Classify(plane, p) {
		case vecmath.Front:
			sawFront = true
		case vecmath.Back:
			sawBack = true
		case vecmath.Spanning:
			return false
		}
		if sawFront && sawBack {
			return false
		}
	}
	return true
}

// Clip partitions polygons against the tree rooted at n: front-going
// pieces descend into n.Front (or survive if absent), back-going pieces
// descend into n.Back (or are discarded if absent). Coplanar pieces route
// primarily by the sign of P.n·Q.n (geom.SplitPolygon has already sorted
// them into CoplanarFront/CoplanarBack on that basis): a CoplanarFront
// fragment is unambiguously front-aligned and goes straight to front. A
// CoplanarBack fragment only goes straight to back when its alignment is
// genuinely negative; a literal zero projection (n=0 tie, indistinguishable
// from "back" by SplitPolygon's bucketing alone) falls back to
// routeCoplanar's keepCoplanarFront/id-parity tie-break so that identical
// coplanar fragments from two CSG operands still cancel deterministically
// (§4.2).
func (n *Node) Clip(polygons []geom.Polygon, keepCoplanarFront bool) []geom.Polygon {
	if n == nil {
		return append([]geom.Polygon{}, polygons...)
	}
	if len(polygons) == 0 {
		return nil
	}

	acc := &geom.SplitResult{}
	for _, p := range polygons {
		geom.SplitPolygon(n.Plane, p, acc)
	}

	var front, back []geom.Polygon
	front = append(front, acc.CoplanarFront...)
	for _, p := range acc.CoplanarBack {
		if n.Plane.Normal.Dot(p.Plane.Normal) < 0 {
			back = append(back, p)
		} else {
			routeCoplanar(p, keepCoplanarFront, &front, &back)
		}
	}
	front = append(front, acc.Front...)
	back = append(back, acc.Back...)

	if n.Front != nil {
		front = n.Front.Clip(front, keepCoplanarFront)
	}
	if n.Back != nil {
		back = n.Back.Clip(back, keepCoplanarFront)
	} else {
		back = nil
	}

	return append(front, back...)
}

// routeCoplanar is the genuine-tie fallback for a coplanar fragment whose
// alignment with the splitting plane is a literal zero projection (n=0):
// with no sign to route by, it falls back to keepCoplanarFront and the
// polygon id's parity.
func routeCoplanar(p geom.Polygon, keepCoplanarFront bool, front, back *[]geom.Polygon) {
	if keepCoplanarFront || p.ID%2 == 0 {
		*front = append(*front, p)
	} else {
		*back = append(*back, p)
	}
}

// AllPolygons collects every polygon stored in the tree (coplanar buckets
// at every node, front and back subtrees), used to materialize a Mesh
// from a built BSP or to invert a whole tree's polygon set.
func (n *Node) AllPolygons() []geom.Polygon {
	if n == nil {
		return nil
	}
	out := append([]geom.Polygon{}, n.Coplanar...)
	out = append(out, n.Front.AllPolygons()...)
	out = append(out, n.Back.AllPolygons()...)
	return out
}

// Invert recursively flips every plane, swaps front/back children, and
// flips all coplanar polygons (§4.2) — returns a new tree, n is untouched.
func (n *Node) Invert() *Node {
	if n == nil {
		return nil
	}
	inverted := &Node{
		Plane:    n.Plane.Flipped(),
		hasPlane: n.hasPlane,
		Front:    n.Back.Invert(),
		Back:     n.Front.Invert(),
	}
	inverted.Coplanar = make([]geom.Polygon, len(n.Coplanar))
	for i, p := range n.Coplanar {
		inverted.Coplanar[i] = p.Flipped()
	}
	return inverted
}

// ContainsPoint descends the tree by signed distance; a point that lands
// in the back half-space at a leaf with no back child is inside the solid
// (§4.2, §8 property 2).
func (n *Node) ContainsPoint(p vecmath.Vector) bool {
	if n == nil {
		return false
	}
	switch p.Compare(n.Plane) {
	case vecmath.Front:
		if n.Front == nil {
			return false
		}
		return n.Front.ContainsPoint(p)
	default: // Back or Coplanar: coplanar points are treated as inside boundary
		if n.Back == nil {
			return true
		}
		return n.Back.ContainsPoint(p)
	}
}
