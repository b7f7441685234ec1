package geom

import "github.com/solidforge/solidforge/vecmath"

// SplitResult buckets a polygon by its relation to a splitting plane (§4.1).
type SplitResult struct {
	CoplanarFront []Polygon
	CoplanarBack  []Polygon
	Front         []Polygon
	Back          []Polygon
}

// nextSplitID allocates the shared id for a novel front/back pair produced
// by a spanning split, so detessellation (§4.3) and clip tie-breaks (§4.2)
// can recognize fragments descended from the same spanning split.
func nextSplitID() int { return NewPolygonID() }

// SplitPolygon classifies poly against plane and appends it to the correct
// bucket(s) of acc, splitting spanning polygons into front/back fragments
// that inherit a freshly allocated shared id.
func SplitPolygon(plane vecmath.Plane, poly Polygon, acc *SplitResult) {
	const (
		coplanarBit = 0
		frontBit    = 1
		backBit     = 2
	)
	polyType := 0
	types := make([]int, len(poly.Vertices))
	for i, v := range poly.Vertices {
		t := int(v.Position.Compare(plane))
		types[i] = t
		polyType |= 1 << uint(t)
	}

	switch {
	case polyType == 1<<coplanarBit || polyType == 0:
		// All vertices coplanar (or the polygon is a single point — treat
		// as coplanar defensively).
		if plane.Normal.Dot(poly.Plane.Normal) > 0 {
			acc.CoplanarFront = append(acc.CoplanarFront, poly)
		} else {
			acc.CoplanarBack = append(acc.CoplanarBack, poly)
		}
	case polyType&(1<<int(vecmath.Back)) == 0:
		acc.Front = append(acc.Front, poly)
	case polyType&(1<<int(vecmath.Front)) == 0:
		acc.Back = append(acc.Back, poly)
	default:
		front, back := splitSpanning(plane, poly, types)
		newID := nextSplitID()
		if fp := Tessellate(front, poly.Material); len(fp) > 0 {
			for _, p := range fp {
				acc.Front = append(acc.Front, p.WithID(newID))
			}
		}
		if bp := Tessellate(back, poly.Material); len(bp) > 0 {
			for _, p := range bp {
				acc.Back = append(acc.Back, p.WithID(newID))
			}
		}
	}
}

// splitSpanning walks the vertex loop, emitting an interpolated vertex at
// each edge that crosses the plane into both output lists.
func splitSpanning(plane vecmath.Plane, poly Polygon, types []int) (front, back []Vertex) {
	n := len(poly.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		ti, tj := types[i], types[j]
		vi, vj := poly.Vertices[i], poly.Vertices[j]

		if ti != int(vecmath.Back) {
			front = append(front, vi)
		}
		if ti != int(vecmath.Front) {
			back = append(back, vi)
		}

		if (ti == int(vecmath.Front) && tj == int(vecmath.Back)) ||
			(ti == int(vecmath.Back) && tj == int(vecmath.Front)) {
			_, t, ok := plane.Intersect(vi.Position, vj.Position)
			if ok {
				mid := Lerp(vi, vj, t)
				front = append(front, mid)
				back = append(back, mid)
			}
		}
	}
	return front, back
}

// Classify returns the aggregate classification of poly against plane,
// without building fragments — used by callers that only need to route a
// whole polygon (BSP tree construction's candidate-plane scoring).
func Classify(plane vecmath.Plane, poly Polygon) vecmath.Side {
	hasFront, hasBack := false, false
	for _, v := range poly.Vertices {
		switch v.Position.Compare(plane) {
		case vecmath.Front:
			hasFront = true
		case vecmath.Back:
			hasBack = true
		}
	}
	switch {
	case hasFront && hasBack:
		return vecmath.Spanning
	case hasFront:
		return vecmath.Front
	case hasBack:
		return vecmath.Back
	default:
		return vecmath.Coplanar
	}
}
