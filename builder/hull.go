package builder

import (
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// face is a triangle of the in-progress hull, indices into the input point
// slice, oriented so its plane's normal points away from the hull interior.
type face struct {
	a, b, c int
	plane   vecmath.Plane
}

// Hull computes the 3D convex hull of points (§4.6): for three or fewer
// non-collinear points it emits the degenerate flat fan (a single planar
// polygon) rather than attempting a solid.
func Hull(points []vecmath.Vector, material *vecmath.Material) mesh.Mesh {
	if len(points) < 3 {
		return mesh.Empty
	}
	if degenerateFlat(points) {
		return flatFan(points, material)
	}

	faces, ok := initialTetrahedron(points)
	if !ok {
		return flatFan(points, material)
	}

	for i, p := range points {
		if isTetrahedronVertex(i, faces) {
			continue
		}
		addPoint(&faces, points, p)
	}

	var polys []geom.Polygon
	for _, f := range faces {
		verts := []geom.Vertex{
			geom.NewVertex(points[f.a]).WithNormal(f.plane.Normal),
			geom.NewVertex(points[f.b]).WithNormal(f.plane.Normal),
			geom.NewVertex(points[f.c]).WithNormal(f.plane.Normal),
		}
		if poly, ok := geom.NewPolygon(verts, material); ok {
			polys = append(polys, poly)
		}
	}
	return mesh.NewConvex(polys)
}

// degenerateFlat reports whether every point lies within ε of a common
// plane (or all points are collinear), in which case a solid hull can't be
// formed.
func degenerateFlat(points []vecmath.Vector) bool {
	if len(points) <= 3 {
		return true
	}
	var plane vecmath.Plane
	found := false
	for i := 0; i+2 < len(points) && !found; i++ {
		if p, ok := vecmath.PlaneFromPoints(points[i], points[i+1], points[i+2]); ok {
			plane = p
			found = true
		}
	}
	if !found {
		return true // all collinear
	}
	for _, p := range points {
		if !plane.OnPlane(p) {
			return false
		}
	}
	return true
}

func flatFan(points []vecmath.Vector, material *vecmath.Material) mesh.Mesh {
	verts := make([]geom.Vertex, len(points))
	for i, p := range points {
		verts[i] = geom.NewVertex(p)
	}
	return mesh.NewConvex(geom.Triangulate(verts, material))
}

func initialTetrahedron(points []vecmath.Vector) ([]face, bool) {
	// Find four points not all coplanar.
	n := len(points)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				plane, ok := vecmath.PlaneFromPoints(points[a], points[b], points[c])
				if !ok {
					continue
				}
				for d := 0; d < n; d++ {
					if d == a || d == b || d == c {
						continue
					}
					if plane.OnPlane(points[d]) {
						continue
					}
					return buildTetrahedron(points, a, b, c, d), true
				}
			}
		}
	}
	return nil, false
}

func buildTetrahedron(points []vecmath.Vector, a, b, c, d int) []face {
	centroid := points[a].Add(points[b]).Add(points[c]).Add(points[d]).Scale(0.25)
	mk := func(i, j, k int) face {
		return orientedFace(points, i, j, k, centroid)
	}
	return []face{mk(a, b, c), mk(a, c, d), mk(a, d, b), mk(b, d, c)}
}

func orientedFace(points []vecmath.Vector, i, j, k int, interior vecmath.Vector) face {
	plane, _ := vecmath.PlaneFromPoints(points[i], points[j], points[k])
	if interior.Compare(plane) == vecmath.Front {
		plane = plane.Flipped()
		i, j = j, i
	}
	return face{a: i, b: j, c: k, plane: plane}
}

func isTetrahedronVertex(idx int, faces []face) bool {
	for _, f := range faces {
		if f.a == idx || f.b == idx || f.c == idx {
			return true
		}
	}
	return false
}

// addPoint incorporates p into the hull: faces it sees (p is in front of
// their plane) are removed, their non-shared "horizon" edges are found,
// and a new face is built from each horizon edge to p.
func addPoint(faces *[]face, points []vecmath.Vector, p vecmath.Vector) {
	var visible, kept []face
	for _, f := range *faces {
		if p.Compare(f.plane) == vecmath.Front {
			visible = append(visible, f)
		} else {
			kept = append(kept, f)
		}
	}
	if len(visible) == 0 {
		return // p is inside the current hull
	}

	type edge struct{ u, v int }
	count := map[edge]int{}
	canon := func(u, v int) edge {
		if u > v {
			u, v = v, u
		}
		return edge{u, v}
	}
	for _, f := range visible {
		count[canon(f.a, f.b)]++
		count[canon(f.b, f.c)]++
		count[canon(f.c, f.a)]++
	}

	pIdx := -1
	for i := range points {
		if points[i].Equals(p) {
			pIdx = i
			break
		}
	}

	for _, f := range visible {
		for _, e := range [][2]int{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}} {
			if count[canon(e[0], e[1])] == 1 {
				interior := centroidOf(points, kept)
				nf := orientedFace(points, e[0], e[1], pIdx, interior)
				kept = append(kept, nf)
			}
		}
	}
	*faces = kept
}

func centroidOf(points []vecmath.Vector, faces []face) vecmath.Vector {
	if len(faces) == 0 {
		return vecmath.Vector{}
	}
	var sum vecmath.Vector
	seen := map[int]bool{}
	for _, f := range faces {
		for _, idx := range [3]int{f.a, f.b, f.c} {
			if !seen[idx] {
				seen[idx] = true
				sum = sum.Add(points[idx])
			}
		}
	}
	return sum.Scale(1 / float64(len(seen)))
}
