package builder

import (
	"math"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// Cube builds an axis-aligned box of the given size (full extent on each
// axis, centered on the origin) as six quad faces.
func Cube(size vecmath.Vector, material *vecmath.Material) mesh.Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	corner := func(sx, sy, sz float64) vecmath.Vector { return vecmath.Vector{X: sx * hx, Y: sy * hy, Z: sz * hz} }
	faces := [][4]vecmath.Vector{
		{corner(-1, -1, -1), corner(-1, 1, -1), corner(1, 1, -1), corner(1, -1, -1)}, // -Z
		{corner(-1, -1, 1), corner(1, -1, 1), corner(1, 1, 1), corner(-1, 1, 1)},     // +Z
		{corner(-1, -1, -1), corner(-1, -1, 1), corner(-1, 1, 1), corner(-1, 1, -1)}, // -X
		{corner(1, -1, -1), corner(1, 1, -1), corner(1, 1, 1), corner(1, -1, 1)},     // +X
		{corner(-1, -1, -1), corner(1, -1, -1), corner(1, -1, 1), corner(-1, -1, 1)}, // -Y
		{corner(-1, 1, -1), corner(-1, 1, 1), corner(1, 1, 1), corner(1, 1, -1)},     // +Y
	}
	var polys []geom.Polygon
	for _, f := range faces {
		verts := make([]geom.Vertex, 4)
		for i, p := range f {
			verts[i] = geom.NewVertex(p)
		}
		polys = append(polys, geom.Tessellate(verts, material)...)
	}
	return mesh.NewConvex(polys)
}

// regularPolygonPath returns a closed path of sides equally-spaced points
// on a circle of the given radius in the XZ plane (y=0).
func regularPolygonPath(sides int, radius float64) geom.Path {
	if sides < 3 {
		sides = 3
	}
	positions := make([]vecmath.Vector, sides+1)
	for i := 0; i <= sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		positions[i] = vecmath.Vector{X: radius * math.Cos(a), Z: radius * math.Sin(a)}
	}
	return geom.NewPath(positions)
}

// Prism extrudes a regular sides-gon of the given radius to the given
// height along Y, with flat polygonal caps (§6 `prism(sides:N)`).
func Prism(sides int, radius, height float64, material *vecmath.Material) mesh.Mesh {
	base := regularPolygonPath(sides, radius)
	centered := translatedPath(base, vecmath.Vector{Y: -height / 2})
	return Extrude([]geom.Path{centered}, vecmath.Vector{Y: height}, nil, material)
}

// Pyramid builds a sides-gon base joined to a single apex above its center
// (§6 `pyramid(sides:N)`).
func Pyramid(sides int, radius, height float64, material *vecmath.Material) mesh.Mesh {
	base := regularPolygonPath(sides, radius)
	base = translatedPath(base, vecmath.Vector{Y: -height / 2})
	apex := vecmath.Vector{Y: height / 2}

	var polys []geom.Polygon
	for _, face := range base.FaceVertices(material) {
		polys = append(polys, face.Flipped())
	}
	n := len(base.Points) - 1
	for i := 0; i < n; i++ {
		a := base.Points[i].Position
		b := base.Points[i+1].Position
		tri := []geom.Vertex{geom.NewVertex(a), geom.NewVertex(b), geom.NewVertex(apex)}
		polys = append(polys, geom.Tessellate(tri, material)...)
	}
	return mesh.New(polys)
}

// latheSegments clamps a detail value to a usable angular resolution.
func latheSegments(detail float64) int {
	n := int(detail)
	if n < 3 {
		n = 16
	}
	return n
}

// Cylinder builds a circular cylinder of the given radius and height by
// lathing an open rectangular profile (which also yields the flat top and
// bottom caps as degenerate discs) around the Y axis.
func Cylinder(radius, height, detail float64, material *vecmath.Material) mesh.Mesh {
	profile := geom.NewPath([]vecmath.Vector{
		{X: 0, Y: height / 2},
		{X: -radius, Y: height / 2},
		{X: -radius, Y: -height / 2},
		{X: 0, Y: -height / 2},
	})
	return Lathe([]geom.Path{profile}, latheSegments(detail), material)
}

// Cone builds a circular cone of the given base radius and height by
// lathing a triangular profile around the Y axis.
func Cone(radius, height, detail float64, material *vecmath.Material) mesh.Mesh {
	profile := geom.NewPath([]vecmath.Vector{
		{X: 0, Y: height / 2},
		{X: -radius, Y: -height / 2},
		{X: 0, Y: -height / 2},
	})
	return Lathe([]geom.Path{profile}, latheSegments(detail), material)
}

// Sphere builds a UV sphere of the given radius by lathing a semicircular
// profile around the Y axis.
func Sphere(radius, detail float64, material *vecmath.Material) mesh.Mesh {
	segments := latheSegments(detail)
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}
	positions := make([]vecmath.Vector, rings+1)
	for i := 0; i <= rings; i++ {
		t := math.Pi * float64(i) / float64(rings)
		positions[i] = vecmath.Vector{X: -radius * math.Sin(t), Y: radius * math.Cos(t)}
	}
	profile := geom.NewPath(positions)
	return Lathe([]geom.Path{profile}, segments, material)
}
