package builder

import (
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/vecmath"
)

// Loft triangulates ruled surfaces between each pair of successive paths,
// adding caps when the endpoint paths are closed (§4.6).
func Loft(paths []geom.Path, material *vecmath.Material) mesh.Mesh {
	if len(paths) < 2 {
		return mesh.Empty
	}
	var polys []geom.Polygon
	for i := 0; i+1 < len(paths); i++ {
		polys = append(polys, ruledSurface(paths[i], paths[i+1], material)...)
	}
	if first := paths[0]; first.IsClosed() {
		polys = append(polys, first.FaceVertices(material)...)
	}
	if last := paths[len(paths)-1]; last.IsClosed() {
		for _, p := range last.FaceVertices(material) {
			polys = append(polys, p.Flipped())
		}
	}
	return mesh.New(polys)
}

func ruledSurface(a, b geom.Path, material *vecmath.Material) []geom.Polygon {
	n := len(a.Points)
	if len(b.Points) < n {
		n = len(b.Points)
	}
	var out []geom.Polygon
	for i := 0; i+1 < n; i++ {
		quad := []geom.Vertex{
			geom.NewVertex(a.Points[i].Position),
			geom.NewVertex(a.Points[i+1].Position),
			geom.NewVertex(b.Points[i+1].Position),
			geom.NewVertex(b.Points[i].Position),
		}
		out = append(out, geom.Tessellate(quad, material)...)
	}
	return out
}

// Fill produces the planar face of each closed path only, with no side
// walls or caps (§4.6).
func Fill(paths []geom.Path, material *vecmath.Material) mesh.Mesh {
	var polys []geom.Polygon
	for _, p := range paths {
		polys = append(polys, p.FaceVertices(material)...)
	}
	return mesh.New(polys)
}
