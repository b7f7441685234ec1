// Package scene implements the Geometry node (§3) and the content-addressed
// geometry Cache (§5): a tree of nodes produced by evaluation, each lazily
// building its Mesh by recursive evaluation with a cancellation callback.
package scene

import (
	"sync"

	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/serr"
	"github.com/solidforge/solidforge/vecmath"
)

// NodeType enumerates the §3 Geometry type tag.
type NodeType int

const (
	Group NodeType = iota
	Union
	Difference
	Intersection
	Xor
	Stencil
	Cone
	Cylinder
	Sphere
	Cube
	Pyramid
	Prism
	ExtrudeNode
	LatheNode
	LoftNode
	FillNode
	HullNode
	MeshNode
	Camera
	Light
	Debug
)

// Geometry is one node of the scene tree (§3). Its Mesh is built lazily on
// first access via Mesh(), guarded by a sync.Once so repeated calls and
// concurrent readers compute it at most once.
type Geometry struct {
	Type           NodeType
	Name           string
	Transform      vecmath.Transform
	Material       *vecmath.Material
	Smoothing      float64
	Children       []*Geometry
	SourceLocation serr.Range

	build func(isCancelled func() bool) (mesh.Mesh, error)

	once     sync.Once
	mesh     mesh.Mesh
	buildErr error
}

// NewGeometry constructs a node whose mesh is computed by buildFn on first
// access.
func NewGeometry(t NodeType, buildFn func(isCancelled func() bool) (mesh.Mesh, error)) *Geometry {
	return &Geometry{Type: t, build: buildFn}
}

// Mesh returns (and caches) the node's built mesh, recursing into children
// first (depth-first, §5 ordering guarantee) via the node's own build
// closure, which is responsible for invoking Mesh() on any children it
// needs.
func (g *Geometry) Mesh(isCancelled func() bool) (mesh.Mesh, error) {
	g.once.Do(func() {
		if g.build == nil {
			g.mesh = mesh.Empty
			return
		}
		g.mesh, g.buildErr = g.build(isCancelled)
	})
	return g.mesh, g.buildErr
}

// ChildMeshes builds every child's mesh in order, stopping at the first
// error or cancellation.
func ChildMeshes(children []*Geometry, isCancelled func() bool) ([]mesh.Mesh, error) {
	out := make([]mesh.Mesh, 0, len(children))
	for _, c := range children {
		if isCancelled != nil && isCancelled() {
			return nil, serr.ErrCancelled
		}
		m, err := c.Mesh(isCancelled)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Scene is the document root (§3).
type Scene struct {
	Background *vecmath.Material
	Children   []*Geometry
	Cache      *Cache
}
