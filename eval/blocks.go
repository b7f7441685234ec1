package eval

import (
	"math"

	"github.com/solidforge/solidforge/builder"
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/scene"
	"github.com/solidforge/solidforge/serr"
	"github.com/solidforge/solidforge/vecmath"
)

// evalBlock evaluates a block call (§4.8): it pushes a child scope,
// evaluates positional args and the body into it, then dispatches to the
// block's own construction logic, producing either a scene.Geometry (most
// blocks) or a raw Path value (the path-producing family, consumed by a
// parent builder block rather than placed in the scene tree).
func (e *Evaluator) evalBlock(call parser.BlockCall, sc *Scope) (Value, error) {
	child := sc.Child()
	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := e.evalExpr(a, sc)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	if err := e.evalStmts(call.Body, child); err != nil {
		return Value{}, err
	}

	if ctor, ok := pathBlocks[call.Name]; ok {
		return ctor(e, child, call, args)
	}
	if nt, ok := csgBlocks[call.Name]; ok {
		return e.buildCSGNode(nt, call, child), nil
	}
	if ctor, ok := primitiveBlocks[call.Name]; ok {
		return e.buildPrimitiveNode(call, child, args, ctor), nil
	}
	if ctor, ok := sweepBlocks[call.Name]; ok {
		return e.buildSweepNode(call, child, args, ctor), nil
	}
	switch call.Name {
	case "text":
		return e.buildTextNode(call, child, args), nil
	case "mesh":
		return e.buildMeshNode(call, child), nil
	case "camera", "light", "debug":
		return e.buildAnnotationNode(call, child), nil
	}
	return Value{}, &serr.RuntimeError{Kind: serr.UnknownSymbol, Range: call.Range(), Hint: "unknown block " + call.Name}
}

func childPaths(sc *Scope) []geom.Path {
	var out []geom.Path
	var accumulated []geom.PathPoint
	for _, c := range sc.Children {
		if c.Kind == PathKind {
			if len(c.Path.Points) == 1 {
				accumulated = append(accumulated, c.Path.Points[0])
				continue
			}
			if len(accumulated) > 0 {
				out = append(out, geom.Path{Points: accumulated})
				accumulated = nil
			}
			out = append(out, c.Path)
		}
	}
	if len(accumulated) > 0 {
		out = append(out, geom.Path{Points: accumulated})
	}
	return out
}

var csgBlocks = map[string]scene.NodeType{
	"group":        scene.Group,
	"union":        scene.Union,
	"difference":   scene.Difference,
	"intersection": scene.Intersection,
	"xor":          scene.Xor,
	"stencil":      scene.Stencil,
}

func (e *Evaluator) buildCSGNode(nt scene.NodeType, call parser.BlockCall, sc *Scope) Value {
	var children []*scene.Geometry
	for _, c := range sc.Children {
		if c.Kind == GeometryKind {
			children = append(children, c.Geometry)
		}
	}
	material := sc.Material
	var g *scene.Geometry
	compute := func(isCancelled func() bool) (mesh.Mesh, error) {
		ms, err := scene.ChildMeshes(children, isCancelled)
		if err != nil {
			return mesh.Empty, err
		}
		switch nt {
		case scene.Group:
			return combineDisjoint(ms), nil
		case scene.Union:
			return reduceMesh(ms, mesh.Union), nil
		case scene.Intersection:
			return reduceMesh(ms, mesh.Intersection), nil
		case scene.Difference:
			return reduceMesh(ms, mesh.Difference), nil
		case scene.Xor:
			return reduceMesh(ms, mesh.Xor), nil
		case scene.Stencil:
			if len(ms) == 0 {
				return mesh.Empty, nil
			}
			result := ms[0]
			for _, m := range ms[1:] {
				result = mesh.Stencil(result, m, material)
			}
			return result, nil
		default:
			return mesh.Empty, nil
		}
	}
	g = scene.NewGeometry(nt, e.cachedBuild(&g, compute))
	applyScopeToGeometry(g, sc, call)
	return Value{Kind: GeometryKind, Geometry: g}
}

// cachedBuild routes a node's mesh computation through the evaluator's
// content-addressed scene.Cache (§5): concurrent or repeated builds of
// structurally identical subgraphs compute at most once. gp is filled in
// after scene.NewGeometry returns, so the key is read lazily, only once
// Mesh() actually runs.
func (e *Evaluator) cachedBuild(gp **scene.Geometry, compute func(isCancelled func() bool) (mesh.Mesh, error)) func(func() bool) (mesh.Mesh, error) {
	return func(isCancelled func() bool) (mesh.Mesh, error) {
		key := scene.Key(*gp)
		return e.Cache.GetOrBuild(key, func() (mesh.Mesh, error) { return compute(isCancelled) })
	}
}

func reduceMesh(ms []mesh.Mesh, op func(a, b mesh.Mesh) mesh.Mesh) mesh.Mesh {
	if len(ms) == 0 {
		return mesh.Empty
	}
	result := ms[0]
	for _, m := range ms[1:] {
		result = op(result, m)
	}
	return result
}

// combineDisjoint merges a group's children into one polygon soup without
// any boolean clipping — a plain union() would cancel adjoining coplanar
// faces, which a `group` must not do.
func combineDisjoint(ms []mesh.Mesh) mesh.Mesh {
	var polys []geom.Polygon
	for _, m := range ms {
		polys = append(polys, m.Polygons()...)
	}
	return mesh.New(polys)
}

type primitiveCtor func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh

var primitiveBlocks = map[string]primitiveCtor{
	"cube": func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh {
		return builder.Cube(primitiveSize(sc, args, 1), material)
	},
	"sphere": func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh {
		r := primitiveSize(sc, args, 1).X / 2
		return builder.Sphere(r, sc.Detail, material)
	},
	"cylinder": func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh {
		size := primitiveSize(sc, args, 1)
		return builder.Cylinder(size.X/2, size.Y, sc.Detail, material)
	},
	"cone": func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh {
		size := primitiveSize(sc, args, 1)
		return builder.Cone(size.X/2, size.Y, sc.Detail, material)
	},
	"pyramid": func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh {
		sides := argSides(args, 4)
		size := primitiveSize(sc, args, 1)
		return builder.Pyramid(sides, size.X/2, size.Y, material)
	},
	"prism": func(args []Value, sc *Scope, material *vecmath.Material) mesh.Mesh {
		sides := argSides(args, 6)
		size := primitiveSize(sc, args, 1)
		return builder.Prism(sides, size.X/2, size.Y, material)
	},
}

func argSides(args []Value, fallback int) int {
	if len(args) > 0 {
		if n, ok := args[0].AsNumber(); ok {
			return int(math.Round(n))
		}
	}
	return fallback
}

// primitiveSize resolves a primitive's extent: the `size` command (if
// issued in the block body) wins, else the first vector argument, else the
// fallback scalar broadcast to every axis. A bare numeric argument is not
// used as a size.
func primitiveSize(sc *Scope, args []Value, fallback float64) vecmath.Vector {
	if v, ok := sc.Lookup("size"); ok {
		if vec, ok := v.AsVector(); ok {
			return vec
		}
	}
	for _, a := range args {
		if vec, ok := a.AsVector(); ok && a.Kind == VectorKind {
			return vec
		}
	}
	return vecmath.Vector{X: fallback, Y: fallback, Z: fallback}
}

func (e *Evaluator) buildPrimitiveNode(call parser.BlockCall, sc *Scope, args []Value, ctor primitiveCtor) Value {
	material := sc.Material
	nodeType := primitiveNodeTypes[call.Name]
	var g *scene.Geometry
	compute := func(isCancelled func() bool) (mesh.Mesh, error) {
		return ctor(args, sc, material), nil
	}
	g = scene.NewGeometry(nodeType, e.cachedBuild(&g, compute))
	applyScopeToGeometry(g, sc, call)
	return Value{Kind: GeometryKind, Geometry: g}
}

var primitiveNodeTypes = map[string]scene.NodeType{
	"cube": scene.Cube, "sphere": scene.Sphere, "cylinder": scene.Cylinder,
	"cone": scene.Cone, "pyramid": scene.Pyramid, "prism": scene.Prism,
}

type sweepCtor func(paths []geom.Path, sc *Scope, args []Value, material *vecmath.Material) mesh.Mesh

var sweepBlocks = map[string]sweepCtor{
	"extrude": func(paths []geom.Path, sc *Scope, args []Value, material *vecmath.Material) mesh.Mesh {
		axis := vecmath.Vector{Y: 1}
		if v, ok := sc.Lookup("size"); ok {
			if vec, ok := v.AsVector(); ok {
				axis = vec
			}
		}
		return builder.Extrude(paths, axis, nil, material)
	},
	"lathe": func(paths []geom.Path, sc *Scope, args []Value, material *vecmath.Material) mesh.Mesh {
		return builder.Lathe(paths, latheSegmentsFromDetail(sc.Detail), material)
	},
	"loft": func(paths []geom.Path, sc *Scope, args []Value, material *vecmath.Material) mesh.Mesh {
		return builder.Loft(paths, material)
	},
	"fill": func(paths []geom.Path, sc *Scope, args []Value, material *vecmath.Material) mesh.Mesh {
		return builder.Fill(paths, material)
	},
	"hull": func(paths []geom.Path, sc *Scope, args []Value, material *vecmath.Material) mesh.Mesh {
		var points []vecmath.Vector
		for _, p := range paths {
			for _, pt := range p.Points {
				points = append(points, pt.Position)
			}
		}
		return builder.Hull(points, material)
	},
}

func latheSegmentsFromDetail(detail float64) int {
	n := int(detail)
	if n < 3 {
		n = 16
	}
	return n
}

var sweepNodeTypes = map[string]scene.NodeType{
	"extrude": scene.ExtrudeNode, "lathe": scene.LatheNode, "loft": scene.LoftNode,
	"fill": scene.FillNode, "hull": scene.HullNode,
}

func (e *Evaluator) buildSweepNode(call parser.BlockCall, sc *Scope, args []Value, ctor sweepCtor) Value {
	paths := childPaths(sc)
	material := sc.Material
	var g *scene.Geometry
	compute := func(isCancelled func() bool) (mesh.Mesh, error) {
		return ctor(paths, sc, args, material), nil
	}
	g = scene.NewGeometry(sweepNodeTypes[call.Name], e.cachedBuild(&g, compute))
	applyScopeToGeometry(g, sc, call)
	return Value{Kind: GeometryKind, Geometry: g}
}

func (e *Evaluator) buildTextNode(call parser.BlockCall, sc *Scope, args []Value) Value {
	material := sc.Material
	var content string
	if len(args) > 0 && args[0].Kind == StringKind {
		content = args[0].String
	}
	wrap, spacing := math.Inf(1), 1.2
	if len(args) > 1 {
		if n, ok := args[1].AsNumber(); ok {
			wrap = n
		}
	}
	if len(args) > 2 {
		if n, ok := args[2].AsNumber(); ok {
			spacing = n
		}
	}
	fontName := sc.Font
	g := scene.NewGeometry(scene.Group, func(isCancelled func() bool) (mesh.Mesh, error) {
		fnt := e.Fonts[fontName]
		if fnt == nil {
			return mesh.Empty, nil
		}
		return builder.Text(content, fnt, wrap, spacing, material), nil
	})
	applyScopeToGeometry(g, sc, call)
	return Value{Kind: GeometryKind, Geometry: g}
}

func childPolygons(sc *Scope) []geom.Polygon {
	var out []geom.Polygon
	for _, c := range sc.Children {
		if c.Kind == PolygonKind {
			out = append(out, c.Polygon)
		}
	}
	return out
}

var annotationNodeTypes = map[string]scene.NodeType{
	"camera": scene.Camera, "light": scene.Light, "debug": scene.Debug,
}

// buildAnnotationNode handles the camera/light/debug markers (§6): these
// carry scene metadata through their scope fields but never build actual
// polygons.
func (e *Evaluator) buildAnnotationNode(call parser.BlockCall, sc *Scope) Value {
	g := scene.NewGeometry(annotationNodeTypes[call.Name], func(isCancelled func() bool) (mesh.Mesh, error) {
		return mesh.Empty, nil
	})
	applyScopeToGeometry(g, sc, call)
	return Value{Kind: GeometryKind, Geometry: g}
}

// buildMeshNode handles the raw-mesh-authoring `mesh { }` block (§4.8,
// §6): unlike the other annotation blocks it has real content — the
// polygons its `polygon` commands add to the scope's children are
// assembled here into an actual polygon soup, routed through the
// content-addressed cache like any other buildable node. `point`/`curve`
// path fragments in the body are not collected.
func (e *Evaluator) buildMeshNode(call parser.BlockCall, sc *Scope) Value {
	polys := childPolygons(sc)
	var g *scene.Geometry
	compute := func(isCancelled func() bool) (mesh.Mesh, error) {
		return mesh.New(polys), nil
	}
	g = scene.NewGeometry(scene.MeshNode, e.cachedBuild(&g, compute))
	applyScopeToGeometry(g, sc, call)
	return Value{Kind: GeometryKind, Geometry: g}
}

func applyScopeToGeometry(g *scene.Geometry, sc *Scope, call parser.BlockCall) {
	g.Name = sc.Name
	g.Transform = sc.Transform
	g.Material = sc.Material
	g.Smoothing = sc.Smoothing
	g.SourceLocation = call.Range()
	for _, c := range sc.Children {
		if c.Kind == GeometryKind {
			g.Children = append(g.Children, c.Geometry)
		}
	}
}

var bareBlockNames = map[string]bool{
	"text": true, "camera": true, "light": true, "debug": true, "mesh": true,
}

// isBlockName reports whether name identifies a block construct (so a
// body-less invocation of it routes to block evaluation instead of the
// command table).
func isBlockName(name string) bool {
	if _, ok := csgBlocks[name]; ok {
		return true
	}
	if _, ok := primitiveBlocks[name]; ok {
		return true
	}
	if _, ok := sweepBlocks[name]; ok {
		return true
	}
	if _, ok := pathBlocks[name]; ok {
		return true
	}
	return bareBlockNames[name]
}
