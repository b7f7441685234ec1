// Package eval evaluates a parsed program (§4.8) against a scope stack,
// producing a scene.Scene whose Geometry nodes lazily build meshes via the
// geom/bsp/mesh/builder kernel packages.
package eval

import (
	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/mesh"
	"github.com/solidforge/solidforge/scene"
	"github.com/solidforge/solidforge/vecmath"
)

// Kind tags a Value's active field (§9: the script's dynamic typing models
// as a tagged union with explicit conversions). There is no distinct
// "point" kind: `point`/`curve` already produce a single-PathPoint PathKind
// value (see the point/curve commands and childPaths), which childPaths
// folds into a larger Path the same way a multi-point one would — a point
// is simply a length-1 path fragment, not a separate value domain.
type Kind int

const (
	VoidKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ColorKind
	VectorKind
	PathKind
	PolygonKind
	MeshKind
	GeometryKind
	ListKind
)

func (k Kind) String() string {
	switch k {
	case VoidKind:
		return "void"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ColorKind:
		return "color"
	case VectorKind:
		return "vector"
	case PathKind:
		return "path"
	case PolygonKind:
		return "polygon"
	case MeshKind:
		return "mesh"
	case GeometryKind:
		return "geometry"
	case ListKind:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the tagged-union value domain of the scripting language.
type Value struct {
	Kind     Kind
	Bool     bool
	Number   float64
	String   string
	Color    vecmath.Color
	Vector   vecmath.Vector
	Path     geom.Path
	Polygon  geom.Polygon
	Mesh     mesh.Mesh
	Geometry *scene.Geometry
	List     []Value
}

func Void() Value                        { return Value{Kind: VoidKind} }
func BoolValue(b bool) Value             { return Value{Kind: BoolKind, Bool: b} }
func NumberValue(n float64) Value        { return Value{Kind: NumberKind, Number: n} }
func StringValue(s string) Value         { return Value{Kind: StringKind, String: s} }
func ColorValue(c vecmath.Color) Value   { return Value{Kind: ColorKind, Color: c} }
func VectorValue(v vecmath.Vector) Value { return Value{Kind: VectorKind, Vector: v} }
func PathValue(p geom.Path) Value        { return Value{Kind: PathKind, Path: p} }
func PolygonValue(p geom.Polygon) Value  { return Value{Kind: PolygonKind, Polygon: p} }
func MeshValue(m mesh.Mesh) Value        { return Value{Kind: MeshKind, Mesh: m} }
func ListValue(items []Value) Value      { return Value{Kind: ListKind, List: items} }

// AsVector implicitly converts a number (broadcast to every axis) or
// vector value to a Vector (§4.8 implicit conversions).
func (v Value) AsVector() (vecmath.Vector, bool) {
	switch v.Kind {
	case VectorKind:
		return v.Vector, true
	case NumberKind:
		return vecmath.Vector{X: v.Number, Y: v.Number, Z: v.Number}, true
	default:
		return vecmath.Vector{}, false
	}
}

// AsNumber reports the value as a float64 when it is a number or boolean.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case NumberKind:
		return v.Number, true
	case BoolKind:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// AsBool reports the value as a boolean (numbers are truthy when non-zero).
func (v Value) AsBool() (bool, bool) {
	switch v.Kind {
	case BoolKind:
		return v.Bool, true
	case NumberKind:
		return v.Number != 0, true
	default:
		return false, false
	}
}

// AsString renders strings verbatim and other kinds with a best-effort
// textual form, used by `print`.
func (v Value) AsString() string {
	switch v.Kind {
	case StringKind:
		return v.String
	case NumberKind:
		return formatNumber(v.Number)
	case BoolKind:
		if v.Bool {
			return "true"
		}
		return "false"
	case VectorKind:
		return v.Vector.String()
	default:
		return v.Kind.String()
	}
}
