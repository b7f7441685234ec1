package eval

import (
	"strings"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/serr"
	"github.com/solidforge/solidforge/vecmath"
)

// command is a side-effecting statement handler (§4.8 symbol kind
// `command`): it mutates sc in place and returns void.
type command func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error

var commands = map[string]command{
	"translate": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.Transform.Offset = sc.Transform.Offset.Add(sc.Transform.Rotation.Rotate(v.Multiply(sc.Transform.Scale)))
		return nil
	},
	"rotate": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		rot := vecmath.RotationFromEuler(v.X, v.Y, v.Z)
		sc.Transform.Rotation = sc.Transform.Rotation.Multiply(rot)
		return nil
	},
	"orientation": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.Transform.Rotation = vecmath.RotationFromEuler(v.X, v.Y, v.Z)
		return nil
	},
	"scale": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.Transform.Scale = sc.Transform.Scale.Multiply(v)
		return nil
	},
	"size": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.Define("size", VectorValue(v))
		return nil
	},
	"position": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.Transform.Offset = v
		return nil
	},
	"color": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) != 1 || args[0].Kind != ColorKind {
			return typeError(call.Range(), "color", argKind(args))
		}
		mat := *sc.Material
		mat.Color = args[0].Color
		sc.Material = &mat
		return nil
	},
	"background": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) != 1 || args[0].Kind != ColorKind {
			return typeError(call.Range(), "color", argKind(args))
		}
		mat := vecmath.Material{Name: "background", Color: args[0].Color, Roughness: 1}
		sc.Background = &mat
		return nil
	},
	"opacity": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		n, err := wantNumber(call, args)
		if err != nil {
			return err
		}
		sc.Opacity = n
		mat := *sc.Material
		mat.Color.A = n
		sc.Material = &mat
		return nil
	},
	"detail": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		n, err := wantNumber(call, args)
		if err != nil {
			return err
		}
		sc.Detail = n
		return nil
	},
	"smoothing": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		n, err := wantNumber(call, args)
		if err != nil {
			return err
		}
		sc.Smoothing = n
		return nil
	},
	"name": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) != 1 || args[0].Kind != StringKind {
			return typeError(call.Range(), "string", argKind(args))
		}
		sc.Name = args[0].String
		return nil
	},
	"font": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) != 1 || args[0].Kind != StringKind {
			return typeError(call.Range(), "string", argKind(args))
		}
		sc.Font = args[0].String
		return nil
	},
	"texture": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) != 1 || args[0].Kind != StringKind {
			return typeError(call.Range(), "string", argKind(args))
		}
		mat := *sc.Material
		mat.Name = args[0].String
		sc.Material = &mat
		return nil
	},
	"print": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.AsString()
		}
		e.Delegate.DebugLog(parts)
		return nil
	},
	"assert": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) < 1 {
			return arityError("assert", call.Range(), 1, len(args))
		}
		b, ok := args[0].AsBool()
		if !ok {
			return typeError(call.Range(), "boolean", args[0].Kind)
		}
		if !b {
			hint := "assertion failed"
			if len(args) > 1 {
				hint = strings.Join(stringifyAll(args[1:]), " ")
			}
			return &serr.RuntimeError{Kind: serr.AssertionFailure, Range: call.Range(), Hint: hint}
		}
		return nil
	},
	"point": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.AddChild(PathValue(geom.Path{Points: []geom.PathPoint{{Position: v}}}))
		return nil
	},
	"curve": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		v, err := wantVector(call, args)
		if err != nil {
			return err
		}
		sc.AddChild(PathValue(geom.Path{Points: []geom.PathPoint{{Position: v, IsCurved: true}}}))
		return nil
	},
	"polygon": func(e *Evaluator, sc *Scope, call parser.CommandCall, args []Value) error {
		if len(args) < 3 {
			return arityError(call.Name, call.Range(), 3, len(args))
		}
		verts := make([]geom.Vertex, len(args))
		for i, a := range args {
			v, ok := a.AsVector()
			if !ok {
				return typeError(call.Range(), "vector", a.Kind)
			}
			verts[i] = geom.NewVertex(v)
		}
		poly, ok := geom.NewPolygon(verts, sc.Material)
		if !ok {
			return &serr.GeometryError{Kind: serr.NonPlanarPolygon, Range: call.Range(), Hint: "polygon vertices are not planar"}
		}
		sc.AddChild(PolygonValue(poly))
		return nil
	},
}

func stringifyAll(vs []Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.AsString()
	}
	return out
}

func argKind(args []Value) Kind {
	if len(args) == 0 {
		return VoidKind
	}
	return args[0].Kind
}

func wantVector(call parser.CommandCall, args []Value) (vecmath.Vector, error) {
	if len(args) != 1 {
		return vecmath.Vector{}, arityError(call.Name, call.Range(), 1, len(args))
	}
	v, ok := args[0].AsVector()
	if !ok {
		return vecmath.Vector{}, typeError(call.Range(), "vector", args[0].Kind)
	}
	return v, nil
}

func wantNumber(call parser.CommandCall, args []Value) (float64, error) {
	if len(args) != 1 {
		return 0, arityError(call.Name, call.Range(), 1, len(args))
	}
	n, ok := args[0].AsNumber()
	if !ok {
		return 0, typeError(call.Range(), "number", args[0].Kind)
	}
	return n, nil
}

// evalCommand dispatches a command-call statement.
func (e *Evaluator) evalCommand(call parser.CommandCall, sc *Scope) error {
	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := e.evalExpr(a, sc)
		if err != nil {
			return err
		}
		args[i] = v
	}
	cmd, ok := commands[call.Name]
	if !ok {
		return &serr.RuntimeError{Kind: serr.UnknownSymbol, Range: call.Range(), Hint: "unknown command " + call.Name}
	}
	return cmd(e, sc, call, args)
}
