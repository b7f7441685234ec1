package eval

import (
	"math"

	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/vecmath"
)

func vector3(comps []float64) vecmath.Vector {
	return vecmath.Vector{X: comps[0], Y: comps[1], Z: comps[2]}
}

// constants is the nullary `constant` symbol kind table (§4.8).
var constants = map[string]Value{
	"pi":    NumberValue(math.Pi),
	"true":  BoolValue(true),
	"false": BoolValue(false),
}

func resolveColor(text string) (vecmath.Color, bool) {
	if len(text) > 0 && text[0] == '#' {
		c, err := vecmath.ParseHexColor(text)
		if err != nil {
			return vecmath.Color{}, false
		}
		return c, true
	}
	return vecmath.NamedColor(text)
}

func (e *Evaluator) evalBinary(ex parser.BinaryOp, sc *Scope) (Value, error) {
	l, err := e.evalExpr(ex.Left, sc)
	if err != nil {
		return Value{}, err
	}
	if ex.Op == "and" || ex.Op == "or" {
		lb, ok := l.AsBool()
		if !ok {
			return Value{}, typeError(ex.Range(), "boolean", l.Kind)
		}
		if ex.Op == "and" && !lb {
			return BoolValue(false), nil
		}
		if ex.Op == "or" && lb {
			return BoolValue(true), nil
		}
		r, err := e.evalExpr(ex.Right, sc)
		if err != nil {
			return Value{}, err
		}
		rb, ok := r.AsBool()
		if !ok {
			return Value{}, typeError(ex.Range(), "boolean", r.Kind)
		}
		return BoolValue(rb), nil
	}

	r, err := e.evalExpr(ex.Right, sc)
	if err != nil {
		return Value{}, err
	}

	switch ex.Op {
	case "=":
		return BoolValue(valuesEqual(l, r)), nil
	case "<>":
		return BoolValue(!valuesEqual(l, r)), nil
	}

	ln, lok := l.AsNumber()
	rn, rok := r.AsNumber()
	if lok && rok {
		switch ex.Op {
		case "+":
			return NumberValue(ln + rn), nil
		case "-":
			return NumberValue(ln - rn), nil
		case "*":
			return NumberValue(ln * rn), nil
		case "/":
			return NumberValue(ln / rn), nil
		case "<":
			return BoolValue(ln < rn), nil
		case ">":
			return BoolValue(ln > rn), nil
		case "<=":
			return BoolValue(ln <= rn), nil
		case ">=":
			return BoolValue(ln >= rn), nil
		}
	}

	lv, lvok := l.AsVector()
	rv, rvok := r.AsVector()
	if lvok && rvok {
		switch ex.Op {
		case "+":
			return VectorValue(lv.Add(rv)), nil
		case "-":
			return VectorValue(lv.Subtract(rv)), nil
		case "*":
			return VectorValue(lv.Multiply(rv)), nil
		}
	}

	if ex.Op == "+" && l.Kind == StringKind && r.Kind == StringKind {
		return StringValue(l.String + r.String), nil
	}

	return Value{}, typeError(ex.Range(), "number or vector", l.Kind)
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		an, aok := a.AsNumber()
		bn, bok := b.AsNumber()
		if aok && bok {
			return an == bn
		}
		return false
	}
	switch a.Kind {
	case NumberKind:
		return a.Number == b.Number
	case BoolKind:
		return a.Bool == b.Bool
	case StringKind:
		return a.String == b.String
	case VectorKind:
		return a.Vector.Equals(b.Vector)
	case ColorKind:
		return a.Color.Equals(b.Color)
	default:
		return false
	}
}
