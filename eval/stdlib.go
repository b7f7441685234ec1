package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/solidforge/solidforge/serr"
)

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// builtin is a free function callable from script as `name(args...)`
// (§4.8 symbol kind `function`).
type builtin func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error)

// standardLibrary is the math/logic/string function table (§6). `rnd` and
// `seed` are bound to the scope's rng.Source so a fixed seed reproduces
// byte-identical mesh output (§8 property 8).
var standardLibrary = map[string]builtin{
	"round": unary(math.Round),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"abs":   unary(math.Abs),
	"sqrt":  unary(math.Sqrt),
	"cos":   unary(math.Cos),
	"sin":   unary(math.Sin),
	"tan":   unary(math.Tan),
	"acos":  unary(math.Acos),
	"asin":  unary(math.Asin),
	"atan":  unary(math.Atan),

	"max": binary(math.Max),
	"min": binary(math.Min),
	"pow": binary(math.Pow),

	"atan2": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		a, b, err := twoNumbers("atan2", r, args)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(math.Atan2(a, b)), nil
	},

	"pi": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		return NumberValue(math.Pi), nil
	},

	"not": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, arityError("not", r, 1, len(args))
		}
		b, ok := args[0].AsBool()
		if !ok {
			return Value{}, typeError(r, "boolean", args[0].Kind)
		}
		return BoolValue(!b), nil
	},

	"rnd": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		switch len(args) {
		case 0:
			return NumberValue(sc.Random.Float64()), nil
		case 2:
			lo, ok1 := args[0].AsNumber()
			hi, ok2 := args[1].AsNumber()
			if !ok1 || !ok2 {
				return Value{}, typeError(r, "number", args[0].Kind)
			}
			return NumberValue(sc.Random.Range(lo, hi)), nil
		default:
			return Value{}, arityError("rnd", r, 0, len(args))
		}
	},

	"seed": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		n, err := oneNumber("seed", r, args)
		if err != nil {
			return Value{}, err
		}
		sc.Random.Seed(int64(n))
		return Void(), nil
	},

	"split": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		if len(args) != 2 || args[0].Kind != StringKind || args[1].Kind != StringKind {
			return Value{}, typeError(r, "string", VoidKind)
		}
		parts := strings.Split(args[0].String, args[1].String)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = StringValue(p)
		}
		return ListValue(out), nil
	},

	"join": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		if len(args) != 2 || args[0].Kind != ListKind || args[1].Kind != StringKind {
			return Value{}, typeError(r, "list", VoidKind)
		}
		parts := make([]string, len(args[0].List))
		for i, v := range args[0].List {
			parts[i] = v.AsString()
		}
		return StringValue(strings.Join(parts, args[1].String)), nil
	},

	"trim": func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		if len(args) != 1 || args[0].Kind != StringKind {
			return Value{}, typeError(r, "string", VoidKind)
		}
		return StringValue(strings.TrimSpace(args[0].String)), nil
	},
}

func unary(f func(float64) float64) builtin {
	return func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		n, err := oneNumber("", r, args)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(f(n)), nil
	}
}

func binary(f func(a, b float64) float64) builtin {
	return func(e *Evaluator, sc *Scope, r serr.Range, args []Value) (Value, error) {
		a, b, err := twoNumbers("", r, args)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(f(a, b)), nil
	}
}

func oneNumber(name string, r serr.Range, args []Value) (float64, error) {
	if len(args) != 1 {
		return 0, arityError(name, r, 1, len(args))
	}
	n, ok := args[0].AsNumber()
	if !ok {
		return 0, typeError(r, "number", args[0].Kind)
	}
	return n, nil
}

func twoNumbers(name string, r serr.Range, args []Value) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, arityError(name, r, 2, len(args))
	}
	a, ok1 := args[0].AsNumber()
	b, ok2 := args[1].AsNumber()
	if !ok1 || !ok2 {
		return 0, 0, typeError(r, "number", args[0].Kind)
	}
	return a, b, nil
}

func arityError(name string, r serr.Range, want, got int) error {
	return &serr.RuntimeError{
		Kind:  serr.TypeMismatch,
		Range: r,
		Hint:  fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got),
	}
}

func typeError(r serr.Range, want string, got Kind) error {
	return &serr.RuntimeError{
		Kind:  serr.TypeMismatch,
		Range: r,
		Hint:  fmt.Sprintf("expected %s, found %s", want, got),
	}
}
