package eval

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/solidforge/solidforge/geom"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/vecmath"
)

// pathCtor builds a Path value from a path-producing block's evaluated
// args and finished child scope (whose accumulated `point`/`curve`
// children feed the bare `path` block).
type pathCtor func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error)

var pathBlocks = map[string]pathCtor{
	"path": func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error) {
		var points []geom.PathPoint
		for _, c := range sc.Children {
			if c.Kind == PathKind {
				points = append(points, c.Path.Points...)
			}
		}
		return PathValue(geom.Path{Points: points}), nil
	},
	"circle": func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error) {
		r := circleRadius(sc, args)
		segs := latheSegmentsFromDetail(sc.Detail)
		points := make([]vecmath.Vector, segs+1)
		for i := 0; i <= segs; i++ {
			a := 2 * math.Pi * float64(i) / float64(segs)
			points[i] = vecmath.Vector{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		return PathValue(geom.NewPath(points)), nil
	},
	"square": func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error) {
		size := squareSize(sc, args)
		hx, hy := size.X/2, size.Y/2
		points := []vecmath.Vector{
			{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy}, {X: -hx, Y: -hy},
		}
		return PathValue(geom.NewPath(points)), nil
	},
	"polygon": func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error) {
		sides := argSides(args, 6)
		r := 1.0
		if len(args) > 1 {
			if n, ok := args[1].AsNumber(); ok {
				r = n
			}
		}
		points := make([]vecmath.Vector, sides+1)
		for i := 0; i <= sides; i++ {
			a := 2 * math.Pi * float64(i) / float64(sides)
			points[i] = vecmath.Vector{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		return PathValue(geom.NewPath(points)), nil
	},
	"roundrect": func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error) {
		size := squareSize(sc, args)
		radius := 0.0
		if len(args) > 0 {
			if n, ok := args[0].AsNumber(); ok {
				radius = n
			}
		}
		return PathValue(roundedRectPath(size, radius, latheSegmentsFromDetail(sc.Detail)/4+1)), nil
	},
	"svgpath": func(e *Evaluator, sc *Scope, call parser.BlockCall, args []Value) (Value, error) {
		if len(args) < 1 || args[0].Kind != StringKind {
			return Value{}, typeError(call.Range(), "string", argKind(args))
		}
		return PathValue(parseSVGPath(args[0].String)), nil
	},
}

func circleRadius(sc *Scope, args []Value) float64 {
	if len(args) > 0 {
		if n, ok := args[0].AsNumber(); ok {
			return n
		}
	}
	if v, ok := sc.Lookup("size"); ok {
		if vec, ok := v.AsVector(); ok {
			return vec.X / 2
		}
	}
	return 1
}

func squareSize(sc *Scope, args []Value) vecmath.Vector {
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
	return vecmath.Vector{X: 1, Y: 1, Z: 1}
}

// roundedRectPath builds a rectangle of the given size with quarter-circle
// fillets of the given corner radius, segs segments per corner.
func roundedRectPath(size vecmath.Vector, radius float64, segs int) geom.Path {
	hx, hy := size.X/2, size.Y/2
	if radius > hx {
		radius = hx
	}
	if radius > hy {
		radius = hy
	}
	if segs < 1 {
		segs = 1
	}
	corner := func(cx, cy, startAngle float64) []vecmath.Vector {
		out := make([]vecmath.Vector, segs+1)
		for i := 0; i <= segs; i++ {
			a := startAngle + (math.Pi/2)*float64(i)/float64(segs)
			out[i] = vecmath.Vector{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
		}
		return out
	}
	var pts []vecmath.Vector
	pts = append(pts, corner(hx-radius, hy-radius, 0)...)
	pts = append(pts, corner(-hx+radius, hy-radius, math.Pi/2)...)
	pts = append(pts, corner(-hx+radius, -hy+radius, math.Pi)...)
	pts = append(pts, corner(hx-radius, -hy+radius, 3*math.Pi/2)...)
	pts = append(pts, pts[0])
	return geom.NewPath(pts)
}

// parseSVGPath interprets the M/L/C/Z subset of SVG path data (§6 `svgpath`
// block), tracking cubic control points only to mark the resulting vertex
// as a curve endpoint — the kernel smooths normals at curve points rather
// than storing control-point geometry itself (§4.5).
func parseSVGPath(d string) geom.Path {
	toks := tokenizeSVGPath(d)
	var points []geom.PathPoint
	var cur vecmath.Vector
	i := 0
	next := func() float64 {
		if i >= len(toks) {
			return 0
		}
		v, _ := strconv.ParseFloat(toks[i], 64)
		i++
		return v
	}
	for i < len(toks) {
		cmd := toks[i]
		i++
		switch cmd {
		case "M", "L":
			cur = vecmath.Vector{X: next(), Y: next()}
			points = append(points, geom.PathPoint{Position: cur})
		case "C":
			next()
			next()
			next()
			next()
			cur = vecmath.Vector{X: next(), Y: next()}
			points = append(points, geom.PathPoint{Position: cur, IsCurved: true})
		case "Z", "z":
			if len(points) > 0 {
				points = append(points, points[0])
			}
		}
	}
	return geom.Path{Points: points}
}

func tokenizeSVGPath(d string) []string {
	var toks []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			toks = append(toks, num.String())
			num.Reset()
		}
	}
	for _, r := range d {
		switch {
		case unicode.IsLetter(r):
			flush()
			toks = append(toks, string(r))
		case r == ',' || unicode.IsSpace(r):
			flush()
		case r == '-' && num.Len() > 0:
			flush()
			num.WriteRune(r)
		default:
			num.WriteRune(r)
		}
	}
	flush()
	return toks
}
