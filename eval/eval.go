package eval

import (
	"fmt"

	"github.com/solidforge/solidforge/builder"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/scene"
	"github.com/solidforge/solidforge/serr"
)

// Evaluator walks a parsed program and produces a Scene, resolving blocks
// and commands against the standard library and the §6 block/command
// tables (eval/blocks.go, eval/commands.go).
type Evaluator struct {
	Delegate Delegate
	Cache    *scene.Cache

	// Fonts resolves a `font name` command to a loaded typeface for the
	// `text` block. A name with no entry degrades text() to an empty
	// mesh (§7 runtime-recoverable policy) rather than failing the build.
	Fonts map[string]*builder.Font
}

// New constructs an Evaluator. A nil delegate falls back to NopDelegate.
func New(delegate Delegate) *Evaluator {
	if delegate == nil {
		delegate = NopDelegate{}
	}
	return &Evaluator{Delegate: delegate, Cache: scene.NewCache()}
}

// EvalProgram evaluates every top-level statement against a fresh root
// scope seeded by seed, returning the resulting top-level Geometry nodes.
func (e *Evaluator) EvalProgram(stmts []parser.Stmt, seed int64) ([]*scene.Geometry, error) {
	root := NewRootScope(seed)
	if err := e.evalStmts(stmts, root); err != nil {
		return nil, err
	}
	var out []*scene.Geometry
	for _, c := range root.Children {
		if c.Kind == GeometryKind {
			out = append(out, c.Geometry)
		}
	}
	return out, nil
}

func (e *Evaluator) checkCancelled(r serr.Range) error {
	if e.Delegate.IsCancelled() {
		return serr.ErrCancelled
	}
	return nil
}

// evalStmts executes stmts in order against sc, polling cancellation at
// each statement boundary (§4.8, §5).
func (e *Evaluator) evalStmts(stmts []parser.Stmt, sc *Scope) error {
	for _, s := range stmts {
		if err := e.checkCancelled(s.Range()); err != nil {
			return err
		}
		if err := e.evalStmt(s, sc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalStmt(s parser.Stmt, sc *Scope) error {
	switch st := s.(type) {
	case parser.Define:
		v, err := e.evalExpr(st.Expr, sc)
		if err != nil {
			return err
		}
		sc.Define(st.Name, v)
		return nil

	case parser.ForLoop:
		return e.evalFor(st, sc)

	case parser.IfElse:
		v, err := e.evalExpr(st.Cond, sc)
		if err != nil {
			return err
		}
		cond, ok := v.AsBool()
		if !ok {
			return typeError(st.Range(), "boolean", v.Kind)
		}
		if cond {
			return e.evalStmts(st.Then, sc)
		}
		return e.evalStmts(st.Else, sc)

	case parser.Import:
		return e.evalImport(st, sc)

	case parser.BlockCall:
		v, err := e.evalBlock(st, sc)
		if err != nil {
			return err
		}
		sc.AddChild(v)
		return nil

	case parser.CommandCall:
		// A bare block name with no `{ }` body (e.g. the `cube` in
		// `difference { cube; sphere {...} }`) parses as a body-less
		// CommandCall; the grammar only distinguishes block calls from
		// commands by the presence of a trailing brace. Route it to
		// block evaluation when it names a block rather than a command.
		if isBlockName(st.Name) && !IsKnownCommand(st.Name) {
			v, err := e.evalBlock(parser.BlockCall{Name: st.Name, Args: st.Args}, sc)
			if err != nil {
				return err
			}
			sc.AddChild(v)
			return nil
		}
		return e.evalCommand(st, sc)

	case parser.ExprStmt:
		_, err := e.evalExpr(st.Expr, sc)
		return err

	default:
		return &serr.RuntimeError{Kind: serr.TypeMismatch, Range: s.Range(), Hint: "unhandled statement"}
	}
}

func (e *Evaluator) evalFor(st parser.ForLoop, sc *Scope) error {
	fromV, err := e.evalExpr(st.From, sc)
	if err != nil {
		return err
	}
	toV, err := e.evalExpr(st.To, sc)
	if err != nil {
		return err
	}
	stepV, err := e.evalExpr(st.Step, sc)
	if err != nil {
		return err
	}
	from, ok1 := fromV.AsNumber()
	to, ok2 := toV.AsNumber()
	step, ok3 := stepV.AsNumber()
	if !ok1 || !ok2 || !ok3 {
		return typeError(st.Range(), "number", fromV.Kind)
	}
	if step == 0 {
		return &serr.RuntimeError{Kind: serr.TypeMismatch, Range: st.Range(), Hint: "for-loop step must be non-zero"}
	}
	for i := from; (step > 0 && i <= to) || (step < 0 && i >= to); i += step {
		if err := e.checkCancelled(st.Range()); err != nil {
			return err
		}
		iter := sc.Child()
		iter.Define(st.Name, NumberValue(i))
		if err := e.evalStmts(st.Body, iter); err != nil {
			return err
		}
		for _, c := range iter.Children {
			sc.AddChild(c)
		}
	}
	return nil
}

func (e *Evaluator) evalImport(st parser.Import, sc *Scope) error {
	url, err := e.Delegate.ResolveURL(st.Path)
	if err != nil {
		return serr.NewImportError(st.Range(), st.Path, err)
	}
	sub, err := e.Delegate.ImportGeometry(url)
	if err != nil {
		return serr.NewImportError(st.Range(), st.Path, err)
	}
	if sub == nil {
		return &serr.RuntimeError{Kind: serr.FileNotFound, Range: st.Range(), Hint: fmt.Sprintf("import %q not found", st.Path)}
	}
	for _, g := range sub.Children {
		sc.AddChild(Value{Kind: GeometryKind, Geometry: g})
	}
	return nil
}

// evalExpr evaluates an expression node to a Value.
func (e *Evaluator) evalExpr(expr parser.Expr, sc *Scope) (Value, error) {
	switch ex := expr.(type) {
	case parser.NumberLit:
		return NumberValue(ex.Value), nil
	case parser.StringLit:
		return StringValue(ex.Value), nil
	case parser.BoolLit:
		return BoolValue(ex.Value), nil
	case parser.ColorLit:
		return e.evalColorLit(ex, sc)
	case parser.Ident:
		return e.evalIdent(ex, sc)
	case parser.Call:
		return e.evalCall(ex, sc)
	case parser.UnaryOp:
		return e.evalUnary(ex, sc)
	case parser.BinaryOp:
		return e.evalBinary(ex, sc)
	case parser.VectorLit:
		return e.evalVectorLit(ex, sc)
	default:
		return Value{}, &serr.RuntimeError{Kind: serr.TypeMismatch, Range: expr.Range(), Hint: "unhandled expression"}
	}
}

func (e *Evaluator) evalColorLit(ex parser.ColorLit, sc *Scope) (Value, error) {
	c, ok := resolveColor(ex.Text)
	if !ok {
		return Value{}, &serr.RuntimeError{Kind: serr.TypeMismatch, Range: ex.Range(), Hint: "invalid color literal " + ex.Text}
	}
	return ColorValue(c), nil
}

func (e *Evaluator) evalIdent(ex parser.Ident, sc *Scope) (Value, error) {
	if v, ok := sc.Lookup(ex.Name); ok {
		return v, nil
	}
	if v, ok := constants[ex.Name]; ok {
		return v, nil
	}
	if fn, ok := standardLibrary[ex.Name]; ok {
		return fn(e, sc, ex.Range(), nil)
	}
	return Value{}, &serr.RuntimeError{Kind: serr.UnknownSymbol, Range: ex.Range(), Hint: "unknown symbol " + ex.Name}
}

func (e *Evaluator) evalCall(ex parser.Call, sc *Scope) (Value, error) {
	args := make([]Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := e.evalExpr(a, sc)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	fn, ok := standardLibrary[ex.Name]
	if !ok {
		return Value{}, &serr.RuntimeError{Kind: serr.UnknownSymbol, Range: ex.Range(), Hint: "unknown function " + ex.Name}
	}
	return fn(e, sc, ex.Range(), args)
}

func (e *Evaluator) evalUnary(ex parser.UnaryOp, sc *Scope) (Value, error) {
	v, err := e.evalExpr(ex.Operand, sc)
	if err != nil {
		return Value{}, err
	}
	switch ex.Op {
	case "-":
		n, ok := v.AsNumber()
		if !ok {
			vec, ok := v.AsVector()
			if !ok {
				return Value{}, typeError(ex.Range(), "number", v.Kind)
			}
			return VectorValue(vec.Negated()), nil
		}
		return NumberValue(-n), nil
	case "not":
		b, ok := v.AsBool()
		if !ok {
			return Value{}, typeError(ex.Range(), "boolean", v.Kind)
		}
		return BoolValue(!b), nil
	default:
		return Value{}, &serr.RuntimeError{Kind: serr.TypeMismatch, Range: ex.Range(), Hint: "unknown unary operator " + ex.Op}
	}
}

func (e *Evaluator) evalVectorLit(ex parser.VectorLit, sc *Scope) (Value, error) {
	comps := make([]float64, 0, len(ex.Components))
	for _, c := range ex.Components {
		v, err := e.evalExpr(c, sc)
		if err != nil {
			return Value{}, err
		}
		n, ok := v.AsNumber()
		if !ok {
			return Value{}, typeError(c.Range(), "number", v.Kind)
		}
		comps = append(comps, n)
	}
	for len(comps) < 3 {
		comps = append(comps, 0)
	}
	return VectorValue(vector3(comps)), nil
}
