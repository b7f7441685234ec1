// Package lint statically checks a parsed script for unknown symbol
// references — commands, blocks, and functions that don't exist plus
// identifiers that are neither defined nor a built-in constant — without
// evaluating the script, adapted from the teacher's linter.go
// forbidden-import scanner (there, a regex over import lines; here, a walk
// of the AST against the evaluator's symbol tables).
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/solidforge/solidforge/eval"
	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/parser"
	"github.com/solidforge/solidforge/serr"
)

// Finding is one lint violation.
type Finding struct {
	File    string
	Range   serr.Range
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("  [ERROR] %s:%d:%d\n    %s", f.File, f.Range.Start.Line, f.Range.Start.Column, f.Message)
}

// scope tracks names defined by `define`, `for`, and import so references
// to them aren't flagged as unknown.
type scope struct {
	parent *scope
	names  map[string]bool
}

func (s *scope) child() *scope {
	return &scope{parent: s, names: make(map[string]bool)}
}

func (s *scope) define(name string) {
	s.names[name] = true
}

func (s *scope) has(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.names[name] {
			return true
		}
	}
	return false
}

// Check walks stmts and returns every unknown-symbol finding.
func Check(file string, stmts []parser.Stmt) []Finding {
	var findings []Finding
	root := &scope{names: make(map[string]bool)}
	checkStmts(file, stmts, root, &findings)
	return findings
}

func checkStmts(file string, stmts []parser.Stmt, sc *scope, out *[]Finding) {
	for _, s := range stmts {
		checkStmt(file, s, sc, out)
	}
}

func checkStmt(file string, s parser.Stmt, sc *scope, out *[]Finding) {
	switch st := s.(type) {
	case parser.Define:
		checkExpr(file, st.Expr, sc, out)
		sc.define(st.Name)

	case parser.ForLoop:
		checkExpr(file, st.From, sc, out)
		checkExpr(file, st.To, sc, out)
		checkExpr(file, st.Step, sc, out)
		body := sc.child()
		body.define(st.Name)
		checkStmts(file, st.Body, body, out)

	case parser.IfElse:
		checkExpr(file, st.Cond, sc, out)
		checkStmts(file, st.Then, sc.child(), out)
		checkStmts(file, st.Else, sc.child(), out)

	case parser.Import:
		// Import paths are resolved by the delegate at eval time; lint
		// doesn't know the project root here, so it only checks syntax,
		// already guaranteed by a successful parse.

	case parser.BlockCall:
		for _, a := range st.Args {
			checkExpr(file, a, sc, out)
		}
		if !eval.IsKnownBlock(st.Name) {
			*out = append(*out, Finding{File: file, Range: st.Range(), Message: "unknown block '" + st.Name + "'"})
		}
		checkStmts(file, st.Body, sc.child(), out)

	case parser.CommandCall:
		for _, a := range st.Args {
			checkExpr(file, a, sc, out)
		}
		if !eval.IsKnownCommand(st.Name) && !eval.IsKnownBlock(st.Name) {
			*out = append(*out, Finding{File: file, Range: st.Range(), Message: "unknown command '" + st.Name + "'"})
		}

	case parser.ExprStmt:
		checkExpr(file, st.Expr, sc, out)
	}
}

func checkExpr(file string, e parser.Expr, sc *scope, out *[]Finding) {
	switch ex := e.(type) {
	case parser.Ident:
		if !sc.has(ex.Name) && !eval.IsKnownConstant(ex.Name) && !eval.IsKnownFunction(ex.Name) {
			*out = append(*out, Finding{File: file, Range: ex.Range(), Message: "unknown symbol '" + ex.Name + "'"})
		}
	case parser.Call:
		if !eval.IsKnownFunction(ex.Name) {
			*out = append(*out, Finding{File: file, Range: ex.Range(), Message: "unknown function '" + ex.Name + "'"})
		}
		for _, a := range ex.Args {
			checkExpr(file, a, sc, out)
		}
	case parser.UnaryOp:
		checkExpr(file, ex.Operand, sc, out)
	case parser.BinaryOp:
		checkExpr(file, ex.Left, sc, out)
		checkExpr(file, ex.Right, sc, out)
	case parser.VectorLit:
		for _, c := range ex.Components {
			checkExpr(file, c, sc, out)
		}
	}
}

// CheckFile lexes, parses, and lints a single source file.
func CheckFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	toks, lexErr := lexer.New(string(data)).Tokenize()
	if lexErr != nil {
		return nil, fmt.Errorf("lexing %s: %w", path, lexErr)
	}
	stmts, parseErr := parser.New(toks).ParseProgram()
	if parseErr != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, parseErr)
	}
	return Check(path, stmts), nil
}

// CheckDir walks dir for .sf scripts and lints each one, mirroring the
// teacher's directory-scanning Lint entry point.
func CheckDir(dir string) ([]Finding, error) {
	var all []Finding
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".sf") {
			return nil
		}
		findings, err := CheckFile(path)
		if err != nil {
			return err
		}
		all = append(all, findings...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return all, nil
}
