// Package format re-renders a parsed script to canonical source text: two
// space indentation, one statement per line, minimal parentheses — a
// native lexer/parser-based replacement for the teacher's formatter.go,
// which shelled out to an external odinfmt binary.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/parser"
)

// Source lexes, parses, and re-renders src in canonical form.
func Source(src string) (string, error) {
	toks, lexErr := lexer.New(src).Tokenize()
	if lexErr != nil {
		return "", fmt.Errorf("lexing: %w", lexErr)
	}
	stmts, parseErr := parser.New(toks).ParseProgram()
	if parseErr != nil {
		return "", fmt.Errorf("parsing: %w", parseErr)
	}
	return Stmts(stmts), nil
}

// Stmts renders a top-level statement list.
func Stmts(stmts []parser.Stmt) string {
	var b strings.Builder
	writeStmts(&b, stmts, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writeStmts(b *strings.Builder, stmts []parser.Stmt, depth int) {
	for _, s := range stmts {
		writeStmt(b, s, depth)
	}
}

func writeStmt(b *strings.Builder, s parser.Stmt, depth int) {
	indent(b, depth)
	switch st := s.(type) {
	case parser.Define:
		b.WriteString("define ")
		b.WriteString(st.Name)
		b.WriteString(" ")
		b.WriteString(renderExpr(st.Expr, 0))
		b.WriteString("\n")

	case parser.ForLoop:
		b.WriteString("for ")
		b.WriteString(st.Name)
		b.WriteString(" in ")
		b.WriteString(renderExpr(st.From, 0))
		b.WriteString(" to ")
		b.WriteString(renderExpr(st.To, 0))
		b.WriteString(" step ")
		b.WriteString(renderExpr(st.Step, 0))
		b.WriteString(" {\n")
		writeStmts(b, st.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")

	case parser.IfElse:
		b.WriteString("if ")
		b.WriteString(renderExpr(st.Cond, 0))
		b.WriteString(" {\n")
		writeStmts(b, st.Then, depth+1)
		indent(b, depth)
		if len(st.Else) > 0 {
			b.WriteString("} else {\n")
			writeStmts(b, st.Else, depth+1)
			indent(b, depth)
		}
		b.WriteString("}\n")

	case parser.Import:
		b.WriteString("import ")
		b.WriteString(quoteString(st.Path))
		b.WriteString("\n")

	case parser.BlockCall:
		b.WriteString(st.Name)
		for _, a := range st.Args {
			b.WriteString(" ")
			b.WriteString(renderExpr(a, 0))
		}
		b.WriteString(" {\n")
		writeStmts(b, st.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")

	case parser.CommandCall:
		b.WriteString(st.Name)
		for _, a := range st.Args {
			b.WriteString(" ")
			b.WriteString(renderExpr(a, 0))
		}
		b.WriteString("\n")

	case parser.ExprStmt:
		b.WriteString(renderExpr(st.Expr, 0))
		b.WriteString("\n")
	}
}

// renderExpr renders e, wrapping it in parentheses only when its own
// operator precedence is lower than minPrec (the precedence context it's
// being rendered into).
func renderExpr(e parser.Expr, minPrec int) string {
	switch ex := e.(type) {
	case parser.NumberLit:
		return strconv.FormatFloat(ex.Value, 'g', -1, 64)
	case parser.StringLit:
		return quoteString(ex.Value)
	case parser.BoolLit:
		if ex.Value {
			return "true"
		}
		return "false"
	case parser.ColorLit:
		return ex.Text
	case parser.Ident:
		return ex.Name
	case parser.Call:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = renderExpr(a, 0)
		}
		return ex.Name + "(" + strings.Join(args, " ") + ")"
	case parser.UnaryOp:
		operand := renderExpr(ex.Operand, unaryPrecedence)
		if ex.Op == "not" {
			return "not " + operand
		}
		return ex.Op + operand
	case parser.BinaryOp:
		prec := precedence[ex.Op]
		left := renderExpr(ex.Left, prec)
		right := renderExpr(ex.Right, prec+1)
		rendered := left + " " + ex.Op + " " + right
		if prec < minPrec {
			return "(" + rendered + ")"
		}
		return rendered
	case parser.VectorLit:
		parts := make([]string, len(ex.Components))
		for i, c := range ex.Components {
			parts[i] = renderExpr(c, 0)
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

const unaryPrecedence = 6

var precedence = map[string]int{
	"or": 1, "and": 2,
	"<": 3, ">": 3, "<=": 3, ">=": 3, "=": 3, "<>": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5,
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
