package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/parser"
)

func parse(t *testing.T, src string) []parser.Stmt {
	t.Helper()
	toks, lexErr := lexer.New(src).Tokenize()
	require.Nil(t, lexErr)
	stmts, parseErr := parser.New(toks).ParseProgram()
	require.Nil(t, parseErr)
	return stmts
}

func TestParseDefine(t *testing.T) {
	stmts := parse(t, "define x 5")
	require.Len(t, stmts, 1)
	d, ok := stmts[0].(parser.Define)
	require.True(t, ok)
	require.Equal(t, "x", d.Name)
	num, ok := d.Expr.(parser.NumberLit)
	require.True(t, ok)
	require.Equal(t, 5.0, num.Value)
}

func TestParseBlockCallWithArgsAndBody(t *testing.T) {
	stmts := parse(t, "cube {\n  size 2\n}")
	require.Len(t, stmts, 1)
	b, ok := stmts[0].(parser.BlockCall)
	require.True(t, ok)
	require.Equal(t, "cube", b.Name)
	require.Len(t, b.Body, 1)
	cmd, ok := b.Body[0].(parser.CommandCall)
	require.True(t, ok)
	require.Equal(t, "size", cmd.Name)
}

func TestParseCommandInvocationVector(t *testing.T) {
	stmts := parse(t, "translate 1 2 3")
	cmd, ok := stmts[0].(parser.CommandCall)
	require.True(t, ok)
	require.Len(t, cmd.Args, 1)
	vec, ok := cmd.Args[0].(parser.VectorLit)
	require.True(t, ok)
	require.Len(t, vec.Components, 3)
}

func TestParseForLoop(t *testing.T) {
	stmts := parse(t, "for i in 0 to 5 step 2 {\n  print i\n}")
	loop, ok := stmts[0].(parser.ForLoop)
	require.True(t, ok)
	require.Equal(t, "i", loop.Name)
	require.Len(t, loop.Body, 1)
}

func TestParseIfElse(t *testing.T) {
	stmts := parse(t, "if x = 1 {\n  print 1\n} else {\n  print 0\n}")
	ifs, ok := stmts[0].(parser.IfElse)
	require.True(t, ok)
	require.Len(t, ifs.Then, 1)
	require.Len(t, ifs.Else, 1)
}

func TestParseImport(t *testing.T) {
	stmts := parse(t, `import "shapes.sf"`)
	imp, ok := stmts[0].(parser.Import)
	require.True(t, ok)
	require.Equal(t, "shapes.sf", imp.Path)
}

func TestParseBinaryPrecedence(t *testing.T) {
	stmts := parse(t, "define x 1 + 2 * 3")
	d := stmts[0].(parser.Define)
	bin, ok := d.Expr.(parser.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
	right, ok := bin.Right.(parser.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", right.Op)
}

func TestParseFunctionCall(t *testing.T) {
	stmts := parse(t, "define y sin (x)")
	d := stmts[0].(parser.Define)
	call, ok := d.Expr.(parser.Call)
	require.True(t, ok)
	require.Equal(t, "sin", call.Name)
	require.Len(t, call.Args, 1)
}
