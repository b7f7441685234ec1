package lint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/lint"
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

func TestCheckFlagsUnknownBlock(t *testing.T) {
	stmts := parse(t, "frobnicate {\n  size 1\n}")
	findings := lint.Check("test.sf", stmts)
	require.Len(t, findings, 1)
	require.Contains(t, findings[0].Message, "frobnicate")
}

func TestCheckFlagsUnknownIdentifier(t *testing.T) {
	stmts := parse(t, "print foo")
	findings := lint.Check("test.sf", stmts)
	require.Len(t, findings, 1)
	require.Contains(t, findings[0].Message, "foo")
}

func TestCheckAcceptsDefinedName(t *testing.T) {
	stmts := parse(t, "define x 2\nprint x")
	findings := lint.Check("test.sf", stmts)
	require.Empty(t, findings)
}

func TestCheckAcceptsKnownBlocksAndCommands(t *testing.T) {
	stmts := parse(t, "difference {\n  cube\n  sphere {\n    size 1.2\n  }\n}")
	findings := lint.Check("test.sf", stmts)
	require.Empty(t, findings)
}

func TestCheckAcceptsForLoopVariable(t *testing.T) {
	stmts := parse(t, "for i in 0 to 2 {\n  translate i 0 0\n  cube\n}")
	findings := lint.Check("test.sf", stmts)
	require.Empty(t, findings)
}
