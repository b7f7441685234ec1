// Package parser builds an AST of statements (§4.8) from a lexer.Token
// stream.
package parser

import "github.com/solidforge/solidforge/serr"

// Expr is any value-producing expression node.
type Expr interface {
	exprNode()
	Range() serr.Range
}

// Stmt is any top-level or block-body statement node.
type Stmt interface {
	stmtNode()
	Range() serr.Range
}

type baseNode struct{ Rng serr.Range }

func (b baseNode) Range() serr.Range { return b.Rng }

// NumberLit is a numeric literal.
type NumberLit struct {
	baseNode
	Value float64
}

func (NumberLit) exprNode() {}

// StringLit is a string literal (already unicode-normalized by the lexer).
type StringLit struct {
	baseNode
	Value string
}

func (StringLit) exprNode() {}

// BoolLit is a boolean literal.
type BoolLit struct {
	baseNode
	Value bool
}

func (BoolLit) exprNode() {}

// ColorLit is a hex color literal or bareword color name.
type ColorLit struct {
	baseNode
	Text string
}

func (ColorLit) exprNode() {}

// Ident references a symbol by name (variable, constant, or a nullary
// function/property read).
type Ident struct {
	baseNode
	Name string
}

func (Ident) exprNode() {}

// Call invokes a named function or command with positional arguments.
type Call struct {
	baseNode
	Name string
	Args []Expr
}

func (Call) exprNode() {}

// UnaryOp applies a prefix operator (`not`, unary `-`) to an operand.
type UnaryOp struct {
	baseNode
	Op      string
	Operand Expr
}

func (UnaryOp) exprNode() {}

// BinaryOp applies an infix operator to two operands.
type BinaryOp struct {
	baseNode
	Op          string
	Left, Right Expr
}

func (BinaryOp) exprNode() {}

// VectorLit is an implicit vector literal built from component expressions
// (e.g. the argument list of `translate 1 2 3`).
type VectorLit struct {
	baseNode
	Components []Expr
}

func (VectorLit) exprNode() {}

// Define binds name to expr's value in the current scope (`define name expr`).
type Define struct {
	baseNode
	Name string
	Expr Expr
}

func (Define) stmtNode() {}

// BlockCall invokes a block (e.g. `cube { ... }`) with positional/command
// arguments and a nested body of statements.
type BlockCall struct {
	baseNode
	Name string
	Args []Expr
	Body []Stmt
}

func (BlockCall) stmtNode() {}

// CommandCall invokes a command (`translate 1 0 0`) with positional args
// and no body.
type CommandCall struct {
	baseNode
	Name string
	Args []Expr
}

func (CommandCall) stmtNode() {}

// ForLoop is `for name in from to to step step { body }`.
type ForLoop struct {
	baseNode
	Name           string
	From, To, Step Expr
	Body           []Stmt
}

func (ForLoop) stmtNode() {}

// IfElse is `if cond { then } [else { else }]`.
type IfElse struct {
	baseNode
	Cond       Expr
	Then, Else []Stmt
}

func (IfElse) stmtNode() {}

// Import is `import "path"`.
type Import struct {
	baseNode
	Path string
}

func (Import) stmtNode() {}

// ExprStmt wraps a bare expression evaluated for side effect (e.g. a
// command-like function call such as `print "hi"`, modeled as a Call whose
// surrounding context is a statement rather than a value site).
type ExprStmt struct {
	baseNode
	Expr Expr
}

func (ExprStmt) stmtNode() {}
