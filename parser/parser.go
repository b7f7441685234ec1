package parser

import (
	"strconv"
	"strings"

	"github.com/solidforge/solidforge/lexer"
	"github.com/solidforge/solidforge/serr"
)

// Parser builds a statement list from a token stream (§4.8).
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New constructs a Parser over toks (the output of lexer.Tokenize).
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// ParseProgram parses every top-level statement until EOF.
func (p *Parser) ParseProgram() ([]Stmt, *serr.ParserError) {
	var stmts []Stmt
	p.skipLinebreaks()
	for !p.atEOF() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipLinebreaks()
	}
	return stmts, nil
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool       { return p.cur().Kind == lexer.EOF }
func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) skipLinebreaks() {
	for p.cur().Kind == lexer.Linebreak {
		p.advance()
	}
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, *serr.ParserError) {
	if p.cur().Kind != k {
		return lexer.Token{}, p.unexpected(what)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(want string) *serr.ParserError {
	return &serr.ParserError{
		Kind:  serr.UnexpectedStatementToken,
		Range: p.cur().Range,
		Hint:  "expected " + want + ", found " + p.cur().Kind.String() + " " + strconv.Quote(p.cur().Text),
	}
}

func (p *Parser) parseStatement() (Stmt, *serr.ParserError) {
	tok := p.cur()
	switch {
	case tok.Kind == lexer.Keyword && tok.Text == "define":
		return p.parseDefine()
	case tok.Kind == lexer.Keyword && tok.Text == "for":
		return p.parseFor()
	case tok.Kind == lexer.Keyword && tok.Text == "if":
		return p.parseIf()
	case tok.Kind == lexer.Keyword && tok.Text == "import":
		return p.parseImport()
	case tok.Kind == lexer.Identifier:
		return p.parseIdentStatement()
	default:
		return nil, p.unexpected("a statement")
	}
}

func (p *Parser) parseDefine() (Stmt, *serr.ParserError) {
	start := p.advance().Range // consume 'define'
	name, err := p.expect(lexer.Identifier, "a name")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Define{baseNode{spanning(start, expr.Range())}, name.Text, expr}, nil
}

func (p *Parser) parseFor() (Stmt, *serr.ParserError) {
	start := p.advance().Range // 'for'
	name, err := p.expect(lexer.Identifier, "a loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("in"); err != nil {
		return nil, err
	}
	from, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectWord("to"); err != nil {
		return nil, err
	}
	to, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	step := Expr(NumberLit{baseNode{to.Range()}, 1})
	if p.cur().Kind == lexer.Infix && p.cur().Text == "step" {
		p.advance()
		step, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	body, end, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return ForLoop{baseNode{spanning(start, end)}, name.Text, from, to, step, body}, nil
}

func (p *Parser) expectWord(word string) (lexer.Token, *serr.ParserError) {
	if p.cur().Kind != lexer.Infix || p.cur().Text != word {
		return lexer.Token{}, p.unexpected("'" + word + "'")
	}
	return p.advance(), nil
}

func (p *Parser) parseIf() (Stmt, *serr.ParserError) {
	start := p.advance().Range // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, end, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	var elseBody []Stmt
	p.skipLinebreaks()
	if p.cur().Kind == lexer.Keyword && p.cur().Text == "else" {
		p.advance()
		elseBody, end, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}
	return IfElse{baseNode{spanning(start, end)}, cond, then, elseBody}, nil
}

func (p *Parser) parseImport() (Stmt, *serr.ParserError) {
	start := p.advance().Range // 'import'
	tok, err := p.expect(lexer.String, "an import path string")
	if err != nil {
		return nil, err
	}
	return Import{baseNode{spanning(start, tok.Range)}, tok.Text}, nil
}

// parseIdentStatement disambiguates between a define-free block call
// (`cube { ... }`), a command invocation (`translate 1 0 0`), and a bare
// expression statement, based on what follows the identifier.
func (p *Parser) parseIdentStatement() (Stmt, *serr.ParserError) {
	nameTok := p.advance()
	var args []Expr
	for !p.atStatementEnd() && p.cur().Kind != lexer.LBrace {
		arg, err := p.parseExprNoCall()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	end := nameTok.Range
	if len(args) > 0 {
		end = args[len(args)-1].Range()
	}
	if p.cur().Kind == lexer.LBrace {
		body, bodyEnd, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		return BlockCall{baseNode{spanning(nameTok.Range, bodyEnd)}, nameTok.Text, args, body}, nil
	}
	return CommandCall{baseNode{spanning(nameTok.Range, end)}, nameTok.Text, args}, nil
}

func (p *Parser) atStatementEnd() bool {
	k := p.cur().Kind
	return k == lexer.Linebreak || k == lexer.EOF || k == lexer.RBrace
}

func (p *Parser) parseBody() ([]Stmt, serr.Range, *serr.ParserError) {
	open, err := p.expect(lexer.LBrace, "'{'")
	if err != nil {
		return nil, serr.Range{}, err
	}
	p.skipLinebreaks()
	var stmts []Stmt
	for p.cur().Kind != lexer.RBrace {
		if p.atEOF() {
			return nil, serr.Range{}, &serr.ParserError{
				Kind: serr.InvalidStatement, Range: open.Range, Hint: "unterminated block body",
			}
		}
		s, serr2 := p.parseStatement()
		if serr2 != nil {
			return nil, serr.Range{}, serr2
		}
		stmts = append(stmts, s)
		p.skipLinebreaks()
	}
	close := p.advance() // '}'
	return stmts, spanning(open.Range, close.Range), nil
}

func spanning(a, b serr.Range) serr.Range {
	return serr.Range{Start: a.Start, End: b.End}
}

// parseExpr parses a full expression, including an implicit vector literal
// when multiple space-separated operands follow (e.g. `1 2 3` as a command
// argument list collapses to a single vector value per §4.8's broadcast
// conversion).
func (p *Parser) parseExpr() (Expr, *serr.ParserError) {
	first, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	var rest []Expr
	for p.looksLikeOperandStart() {
		next, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		rest = append(rest, next)
	}
	if len(rest) == 0 {
		return first, nil
	}
	all := append([]Expr{first}, rest...)
	return VectorLit{baseNode{spanning(first.Range(), rest[len(rest)-1].Range())}, all}, nil
}

// parseExprNoCall parses a single operand without greedily consuming
// following operands into a vector literal — used for command argument
// lists where each argument is parsed individually by the caller.
func (p *Parser) parseExprNoCall() (Expr, *serr.ParserError) {
	return p.parseBinary(0)
}

func (p *Parser) looksLikeOperandStart() bool {
	switch p.cur().Kind {
	case lexer.Number, lexer.String, lexer.HexColor, lexer.LParen, lexer.Prefix:
		return true
	case lexer.Identifier:
		return true
	default:
		return false
	}
}

var precedence = map[string]int{
	"or": 1, "and": 2,
	"<": 3, ">": 3, "<=": 3, ">=": 3, "=": 3, "<>": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5,
}

func (p *Parser) parseBinary(minPrec int) (Expr, *serr.ParserError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.Infix {
		op := p.cur().Text
		prec, ok := precedence[op]
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = BinaryOp{baseNode{spanning(left.Range(), right.Range())}, op, left, right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, *serr.ParserError) {
	if p.cur().Kind == lexer.Prefix || (p.cur().Kind == lexer.Infix && p.cur().Text == "-") {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return UnaryOp{baseNode{spanning(op.Range, operand.Range())}, op.Text, operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, *serr.ParserError) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return NumberLit{baseNode{tok.Range}, tok.Value}, nil
	case lexer.String:
		p.advance()
		return StringLit{baseNode{tok.Range}, tok.Text}, nil
	case lexer.HexColor:
		p.advance()
		return ColorLit{baseNode{tok.Range}, tok.Text}, nil
	case lexer.LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(lexer.RParen, "')'")
		if err != nil {
			return nil, err
		}
		return spanned(inner, spanning(tok.Range, close.Range)), nil
	case lexer.Identifier:
		p.advance()
		if strings.ToLower(tok.Text) == "true" || strings.ToLower(tok.Text) == "false" {
			return BoolLit{baseNode{tok.Range}, strings.ToLower(tok.Text) == "true"}, nil
		}
		if p.cur().Kind == lexer.LParen {
			p.advance()
			var args []Expr
			for p.cur().Kind != lexer.RParen {
				arg, err := p.parseExprNoCall()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			close, err := p.expect(lexer.RParen, "')'")
			if err != nil {
				return nil, err
			}
			return Call{baseNode{spanning(tok.Range, close.Range)}, tok.Text, args}, nil
		}
		return Ident{baseNode{tok.Range}, tok.Text}, nil
	case lexer.Infix:
		if tok.Text == "true" || tok.Text == "false" {
			p.advance()
			return BoolLit{baseNode{tok.Range}, tok.Text == "true"}, nil
		}
	}
	return nil, p.unexpected("an expression")
}

// spanned re-wraps expr's range (used after parenthesization so the outer
// range includes the parens).
func spanned(expr Expr, r serr.Range) Expr {
	switch e := expr.(type) {
	case NumberLit:
		e.Rng = r
		return e
	case StringLit:
		e.Rng = r
		return e
	case BoolLit:
		e.Rng = r
		return e
	case ColorLit:
		e.Rng = r
		return e
	case Ident:
		e.Rng = r
		return e
	case Call:
		e.Rng = r
		return e
	case UnaryOp:
		e.Rng = r
		return e
	case BinaryOp:
		e.Rng = r
		return e
	case VectorLit:
		e.Rng = r
		return e
	default:
		return expr
	}
}
