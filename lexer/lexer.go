package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/solidforge/solidforge/serr"
)

// infixOperators lists multi-rune and single-rune infix operators, longest
// first so the scanner's greedy match prefers "<=" over "<".
var infixOperators = []string{"<=", ">=", "<>", "+", "-", "*", "/", "<", ">", "="}

var prefixWords = map[string]bool{"not": true}
var wordOperators = map[string]bool{"and": true, "or": true, "to": true, "step": true, "in": true}

// Lexer scans source text into a Token stream (§4.7).
type Lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	tokens []Token
}

// New constructs a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// Tokenize scans the entire input, returning the token stream (terminated
// by an EOF token) or the first LexerError encountered.
func (l *Lexer) Tokenize() ([]Token, *serr.LexerError) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return l.tokens, nil
}

func (l *Lexer) here() serr.Position { return serr.Position{Line: l.line, Column: l.col} }

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			l.advance()
		case r == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) next() (Token, *serr.LexerError) {
	l.skipWhitespaceAndComments()
	start := l.here()

	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Range: serr.Range{Start: start, End: start}}, nil
	}

	r := l.peek()

	if r == '\n' {
		for l.pos < len(l.src) {
			l.skipWhitespaceAndComments()
			if l.peek() != '\n' {
				break
			}
			l.advance()
		}
		return Token{Kind: Linebreak, Text: "\n", Range: serr.Range{Start: start, End: l.here()}}, nil
	}

	switch r {
	case '{':
		l.advance()
		return Token{Kind: LBrace, Text: "{", Range: serr.Range{Start: start, End: l.here()}}, nil
	case '}':
		l.advance()
		return Token{Kind: RBrace, Text: "}", Range: serr.Range{Start: start, End: l.here()}}, nil
	case '(':
		l.advance()
		return Token{Kind: LParen, Text: "(", Range: serr.Range{Start: start, End: l.here()}}, nil
	case ')':
		l.advance()
		return Token{Kind: RParen, Text: ")", Range: serr.Range{Start: start, End: l.here()}}, nil
	case '.':
		if !unicode.IsDigit(l.peekAt(1)) {
			l.advance()
			return Token{Kind: Dot, Text: ".", Range: serr.Range{Start: start, End: l.here()}}, nil
		}
	case '#':
		return l.scanHexColor(start)
	case '"':
		return l.scanString(start)
	}

	if unicode.IsDigit(r) {
		return l.scanNumber(start)
	}

	if isIdentStart(r) {
		return l.scanWordOrDisambiguatedCall(start)
	}

	for _, op := range infixOperators {
		if l.matchLiteral(op) {
			l.advanceN(len(op))
			return Token{Kind: Infix, Text: op, Range: serr.Range{Start: start, End: l.here()}}, nil
		}
	}

	return Token{}, &serr.LexerError{
		Kind:  serr.UnexpectedToken,
		Range: serr.Range{Start: start, End: start},
		Hint:  "unrecognized character '" + string(r) + "'",
	}
}

func (l *Lexer) matchLiteral(s string) bool {
	for i, r := range []rune(s) {
		if l.peekAt(i) != r {
			return false
		}
	}
	return true
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentCont(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// scanWordOrDisambiguatedCall scans an identifier/keyword/word-operator and
// applies the `sin (x)` disambiguation rule (§4.7): an identifier followed
// by whitespace then `(` in an operator context is treated the same as if
// no space were present (a call), by simply not emitting a separate token
// for the space — parens are always their own tokens either way, so the
// rule is enforced by the parser recognizing ident-then-LParen regardless
// of intervening space; this scanner's only job is to not let the space
// coalesce the identifier and the paren into something else.
func (l *Lexer) scanWordOrDisambiguatedCall(start serr.Position) (Token, *serr.LexerError) {
	var sb strings.Builder
	for l.pos < len(l.src) && isIdentCont(l.peek()) {
		sb.WriteRune(l.advance())
	}
	word := sb.String()
	rng := serr.Range{Start: start, End: l.here()}

	switch {
	case Keywords[word]:
		return Token{Kind: Keyword, Text: word, Range: rng}, nil
	case prefixWords[word]:
		return Token{Kind: Prefix, Text: word, Range: rng}, nil
	case wordOperators[word] || word == "true" || word == "false":
		return Token{Kind: Infix, Text: word, Range: rng}, nil
	default:
		return Token{Kind: Identifier, Text: word, Range: rng}, nil
	}
}

func (l *Lexer) scanNumber(start serr.Position) (Token, *serr.LexerError) {
	var sb strings.Builder
	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		sb.WriteRune(l.advance())
		for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
			sb.WriteRune(l.advance())
		}
	}
	text := sb.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, &serr.LexerError{
			Kind:  serr.InvalidNumber,
			Range: serr.Range{Start: start, End: l.here()},
			Hint:  "invalid numeric literal " + strconv.Quote(text),
		}
	}
	return Token{Kind: Number, Text: text, Value: v, Range: serr.Range{Start: start, End: l.here()}}, nil
}

func (l *Lexer) scanHexColor(start serr.Position) (Token, *serr.LexerError) {
	l.advance() // '#'
	var sb strings.Builder
	for l.pos < len(l.src) && isHexDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	if len(text) != 3 && len(text) != 4 && len(text) != 6 && len(text) != 8 {
		return Token{}, &serr.LexerError{
			Kind:  serr.InvalidColor,
			Range: serr.Range{Start: start, End: l.here()},
			Hint:  "hex color must have 3, 4, 6 or 8 digits, got " + strconv.Itoa(len(text)),
		}
	}
	return Token{Kind: HexColor, Text: "#" + text, Range: serr.Range{Start: start, End: l.here()}}, nil
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (l *Lexer) scanString(start serr.Position) (Token, *serr.LexerError) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return Token{}, &serr.LexerError{
				Kind:  serr.UnterminatedString,
				Range: serr.Range{Start: start, End: l.here()},
				Hint:  "string literal is missing a closing quote",
			}
		}
		r := l.advance()
		if r == '"' {
			break
		}
		if r == '\\' {
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				return Token{}, &serr.LexerError{
					Kind:  serr.InvalidEscapeSequence,
					Range: serr.Range{Start: start, End: l.here()},
					Hint:  "unknown escape sequence '\\" + string(esc) + "'",
				}
			}
			continue
		}
		sb.WriteRune(r)
	}
	normalized := norm.NFC.String(sb.String())
	return Token{Kind: String, Text: normalized, Range: serr.Range{Start: start, End: l.here()}}, nil
}
