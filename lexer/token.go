// Package lexer tokenizes scripting-language source text (§4.7).
package lexer

import "github.com/solidforge/solidforge/serr"

// Kind enumerates token kinds (§4.7).
type Kind int

const (
	Linebreak Kind = iota
	Identifier
	Keyword
	HexColor
	Infix
	Prefix
	Number
	String
	LBrace
	RBrace
	LParen
	RParen
	Dot
	EOF
)

func (k Kind) String() string {
	switch k {
	case Linebreak:
		return "linebreak"
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case HexColor:
		return "hexColor"
	case Infix:
		return "infix"
	case Prefix:
		return "prefix"
	case Number:
		return "number"
	case String:
		return "string"
	case LBrace:
		return "lbrace"
	case RBrace:
		return "rbrace"
	case LParen:
		return "lparen"
	case RParen:
		return "rparen"
	case Dot:
		return "dot"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Keywords is the fixed keyword set (§4.7).
var Keywords = map[string]bool{
	"define": true, "for": true, "if": true, "else": true, "import": true,
}

// Token is one lexical unit with its source range and literal text.
type Token struct {
	Kind  Kind
	Text  string
	Value float64 // populated for Number
	Range serr.Range
}
