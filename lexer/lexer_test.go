package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidforge/solidforge/lexer"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	require.Nil(t, err)
	return toks
}

func TestLexerSkipsCommentsAndCollapsesLinebreaks(t *testing.T) {
	toks := tokenize(t, "define x 1 // comment\n\n\ndefine y 2")
	var kinds []lexer.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Contains(t, kinds, lexer.Linebreak)
	linebreaks := 0
	for _, k := range kinds {
		if k == lexer.Linebreak {
			linebreaks++
		}
	}
	require.Equal(t, 1, linebreaks)
}

func TestLexerNumberAndIdentifier(t *testing.T) {
	toks := tokenize(t, "cube 2.5")
	require.Equal(t, lexer.Identifier, toks[0].Kind)
	require.Equal(t, lexer.Number, toks[1].Kind)
	require.InDelta(t, 2.5, toks[1].Value, 1e-9)
}

func TestLexerHexColor(t *testing.T) {
	toks := tokenize(t, "#FF00FF")
	require.Equal(t, lexer.HexColor, toks[0].Kind)
	require.Equal(t, "#FF00FF", toks[0].Text)
}

func TestLexerInvalidHexColorLength(t *testing.T) {
	_, err := lexer.New("#FF").Tokenize()
	require.NotNil(t, err)
	require.Equal(t, "invalidColor", err.Kind.String())
}

func TestLexerStringEscapes(t *testing.T) {
	toks := tokenize(t, `"hello\nworld"`)
	require.Equal(t, lexer.String, toks[0].Kind)
	require.Equal(t, "hello\nworld", toks[0].Text)
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := lexer.New(`"unterminated`).Tokenize()
	require.NotNil(t, err)
	require.Equal(t, "unterminatedString", err.Kind.String())
}

func TestLexerKeywords(t *testing.T) {
	toks := tokenize(t, "if x { }")
	require.Equal(t, lexer.Keyword, toks[0].Kind)
	require.Equal(t, "if", toks[0].Text)
}

func TestLexerFunctionCallDisambiguation(t *testing.T) {
	toks := tokenize(t, "sin (x)")
	require.Equal(t, lexer.Identifier, toks[0].Kind)
	require.Equal(t, lexer.LParen, toks[1].Kind)
}
