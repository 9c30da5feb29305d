package scanner_test

import (
	"testing"

	"github.com/roxlang/rox/lang/scanner"
	"github.com/roxlang/rox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scan tokenizes src fully and returns the tokens (including EOF) and the
// accumulated error list.
func scan(t *testing.T, src string) ([]token.Token, error) {
	t.Helper()

	var s scanner.Scanner
	var el scanner.ErrorList
	f := token.NewFile("test", len(src))
	s.Init(f, []byte(src), el.Add)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	el.Sort()
	return toks, el.Err()
}

func kinds(toks []token.Token) []token.Kind {
	res := make([]token.Kind, len(toks))
	for i, tok := range toks {
		res[i] = tok.Kind
	}
	return res
}

func TestScan(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{
			name: "empty",
			src:  "",
			want: []token.Kind{token.EOF},
		},
		{
			name: "punctuation",
			src:  "(){},.-+;*/",
			want: []token.Kind{
				token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
				token.COMMA, token.DOT, token.MINUS, token.PLUS,
				token.SEMICOLON, token.STAR, token.SLASH, token.EOF,
			},
		},
		{
			name: "operators",
			src:  "! != = == < <= > >=",
			want: []token.Kind{
				token.BANG, token.BANGEQ, token.EQ, token.EQEQ,
				token.LT, token.LE, token.GT, token.GE, token.EOF,
			},
		},
		{
			name: "keywords and identifiers",
			src:  "and class else false for fun if nil or print return super this true var while foo _bar b2",
			want: []token.Kind{
				token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR,
				token.FUN, token.IF, token.NIL, token.OR, token.PRINT,
				token.RETURN, token.SUPER, token.THIS, token.TRUE, token.VAR,
				token.WHILE, token.IDENT, token.IDENT, token.IDENT, token.EOF,
			},
		},
		{
			name: "line comment",
			src:  "1 // rest ignored\n2",
			want: []token.Kind{token.NUMBER, token.NUMBER, token.EOF},
		},
		{
			name: "nested block comment",
			src:  "1 /* a /* nested */ still comment */ 2",
			want: []token.Kind{token.NUMBER, token.NUMBER, token.EOF},
		},
		{
			name: "dot not part of trailing-dot number",
			src:  "123.",
			want: []token.Kind{token.NUMBER, token.DOT, token.EOF},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := scan(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, kinds(toks))
		})
	}
}

func TestScanLiterals(t *testing.T) {
	toks, err := scan(t, `12 3.5 "hi" "multi
line"`)
	require.NoError(t, err)
	require.Len(t, toks, 5)

	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "12", toks[0].Lexeme)
	assert.Equal(t, 12.0, toks[0].Num)

	assert.Equal(t, token.NUMBER, toks[1].Kind)
	assert.Equal(t, 3.5, toks[1].Num)

	assert.Equal(t, token.STRING, toks[2].Kind)
	assert.Equal(t, `"hi"`, toks[2].Lexeme)
	assert.Equal(t, "hi", toks[2].Str)

	// no escape processing, embedded newline kept raw
	assert.Equal(t, token.STRING, toks[3].Kind)
	assert.Equal(t, "multi\nline", toks[3].Str)
}

func TestScanLines(t *testing.T) {
	toks, err := scan(t, "1\n2\n\"a\nb\"\n3")
	require.NoError(t, err)
	require.Len(t, toks, 5)

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	// a string token is reported at the line it starts on
	assert.Equal(t, 3, toks[2].Line)
	// the embedded newline advanced the line counter
	assert.Equal(t, 5, toks[3].Line)
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unterminated string",
			src:  `"abc`,
			want: "unterminated string",
		},
		{
			name: "unterminated block comment",
			src:  "/* abc",
			want: "unterminated block comment",
		},
		{
			name: "unterminated nested block comment",
			src:  "/* a /* b */",
			want: "unterminated block comment",
		},
		{
			name: "unexpected character",
			src:  "var @ = 1;",
			want: `unexpected character '@'`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := scan(t, c.src)
			assert.ErrorContains(t, err, c.want)
		})
	}
}
