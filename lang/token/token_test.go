package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindNames(t *testing.T) {
	// every kind must have a name
	for k := ILLEGAL; k < maxKind; k++ {
		assert.NotEmpty(t, k.String(), "kind %d has no name", int(k))
	}
}

func TestGoString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{PLUS, "'+'"},
		{BANGEQ, "'!='"},
		{LPAREN, "'('"},
		{LE, "'<='"},
		{IDENT, "identifier"},
		{NUMBER, "number literal"},
		{AND, "and"},
		{CLASS, "class"},
		{EOF, "end of file"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.k.GoString())
	}
}

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		name string
		want Kind
	}{
		{"and", AND},
		{"class", CLASS},
		{"while", WHILE},
		{"this", THIS},
		{"super", SUPER},
		{"foo", IDENT},
		{"classy", IDENT},
		{"And", IDENT}, // keywords are case-sensitive
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LookupIdent(c.name), "LookupIdent(%q)", c.name)
	}
}

func TestTokenLiteral(t *testing.T) {
	assert.Equal(t, "1.5", Token{Kind: NUMBER, Lexeme: "1.5", Num: 1.5}.Literal())
	assert.Equal(t, "hi", Token{Kind: STRING, Lexeme: `"hi"`, Str: "hi"}.Literal())
	assert.Equal(t, "", Token{Kind: IDENT, Lexeme: "x"}.Literal())
	assert.Equal(t, "", Token{Kind: PLUS, Lexeme: "+"}.Literal())
}
