package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruth(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{False, false},
		{True, true},
		{Float(0), true},
		{Float(1), true},
		{String(""), true},
		{String("x"), true},
		{NewBuiltin("f", 0, nil), true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Truth(c.v), "Truth(%s %s)", c.v.Type(), c.v)
	}
}

func TestEqual(t *testing.T) {
	fn := NewBuiltin("f", 0, nil)
	cls := NewClass("C", nil, nil)

	cases := []struct {
		x, y Value
		want bool
	}{
		{Nil, Nil, true},
		{Nil, False, false},
		{True, True, true},
		{True, False, false},
		{Float(1), Float(1), true},
		{Float(1), Float(2), false},
		{Float(0), False, false},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{String("1"), Float(1), false},
		{fn, fn, true},
		{fn, NewBuiltin("f", 0, nil), false},
		{cls, cls, true},
		{cls, NewClass("C", nil, nil), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Equal(c.x, c.y), "Equal(%s, %s)", c.x, c.y)
	}
}

func TestFloatString(t *testing.T) {
	cases := []struct {
		f    Float
		want string
	}{
		{Float(3), "3"},
		{Float(3.5), "3.5"},
		{Float(-0.25), "-0.25"},
		{Float(0), "0"},
		{Float(100), "100"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.f.String())
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
	assert.Equal(t, "raw chars", String("raw chars").String())
	assert.Equal(t, "<native fn clock>", Universe["clock"].String())

	cls := NewClass("Point", nil, nil)
	assert.Equal(t, "Point", cls.String())
}
