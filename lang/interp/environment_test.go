package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefineGet(t *testing.T) {
	g := NewEnv(nil)
	g.Define("a", Float(1))

	v, ok := g.Get("a")
	require.True(t, ok)
	assert.Equal(t, Float(1), v)

	// rebinding in the same frame overwrites
	g.Define("a", String("x"))
	v, _ = g.Get("a")
	assert.Equal(t, String("x"), v)

	_, ok = g.Get("missing")
	assert.False(t, ok)
}

func TestEnvAssign(t *testing.T) {
	g := NewEnv(nil)
	g.Define("a", Float(1))

	assert.True(t, g.Assign("a", Float(2)))
	v, _ := g.Get("a")
	assert.Equal(t, Float(2), v)

	assert.False(t, g.Assign("missing", Float(3)))
}

func TestEnvGetAt(t *testing.T) {
	g := NewEnv(nil)
	g.Define("a", String("global"))

	mid := NewEnv(g)
	mid.Define("a", String("mid"))

	leaf := NewEnv(mid)

	assert.Equal(t, String("mid"), leaf.GetAt(1, "a"))
	assert.Equal(t, String("global"), leaf.GetAt(2, "a"))
	assert.Equal(t, String("mid"), mid.GetAt(0, "a"))

	leaf.AssignAt(1, "a", String("changed"))
	assert.Equal(t, String("changed"), mid.GetAt(0, "a"))
	// the global binding is untouched
	assert.Equal(t, String("global"), g.GetAt(0, "a"))
}

// A hop that points to a missing binding or past the chain root is an
// internal error, never a user error.
func TestEnvInternalErrors(t *testing.T) {
	g := NewEnv(nil)
	leaf := NewEnv(g)

	assert.Panics(t, func() { leaf.GetAt(1, "missing") })
	assert.Panics(t, func() { leaf.GetAt(5, "a") })
	assert.Panics(t, func() { leaf.AssignAt(1, "missing", Nil) })
}

// Two frames holding references to the same enclosing frame both observe
// mutations to it.
func TestEnvSharedMutation(t *testing.T) {
	shared := NewEnv(nil)
	shared.Define("n", Float(0))

	a := NewEnv(shared)
	b := NewEnv(shared)

	a.AssignAt(1, "n", Float(1))
	assert.Equal(t, Float(1), b.GetAt(1, "n"))
}
