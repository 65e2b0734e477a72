package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queercat/silly/lisp"
	"github.com/queercat/silly/parser"
)

func TestLoadLibrary(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env, lisp.WithReader(parser.NewReader()))
	require.Nil(t, lisp.GoError(lerr))
	lerr = LoadLibrary(env)
	require.Nil(t, lisp.GoError(lerr))

	v := env.Eval(lisp.SExpr([]*lisp.LVal{lisp.Symbol("inc"), lisp.Number(1)}))
	require.Nil(t, lisp.GoError(v))
	assert.Equal(t, 2.0, v.Num)

	names := []string{
		"identity", "inc", "dec", "neg", "not",
		"greater", "leq", "geq", "is-zero", "is-empty",
		"constantly", "reset",
	}
	for _, name := range names {
		f := env.Get(lisp.Symbol(name))
		assert.Equal(t, lisp.LFun, f.Type, "symbol %s", name)
	}
}

func TestLoadLibraryNoReader(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env)
	require.Nil(t, lisp.GoError(lerr))
	lerr = LoadLibrary(env)
	require.Error(t, lisp.GoError(lerr))
	assert.Equal(t, lisp.IOError, lerr.Condition)
}
