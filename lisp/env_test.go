package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvGet(t *testing.T) {
	root := NewEnv(nil)
	root.Put(Symbol("x"), Number(1))
	child := NewEnv(root)
	assert.Equal(t, 1.0, child.Get(Symbol("x")).Num)

	// a child binding shadows without disturbing the parent
	child.Put(Symbol("x"), Number(2))
	assert.Equal(t, 2.0, child.Get(Symbol("x")).Num)
	assert.Equal(t, 1.0, root.Get(Symbol("x")).Num)

	lerr := child.Get(Symbol("y"))
	assert.Equal(t, LError, lerr.Type)
	assert.Equal(t, UnboundSymbolError, lerr.Condition)
}

func TestEnvGetShared(t *testing.T) {
	// lookup returns the stored value, not a copy, so an atom reached
	// through two frames is one cell
	root := NewEnv(nil)
	a := Atom(Number(0))
	root.Put(Symbol("a"), a)
	child := NewEnv(root)
	assert.Same(t, a.Cell, child.Get(Symbol("a")).Cell)
}

func TestDefineOrUpdate(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)

	// no owner anywhere in the chain: bind in the calling frame
	lerr := child.DefineOrUpdate(Symbol("x"), Number(1))
	assert.Nil(t, GoError(lerr))
	assert.Equal(t, 1.0, child.Get(Symbol("x")).Num)
	assert.Equal(t, LError, root.Get(Symbol("x")).Type)

	// an owning ancestor frame is updated in place
	root.Put(Symbol("y"), Number(1))
	lerr = child.DefineOrUpdate(Symbol("y"), Number(2))
	assert.Nil(t, GoError(lerr))
	assert.Equal(t, 2.0, root.Get(Symbol("y")).Num)
	child.mut.RLock()
	_, shadowed := child.Scope["y"]
	child.mut.RUnlock()
	assert.False(t, shadowed)

	lerr = child.DefineOrUpdate(Number(5), Number(1))
	assert.Equal(t, SyntaxError, lerr.Condition)
	lerr = child.DefineOrUpdate(Symbol(NullSymbol), Number(1))
	assert.Equal(t, SyntaxError, lerr.Condition)
}

func TestGlobals(t *testing.T) {
	root := NewEnv(nil)
	mid := NewEnv(root)
	leaf := NewEnv(mid)
	leaf.PutGlobal(Symbol("g"), Number(7))
	assert.Equal(t, 7.0, root.Get(Symbol("g")).Num)
	assert.Equal(t, 7.0, leaf.GetGlobal(Symbol("g")).Num)
}

func TestCheckArity(t *testing.T) {
	fixed := Fun("two", Formals("a", "b"), func(env *LEnv, args *LVal) *LVal { return Null() })
	assert.Nil(t, checkArity(fixed, SExpr([]*LVal{Number(1), Number(2)})))
	lerr := checkArity(fixed, SExpr([]*LVal{Number(1)}))
	assert.Equal(t, ArityError, lerr.Condition)
	assert.Equal(t, "arity-error: two: expects 2 arguments (got 1)", GoError(lerr).Error())

	variadic := Fun("many", Formals("a", VarArgSymbol, "rest"), func(env *LEnv, args *LVal) *LVal { return Null() })
	assert.Nil(t, checkArity(variadic, SExpr([]*LVal{Number(1)})))
	assert.Nil(t, checkArity(variadic, SExpr([]*LVal{Number(1), Number(2), Number(3)})))
	lerr = checkArity(variadic, SExpr(nil))
	assert.Equal(t, "arity-error: many: expects at least 1 arguments (got 0)", GoError(lerr).Error())

	// a user function's parameters are always exact, even one named like
	// the variadic marker
	lam := Lambda(NewEnv(nil), Formals("a", VarArgSymbol), Symbol("a"))
	lerr = checkArity(lam, SExpr([]*LVal{Number(1), Number(2), Number(3)}))
	assert.Equal(t, ArityError, lerr.Condition)
}

func TestInitializeUserEnv(t *testing.T) {
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env)
	assert.Nil(t, GoError(lerr))
	assert.Equal(t, LFun, env.Get(Symbol("+")).Type)
	assert.Equal(t, LNull, env.Get(Symbol(NullSymbol)).Type)
}
