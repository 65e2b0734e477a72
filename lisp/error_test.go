package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/queercat/silly/parser/token"
)

func TestErrors(t *testing.T) {
	lerr := ErrorConditionf(TypeMismatchError, "test error message")
	msg := GoError(lerr).Error()
	assert.Equal(t, "type-mismatch-error: test error message", msg)

	lerr = berrf("frob", ArityError, "%d arguments expected", 2)
	msg = GoError(lerr).Error()
	assert.Equal(t, "arity-error: frob: 2 arguments expected", msg)

	assert.Nil(t, GoError(Number(1)))
	assert.Nil(t, GoError(Null()))
}

func TestErrorSource(t *testing.T) {
	lerr := ErrorConditionf(SyntaxError, "unexpected end of input")
	lerr.Source = &token.Location{File: "test.silly", Line: 3}
	msg := GoError(lerr).Error()
	assert.Equal(t, "test.silly:3: syntax-error: unexpected end of input", msg)
}

func TestRuntimeErrors(t *testing.T) {
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env)
	if GoError(lerr) != nil {
		t.Fatal(GoError(lerr))
	}
	testsrc := SExpr([]*LVal{
		Symbol("+"),
		Number(1),
		String("two"),
	})
	lerr = env.Eval(testsrc)
	msg := GoError(lerr).Error()
	assert.Equal(t, "type-mismatch-error: +: argument is not a number: string", msg)
}

// TestRuntimeErrorSource checks that evaluation stamps an error with the
// location of the innermost expression that raised it.
func TestRuntimeErrorSource(t *testing.T) {
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env)
	if GoError(lerr) != nil {
		t.Fatal(GoError(lerr))
	}
	inner := SExpr([]*LVal{Symbol("+"), Number(1), String("two")})
	inner.Source = &token.Location{File: "test.silly", Line: 2}
	outer := SExpr([]*LVal{Symbol("list"), inner})
	outer.Source = &token.Location{File: "test.silly", Line: 1}
	lerr = env.Eval(outer)
	msg := GoError(lerr).Error()
	assert.Equal(t, "test.silly:2: type-mismatch-error: +: argument is not a number: string", msg)
}
