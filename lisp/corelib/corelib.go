// Package corelib embeds the silly core library, functions defined in silly
// itself and loaded into root environments during bootstrap.
package corelib

import (
	_ "embed"
	"strings"

	"github.com/queercat/silly/lisp"
)

//go:embed core.silly
var source string

// LoadLibrary evaluates the embedded core library against env, which should
// be a root environment that already holds the standard builtins and a
// configured Reader.  The first failing form aborts the load.
func LoadLibrary(env *lisp.LEnv) *lisp.LVal {
	reader := env.Runtime.Reader
	if reader == nil {
		return lisp.ErrorConditionf(lisp.IOError, "corelib: no reader configured")
	}
	exprs, err := reader.Read("core.silly", strings.NewReader(source))
	if err != nil {
		if lerr, ok := err.(*lisp.ErrorVal); ok {
			return (*lisp.LVal)(lerr)
		}
		return lisp.ErrorConditionf(lisp.SyntaxError, "corelib: %s", err)
	}
	for _, expr := range exprs {
		v := env.Eval(expr)
		if v.Type == lisp.LError {
			return v
		}
	}
	return lisp.Null()
}
