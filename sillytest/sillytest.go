// Package sillytest provides a table driven harness for testing silly
// language behavior end to end, from source text through evaluation.
package sillytest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/queercat/silly/lisp"
	"github.com/queercat/silly/lisp/corelib"
	"github.com/queercat/silly/parser"
)

// TestSequence is a sequence of silly expressions which are evaluated
// sequentially against a shared environment.
type TestSequence []struct {
	Expr   string // a silly expression
	Result string // the rendering of the evaluated result
	Output string // text written to stdout during evaluation
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner builds environments for test sequences.
type Runner struct {
	// Loader initializes the test environment beyond the standard builtins.
	// When Loader is nil corelib.LoadLibrary is used.
	Loader func(*lisp.LEnv) *lisp.LVal
}

// NewEnv returns a root environment prepared the way RunTestSuite prepares
// them, with print output captured in the returned buffer.
func (r *Runner) NewEnv() (*lisp.LEnv, *bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(buf),
	)
	if err := lisp.GoError(lerr); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize environment: %v", err)
	}
	loader := r.Loader
	if loader == nil {
		loader = corelib.LoadLibrary
	}
	if err := lisp.GoError(loader(env)); err != nil {
		return nil, nil, fmt.Errorf("failed to load library: %v", err)
	}
	return env, buf, nil
}

// RunTestSuite runs each TestSequence in tests on isolated environments.
// Expressions parse under the source name "test", so error results that
// carry a source location render with a "test:line:" prefix.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	for i, test := range tests {
		env, output, err := r.NewEnv()
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			v, err := parser.ParseLVal("test", []byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression (got %d)", i, test.Name, j, len(v))
				continue
			}
			output.Reset()
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if output.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, output.String())
			}
		}
	}
}
