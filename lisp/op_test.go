package lisp_test

import (
	"testing"

	"github.com/queercat/silly/sillytest"
)

func TestSpecialOp(t *testing.T) {
	tests := sillytest.TestSuite{
		{"quote", sillytest.TestSequence{
			{"(' x)", "x", ""},
			{"(' ())", "()", ""},
			{"(' (1 2))", "(1.0 2.0)", ""},
			{"(' (' x))", "(' x)", ""},
			{"(length (' (a b c)))", "3.0", ""},
		}},
		{"special names cannot be shadowed", sillytest.TestSequence{
			// binding a special operator's name is allowed, but head
			// position dispatch still sees the operator
			{"(let if 5)", "5.0", ""},
			{"(if true if if)", "5.0", ""},
			{"(let thread 9)", "9.0", ""},
			{"(thread 5)", "test:1: type-mismatch-error: thread: operand is not a call expression: number", ""},
		}},
		{"if", sillytest.TestSequence{
			{"(if true 1 2)", "1.0", ""},
			{"(if false 1 2)", "2.0", ""},
			// untaken branches never evaluate
			{"(if (less 1 2) (+ 1 1) boom)", "2.0", ""},
			{"(if (less 2 1) boom (+ 2 2))", "4.0", ""},
		}},
		{"lambda definition does not evaluate the body", sillytest.TestSequence{
			{"(^ () 1)", "<function>", ""},
			{"(^ (x) never-called)", "<function>", ""},
		}},
		{"thread handles are values", sillytest.TestSequence{
			{"(let t (thread (sleep 1)))", "<task>", ""},
			{"t", "<task>", ""},
		}},
	}
	sillytest.RunTestSuite(t, tests)
}
