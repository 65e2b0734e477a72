package sillytest

import (
	"testing"

	"github.com/queercat/silly/lisp"
)

func TestCoreLibrary(t *testing.T) {
	tests := TestSuite{
		{"identity", TestSequence{
			{"(identity 9)", "9.0", ""},
			{`(identity "s")`, "s", ""},
		}},
		{"arithmetic helpers", TestSequence{
			{"(inc 1)", "2.0", ""},
			{"(dec 5)", "4.0", ""},
			{"(neg 3)", "-3.0", ""},
			{"(neg (neg 3))", "3.0", ""},
		}},
		{"predicates", TestSequence{
			{"(not true)", "false", ""},
			{"(not false)", "true", ""},
			{"(greater 2 1)", "true", ""},
			{"(greater 1 2)", "false", ""},
			{"(leq 1 1)", "true", ""},
			{"(leq 2 1)", "false", ""},
			{"(geq 1 1)", "true", ""},
			{"(geq 1 2)", "false", ""},
			{"(is-zero 0)", "true", ""},
			{"(is-zero 1)", "false", ""},
			{"(is-empty (list))", "true", ""},
			{"(is-empty (list 1))", "false", ""},
			{`(is-empty "")`, "true", ""},
		}},
		{"constantly", TestSequence{
			{"(let const7 (constantly 7))", "<function>", ""},
			{"(const7 99)", "7.0", ""},
			{"(const7 0)", "7.0", ""},
			{`(let name (constantly "x"))`, "<function>", ""},
			{"(name 0)", "x", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestRunnerLoader(t *testing.T) {
	r := &Runner{Loader: func(env *lisp.LEnv) *lisp.LVal { return lisp.Null() }}
	env, _, err := r.NewEnv()
	if err != nil {
		t.Fatal(err)
	}
	v := env.Eval(lisp.Symbol("inc"))
	if v.Type != lisp.LError {
		t.Errorf("expected an unbound symbol without the core library (got %s)", v)
	}
}
