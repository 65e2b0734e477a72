package lisp

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"+", Formals("x", VarArgSymbol, "rest"), builtinAdd},
	{"-", Formals("x", VarArgSymbol, "rest"), builtinSub},
	{"*", Formals("x", VarArgSymbol, "rest"), builtinMul},
	{"/", Formals("x", VarArgSymbol, "rest"), builtinDiv},
	{"eq", Formals("a", "b"), builtinEq},
	{"less", Formals("a", "b"), builtinLess},
	{"atom", Formals("value"), builtinAtom},
	{"@", Formals("atom"), builtinDeref},
	{"$", Formals("atom", "fn"), builtinSwap},
	{"sleep", Formals("ms"), builtinSleep},
	{"do", Formals(VarArgSymbol, "values"), builtinDo},
	{"slurp", Formals("path"), builtinSlurp},
	{"eval", Formals("source"), builtinEval},
	{"string", Formals("value"), builtinString},
	{"length", Formals("value"), builtinLength},
	{"list", Formals(VarArgSymbol, "values"), builtinList},
	{"print", Formals(VarArgSymbol, "values"), builtinPrint},
	{"server", Formals("port", "handler"), builtinServer},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, formals *LVal, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	funs := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		funs[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		funs[offset+i] = userBuiltins[i]
	}
	return funs
}

// builtinAdd sums numbers or concatenates strings.  The first argument
// selects the variant and the rest must match it.
func builtinAdd(env *LEnv, args *LVal) *LVal {
	switch args.Cells[0].Type {
	case LNumber:
		sum := 0.0
		for _, c := range args.Cells {
			if c.Type != LNumber {
				return berrf("+", TypeMismatchError, "argument is not a number: %s", c.Type)
			}
			sum += c.Num
		}
		return Number(sum)
	case LString:
		var buf strings.Builder
		for _, c := range args.Cells {
			if c.Type != LString {
				return berrf("+", TypeMismatchError, "argument is not a string: %s", c.Type)
			}
			buf.WriteString(c.Str)
		}
		return String(buf.String())
	default:
		return berrf("+", TypeMismatchError, "argument is not a number or a string: %s", args.Cells[0].Type)
	}
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	nums, lerr := numericArgs("-", args)
	if lerr != nil {
		return lerr
	}
	if len(nums) == 1 {
		return Number(-nums[0])
	}
	diff := nums[0]
	for _, x := range nums[1:] {
		diff -= x
	}
	return Number(diff)
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	nums, lerr := numericArgs("*", args)
	if lerr != nil {
		return lerr
	}
	prod := 1.0
	for _, x := range nums {
		prod *= x
	}
	return Number(prod)
}

func builtinDiv(env *LEnv, args *LVal) *LVal {
	nums, lerr := numericArgs("/", args)
	if lerr != nil {
		return lerr
	}
	if len(nums) == 1 {
		// Unary division inverts its argument.
		return Number(1 / nums[0])
	}
	div := nums[0]
	for _, x := range nums[1:] {
		div /= x
	}
	return Number(div)
}

func numericArgs(name string, args *LVal) ([]float64, *LVal) {
	nums := make([]float64, len(args.Cells))
	for i, c := range args.Cells {
		if c.Type != LNumber {
			return nil, berrf(name, TypeMismatchError, "argument is not a number: %s", c.Type)
		}
		nums[i] = c.Num
	}
	return nums, nil
}

func builtinEq(env *LEnv, args *LVal) *LVal {
	return Bool(lvalEqual(args.Cells[0], args.Cells[1]))
}

// lvalEqual reports equality between two values.  Composite data compares
// structurally while atoms compare by cell identity and functions and
// handles by value identity.
func lvalEqual(a, b *LVal) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNumber:
		return a.Num == b.Num
	case LSymbol, LString:
		return a.Str == b.Str
	case LBool:
		return a.Bool == b.Bool
	case LNull:
		return true
	case LSExpr:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !lvalEqual(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	case LAtom:
		return a.Cell == b.Cell
	default:
		return a == b
	}
}

func builtinLess(env *LEnv, args *LVal) *LVal {
	a, b := args.Cells[0], args.Cells[1]
	if a.Type != LNumber {
		return berrf("less", TypeMismatchError, "first argument is not a number: %s", a.Type)
	}
	if b.Type != LNumber {
		return berrf("less", TypeMismatchError, "second argument is not a number: %s", b.Type)
	}
	return Bool(a.Num < b.Num)
}

func builtinAtom(env *LEnv, args *LVal) *LVal {
	return Atom(args.Cells[0])
}

func builtinDeref(env *LEnv, args *LVal) *LVal {
	a := args.Cells[0]
	if a.Type != LAtom {
		return berrf("@", TypeMismatchError, "argument is not an atom: %s", a.Type)
	}
	return a.Cell.Load()
}

// builtinSwap applies fn to the atom's contents and stores the result back,
// returning the atom itself.  The cell is unlocked while fn runs so the
// read-apply-store sequence is not atomic across tasks.
func builtinSwap(env *LEnv, args *LVal) *LVal {
	a, fn := args.Cells[0], args.Cells[1]
	if a.Type != LAtom {
		return berrf("$", TypeMismatchError, "first argument is not an atom: %s", a.Type)
	}
	if fn.Type != LFun {
		return berrf("$", TypeMismatchError, "second argument is not a function: %s", fn.Type)
	}
	v := env.Call(fn, SExpr([]*LVal{a.Cell.Load()}))
	if v.Type == LError {
		return v
	}
	a.Cell.Store(v)
	return a
}

func builtinSleep(env *LEnv, args *LVal) *LVal {
	ms := args.Cells[0]
	if ms.Type != LNumber {
		return berrf("sleep", TypeMismatchError, "argument is not a number: %s", ms.Type)
	}
	time.Sleep(time.Duration(ms.Num * float64(time.Millisecond)))
	return Null()
}

func builtinDo(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) == 0 {
		return Null()
	}
	return args.Cells[len(args.Cells)-1]
}

func builtinSlurp(env *LEnv, args *LVal) *LVal {
	path := args.Cells[0]
	if path.Type != LString {
		return berrf("slurp", TypeMismatchError, "argument is not a string: %s", path.Type)
	}
	b, err := os.ReadFile(path.Str)
	if err != nil {
		return berrf("slurp", IOError, "%s", err)
	}
	return String(string(b))
}

// builtinEval parses its argument as silly source and evaluates each form
// against the calling environment, returning the last form's value.
func builtinEval(env *LEnv, args *LVal) *LVal {
	src := args.Cells[0]
	if src.Type != LString {
		return berrf("eval", TypeMismatchError, "argument is not a string: %s", src.Type)
	}
	reader := env.Runtime.Reader
	if reader == nil {
		return berrf("eval", IOError, "no reader configured")
	}
	exprs, err := reader.Read("eval", strings.NewReader(src.Str))
	if err != nil {
		if lerr, ok := err.(*ErrorVal); ok {
			return (*LVal)(lerr)
		}
		return berrf("eval", SyntaxError, "%s", err)
	}
	res := Null()
	for _, expr := range exprs {
		res = env.Eval(expr)
		if res.Type == LError {
			return res
		}
	}
	return res
}

func builtinString(env *LEnv, args *LVal) *LVal {
	return String(args.Cells[0].String())
}

func builtinLength(env *LEnv, args *LVal) *LVal {
	v := args.Cells[0]
	switch v.Type {
	case LSExpr:
		return Number(float64(len(v.Cells)))
	case LString:
		return Number(float64(len(v.Str)))
	default:
		return berrf("length", TypeMismatchError, "argument is not a list or a string: %s", v.Type)
	}
}

func builtinList(env *LEnv, args *LVal) *LVal {
	return SExpr(args.Cells)
}

// builtinPrint renders its arguments separated by spaces and writes them to
// the runtime's stdout with a trailing newline.
func builtinPrint(env *LEnv, args *LVal) *LVal {
	parts := make([]string, len(args.Cells))
	for i, c := range args.Cells {
		parts[i] = c.String()
	}
	fmt.Fprintln(env.Runtime.Stdout, strings.Join(parts, " "))
	return Null()
}
