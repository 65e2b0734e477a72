package lisp

// langSpecialOps are the special operators understood by the evaluator.
// They are not bound in any environment; EvalSExpr dispatches on the head
// symbol's text before symbol resolution, so a let binding can never shadow
// them.  Their operands arrive unevaluated.
var langSpecialOps = []*langBuiltin{
	{"'", Formals("expr"), opQuote},
	{"if", Formals("condition", "then", "else"), opIf},
	{"let", Formals("sym", "expr"), opLet},
	{"^", Formals("formals", "expr"), opLambda},
	{"thread", Formals("call"), opThread},
}

var specialOps map[string]*langBuiltin

func init() {
	specialOps = make(map[string]*langBuiltin, len(langSpecialOps))
	for _, op := range langSpecialOps {
		specialOps[op.name] = op
	}
}

// DefaultSpecialOps returns the set of special operators understood by the
// evaluator.
func DefaultSpecialOps() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langSpecialOps))
	for i := range langSpecialOps {
		ops[i] = langSpecialOps[i]
	}
	return ops
}

// (' expr)
func opQuote(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 1 {
		return berrf("'", ArityError, "one operand expected (got %d)", len(args.Cells))
	}
	return args.Cells[0]
}

// (if condition-form then-form else-form)
func opIf(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 3 {
		return berrf("if", ArityError, "three operands expected (got %d)", len(args.Cells))
	}
	r := env.Eval(args.Cells[0])
	if r.Type == LError {
		return r
	}
	if r.Type != LBool {
		return berrf("if", TypeMismatchError, "condition is not a bool: %s", r.Type)
	}
	if r.Bool {
		return env.Eval(args.Cells[1])
	}
	return env.Eval(args.Cells[2])
}

// (let sym expr)
func opLet(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 2 {
		return berrf("let", ArityError, "two operands expected (got %d)", len(args.Cells))
	}
	sym := args.Cells[0]
	if sym.Type != LSymbol {
		return berrf("let", SyntaxError, "first operand is not a symbol: %s", sym.Type)
	}
	v := env.Eval(args.Cells[1])
	if v.Type == LError {
		return v
	}
	lerr := env.DefineOrUpdate(sym, v)
	if lerr.Type == LError {
		return lerr
	}
	return v
}

// (^ (sym*) expr)
func opLambda(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 2 {
		return berrf("^", ArityError, "two operands expected (got %d)", len(args.Cells))
	}
	formals := args.Cells[0]
	if formals.Type != LSExpr {
		return berrf("^", SyntaxError, "parameter list is not a list: %s", formals.Type)
	}
	for _, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return berrf("^", SyntaxError, "parameter list contains a non-symbol: %s", sym.Type)
		}
	}
	return Lambda(env, formals, args.Cells[1])
}

// (thread call-expr)
func opThread(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) != 1 {
		return berrf("thread", ArityError, "one operand expected (got %d)", len(args.Cells))
	}
	body := args.Cells[0]
	if body.Type != LSExpr {
		return berrf("thread", TypeMismatchError, "operand is not a call expression: %s", body.Type)
	}
	t := Task(body, env)
	t.spawn()
	return t
}
