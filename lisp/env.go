package lisp

import (
	"io"
	"log"
	"os"
	"sync"
)

// Runtime holds state shared by every environment frame descending from one
// root: the source reader used by the eval builtin and the writers and
// logger used by side-effecting builtins.  Independent interpreters hold
// independent Runtimes and can coexist in one process.
type Runtime struct {
	// Reader parses source text for the eval builtin and bootstrap loaders.
	// There is no default Reader; see WithReader.
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    *log.Logger
}

func newRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log.New(os.Stderr, "silly: ", log.LstdFlags),
	}
}

// LEnv is a silly environment, one frame of bindings chained to its lexical
// parent.  Frames are shared by reference between closures and spawned
// tasks, so the scope map is guarded for concurrent access.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
	mut     sync.RWMutex
}

// NewEnv initializes and returns a new LEnv chained to parent.  A root
// environment (nil parent) receives a fresh Runtime; child frames share
// their parent's.
func NewEnv(parent *LEnv) *LEnv {
	var rt *Runtime
	if parent != nil {
		rt = parent.Runtime
	} else {
		rt = newRuntime()
	}
	return &LEnv{
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: rt,
	}
}

// Get takes an LSymbol k and returns the value bound to it in the nearest
// enclosing frame.  Binding lookup returns the stored value itself, not a
// copy, so atoms and functions retrieved through different symbols keep
// their shared identity.  An unbound symbol produces an
// unbound-symbol-error stamped with the symbol's source location.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return Null()
	}
	for e := env; e != nil; e = e.Parent {
		e.mut.RLock()
		v, ok := e.Scope[k.Str]
		e.mut.RUnlock()
		if ok {
			return v
		}
	}
	lerr := ErrorConditionf(UnboundSymbolError, "unbound symbol: %v", k)
	lerr.Source = k.Source
	return lerr
}

// Put takes an LSymbol k and binds it to v in this frame, shadowing any
// binding in enclosing frames.
func (env *LEnv) Put(k, v *LVal) {
	if k.Type != LSymbol {
		return
	}
	if v == nil {
		panic("nil value")
	}
	env.mut.Lock()
	env.Scope[k.Str] = v
	env.mut.Unlock()
}

// DefineOrUpdate implements the binding rule of let: overwrite k in the
// nearest enclosing frame that already defines it, or create the binding in
// this frame when no enclosing frame does.
func (env *LEnv) DefineOrUpdate(k, v *LVal) *LVal {
	if k.Type != LSymbol {
		return ErrorConditionf(SyntaxError, "binding target is not a symbol: %s", k.Type)
	}
	if k.Str == NullSymbol {
		return ErrorConditionf(SyntaxError, "cannot rebind constant: %s", k.Str)
	}
	owner := env.owner(k.Str)
	if owner == nil {
		owner = env
	}
	owner.Put(k, v)
	return Null()
}

// owner returns the nearest frame at or above env that binds name.
func (env *LEnv) owner(name string) *LEnv {
	for e := env; e != nil; e = e.Parent {
		e.mut.RLock()
		_, ok := e.Scope[name]
		e.mut.RUnlock()
		if ok {
			return e
		}
	}
	return nil
}

// GetGlobal takes LSymbol k and returns the value it is bound to in the root
// environment (global scope).
func (env *LEnv) GetGlobal(k *LVal) *LVal {
	return env.root().Get(k)
}

// PutGlobal takes an LSymbol k and binds it to v in the root environment
// (global scope).
func (env *LEnv) PutGlobal(k, v *LVal) {
	env.root().Put(k, v)
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in env.  When called with
// no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		k := Symbol(f.Name())
		exist := env.Get(k)
		if exist.Type != LError {
			panic("symbol already defined: " + f.Name())
		}
		env.Put(k, Fun(f.Name(), f.Formals(), f.Eval))
	}
}

// InitializeUserEnv installs the standard library and the null constant into
// env and applies any Config options.  It returns an error value if a
// config fails and Null otherwise.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env.Put(Symbol(NullSymbol), Null())
	env.AddBuiltins()
	for _, cfg := range config {
		lerr := cfg(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Null()
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Errors without a source location are stamped with the location of
// the form that raised them; a location set deeper in the tree wins.
func (env *LEnv) Eval(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LSExpr:
		r := env.EvalSExpr(v)
		if r.Type == LError && r.Source == nil {
			r.Source = v.Source
		}
		return r
	default:
		// Numbers, strings, booleans, null, functions, atoms, and handles
		// are self evaluating.
		return v
	}
}

// EvalSExpr evaluates the list expression s.  An empty list evaluates to
// itself.  A non-empty list dispatches on its head symbol before resolving
// it: special operators receive their operands unevaluated, while ordinary
// application evaluates operands left to right and then resolves the head.
func (env *LEnv) EvalSExpr(s *LVal) *LVal {
	if len(s.Cells) == 0 {
		return s
	}
	head := s.Cells[0]
	if head.Type != LSymbol {
		return ErrorConditionf(SyntaxError, "head of expression must be a symbol: %s", head.Type)
	}
	if op, ok := specialOps[head.Str]; ok {
		return op.fun(env, SExpr(s.Cells[1:]))
	}
	args := SExpr(make([]*LVal, 0, len(s.Cells)-1))
	for _, c := range s.Cells[1:] {
		v := env.Eval(c)
		if v.Type == LError {
			return v
		}
		args.Cells = append(args.Cells, v)
	}
	f := env.Get(head)
	switch f.Type {
	case LError:
		return f
	case LFun:
		return env.Call(f, args)
	case LTask:
		// Invoking a task handle repeats its spawn side effect.
		f.spawn()
		return f
	case LListener:
		return f.serve()
	default:
		return ErrorConditionf(TypeMismatchError,
			"head of expression does not resolve to a callable: %s is a %s", head.Str, f.Type)
	}
}

// Call invokes fun with the evaluated argument list args.  Native and
// interpreted functions follow the same arity rules.  Interpreted bodies
// evaluate in a fresh frame whose parent is the closure's captured
// environment, never the caller's.
func (env *LEnv) Call(fun *LVal, args *LVal) *LVal {
	if lerr := checkArity(fun, args); lerr != nil {
		return lerr
	}
	if fun.Builtin != nil {
		return fun.Builtin(env, args)
	}
	fenv := NewEnv(fun.Env)
	for i, sym := range fun.Formals.Cells {
		if sym.Type != LSymbol {
			return ErrorConditionf(SyntaxError, "parameter is not a symbol: %s", sym.Type)
		}
		fenv.Put(sym, args.Cells[i])
	}
	return fenv.Eval(fun.Body)
}

// checkArity compares the length of args against fun's formal argument
// list.  In a native function's formals a VarArgSymbol absorbs any number
// of trailing arguments.  User parameter lists are always exact; the lexer
// cannot produce VarArgSymbol so nothing is lost by not honoring it here.
func checkArity(fun *LVal, args *LVal) *LVal {
	formals := fun.Formals.Cells
	required := len(formals)
	variadic := false
	if fun.Builtin != nil {
		for i, sym := range formals {
			if sym.Str == VarArgSymbol {
				required = i
				variadic = true
				break
			}
		}
	}
	if variadic {
		if len(args.Cells) < required {
			return callErrorf(fun, ArityError, "expects at least %d arguments (got %d)",
				required, len(args.Cells))
		}
		return nil
	}
	if len(args.Cells) != required {
		return callErrorf(fun, ArityError, "expects %d arguments (got %d)",
			required, len(args.Cells))
	}
	return nil
}

func callErrorf(fun *LVal, cond Condition, format string, v ...interface{}) *LVal {
	name := fun.Str
	if name == "" {
		name = "function"
	}
	return berrf(name, cond, format, v...)
}
