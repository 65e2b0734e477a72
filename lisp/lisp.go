package lisp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/queercat/silly/parser/token"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LNumber
	LSymbol
	LBool
	LNull
	LString
	LSExpr
	LFun
	LAtom
	LTask
	LListener
	LError
)

var lvalTypeStrings = []string{
	LInvalid:  "INVALID",
	LNumber:   "number",
	LSymbol:   "symbol",
	LBool:     "bool",
	LNull:     "null",
	LString:   "string",
	LSExpr:    "list",
	LFun:      "function",
	LAtom:     "atom",
	LTask:     "task",
	LListener: "listener",
	LError:    "error",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltin is a Go function implementing a native silly function.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LBuiltinDef is a built-in function definition.
type LBuiltinDef interface {
	Name() string
	Formals() *LVal
	Eval(env *LEnv, args *LVal) *LVal
}

// LVal is a silly value.  One struct covers every variant; the Type field
// says which payload fields are meaningful.  Values are immutable after
// construction except for atom cells and environment bindings, so values may
// be shared freely between closures and spawned tasks.
type LVal struct {
	Source *token.Location
	Type   LValType

	Num   float64
	Str   string
	Bool  bool
	Cells []*LVal

	// Variables needed for function values.  Builtin is non-nil for native
	// functions and Str holds their registered name.  Env is the captured
	// environment of a closure; for task and listener handles it is the
	// environment their side effects run in.
	Builtin LBuiltin
	Formals *LVal
	Body    *LVal
	Env     *LEnv

	// Cell is the mutable slot shared by every reference to one atom.
	Cell *Cell

	// Condition classifies error values.
	Condition Condition
}

// Number returns an LVal representing the number x.
func Number(x float64) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// String returns an LVal representing the string text s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// Null returns an LVal representing the null value, the result of forms with
// no meaningful value.
func Null() *LVal {
	return &LVal{
		Type: LNull,
	}
}

// SExpr returns a list LVal with the given elements.  Lists double as AST
// nodes and runtime data.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// Fun returns an LVal representing the native function fn.
func Fun(name string, formals *LVal, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		Str:     name,
		Formals: formals,
		Builtin: fn,
	}
}

// Lambda returns an anonymous function with the given formal parameters and
// body, closing over env by reference.  Calling the function binds arguments
// in a fresh frame whose parent is env, which is what makes closures
// lexically scoped.
func Lambda(env *LEnv, formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:    LFun,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// Atom returns an LVal wrapping v in a fresh mutable cell.
func Atom(v *LVal) *LVal {
	return &LVal{
		Type: LAtom,
		Cell: &Cell{v: v},
	}
}

// Task returns a handle on a deferred call expression to be evaluated in
// env.  The handle's side effect is triggered with spawn.
func Task(body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type: LTask,
		Body: body,
		Env:  env,
	}
}

// Listener returns a handle on an unbound network listener.  Construction
// has no side effect; invoking the handle starts the accept loop.
func Listener(port int, handler *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:  LListener,
		Num:   float64(port),
		Cells: []*LVal{handler},
		Env:   env,
	}
}

// Formals returns a list of formal argument symbols for a native function.
func Formals(names ...string) *LVal {
	s := SExpr(make([]*LVal, len(names)))
	for i, name := range names {
		s.Cells[i] = Symbol(name)
	}
	return s
}

// Len returns the number of elements in a list value.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// Cell is the mutable slot behind an atom.  Every reference to one atom
// shares one Cell; assignment shares the cell and never copies it.  The
// mutex keeps concurrent tasks memory safe, but read-modify-write sequences
// built on Load and Store are not atomic.
type Cell struct {
	mut sync.Mutex
	v   *LVal
}

// Load returns the cell's contents.
func (c *Cell) Load() *LVal {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.v
}

// Store replaces the cell's contents.
func (c *Cell) Store(v *LVal) {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.v = v
}

func (v *LVal) String() string {
	switch v.Type {
	case LNumber:
		return numberString(v.Num)
	case LSymbol:
		return v.Str
	case LBool:
		return strconv.FormatBool(v.Bool)
	case LNull:
		return NullSymbol
	case LString:
		return v.Str
	case LSExpr:
		return exprString(v, "(", ")")
	case LFun:
		if v.Builtin != nil {
			return fmt.Sprintf("<builtin ``%s''>", v.Str)
		}
		return "<function>"
	case LAtom:
		return "@ -> " + v.Cell.Load().String()
	case LTask:
		return "<task>"
	case LListener:
		return fmt.Sprintf("<listener :%d>", int(v.Num))
	case LError:
		return errorString(v)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// numberString renders integral numbers with one fractional digit so that
// they read back as numbers (42 prints as 42.0).  Other numbers use the
// shortest decimal text that round trips.
func numberString(x float64) string {
	if x == math.Trunc(x) && !math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func exprString(v *LVal, left string, right string) string {
	if len(v.Cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
