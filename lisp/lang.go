package lisp

// VarArgSymbol marks the variadic tail in a native function's formal
// argument list.  It cannot appear in user parameter lists because the
// lexer has no token for it.
const VarArgSymbol = "&"

// Symbols with fixed meanings in source text.  The lexer produces plain
// symbol tokens for them; the parser turns true and false into booleans and
// the root environment binds null as a constant.
const (
	TrueSymbol  = "true"
	FalseSymbol = "false"
	NullSymbol  = "null"
)
