package lisp

import "fmt"

// Condition classifies an error value.  The set is small and closed; every
// error the engine raises carries one of these conditions and the condition
// is part of the error's rendering.
type Condition string

// Conditions raised by the scanner, the parser, and the evaluator.
const (
	LexError           Condition = "lex-error"
	SyntaxError        Condition = "syntax-error"
	UnboundSymbolError Condition = "unbound-symbol-error"
	ArityError         Condition = "arity-error"
	TypeMismatchError  Condition = "type-mismatch-error"
	IOError            Condition = "io-error"
)

// ErrorConditionf returns an error LVal with the given condition and a
// formatted message.
func ErrorConditionf(cond Condition, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:      LError,
		Condition: cond,
		Str:       fmt.Sprintf(format, v...),
	}
}

// berrf returns an error whose message is prefixed with the name of the
// builtin or operator that raised it.
func berrf(name string, cond Condition, format string, v ...interface{}) *LVal {
	return ErrorConditionf(cond, "%s: %s", name, fmt.Sprintf(format, v...))
}

// ErrorVal implements the error interface so that error values can cross
// package boundaries as first class Go errors.  The message is stored in the
// Str field and the condition and source location travel with it.
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return errorString((*LVal)(e))
}

// GoError converts v to an error if v is an error value.  Otherwise GoError
// returns nil.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

func errorString(v *LVal) string {
	if v.Source != nil {
		return fmt.Sprintf("%s: %s: %s", v.Source, v.Condition, v.Str)
	}
	return fmt.Sprintf("%s: %s", v.Condition, v.Str)
}
