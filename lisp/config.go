package lisp

import (
	"io"
	"log"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Null()
	}
}

// WithStdout returns a Config that makes the print builtin and the read
// loop write to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Null()
	}
}

// WithStderr returns a Config that makes environments write error output to
// w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Null()
	}
}

// WithLogger returns a Config that routes task and listener diagnostics
// through l.
func WithLogger(l *log.Logger) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Log = l
		return Null()
	}
}
