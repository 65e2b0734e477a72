package lisp

import (
	"fmt"
	"io"
	"net"
	"time"
)

// builtinServer validates a port and handler and returns a listener handle.
// Construction does not touch the network.
func builtinServer(env *LEnv, args *LVal) *LVal {
	portval, handler := args.Cells[0], args.Cells[1]
	if portval.Type != LNumber {
		return berrf("server", TypeMismatchError, "first argument is not a number: %s", portval.Type)
	}
	port := int(portval.Num)
	if float64(port) != portval.Num || port < 0 || port > 65535 {
		return berrf("server", TypeMismatchError, "first argument is not a valid port: %v", portval)
	}
	if handler.Type != LFun {
		return berrf("server", TypeMismatchError, "second argument is not a function: %s", handler.Type)
	}
	return Listener(port, handler, env)
}

// listenRetryDelay spaces out rebind attempts after a failed cycle so a
// dead port cannot spin the loop.
const listenRetryDelay = 50 * time.Millisecond

// serve runs the accept loop for a listener handle: bind the port, serve
// exactly one connection, close both the connection and the listening
// socket, and bind again.  Failures anywhere in a cycle are logged through
// the runtime and the loop continues.  serve never returns.
func (v *LVal) serve() *LVal {
	logger := v.Env.Runtime.Log
	for {
		err := v.serveOne()
		if err != nil {
			logger.Printf("listener :%d: %v", int(v.Num), err)
			time.Sleep(listenRetryDelay)
		}
	}
}

// serveOne performs one bind, accept, respond, close cycle.
func (v *LVal) serveOne() error {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", int(v.Num)))
	if err != nil {
		return err
	}
	defer l.Close()
	conn, err := l.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()
	return v.respond(conn)
}

// respond invokes the handler and writes the strings it returns to conn in
// order.  The connection payload passed to the handler is a fixed empty
// string; no request parsing is wired up.  The handler's result is
// validated in full before the first byte is written.
func (v *LVal) respond(conn net.Conn) error {
	handler := v.Cells[0]
	r := v.Env.Call(handler, SExpr([]*LVal{String("")}))
	if r.Type == LError {
		return GoError(r)
	}
	if r.Type != LSExpr {
		return GoError(berrf("server", TypeMismatchError, "handler did not return a list: %s", r.Type))
	}
	for _, c := range r.Cells {
		if c.Type != LString {
			return GoError(berrf("server", TypeMismatchError, "handler returned a non-string element: %s", c.Type))
		}
	}
	for _, c := range r.Cells {
		if _, err := io.WriteString(conn, c.Str); err != nil {
			return err
		}
	}
	return nil
}
