package lisp

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer collects log output written from task goroutines.
type syncBuffer struct {
	mut sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mut.Lock()
	defer b.mut.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mut.Lock()
	defer b.mut.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, describe string, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !fn() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for " + describe)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTaskSpawn(t *testing.T) {
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env, WithLogger(log.New(io.Discard, "", 0)))
	if GoError(lerr) != nil {
		t.Fatal(GoError(lerr))
	}
	a := Atom(Number(0))
	env.Put(Symbol("a"), a)
	bump := Lambda(env, Formals("x"), SExpr([]*LVal{Symbol("+"), Symbol("x"), Number(1)}))
	env.Put(Symbol("bump"), bump)

	body := SExpr([]*LVal{Symbol("$"), Symbol("a"), Symbol("bump")})
	v := env.Eval(SExpr([]*LVal{Symbol("thread"), body}))
	if v.Type != LTask {
		t.Fatalf("expected a task handle (got %s)", v)
	}
	waitFor(t, "the spawned swap", func() bool { return a.Cell.Load().Num == 1 })

	// invoking the handle spawns the same body again
	env.Put(Symbol("t"), v)
	r := env.Eval(SExpr([]*LVal{Symbol("t")}))
	if r.Type != LTask {
		t.Fatalf("expected a task handle (got %s)", r)
	}
	waitFor(t, "the repeated swap", func() bool { return a.Cell.Load().Num == 2 })
}

func TestTaskErrorLogged(t *testing.T) {
	buf := &syncBuffer{}
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env, WithLogger(log.New(buf, "", 0)))
	if GoError(lerr) != nil {
		t.Fatal(GoError(lerr))
	}
	body := SExpr([]*LVal{Symbol("+"), Number(1), String("a")})
	v := env.Eval(SExpr([]*LVal{Symbol("thread"), body}))
	if v.Type != LTask {
		t.Fatalf("expected a task handle (got %s)", v)
	}
	waitFor(t, "the task error log", func() bool {
		return strings.Contains(buf.String(), "task error")
	})
	assert.Contains(t, buf.String(), "argument is not a number")
}
