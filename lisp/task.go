package lisp

// spawn starts evaluation of the task's call expression on a new goroutine
// sharing the task's environment chain.  Nothing ever joins the goroutine:
// its result is discarded and failures are contained to the goroutine and
// logged through the runtime.
func (v *LVal) spawn() {
	logger := v.Env.Runtime.Log
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("task panic: %v", r)
			}
		}()
		r := v.Env.Eval(v.Body)
		if r.Type == LError {
			logger.Printf("task error: %v", GoError(r))
		}
	}()
}
