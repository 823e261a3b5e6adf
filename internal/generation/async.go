package generation

// Result is the outcome of one asynchronous trigger.
type Result struct {
	Text string
	Err  error
}

// Async runs fn in its own goroutine and delivers exactly one Result on the
// returned channel, which is then closed.
//
//	res := <-generation.Async(func() (string, error) {
//		return orch.ConfirmMessage(ctx, place)
//	})
func Async(fn func() (string, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		text, err := fn()
		ch <- Result{Text: text, Err: err}
	}()
	return ch
}
