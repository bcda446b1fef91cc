package effects

import (
	"context"
	"fmt"
)

// Result is the settled outcome of an effect execution.
type Result[R any] struct {
	Value R
	Err   error
}

// ResultFrom packs a (value, error) pair into a Result.
func ResultFrom[R any](v R, err error) Result[R] {
	return Result[R]{Value: v, Err: err}
}

// Future is a deferred Result. It delivers exactly one Result and is then closed.
type Future[R any] <-chan Result[R]

// Settled returns a future that already holds (v, err).
func Settled[R any](v R, err error) Future[R] {
	ch := make(chan Result[R], 1)
	ch <- ResultFrom(v, err)
	close(ch)
	return ch
}

// Resolved returns a future that already holds v.
func Resolved[R any](v R) Future[R] {
	return Settled(v, nil)
}

// Rejected returns a future that already failed with err.
func Rejected[R any](err error) Future[R] {
	var zero R
	return Settled(zero, err)
}

// Async runs fn on a new goroutine and returns a future of its outcome.
// A panic in fn settles the future with an error wrapping ErrPanicked.
func Async[R any](fn func() (R, error)) Future[R] {
	ch := make(chan Result[R], 1)
	ready := make(chan struct{})
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				var zero R
				ch <- ResultFrom(zero, fmt.Errorf("%w: %v", ErrPanicked, r))
			}
		}()
		close(ready)
		ch <- ResultFrom(fn())
	}()
	<-ready
	return ch
}

// Await blocks until fut settles or ctx is done.
func Await[R any](ctx context.Context, fut Future[R]) (R, error) {
	var zero R
	select {
	case res, ok := <-fut:
		if !ok {
			return zero, ErrFutureClosed
		}
		return res.Value, res.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
