package effects

import (
	"context"
)

// Op is a synchronous deferred operation. It receives the environment the
// runner is bound to, and the runner itself so it can run nested effects.
type Op[E, R any] func(ctx context.Context, env E, run *Runner[E]) (R, error)

// AsyncOp is a deferred operation that produces its outcome as a Future.
type AsyncOp[E, R any] func(ctx context.Context, env E, run *Runner[E]) Future[R]

// Effect is an inert description of an operation over an environment E
// producing R. Nothing happens until it is passed to Run.
//
// The zero value is not an effect: running it fails with ErrNotAnEffect.
type Effect[E, R any] struct {
	op AsyncOp[E, R]
}

// Runnable is any Effect over environment E, regardless of its result type.
// It is sealed: only effects built by this package implement it.
type Runnable[E any] interface {
	isEffect() bool
	perform(ctx context.Context, run *Runner[E]) (any, error)
}

var _ Runnable[struct{}] = Effect[struct{}, int]{}

// NewEffect wraps op into an effect. op is stored as is and not called.
func NewEffect[E, R any](op Op[E, R]) Effect[E, R] {
	if op == nil {
		return Effect[E, R]{}
	}
	return Effect[E, R]{
		op: func(ctx context.Context, env E, run *Runner[E]) Future[R] {
			return Settled(op(ctx, env, run))
		},
	}
}

// NewAsyncEffect wraps an operation that already returns a Future.
func NewAsyncEffect[E, R any](op AsyncOp[E, R]) Effect[E, R] {
	return Effect[E, R]{op: op}
}

// Pure is an effect that resolves with v and touches nothing.
func Pure[E, R any](v R) Effect[E, R] {
	return NewEffect(func(context.Context, E, *Runner[E]) (R, error) {
		return v, nil
	})
}

// Fail is an effect that always fails with err.
func Fail[E, R any](err error) Effect[E, R] {
	return NewEffect(func(context.Context, E, *Runner[E]) (R, error) {
		var zero R
		return zero, err
	})
}

// Ask is an effect that resolves with the runner's environment.
func Ask[E any]() Effect[E, E] {
	return NewEffect(func(_ context.Context, env E, _ *Runner[E]) (E, error) {
		return env, nil
	})
}

func (e Effect[E, R]) isEffect() bool {
	return e.op != nil
}

func (e Effect[E, R]) perform(ctx context.Context, run *Runner[E]) (any, error) {
	return Perform(ctx, run, e)
}
