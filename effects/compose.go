package effects

import (
	"context"
)

// Map returns an effect that runs eff and applies f to its value.
// Failures of eff pass through untouched and f is not called.
func Map[E, A, B any](eff Effect[E, A], f func(A) B) Effect[E, B] {
	return Bind(eff, func(a A) Effect[E, B] {
		return Pure[E](f(a))
	})
}

// Bind returns an effect that runs eff, feeds its value to f and runs the
// effect f returns, through the same runner.
func Bind[E, A, B any](eff Effect[E, A], f func(A) Effect[E, B]) Effect[E, B] {
	return NewAsyncEffect(func(ctx context.Context, _ E, run *Runner[E]) Future[B] {
		a, err := Perform(ctx, run, eff)
		if err != nil {
			return Rejected[B](err)
		}
		return Run(ctx, run, f(a))
	})
}

// Then runs eff, discards its value and runs next.
func Then[E, A, B any](eff Effect[E, A], next Effect[E, B]) Effect[E, B] {
	return Bind(eff, func(A) Effect[E, B] {
		return next
	})
}
