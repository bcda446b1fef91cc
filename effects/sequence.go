package effects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/on-the-ground/effect_ive_run/effects/internal/coroutine"
	"github.com/on-the-ground/effect_ive_run/shared/helper"
	"go.uber.org/zap"
)

// Yielder is the handle a sequenced procedure uses to suspend on effects.
// It is only valid inside the procedure it was handed to. Once the sequence
// has finished, Propose returns ErrSequenceFinished without running anything.
type Yielder[E any] struct {
	ctx     context.Context
	env     E
	suspend func(Runnable[E]) Result[any]
}

// Context returns the context the sequenced effect is executing with.
func (y *Yielder[E]) Context() context.Context {
	return y.ctx
}

// Env returns the environment the sequenced effect is executing with.
func (y *Yielder[E]) Env() E {
	return y.env
}

// Propose suspends the procedure on eff and returns its outcome once it has
// been executed. A failure of eff is returned as the error, at this exact
// point, so the procedure may recover from it.
//
// Proposing a nil or zero effect fails the whole sequenced effect with
// ErrNotProposable; Propose then never returns.
func (y *Yielder[E]) Propose(eff Runnable[E]) (any, error) {
	res := y.suspend(eff)
	return res.Value, res.Err
}

// Yield is the typed form of Propose.
//
//	sum, err := effects.Yield(y, add(30, 12))
//	if err != nil {
//	    return 0, err
//	}
func Yield[E, T any](y *Yielder[E], eff Effect[E, T]) (T, error) {
	v, err := y.Propose(eff)
	if err != nil {
		var zero T
		return zero, err
	}
	return helper.GetTypedValueOf[T](func() (any, error) {
		return v, nil
	})
}

// Sequence turns a step-wise procedure into an effect. Executing the effect
// drives the procedure: every effect it yields is executed through the same
// runner, strictly one after another, and its outcome fed back in.
//
// The procedure runs on its own goroutine, so the returned effect always
// settles asynchronously, even if no step blocks.
func Sequence[E, R any](proc func(y *Yielder[E]) (R, error)) Effect[E, R] {
	return NewAsyncEffect(func(ctx context.Context, env E, run *Runner[E]) Future[R] {
		ch := make(chan Result[R], 1)
		ready := make(chan struct{})
		go func() {
			defer close(ch)
			close(ready)
			ch <- drive(ctx, env, run, proc)
		}()
		<-ready
		return ch
	})
}

// Sequence1 is Sequence for a procedure taking one argument.
// The returned function builds a new effect for every call.
func Sequence1[E, A, R any](proc func(y *Yielder[E], a A) (R, error)) func(A) Effect[E, R] {
	return func(a A) Effect[E, R] {
		return Sequence(func(y *Yielder[E]) (R, error) {
			return proc(y, a)
		})
	}
}

// Sequence2 is Sequence for a procedure taking two arguments.
func Sequence2[E, A, B, R any](proc func(y *Yielder[E], a A, b B) (R, error)) func(A, B) Effect[E, R] {
	return func(a A, b B) Effect[E, R] {
		return Sequence(func(y *Yielder[E]) (R, error) {
			return proc(y, a, b)
		})
	}
}

// Sequence3 is Sequence for a procedure taking three arguments.
func Sequence3[E, A, B, C, R any](proc func(y *Yielder[E], a A, b B, c C) (R, error)) func(A, B, C) Effect[E, R] {
	return func(a A, b B, c C) Effect[E, R] {
		return Sequence(func(y *Yielder[E]) (R, error) {
			return proc(y, a, b, c)
		})
	}
}

// drive advances proc until it completes, fails or proposes a non-effect.
func drive[E, R any](
	ctx context.Context,
	env E,
	run *Runner[E],
	proc func(y *Yielder[E]) (R, error),
) Result[R] {
	logger := run.Logger().With(zap.String("execution_id", uuid.NewString()))

	co := coroutine.New(func(suspend func(Runnable[E]) (Result[any], bool)) Result[R] {
		return ResultFrom(proc(&Yielder[E]{
			ctx: ctx,
			env: env,
			suspend: func(eff Runnable[E]) Result[any] {
				res, ok := suspend(eff)
				if !ok {
					return Result[any]{Err: ErrSequenceFinished}
				}
				return res
			},
		}))
	})

	logger.Debug("sequence started")

	var feed Result[any]
	for step := 0; ; step++ {
		proposed, done := co.Resume(feed)
		if done {
			if p, panicked := co.Panicked(); panicked {
				logger.Error("sequence procedure panicked", zap.Int("step", step), zap.Any("panic", p))
				return Result[R]{Err: fmt.Errorf("%w: sequence procedure: %v", ErrPanicked, p)}
			}
			if !co.Returned() {
				logger.Error("sequence procedure exited without returning", zap.Int("step", step))
				return Result[R]{Err: fmt.Errorf("%w: at step %d", ErrAborted, step)}
			}
			res := co.Result()
			logger.Debug("sequence finished", zap.Int("steps", step), zap.Error(res.Err))
			return res
		}

		if proposed == nil || !proposed.isEffect() {
			co.Kill()
			logger.Warn("sequence proposed a value that is not an effect",
				zap.Int("step", step),
				zap.String("type", fmt.Sprintf("%T", proposed)),
			)
			return Result[R]{Err: fmt.Errorf("%w: step %d proposed %T", ErrNotProposable, step, proposed)}
		}

		logger.Debug("sequence suspended on effect", zap.Int("step", step))
		feed = performRecovered(ctx, run, proposed)
	}
}

// performRecovered executes a proposal, turning a panic of its operation into
// a failure that is fed back to the procedure.
func performRecovered[E any](ctx context.Context, run *Runner[E], eff Runnable[E]) (res Result[any]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[any]{Err: fmt.Errorf("%w: proposed effect: %v", ErrPanicked, r)}
		}
	}()
	return ResultFrom(eff.perform(ctx, run))
}
