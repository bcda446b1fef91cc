package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/on-the-ground/effect_ive_run/effects"
	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan is an interval of time with a start and a duration.
type TimeSpan = timespan.TimeSpan

// NewTimeSpan returns the span between from and to.
func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

const epsilon = time.Millisecond

// SpanAround returns the span of ±1ms around t.
func SpanAround(t time.Time) TimeSpan {
	return timespan.BetweenTimes(t.Add(-1*epsilon), t.Add(epsilon))
}

// Clock is the time capability an environment provides.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// HasClock is implemented by environments that carry a Clock.
type HasClock interface {
	Clock() Clock
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// ErrTimeout is returned by Timeout when the timer wins the race.
var ErrTimeout = errors.New("effect timed out")

// Now describes reading the environment's clock.
func Now[E HasClock]() effects.Effect[E, TimeSpan] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (TimeSpan, error) {
		return SpanAround(env.Clock().Now()), nil
	})
}

// Sleep describes waiting d on the environment's clock.
// It settles early with ctx.Err() if ctx is done first.
func Sleep[E HasClock](d time.Duration) effects.Effect[E, struct{}] {
	return effects.NewAsyncEffect(func(ctx context.Context, env E, _ *effects.Runner[E]) effects.Future[struct{}] {
		timer := env.Clock().After(d)
		return effects.Async(func() (struct{}, error) {
			select {
			case <-timer:
				return struct{}{}, nil
			case <-ctx.Done():
				return struct{}{}, ctx.Err()
			}
		})
	})
}

// Timeout races eff against a Sleep of d through the same runner.
//
// If the timer wins, the returned effect fails with ErrTimeout. eff itself is
// not cancelled: it keeps running to completion and its outcome is dropped.
func Timeout[E HasClock, R any](eff effects.Effect[E, R], d time.Duration) effects.Effect[E, R] {
	return effects.NewAsyncEffect(func(ctx context.Context, _ E, run *effects.Runner[E]) effects.Future[R] {
		timerCtx, stopTimer := context.WithCancel(ctx)
		timer := effects.Run(timerCtx, run, Sleep[E](d))
		// eff may block synchronously, so it gets its own goroutine
		work := effects.Async(func() (R, error) {
			return effects.Perform(ctx, run, eff)
		})

		return effects.Async(func() (R, error) {
			defer stopTimer()
			var zero R
			select {
			case res, ok := <-work:
				if !ok {
					return zero, effects.ErrFutureClosed
				}
				return res.Value, res.Err
			case res := <-timer:
				if res.Err != nil {
					// the parent context is done
					return zero, res.Err
				}
				return zero, fmt.Errorf("%w after %v", ErrTimeout, d)
			}
		})
	})
}
