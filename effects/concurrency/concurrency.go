package concurrency

import (
	"context"
	"fmt"
	"sync"

	"github.com/on-the-ground/effect_ive_run/effects"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// All describes running effs concurrently through the same runner, each on
// its own goroutine. It resolves with the values in argument order once every
// child has settled, or fails with all child errors combined.
//
//   - No ordering is guaranteed between children.
//   - A panicking child is recovered, logged and reported as an error.
//   - Children are not cancelled when a sibling fails.
func All[E, R any](effs ...effects.Effect[E, R]) effects.Effect[E, []R] {
	return effects.NewEffect(func(ctx context.Context, _ E, run *effects.Runner[E]) ([]R, error) {
		sv := &supervisor[E, R]{
			run:     run,
			results: make([]R, len(effs)),
			errs:    make([]error, len(effs)),
		}
		sv.spawn(ctx, effs)
		sv.wg.Wait()

		if err := multierr.Combine(sv.errs...); err != nil {
			return nil, err
		}
		return sv.results, nil
	})
}

// Each describes running fn for every item concurrently, as All does.
func Each[E, T, R any](items []T, fn func(T) effects.Effect[E, R]) effects.Effect[E, []R] {
	effs := make([]effects.Effect[E, R], len(items))
	for i, item := range items {
		effs[i] = fn(item)
	}
	return All(effs...)
}

// supervisor tracks the children of one All execution.
// Each child writes only its own slot of results and errs.
type supervisor[E, R any] struct {
	run     *effects.Runner[E]
	wg      sync.WaitGroup
	results []R
	errs    []error
}

// spawn starts each effect in its own goroutine and returns once all of them
// have been started.
func (s *supervisor[E, R]) spawn(ctx context.Context, effs []effects.Effect[E, R]) {
	ready := sync.WaitGroup{}

	for idx, eff := range effs {
		s.wg.Add(1)
		ready.Add(1)
		go func(i int, eff effects.Effect[E, R]) {
			defer s.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.run.Logger().Error("panic in child effect", zap.Int("child", i), zap.Any("error", r))
					s.errs[i] = fmt.Errorf("%w: child %d: %v", effects.ErrPanicked, i, r)
				}
			}()
			ready.Done()
			s.results[i], s.errs[i] = effects.Perform(ctx, s.run, eff)
		}(idx, eff)
	}

	ready.Wait()
}
