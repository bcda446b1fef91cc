package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/effect_ive_run/effects"
	"github.com/on-the-ground/effect_ive_run/shared/helper"
)

// ErrNoSuchKey is an error indicating that the key was not found in the store.
var ErrNoSuchKey = errors.New("key not found")

// ErrContention is returned by Modify when every compare-and-swap attempt lost.
var ErrContention = errors.New("value kept changing")

// Load describes reading key from the environment's store as a V.
// It fails with ErrNoSuchKey if the key is absent, or with an
// "unexpected type" error if the stored value is not a V.
func Load[E HasState, V any](key any) effects.Effect[E, V] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (V, error) {
		return helper.GetTypedValueOf[V](func() (any, error) {
			v, ok := env.State().Load(key)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrNoSuchKey, key)
			}
			return v, nil
		})
	})
}

// Put describes storing value under key unconditionally.
func Put[E HasState](key, value any) effects.Effect[E, struct{}] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (struct{}, error) {
		env.State().Store(key, value)
		return struct{}{}, nil
	})
}

// CompareAndSwap describes replacing old with new under key.
// Resolves with false if the current value is not old.
func CompareAndSwap[E HasState](key, old, new any) effects.Effect[E, bool] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (bool, error) {
		store := env.State()
		if old == new {
			cur, ok := store.Load(key)
			return ok && cur == old, nil
		}
		return store.CompareAndSwap(key, old, new), nil
	})
}

// CompareAndDelete describes deleting key if its value is still old.
func CompareAndDelete[E HasState](key, old any) effects.Effect[E, bool] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (bool, error) {
		return env.State().CompareAndDelete(key, old), nil
	})
}

// InsertIfAbsent describes storing value under key only if the key is free.
func InsertIfAbsent[E HasState](key, value any) effects.Effect[E, bool] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (bool, error) {
		return env.State().InsertIfAbsent(key, value), nil
	})
}

// Modify describes a read-modify-write of key: it loads the current V,
// applies fn and swaps the result in, reloading and retrying up to
// maxAttempts times when another writer got there first.
// Resolves with the value that was written.
func Modify[E HasState, V comparable](key any, maxAttempts int, fn func(V) V) effects.Effect[E, V] {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return effects.Sequence(func(y *effects.Yielder[E]) (V, error) {
		var zero V
		for attempt := 0; attempt < maxAttempts; attempt++ {
			cur, err := effects.Yield(y, Load[E, V](key))
			if err != nil {
				return zero, err
			}
			next := fn(cur)
			swapped, err := effects.Yield(y, CompareAndSwap[E](key, cur, next))
			if err != nil {
				return zero, err
			}
			if swapped {
				return next, nil
			}
		}
		return zero, fmt.Errorf("%w: key %v after %d attempts", ErrContention, key, maxAttempts)
	})
}
