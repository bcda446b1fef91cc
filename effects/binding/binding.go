package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/effect_ive_run/effects"
	"github.com/on-the-ground/effect_ive_run/shared/helper"
)

// ErrKeyNotFound is returned when no scope in the chain binds the key.
var ErrKeyNotFound = errors.New("key not found")

// Bindings is an immutable scope of named values.
// Lookups that miss fall back to the upper scope, if any.
type Bindings struct {
	bindingMap map[string]any
	upper      *Bindings
}

// New creates a root scope. The map is copied.
func New(bindingMap map[string]any) *Bindings {
	return &Bindings{bindingMap: normalizeBindingMap(bindingMap)}
}

// Child creates a scope below b. Keys bound here shadow those of b.
func (b *Bindings) Child(bindingMap map[string]any) *Bindings {
	return &Bindings{
		bindingMap: normalizeBindingMap(bindingMap),
		upper:      b,
	}
}

// Lookup looks up the key in the local bindingMap.
//   - If found: returns the value.
//   - If not found: delegates to the upper scope (if available).
//   - Otherwise: returns a key-not-found error.
func (b *Bindings) Lookup(key string) (any, error) {
	for scope := b; scope != nil; scope = scope.upper {
		if v, ok := scope.bindingMap[key]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

// HasBindings is implemented by environments that carry Bindings.
type HasBindings interface {
	Bindings() *Bindings
}

// Effect describes looking key up in the environment's bindings.
func Effect[E HasBindings](key string) effects.Effect[E, any] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (any, error) {
		return env.Bindings().Lookup(key)
	})
}

// Get is Effect with the value asserted to T.
func Get[E HasBindings, T any](key string) effects.Effect[E, T] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (T, error) {
		return helper.GetTypedValueOf[T](func() (any, error) {
			return env.Bindings().Lookup(key)
		})
	})
}

// normalizeBindingMap copies bm so later writes by the caller are not seen.
func normalizeBindingMap(bm map[string]any) map[string]any {
	out := make(map[string]any, len(bm))
	for k, v := range bm {
		out[k] = v
	}
	return out
}
