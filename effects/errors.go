package effects

import (
	"errors"
)

var (
	// ErrNotAnEffect is returned when a runner is asked to execute something
	// that was not built by NewEffect, NewAsyncEffect or a combinator.
	ErrNotAnEffect = errors.New("not an effect")

	// ErrNotProposable is returned when a sequenced procedure proposes
	// something other than an effect at a suspension point.
	ErrNotProposable = errors.New("expected an effect to be proposed")

	// ErrNoRunner is returned when an effect is run through a nil runner.
	ErrNoRunner = errors.New("no runner to execute the effect")

	// ErrFutureClosed is returned when a future closes without settling.
	ErrFutureClosed = errors.New("future closed without a result")

	// ErrPanicked wraps a recovered panic value.
	ErrPanicked = errors.New("panicked")

	// ErrAborted is returned when a sequenced procedure exits without
	// returning or panicking, e.g. through runtime.Goexit.
	ErrAborted = errors.New("sequence procedure exited without returning")

	// ErrSequenceFinished is returned by a Yielder used after its sequence ended.
	ErrSequenceFinished = errors.New("sequence already finished")
)

// IsTypeError reports whether err is a contract or proposal violation,
// i.e. something that was expected to be an effect and was not.
func IsTypeError(err error) bool {
	return errors.Is(err, ErrNotAnEffect) || errors.Is(err, ErrNotProposable)
}
