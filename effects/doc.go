// Package effects provides a minimal way to defer and compose side effects in Go.
//
// Code that would otherwise log, read state or talk to the clock returns an
// [Effect] instead: an inert description of the operation. Nothing happens
// until the effect is handed to a [Runner], which is bound once to an
// application-defined environment holding the capabilities (console, store,
// clock, ...). Tests bind a runner to fakes; production binds it to the real
// thing. The business logic never changes.
//
// # Building blocks
//
//   - [NewEffect] / [NewAsyncEffect]: wrap an operation `(ctx, env, run)`.
//   - [NewRunner]: bind an environment; [Run] / [Perform] execute an effect
//     with it, passing the runner along so nested effects reuse it.
//   - [Sequence]: write a procedure in plain linear Go that yields effects with
//     [Yield]; the result is again an effect.
//
// # Sequencing
//
// A sequenced procedure runs on its own goroutine and suspends at every
// [Yield]. The driver executes the yielded effect, then resumes the procedure
// with its value, or with its error so the procedure can recover on the spot.
// Yielded effects never overlap. Yielding a zero effect fails the whole
// sequence with [ErrNotProposable] and the procedure does not run any further.
//
// Example:
//
//	type Env struct{ console log.Console }
//
//	func (e Env) Console() log.Console { return e.console }
//
//	var report = effects.Sequence2(func(y *effects.Yielder[Env], a, b int) (struct{}, error) {
//	    return effects.Yield(y, log.Info[Env](fmt.Sprintf("The result is %d", a+b)))
//	})
//
//	run := effects.NewRunner(Env{console: log.NewZapConsole(logger)})
//	_, err := effects.Perform(ctx, run, report(30, 12))
//
// There is no scheduler, no cancellation and no retry. Timeouts and fan-out
// are layered on top by the clock and concurrency packages.
package effects
