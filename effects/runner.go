package effects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner executes effects against one environment. It is the "run function"
// every operation receives, so nested effects share the same environment.
//
// A Runner holds no state besides its environment and may be shared freely.
// Synchronizing access to mutable capabilities inside the environment is up
// to whoever provides them.
type Runner[E any] struct {
	id     string
	env    E
	logger *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	logger *zap.Logger
}

// WithLogger sets the logger a Runner reports contract violations,
// sequencing steps and recovered panics to. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(c *runnerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRunner binds env and returns the Runner that executes effects with it.
//
// Usage:
//
//	run := effects.NewRunner(appEnv, effects.WithLogger(logger))
//	res, err := effects.Perform(ctx, run, program)
func NewRunner[E any](env E, opts ...RunnerOption) *Runner[E] {
	cfg := runnerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Runner[E]{
		id:     uuid.NewString(),
		env:    env,
		logger: cfg.logger,
	}
	r.logger.Sugar().Debugf("created runner: runnerId: %v, env: %T", r.id, env)
	return r
}

// ID identifies the runner in logs.
func (r *Runner[E]) ID() string {
	return r.id
}

// Env returns the environment the runner is bound to.
func (r *Runner[E]) Env() E {
	return r.env
}

// Logger returns the runner's logger, already tagged with the runner id.
func (r *Runner[E]) Logger() *zap.Logger {
	return r.logger.With(zap.String("runner_id", r.id))
}

// Run executes eff with the runner's environment, passing run along so the
// operation can run nested effects.
//
// The operation's outcome is delivered unchanged. Run does not recover panics
// raised by synchronous operations.
func Run[E, R any](ctx context.Context, run *Runner[E], eff Effect[E, R]) Future[R] {
	if run == nil {
		return Rejected[R](ErrNoRunner)
	}
	if !eff.isEffect() {
		run.Logger().Warn("refused to run a value that is not an effect", zap.String("type", fmt.Sprintf("%T", eff)))
		return Rejected[R](fmt.Errorf("%w: %T has no operation", ErrNotAnEffect, eff))
	}

	fut := eff.op(ctx, run.env, run)
	if fut == nil {
		return Rejected[R](fmt.Errorf("%w: operation returned no future", ErrFutureClosed))
	}
	return fut
}

// Perform runs eff and waits for its outcome.
func Perform[E, R any](ctx context.Context, run *Runner[E], eff Effect[E, R]) (R, error) {
	return Await(ctx, Run(ctx, run, eff))
}

// Exec runs an effect whose result type is not known statically and waits
// for its outcome. A nil or zero effect fails with ErrNotAnEffect.
func (r *Runner[E]) Exec(ctx context.Context, eff Runnable[E]) (any, error) {
	if r == nil {
		return nil, ErrNoRunner
	}
	if eff == nil || !eff.isEffect() {
		r.Logger().Warn("refused to run a value that is not an effect", zap.String("type", fmt.Sprintf("%T", eff)))
		return nil, fmt.Errorf("%w: got %T", ErrNotAnEffect, eff)
	}
	return eff.perform(ctx, r)
}
