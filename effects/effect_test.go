package effects_test

import (
	"context"
	"errors"
	"testing"

	"github.com/on-the-ground/effect_ive_run/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type counterEnv struct {
	name string
}

func TestEffect_DoesNotRunOnConstruction(t *testing.T) {
	calls := 0
	eff := effects.NewEffect(func(context.Context, counterEnv, *effects.Runner[counterEnv]) (int, error) {
		calls++
		return calls, nil
	})
	assert.Equal(t, 0, calls)

	run := effects.NewRunner(counterEnv{name: "test"})
	assert.Equal(t, 0, calls)

	v, err := effects.Perform(context.Background(), run, eff)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)
}

func TestEffect_ReceivesEnvAndRunner(t *testing.T) {
	env := counterEnv{name: "bound"}
	run := effects.NewRunner(env)

	var gotEnv counterEnv
	var gotRun *effects.Runner[counterEnv]
	eff := effects.NewEffect(func(_ context.Context, env counterEnv, run *effects.Runner[counterEnv]) (struct{}, error) {
		gotEnv = env
		gotRun = run
		return struct{}{}, nil
	})

	_, err := effects.Perform(context.Background(), run, eff)
	require.NoError(t, err)
	assert.Equal(t, env, gotEnv)
	assert.Same(t, run, gotRun)
}

func TestEffect_NestedEffectsReuseTheRunner(t *testing.T) {
	run := effects.NewRunner(counterEnv{name: "outer"})

	inner := effects.NewEffect(func(_ context.Context, env counterEnv, _ *effects.Runner[counterEnv]) (string, error) {
		return env.name + "/inner", nil
	})
	outer := effects.NewEffect(func(ctx context.Context, _ counterEnv, run *effects.Runner[counterEnv]) (string, error) {
		return effects.Perform(ctx, run, inner)
	})

	v, err := effects.Perform(context.Background(), run, outer)
	require.NoError(t, err)
	assert.Equal(t, "outer/inner", v)
}

func TestEffect_FailurePassesThroughUnchanged(t *testing.T) {
	errBoom := errors.New("boom")
	run := effects.NewRunner(counterEnv{})

	_, err := effects.Perform(context.Background(), run, effects.Fail[counterEnv, int](errBoom))
	assert.Same(t, errBoom, err)
}

func TestEffect_PureAndAsk(t *testing.T) {
	ctx := context.Background()
	run := effects.NewRunner(counterEnv{name: "asked"})

	v, err := effects.Perform(ctx, run, effects.Pure[counterEnv](7))
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	env, err := effects.Perform(ctx, run, effects.Ask[counterEnv]())
	require.NoError(t, err)
	assert.Equal(t, "asked", env.name)
}

func TestEffect_AsyncOperation(t *testing.T) {
	run := effects.NewRunner(counterEnv{})
	eff := effects.NewAsyncEffect(func(context.Context, counterEnv, *effects.Runner[counterEnv]) effects.Future[string] {
		return effects.Async(func() (string, error) {
			return "later", nil
		})
	})

	v, err := effects.Perform(context.Background(), run, eff)
	require.NoError(t, err)
	assert.Equal(t, "later", v)
}

func TestRun_ZeroEffectIsATypeError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	run := effects.NewRunner(counterEnv{}, effects.WithLogger(zap.New(core)))

	var notAnEffect effects.Effect[counterEnv, int]
	_, err := effects.Perform(context.Background(), run, notAnEffect)
	require.Error(t, err)
	assert.ErrorIs(t, err, effects.ErrNotAnEffect)
	assert.True(t, effects.IsTypeError(err))
	assert.Equal(t, 1, logs.FilterMessage("refused to run a value that is not an effect").Len())

	nilOp := effects.NewEffect[counterEnv, int](nil)
	_, err = effects.Perform(context.Background(), run, nilOp)
	assert.ErrorIs(t, err, effects.ErrNotAnEffect)
}

func TestRun_NilRunner(t *testing.T) {
	_, err := effects.Perform(context.Background(), nil, effects.Pure[counterEnv](1))
	assert.ErrorIs(t, err, effects.ErrNoRunner)

	var run *effects.Runner[counterEnv]
	_, err = run.Exec(context.Background(), effects.Pure[counterEnv](1))
	assert.ErrorIs(t, err, effects.ErrNoRunner)
}

func TestRun_NilFutureIsRejected(t *testing.T) {
	run := effects.NewRunner(counterEnv{})
	eff := effects.NewAsyncEffect(func(context.Context, counterEnv, *effects.Runner[counterEnv]) effects.Future[int] {
		return nil
	})

	_, err := effects.Perform(context.Background(), run, eff)
	assert.ErrorIs(t, err, effects.ErrFutureClosed)
}

func TestRun_DoesNotRecoverPanics(t *testing.T) {
	run := effects.NewRunner(counterEnv{})
	eff := effects.NewEffect(func(context.Context, counterEnv, *effects.Runner[counterEnv]) (int, error) {
		panic("boom")
	})

	assert.PanicsWithValue(t, "boom", func() {
		effects.Run(context.Background(), run, eff)
	})
}

func TestExec_TypeErased(t *testing.T) {
	ctx := context.Background()
	run := effects.NewRunner(counterEnv{})

	v, err := run.Exec(ctx, effects.Pure[counterEnv]("erased"))
	require.NoError(t, err)
	assert.Equal(t, "erased", v)

	_, err = run.Exec(ctx, nil)
	assert.ErrorIs(t, err, effects.ErrNotAnEffect)

	_, err = run.Exec(ctx, effects.Effect[counterEnv, string]{})
	assert.ErrorIs(t, err, effects.ErrNotAnEffect)
}

func TestRunner_Accessors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	run := effects.NewRunner(counterEnv{name: "x"}, effects.WithLogger(zap.New(core)))

	assert.NotEmpty(t, run.ID())
	assert.Equal(t, "x", run.Env().name)
	assert.Equal(t, 1, logs.FilterMessageSnippet("created runner").Len())

	other := effects.NewRunner(counterEnv{name: "x"})
	assert.NotEqual(t, run.ID(), other.ID())
}
