package log_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/effect_ive_run/effects"
	"github.com/on-the-ground/effect_ive_run/effects/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	console log.Console
}

func (e testEnv) Console() log.Console { return e.console }

func TestLogEffect_DoesNothingUntilRun(t *testing.T) {
	rec := log.NewRecorder()
	run := effects.NewRunner(testEnv{console: rec})

	eff := log.Info[testEnv]("hello")
	assert.Empty(t, rec.Entries())

	_, err := effects.Perform(context.Background(), run, eff)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, rec.Messages())
}

func TestLogEffect_RunsOncePerExecution(t *testing.T) {
	rec := log.NewRecorder()
	run := effects.NewRunner(testEnv{console: rec})
	eff := log.Warn[testEnv]("again")

	for i := 0; i < 3; i++ {
		_, err := effects.Perform(context.Background(), run, eff)
		require.NoError(t, err)
	}

	entries := rec.Entries()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, log.LogWarn, e.Level)
	}
}

func TestZapConsole_MapsLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	run := effects.NewRunner(testEnv{console: log.NewZapConsole(zap.New(core))})
	ctx := context.Background()

	cases := []struct {
		level log.LogLevel
		want  zapcore.Level
	}{
		{log.LogDebug, zapcore.DebugLevel},
		{log.LogInfo, zapcore.InfoLevel},
		{log.LogWarn, zapcore.WarnLevel},
		{log.LogError, zapcore.ErrorLevel},
		{log.LogLevel("unknown"), zapcore.InfoLevel},
	}
	for _, c := range cases {
		_, err := effects.Perform(ctx, run, log.LogEff[testEnv](c.level, string(c.level), map[string]interface{}{
			"answer": 42,
		}))
		require.NoError(t, err)
	}

	entries := logs.AllUntimed()
	require.Len(t, entries, len(cases))
	for i, c := range cases {
		assert.Equal(t, c.want, entries[i].Level)
		assert.Equal(t, string(c.level), entries[i].Message)
		assert.Equal(t, int64(42), entries[i].ContextMap()["answer"])
	}
}
