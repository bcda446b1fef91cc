package log

import (
	"context"

	"github.com/on-the-ground/effect_ive_run/effects"
	"go.uber.org/zap"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// LogPayload is a single console entry.
// It contains the log level, message string, and optional structured fields.
type LogPayload struct {
	Level   LogLevel
	Message string
	Fields  map[string]interface{}
}

// Console is the logging capability an environment provides.
type Console interface {
	Log(LogPayload)
}

// HasConsole is implemented by environments that carry a Console.
type HasConsole interface {
	Console() Console
}

// NewZapConsole returns a Console writing to logger.
func NewZapConsole(logger *zap.Logger) Console {
	return zapConsole{logger: logger}
}

type zapConsole struct {
	logger *zap.Logger
}

func (zc zapConsole) Log(payload LogPayload) {
	fields := make([]zap.Field, 0, len(payload.Fields))
	for k, v := range payload.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch payload.Level {
	case LogInfo:
		zc.logger.Info(payload.Message, fields...)
	case LogWarn:
		zc.logger.Warn(payload.Message, fields...)
	case LogError:
		zc.logger.Error(payload.Message, fields...)
	case LogDebug:
		zc.logger.Debug(payload.Message, fields...)
	default:
		zc.logger.Info(payload.Message, fields...)
	}
}

// LogEff describes writing one entry to the environment's console.
// The effect resolves with struct{}{} once the console accepted the entry.
func LogEff[E HasConsole](level LogLevel, msg string, fields map[string]interface{}) effects.Effect[E, struct{}] {
	return effects.NewEffect(func(_ context.Context, env E, _ *effects.Runner[E]) (struct{}, error) {
		env.Console().Log(LogPayload{
			Level:   level,
			Message: msg,
			Fields:  fields,
		})
		return struct{}{}, nil
	})
}

// Info describes logging msg at info level without fields.
func Info[E HasConsole](msg string) effects.Effect[E, struct{}] {
	return LogEff[E](LogInfo, msg, nil)
}

// Warn describes logging msg at warn level without fields.
func Warn[E HasConsole](msg string) effects.Effect[E, struct{}] {
	return LogEff[E](LogWarn, msg, nil)
}

// Error describes logging msg at error level without fields.
func Error[E HasConsole](msg string) effects.Effect[E, struct{}] {
	return LogEff[E](LogError, msg, nil)
}

// Debug describes logging msg at debug level without fields.
func Debug[E HasConsole](msg string) effects.Effect[E, struct{}] {
	return LogEff[E](LogDebug, msg, nil)
}
