// Package logger builds the zap logger shared by the server, the event subscriber and the CLI.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log line as the "service" field.
const ServiceName = "job-matcher"

// New returns a logger writing JSON or console output to stdout.
func New(json bool, debug bool) (*zap.Logger, error) {
	return newConfig(json, debug).Build()
}

func newConfig(json bool, debug bool) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	return zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields:     map[string]any{"service": ServiceName},
		DisableStacktrace: !debug,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			NameKey: "logger",

			StacktraceKey:  "stacktrace",
			EncodeDuration: zapcore.MillisDurationEncoder,
		},
	}
}

// Truncate shortens s to limit runes for log fields, appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
