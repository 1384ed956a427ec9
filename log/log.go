// Package log provides the process-wide structured logger.
package log

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

func init() {
	// LOG_LEVEL overrides the default so that tests and embedding programs
	// can raise verbosity without calling Init.
	level := "error"
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		level = s
	}

	if err := Init(level, "stderr"); err != nil {
		log = zap.NewNop().Sugar()
	}
}

// Init replaces the logger. Output can be "stdout", "stderr" or a file path.
func Init(level, output string) error {
	logger, err := newConfig(level, output).Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	log = logger.Sugar()
	log.Debugf("logger initialized at level %s with output %s", level, output)

	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	return log.Sync()
}

func levelFromString(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

func newConfig(level, output string) zap.Config {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime: func(ts time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(ts.Local().Format(time.RFC3339))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(levelFromString(level)),
		Encoding:         "console",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}
}

// Debugf sends a formatted debug level log message.
func Debugf(template string, args ...any) { log.Debugf(template, args...) }

// Infof sends a formatted info level log message.
func Infof(template string, args ...any) { log.Infof(template, args...) }

// Infow sends an info level log message with key-value pairs.
func Infow(msg string, keysAndValues ...any) { log.Infow(msg, keysAndValues...) }

// Warnf sends a formatted warn level log message.
func Warnf(template string, args ...any) { log.Warnf(template, args...) }

// Errorw sends an error level log message with key-value pairs.
func Errorw(msg string, keysAndValues ...any) { log.Errorw(msg, keysAndValues...) }
