package utils

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides leveled logging throughout the application. Messages are
// written to stderr so they never interleave with the console tables on stdout.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a Logger at info level.
func NewLogger() *Logger {
	return NewLoggerWithLevel(false)
}

// NewLoggerWithLevel creates a Logger; debug enables debug-level output.
func NewLoggerWithLevel(debug bool) *Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeCaller = nil
	encCfg.CallerKey = ""
	if isatty.IsTerminal(os.Stderr.Fd()) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)
	return &Logger{sugar: zap.New(core).Sugar()}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// NewLoggerFromZap wraps an existing zap logger.
func NewLoggerFromZap(l *zap.Logger) *Logger {
	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
