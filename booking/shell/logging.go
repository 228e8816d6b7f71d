package shell

import (
	"go.uber.org/zap"
)

// ZapLogger adapts a zap logger to the dependency-free eventstore.Logger
// interface used across the write path.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a ZapLogger adapter.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

// Debug logs a message with key-value pairs at debug level.
func (z *ZapLogger) Debug(msg string, args ...any) {
	z.sugar.Debugw(msg, args...)
}

// Info logs a message with key-value pairs at info level.
func (z *ZapLogger) Info(msg string, args ...any) {
	z.sugar.Infow(msg, args...)
}

// Warn logs a message with key-value pairs at warn level.
func (z *ZapLogger) Warn(msg string, args ...any) {
	z.sugar.Warnw(msg, args...)
}

// Error logs a message with key-value pairs at error level.
func (z *ZapLogger) Error(msg string, args ...any) {
	z.sugar.Errorw(msg, args...)
}
