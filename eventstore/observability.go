package eventstore

// Logger interface for SQL query logging, operational messages, warnings, and error reporting.
// It is dependency-free on purpose so that any structured logger (zap, slog, ...) can be
// adapted without coupling the event store to a logging backend.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
