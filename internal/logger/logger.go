package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the global logger.
// env: "development" or "production"
func Init(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with code 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// WorkerLog records a background worker operation.
func WorkerLog(worker, operation string, err error) {
	fields := []any{
		"worker", worker,
		"operation", operation,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("worker operation failed", fields...)
	} else {
		GetLogger().Info("worker operation completed", fields...)
	}
}
