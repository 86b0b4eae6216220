package logging

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init initializes the global logger instance and installs it as the slog
// default.
func Init(logDir string) {
	defaultLogger = SetupLogger(logDir)
	slog.SetDefault(defaultLogger)
}

// current returns the configured logger, falling back to a plain console
// logger when Init has not run (early startup, tests).
func current() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}
