// Package logging wraps charmbracelet/log with the small surface the
// commands need: a lazily built default logger on stderr, a stdout logger
// for commands whose primary output is log-shaped, and level control.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level default logger is intentional
var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// Default returns the shared stderr logger.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// SetLevel adjusts the shared logger's level.
// Valid levels: "debug", "info", "warn", "error".
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

// New creates a stderr logger at the given level, without timestamps or
// caller reporting.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// NewInteractive creates a stdout logger for commands whose primary
// output is log-shaped (rules, version).
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// parseLevel maps a level name to a log level, defaulting to info.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
