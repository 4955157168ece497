// Package cardstack is a stack navigator: screens are pushed on top of one
// another as cards, animate in and out with platform-flavored transitions,
// and can be dismissed with an edge swipe.
//
// The core lives in the stack package, which derives per-frame render
// instructions from a route list. The router package owns the navigation
// state and drives the core; the compositor packages draw its frames.
package cardstack

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
)

// Options configures logging for the framework.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Application log level: debug, info, warn or error
}

// Init configures logging. Call it before creating any stack so that the
// log file is opened with the right path.
//
// Internal lifecycle logging is enabled at debug level in development mode
// (ENVIRONMENT=DEV) and when CARDSTACK_LOG_LEVEL=debug.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	level := options.LogLevel
	if env := os.Getenv(constants.LogLevelEnvVar); env != "" {
		level = env
	}
	internal.SetRawLogLevel(level)

	if constants.IsDevMode() || internal.ParseLevel(level) == slog.LevelDebug {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelWarn)
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// Theme defines the colors the compositors draw with.
type Theme = internal.Theme

// SetTheme sets the active theme. Compositors read it when they are created.
func SetTheme(theme Theme) {
	internal.SetTheme(theme)
}

// GetTheme returns the active theme.
func GetTheme() Theme {
	return internal.GetTheme()
}
