package navigator

import (
	"log/slog"

	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories; the file is rotated at 10 MB.
// Call before the first Navigator is created to take effect.
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

// SetInternalLogLevel sets the minimum level for the navigator's own logs.
// Defaults to warn, or debug when NAVIGATOR_DEBUG is set.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// CloseLogger flushes and closes the log file, if one is open.
func CloseLogger() {
	internal.CloseLogger()
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	return internal.ParseLevel(level)
}
