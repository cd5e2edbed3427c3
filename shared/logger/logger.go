package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

func init() {
	// tests and tools get a usable logger without calling Initialize
	Initialize("info", false)
}

// Initialize replaces the process logger. level is one of debug, info, warn,
// error (anything else means info).
func Initialize(level string, useJSON bool) {
	InitializeTo(os.Stdout, level, useJSON)
}

func InitializeTo(w io.Writer, level string, useJSON bool) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Component returns the process logger tagged with a component attribute.
func Component(name string) *slog.Logger {
	return Log.With("component", name)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
