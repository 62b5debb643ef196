package lottie

import (
	"log/slog"

	"github.com/gogpu/gg-lottie/internal/logging"
)

// SetLogger configures the logger for gg-lottie and all its sub-packages.
// By default, gg-lottie produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gg-lottie:
//   - [slog.LevelDebug]: cache hits and misses, layer and content building
//   - [slog.LevelInfo]: compositions loaded
//   - [slog.LevelWarn]: document anomalies and unsupported features
//
// Unsupported features are reported once per distinct message.
//
// Example:
//
//	// Enable warnings on stderr:
//	lottie.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelWarn,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by gg-lottie.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
