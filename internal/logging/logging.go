// Package logging holds the logger shared by every gg-lottie package.
//
// The root package exposes SetLogger and Logger; sub-packages call
// [Logger] directly so they share the configuration without importing
// the root package.
package logging

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NewNop creates a logger that discards all output.
func NewNop() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(NewNop())
}

// Set stores l as the shared logger. Nil restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the shared logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

var warned sync.Map

// WarnOnce logs msg at warn level the first time it is seen and reports
// whether it was logged. Later calls with the same message are dropped.
func WarnOnce(msg string, args ...any) bool {
	if _, loaded := warned.LoadOrStore(msg, struct{}{}); loaded {
		return false
	}
	Logger().Warn(msg, args...)
	return true
}

// ResetWarnings forgets every message seen by WarnOnce.
func ResetWarnings() {
	warned.Clear()
}
