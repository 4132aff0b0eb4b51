// Package extensibility provides listener decorators and message sources
// that plug into tickx stores and realtime runtimes.
package extensibility

import (
	"log/slog"
	"time"

	"github.com/comalice/tickx"
)

// LoggingListener wraps a Listener and logs around each notification.
type LoggingListener struct {
	name   string
	inner  tickx.Listener
	logger *slog.Logger
}

// NewLoggingListener creates a new LoggingListener wrapping inner.
func NewLoggingListener(name string, inner tickx.Listener, logger *slog.Logger) *LoggingListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingListener{name: name, inner: inner, logger: logger}
}

// OnChange delegates to the inner listener and logs its follow-ups.
func (l *LoggingListener) OnChange(v tickx.View) []tickx.Message {
	start := time.Now()
	msgs := l.inner.OnChange(v)
	l.logger.Debug("listener ran",
		"listener", l.name,
		"follow_ups", len(msgs),
		"elapsed", time.Since(start),
	)
	return msgs
}
