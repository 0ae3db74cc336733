package errsink

import "log/slog"

// SlogSink is the default Sink, grounded on the pack's slog-based structured
// logger (marmos91-dittofs/internal/logger). It reports CorruptSector and
// MalformedRecord at warn level (the load continues) and OutOfSpaceKind at
// error level (a session context could not be persisted).
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink wraps logger. A nil logger falls back to slog.Default().
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Report(e Event) {
	attrs := []any{"kind", e.Kind.String(), "detail", e.Detail}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}

	switch e.Kind {
	case OutOfSpaceKind:
		s.logger.Error("session directory", attrs...)
	default:
		s.logger.Warn("session directory", attrs...)
	}
}

// NopSink discards every event. Useful in tests that assert on behavior
// rather than on log output.
type NopSink struct{}

func (NopSink) Report(Event) {}

var (
	_ Sink = (*SlogSink)(nil)
	_ Sink = NopSink{}
)
