package nav

import "log/slog"

// InteractionLogger receives fire-and-forget interaction events from the
// navigator. Implementations must not block; a failure inside a logger never
// reaches the automation caller.
type InteractionLogger interface {
	LogInteraction(identifier, action string, ctx map[string]string)
	LogNavigation(from, to, method string)
}

// SlogLogger logs interactions through a slog.Logger.
type SlogLogger struct {
	Log *slog.Logger
}

// NewSlogLogger wraps log. A nil log uses slog.Default.
func NewSlogLogger(log *slog.Logger) *SlogLogger {
	if log == nil {
		log = slog.Default()
	}
	return &SlogLogger{Log: log}
}

func (l *SlogLogger) LogInteraction(identifier, action string, ctx map[string]string) {
	args := []any{"identifier", identifier, "action", action}
	for k, v := range ctx {
		args = append(args, k, v)
	}
	l.Log.Info("interaction", args...)
}

func (l *SlogLogger) LogNavigation(from, to, method string) {
	l.Log.Info("navigation", "from", from, "to", to, "method", method)
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) LogInteraction(string, string, map[string]string) {}
func (NopLogger) LogNavigation(string, string, string)             {}
