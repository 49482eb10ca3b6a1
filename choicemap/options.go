package choicemap

import "log/slog"

// Options configures a choice map.
type Options struct {
	// Logger receives validation diagnostics. If nil, slog.Default() is
	// used; pass a discarding logger to silence diagnostics entirely.
	Logger *slog.Logger
}

// DefaultOptions holds the defaults applied by New.
var DefaultOptions = Options{
	Logger: nil,
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}
