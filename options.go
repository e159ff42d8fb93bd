package xlfpack

import "log/slog"

// DefaultMaxFileSize bounds the size of each embedded side file.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for progress and warnings
// (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMaxFileSize limits the size of the original file and the manifest.
// Values <= 0 keep the default.
func WithMaxFileSize(n int64) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxFileSize = n
		}
	}
}
