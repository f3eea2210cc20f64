package pathlock

import (
	"log/slog"
	"time"
)

// DefaultRetryDelay is how often an advisory file lock is retried while
// another process holds it.
const DefaultRetryDelay = 50 * time.Millisecond

type options struct {
	fileLock   bool
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option is a functional option for configuring a Locker.
type Option func(*options)

// WithFileLock enables a cross-process advisory lock on a sibling
// "<path>.lock" file in addition to the in-process lock.
func WithFileLock(enabled bool) Option {
	return func(opts *options) {
		opts.fileLock = enabled
	}
}

// WithRetryDelay sets the retry interval for acquiring the advisory file lock.
// Non-positive values keep the default.
func WithRetryDelay(d time.Duration) Option {
	return func(opts *options) {
		if d > 0 {
			opts.retryDelay = d
		}
	}
}

// WithLogger configures a logger for lock acquisition and release.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func defaultOptions() *options {
	return &options{
		retryDelay: DefaultRetryDelay,
	}
}
