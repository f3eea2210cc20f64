package stream

import (
	"log/slog"
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
	"github.com/input-output-hk/catalyst-forge-libs/filesugar/billy"
)

// DefaultPerm is the permission used for files created by a RangeWriter.
const DefaultPerm os.FileMode = 0o644

// options holds configuration shared by RangeReader and RangeWriter.
type options struct {
	fs     filesugar.Filesystem
	logger *slog.Logger
	perm   os.FileMode
}

// Option is a functional option for configuring a RangeReader or RangeWriter.
type Option func(*options)

// WithFilesystem sets the filesystem the operations run against.
// A nil filesystem keeps the default native OS filesystem.
func WithFilesystem(fsys filesugar.Filesystem) Option {
	return func(opts *options) {
		if fsys != nil {
			opts.fs = fsys
		}
	}
}

// WithLogger configures a logger for operation tracing.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithPerm sets the permission bits for files created by a RangeWriter.
func WithPerm(perm os.FileMode) Option {
	return func(opts *options) {
		opts.perm = perm
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *options {
	return &options{
		fs:     billy.NewNativeOSFS(),
		logger: nil, // No default logger
		perm:   DefaultPerm,
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts *options, options []Option) {
	for _, option := range options {
		option(opts)
	}
}
